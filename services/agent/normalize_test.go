package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpokenDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain digit words",
			in:   "nine zero six six five four two zero three one",
			want: "9066542031",
		},
		{
			name: "double modifier",
			in:   "nine zero double six five four two zero three one",
			want: "9066542031",
		},
		{
			name: "triple modifier",
			in:   "eight triple seven one two three four five six",
			want: "8777123456",
		},
		{
			name: "unrecognized tokens ignored",
			in:   "my number is nine zero six six five four two zero three one thanks",
			want: "9066542031",
		},
		{
			name: "bare modifier without digit word emits nothing",
			in:   "double trouble nine",
			want: "9",
		},
		{
			name: "no digit words",
			in:   "hello there",
			want: "",
		},
		{
			name: "mixed case",
			in:   "Nine Zero Six Six Five Four Two Zero Three One",
			want: "9066542031",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SpokenDigits(tt.in))
		})
	}
}

func TestValidMobile(t *testing.T) {
	assert.True(t, validMobile("9066542031"))
	assert.True(t, validMobile("6000000000"))
	assert.False(t, validMobile("5066542031"), "prefix below 6 is not a mobile number")
	assert.False(t, validMobile("906654203"), "nine digits")
	assert.False(t, validMobile("90665420311"), "eleven digits")
	assert.False(t, validMobile(""))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Ravi Kumar", titleCase("ravi kumar"))
	assert.Equal(t, "Chennai", titleCase("CHENNAI"))
}
