// File: services/agent/normalize.go
package agent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// titleCase capitalizes each word, lower-casing the rest of the word.
func titleCase(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

// digitWords maps spoken digit words to their numeral.
var digitWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
}

// SpokenDigits scans tokens left to right and concatenates recognized digit
// words into a numeral string. "double"/"triple" followed by a digit word
// emit that digit twice/thrice and consume both tokens. All other tokens are
// ignored.
func SpokenDigits(text string) string {
	words := strings.Fields(strings.ToLower(text))
	var sb strings.Builder
	for i := 0; i < len(words); i++ {
		word := words[i]
		switch word {
		case "double", "triple":
			if i+1 < len(words) {
				if d, ok := digitWords[words[i+1]]; ok {
					repeat := 2
					if word == "triple" {
						repeat = 3
					}
					sb.WriteString(strings.Repeat(d, repeat))
					i++
				}
			}
		default:
			if d, ok := digitWords[word]; ok {
				sb.WriteString(d)
			}
		}
	}
	return sb.String()
}

// validMobile reports whether s is a 10-digit Indian mobile number.
func validMobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	return s[0] >= '6' && s[0] <= '9'
}
