package audio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.wav")
	pcm := []byte{0x01, 0x02, 0x03, 0x04}

	require.NoError(t, writeWAV(path, pcm))
	got, err := readWAVData(path)
	require.NoError(t, err)
	assert.Equal(t, pcm, got)
}

func TestReadWAVDataRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	require.NoError(t, writeWAV(path, nil))

	_, err := readWAVData(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestAddChunkGating(t *testing.T) {
	rec, err := NewConversationRecorder("test", t.TempDir())
	require.NoError(t, err)

	// Chunks before Start are dropped.
	rec.AddChunk([]byte{0xAA})

	rec.Start()
	rec.AddChunk([]byte{0x01, 0x02})

	// Paused chunks (assistant speaking) are dropped.
	rec.Pause()
	rec.AddChunk([]byte{0xFF})
	rec.Resume()

	rec.AddChunk([]byte{0x03, 0x04})

	path, err := rec.SaveUserSegment()
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.Equal(t, "user_turn_000.wav", filepath.Base(path))

	pcm, err := readWAVData(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, pcm)
}

func TestSaveUserSegmentEmptyBuffer(t *testing.T) {
	rec, err := NewConversationRecorder("test", t.TempDir())
	require.NoError(t, err)

	rec.Start()
	path, err := rec.SaveUserSegment()
	require.NoError(t, err)
	assert.Empty(t, path)

	// The turn counter still advances, so the next segment keeps its slot.
	rec.AddChunk([]byte{0x05})
	path, err = rec.SaveUserSegment()
	require.NoError(t, err)
	assert.Equal(t, "user_turn_001.wav", filepath.Base(path))
}

func TestMergeConversationChronological(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewConversationRecorder("merge", dir)
	require.NoError(t, err)

	rec.Start()
	rec.AddChunk([]byte{0x01})
	_, err = rec.SaveUserSegment()
	require.NoError(t, err)

	// Assistant reply lands between the two user turns.
	assistantPath := filepath.Join(rec.SessionDir(), "assistant_000.wav")
	require.NoError(t, writeWAV(assistantPath, []byte{0x02}))
	rec.AddAssistantSegment(assistantPath)

	rec.AddChunk([]byte{0x03})
	_, err = rec.SaveUserSegment()
	require.NoError(t, err)

	out, err := rec.MergeConversation()
	require.NoError(t, err)
	assert.Equal(t, "full_conversation.wav", filepath.Base(out))

	pcm, err := readWAVData(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, pcm)
}

func TestMergeConversationSkipsUnreadableSegment(t *testing.T) {
	rec, err := NewConversationRecorder("partial", t.TempDir())
	require.NoError(t, err)

	rec.Start()
	rec.AddChunk([]byte{0x01})
	_, err = rec.SaveUserSegment()
	require.NoError(t, err)

	rec.AddAssistantSegment(filepath.Join(rec.SessionDir(), "never_written.wav"))

	out, err := rec.MergeConversation()
	require.NoError(t, err)
	pcm, err := readWAVData(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, pcm)
}

func TestMergeConversationNoSegments(t *testing.T) {
	rec, err := NewConversationRecorder("empty", t.TempDir())
	require.NoError(t, err)

	_, err = rec.MergeConversation()
	assert.Error(t, err)
}
