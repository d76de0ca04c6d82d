// File: services/audio/recorder.go
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"droptruck/utils"

	"go.uber.org/zap"
)

// Audio settings, matching the speech-to-text input format.
const (
	SampleRate  = 16000
	NumChannels = 1
	SampleWidth = 2 // 16-bit samples
)

// ConversationRecorder captures the full call audio. Chunks arrive from the
// capture callback on its own thread; the buffer is mutex-guarded and chunks
// are only kept while recording is active and not paused. Pausing mutes the
// microphone during assistant playback to prevent echo.
type ConversationRecorder struct {
	sessionID  string
	sessionDir string

	mu     sync.Mutex
	buffer [][]byte
	active bool
	paused bool

	// Segments in chronological order for the final merge.
	userSegments      []string
	assistantSegments []string
	segmentOrder      []string
	currentTurn       int
}

// NewConversationRecorder creates the session directory and a recorder for it.
func NewConversationRecorder(sessionID, outputDir string) (*ConversationRecorder, error) {
	sessionDir := filepath.Join(outputDir, "session_"+sessionID)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session audio dir: %w", err)
	}
	return &ConversationRecorder{
		sessionID:  sessionID,
		sessionDir: sessionDir,
	}, nil
}

// Start begins capturing user audio.
func (r *ConversationRecorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = true
	r.buffer = nil
}

// AddChunk appends a raw audio chunk from the capture callback. Chunks are
// dropped while recording is inactive or paused.
func (r *ConversationRecorder) AddChunk(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active || r.paused {
		return
	}
	chunk := make([]byte, len(data))
	copy(chunk, data)
	r.buffer = append(r.buffer, chunk)
}

// Pause mutes capture while the assistant's reply is playing.
func (r *ConversationRecorder) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = true
}

// Resume re-enables capture after assistant playback.
func (r *ConversationRecorder) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = false
}

// Stop ends capture and flushes any buffered audio as a final user segment.
func (r *ConversationRecorder) Stop() error {
	r.mu.Lock()
	r.active = false
	r.mu.Unlock()
	_, err := r.SaveUserSegment()
	return err
}

// SaveUserSegment writes the buffered user audio for the current turn to a
// WAV file and clears the buffer. Returns the file path, or "" when the
// buffer was empty.
func (r *ConversationRecorder) SaveUserSegment() (string, error) {
	r.mu.Lock()
	chunks := r.buffer
	r.buffer = nil
	turn := r.currentTurn
	r.currentTurn++
	r.mu.Unlock()

	if len(chunks) == 0 {
		return "", nil
	}

	var pcm []byte
	for _, chunk := range chunks {
		pcm = append(pcm, chunk...)
	}

	path := filepath.Join(r.sessionDir, fmt.Sprintf("user_turn_%03d.wav", turn))
	if err := writeWAV(path, pcm); err != nil {
		return "", fmt.Errorf("failed to save user segment: %w", err)
	}

	r.mu.Lock()
	r.userSegments = append(r.userSegments, path)
	r.segmentOrder = append(r.segmentOrder, path)
	r.mu.Unlock()
	return path, nil
}

// AddAssistantSegment records the path of the assistant's spoken reply so the
// merge keeps chronological order.
func (r *ConversationRecorder) AddAssistantSegment(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assistantSegments = append(r.assistantSegments, path)
	r.segmentOrder = append(r.segmentOrder, path)
}

// MergeConversation concatenates all segments in chronological order into a
// single WAV file and returns its path. Segments that fail to read are
// skipped so a single bad file does not lose the call recording.
func (r *ConversationRecorder) MergeConversation() (string, error) {
	r.mu.Lock()
	order := make([]string, len(r.segmentOrder))
	copy(order, r.segmentOrder)
	r.mu.Unlock()

	if len(order) == 0 {
		return "", fmt.Errorf("no audio segments recorded for session %s", r.sessionID)
	}

	logger := utils.GetLogger()
	var pcm []byte
	for _, path := range order {
		data, err := readWAVData(path)
		if err != nil {
			logger.Warn("Skipping unreadable audio segment", zap.String("path", path), zap.Error(err))
			continue
		}
		pcm = append(pcm, data...)
	}

	out := filepath.Join(r.sessionDir, "full_conversation.wav")
	if err := writeWAV(out, pcm); err != nil {
		return "", fmt.Errorf("failed to write merged conversation: %w", err)
	}
	return out, nil
}

// SessionDir returns the directory holding this session's audio files.
func (r *ConversationRecorder) SessionDir() string {
	return r.sessionDir
}
