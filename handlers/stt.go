// File: handlers/stt.go
package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"droptruck/services/call"
	"droptruck/utils"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	MaxFileSize      = 5 * 1024 * 1024 // 5MB
	AllowedExtension = ".wav"
	sttSampleRate    = 16000
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}
	var header waveHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}
	return &header, nil
}

// needsConversion reports whether the upload already matches the 16kHz mono
// 16-bit PCM format the recognizer expects.
func needsConversion(data []byte) bool {
	header, err := parseWaveHeader(data)
	if err != nil {
		return true
	}
	return header.AudioFormat != 1 ||
		header.NumChannels != 1 ||
		header.SampleRate != sttSampleRate ||
		header.BitsPerSample != 16
}

func convertAudio(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// STTHandler transcribes an uploaded utterance and, when a session is given,
// feeds the transcript through the call engine as a customer turn.
type STTHandler struct {
	Service         call.CallService
	CredentialsFile string
}

func NewSTTHandler(service call.CallService, credentialsFile string) *STTHandler {
	return &STTHandler{Service: service, CredentialsFile: credentialsFile}
}

func (h *STTHandler) Transcribe(c *gin.Context) {
	language := c.DefaultPostForm("language", "en-US")
	sessionID := c.PostForm("sessionID")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "audio file is required",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid file type",
			"details": fmt.Sprintf("expected %s, got %s", AllowedExtension, ext),
		})
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, MaxFileSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to read audio file",
			"details": err.Error(),
		})
		return
	}

	audioData := raw
	if needsConversion(raw) {
		audioData, err = h.convert(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "audio conversion failed",
				"details": err.Error(),
			})
			return
		}
	}

	ctx := c.Request.Context()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(h.CredentialsFile))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to initialize speech client",
			"details": err.Error(),
		})
		return
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   sttSampleRate,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "speech recognition failed",
			"details": err.Error(),
		})
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	text := strings.TrimSpace(transcript.String())

	if sessionID == "" {
		c.JSON(http.StatusOK, gin.H{"transcription": text})
		return
	}

	// Keep the utterance audio as a segment of the call recording. A recording
	// failure never blocks the turn itself.
	if _, err := h.Service.SaveAudioTurn(sessionID, audioData); err != nil {
		utils.GetLogger().Warn("Failed to record utterance audio",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	turn, err := h.Service.HandleUtterance(ctx, sessionID, text)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "failed to process transcript",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transcription": text,
		"turn":          turn,
	})
}

// convert round-trips the audio through ffmpeg via temp files.
func (h *STTHandler) convert(raw []byte) ([]byte, error) {
	tempInput, err := os.CreateTemp("", "audio-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tempInput.Name())
	defer tempInput.Close()

	if _, err := tempInput.Write(raw); err != nil {
		return nil, err
	}

	tempOutput, err := os.CreateTemp("", "converted-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tempOutput.Name())
	defer tempOutput.Close()

	if err := convertAudio(tempInput.Name(), tempOutput.Name()); err != nil {
		return nil, err
	}
	return os.ReadFile(tempOutput.Name())
}
