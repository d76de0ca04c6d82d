// File: services/audio/wav.go
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
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

const waveHeaderSize = 44

// EncodeWAV wraps raw 16-bit mono PCM data in a WAV container.
func EncodeWAV(pcm []byte) []byte {
	header := waveHeader{
		RiffTag:       [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      uint32(waveHeaderSize - 8 + len(pcm)),
		WaveTag:       [4]byte{'W', 'A', 'V', 'E'},
		FmtTag:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1, // PCM
		NumChannels:   NumChannels,
		SampleRate:    SampleRate,
		ByteRate:      SampleRate * NumChannels * SampleWidth,
		BlockAlign:    NumChannels * SampleWidth,
		BitsPerSample: SampleWidth * 8,
		DataTag:       [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(len(pcm)),
	}

	var buf bytes.Buffer
	// Writing a fixed-size struct into a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, &header)
	buf.Write(pcm)
	return buf.Bytes()
}

// ExtractPCM returns the PCM payload of WAV-encoded data, skipping the header.
func ExtractPCM(data []byte) ([]byte, error) {
	if len(data) < waveHeaderSize {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE payload")
	}
	return data[waveHeaderSize:], nil
}

// writeWAV writes raw 16-bit mono PCM data as a WAV file.
func writeWAV(path string, pcm []byte) error {
	return os.WriteFile(path, EncodeWAV(pcm), 0o644)
}

// readWAVData returns the PCM payload of a WAV file.
func readWAVData(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pcm, err := ExtractPCM(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pcm, nil
}
