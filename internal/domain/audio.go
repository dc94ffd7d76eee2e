package domain

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ClipFilename is the name the captured clip is uploaded under.
const ClipFilename = "audio.wav"

var ErrNotWAV = errors.New("not a RIFF/WAVE stream")

type AudioFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate: 16000,
		Channels:   1,
		BitDepth:   16,
	}
}

func (f AudioFormat) blockAlign() int {
	return f.Channels * f.BitDepth / 8
}

// EncodeWAV packages raw PCM chunks, in order, into a single WAV clip.
func EncodeWAV(format AudioFormat, chunks [][]byte) []byte {
	dataSize := 0
	for _, c := range chunks {
		dataSize += len(c)
	}

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate*format.blockAlign()))
	binary.Write(&buf, binary.LittleEndian, uint16(format.blockAlign()))
	binary.Write(&buf, binary.LittleEndian, uint16(format.BitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, c := range chunks {
		buf.Write(c)
	}

	return buf.Bytes()
}

// DecodeWAV returns the format and PCM payload of a WAV clip. Chunks other than
// "fmt " and "data" are skipped.
func DecodeWAV(data []byte) (AudioFormat, []byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return AudioFormat{}, nil, ErrNotWAV
	}

	var (
		format  AudioFormat
		haveFmt bool
	)

	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return AudioFormat{}, nil, fmt.Errorf("short fmt chunk: %d bytes", size)
			}
			format = AudioFormat{
				Channels:   int(binary.LittleEndian.Uint16(data[body+2 : body+4])),
				SampleRate: int(binary.LittleEndian.Uint32(data[body+4 : body+8])),
				BitDepth:   int(binary.LittleEndian.Uint16(data[body+14 : body+16])),
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return AudioFormat{}, nil, fmt.Errorf("data chunk before fmt chunk")
			}
			end := body + size
			if end > len(data) {
				end = len(data)
			}
			return format, data[body:end], nil
		}

		off = body + size + size%2
	}

	return AudioFormat{}, nil, fmt.Errorf("missing data chunk")
}
