package audio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLoop_ReturnsReadError(t *testing.T) {
	errDevice := errors.New("device unplugged")
	buffers := [][]int16{{1, -1}, {256}}
	reads := 0

	read := func() ([]int16, error) {
		if reads == len(buffers) {
			return nil, errDevice
		}
		reads++
		return buffers[reads-1], nil
	}

	var chunks [][]byte
	err := readLoop(make(chan struct{}), read, func(chunk []byte) {
		chunks = append(chunks, chunk)
	})

	require.ErrorIs(t, err, errDevice)
	assert.Equal(t, [][]byte{{0x01, 0x00, 0xff, 0xff}, {0x00, 0x01}}, chunks)
}

func TestReadLoop_StopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	reads := 0

	read := func() ([]int16, error) {
		reads++
		if reads == 3 {
			close(done)
		}
		return []int16{0}, nil
	}

	err := readLoop(done, read, func([]byte) {})

	assert.NoError(t, err)
	assert.Equal(t, 3, reads)
}
