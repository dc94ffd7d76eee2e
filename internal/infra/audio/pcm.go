package audio

import "encoding/binary"

// readLoop pulls int16 buffers from read and hands each one to onChunk as
// little-endian PCM until done is closed or read fails. The read error is
// returned so the capture can report a truncated recording.
func readLoop(done <-chan struct{}, read func() ([]int16, error), onChunk func([]byte)) error {
	for {
		select {
		case <-done:
			return nil
		default:
		}

		samples, err := read()
		if err != nil {
			return err
		}

		chunk := make([]byte, len(samples)*2)
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(chunk[i*2:], uint16(sample))
		}
		onChunk(chunk)
	}
}
