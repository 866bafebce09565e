package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"layeh.com/gopus"
)

const maxOpusBytes = 3840

// StreamToOpus reads s16le PCM from the reader, encodes 20ms opus frames
// and pushes them to opusSend until the stream ends or controls say stop.
func StreamToOpus(reader io.Reader, opusSend chan<- []byte, controls *Controls) error {
	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("opus encoder error: %w", err)
	}

	pcmBuf := make([]byte, frameSize*channels*2)
	samples := make([]int16, frameSize*channels)

	var stop <-chan struct{}
	if controls != nil {
		stop = controls.Stop
	}

	for {
		if controls.stopped() {
			return nil
		}
		for controls.paused() {
			if controls.stopped() {
				return nil
			}
			time.Sleep(20 * time.Millisecond)
		}

		if _, err := io.ReadFull(reader, pcmBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("pcm read error: %w", err)
		}

		for i := range samples {
			samples[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2:]))
		}

		opus, err := encoder.Encode(samples, frameSize, maxOpusBytes)
		if err != nil {
			return fmt.Errorf("opus encode error: %w", err)
		}

		select {
		case opusSend <- opus:
		case <-stop:
			return nil
		case <-time.After(3 * time.Second):
			return errors.New("opus send timeout")
		}
	}
}
