package printer

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sink is a connected printer that accepts raw command bytes. Sinks are
// write-only: nothing is read back from the device. A Write that fails part
// way should return a *PartialWriteError so the bytes that did reach the
// device are counted.
type Sink interface {
	Write(data []byte) error
	Close() error
}

// Flusher is implemented by sinks that buffer writes.
type Flusher interface {
	Flush() error
}

type Mode string

const (
	// Every chunk is a separate write, a failure part way leaves a partial print
	Stream Mode = "stream"
	// The chunks are joined and written at once
	Buffered Mode = "buffered"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Stream, Buffered:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("Unrecognised print mode %q", s)
	}
}

// Writes the chunks to the sink in order, flushes it if it buffers, and
// closes it on every path. Returns a *TransmissionError if any of those fail.
func Print(s Sink, chunks [][]byte, mode Mode) (err error) {
	written := 0
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("Couldn't close printer connection", "error", closeErr)
			if err == nil {
				err = &TransmissionError{Written: written, Err: fmt.Errorf("Couldn't close sink:\n%w", closeErr)}
			}
		}
	}()

	if mode == Buffered {
		chunks = [][]byte{join(chunks)}
	}

	for n, chunk := range chunks {
		if err := s.Write(chunk); err != nil {
			var pe *PartialWriteError
			if errors.As(err, &pe) {
				written += min(max(pe.N, 0), len(chunk))
			}
			return &TransmissionError{Written: written, Err: fmt.Errorf("Couldn't write chunk %d:\n%w", n, err)}
		}
		written += len(chunk)
	}

	if f, ok := s.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return &TransmissionError{Written: written, Err: fmt.Errorf("Couldn't flush sink:\n%w", err)}
		}
	}

	slog.Debug("Wrote receipt to printer", "size", written, "mode", mode)
	return nil
}

// Total number of bytes across all chunks
func Size(chunks [][]byte) int {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	return n
}

func join(chunks [][]byte) []byte {
	d := make([]byte, 0, Size(chunks))
	for _, c := range chunks {
		d = append(d, c...)
	}
	return d
}
