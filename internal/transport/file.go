package transport

import (
	"fmt"
	"os"

	"sandreceipt/internal/printer"
)

// FileSink writes to a device node such as a bound RFCOMM port
// (/dev/rfcomm0), a USB printer (/dev/usb/lp0) or a plain file for dry runs.
// Writes go straight to the file so a failure reports what the device took.
type FileSink struct {
	file *os.File
}

func OpenFile(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't open %s:\n%w", printer.ErrDeviceUnavailable, path, err)
	}
	return &FileSink{file: f}, nil
}

func (s *FileSink) Write(data []byte) error {
	return partial(s.file.Write(data))
}

func (s *FileSink) Close() error {
	return s.file.Close()
}

// Turns the result of an io.Writer call into a sink error, keeping the count
// of bytes accepted before a failure.
func partial(n int, err error) error {
	if err != nil && n > 0 {
		return &printer.PartialWriteError{N: n, Err: err}
	}
	return err
}
