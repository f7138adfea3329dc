package printer

import (
	"errors"
	"fmt"
)

// Kinds of failure a print can end in. Callers branch on them with errors.Is.
var (
	ErrDeviceUnavailable = errors.New("printer device unavailable")
	ErrEncode            = errors.New("couldn't encode receipt")
	ErrTransmission      = errors.New("couldn't transmit to printer")
)

// TransmissionError records how far a print got before the sink failed.
type TransmissionError struct {
	// Bytes the sink accepted before the failure
	Written int
	Err     error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("%v after %d bytes: %v", ErrTransmission, e.Written, e.Err)
}

func (e *TransmissionError) Unwrap() error {
	return e.Err
}

func (e *TransmissionError) Is(target error) bool {
	return target == ErrTransmission
}

// PartialWriteError is returned by a sink whose write failed after the device
// had already accepted some of the data.
type PartialWriteError struct {
	// Bytes of the failed write the device accepted
	N   int
	Err error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("wrote %d bytes: %v", e.N, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
