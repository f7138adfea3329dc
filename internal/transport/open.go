package transport

import (
	"fmt"

	"tinygo.org/x/bluetooth"

	"sandreceipt/internal/config"
	"sandreceipt/internal/printer"
)

// Opener connects to the printer for one receipt.
type Opener func() (printer.Sink, error)

// Returns an Opener for the configured transport.
func NewOpener(c config.PrinterConfig) (Opener, error) {
	switch c.Transport {
	case config.TransportBluetooth:
		service, err := bluetooth.ParseUUID(c.ServiceUUID)
		if err != nil {
			return nil, fmt.Errorf("Invalid service UUID %q:\n%w", c.ServiceUUID, err)
		}
		writer, err := bluetooth.ParseUUID(c.WriterUUID)
		if err != nil {
			return nil, fmt.Errorf("Invalid writer UUID %q:\n%w", c.WriterUUID, err)
		}
		opts := BluetoothOptions{
			Names:       c.Names,
			ServiceUUID: service,
			WriterUUID:  writer,
			ScanTimeout: c.ScanTimeout,
			ChunkSize:   c.ChunkSize,
		}
		return func() (printer.Sink, error) {
			s, err := ConnectBluetooth(opts)
			if err != nil {
				return nil, err
			}
			return s, nil
		}, nil
	case config.TransportTCP:
		if c.Address == "" {
			return nil, fmt.Errorf("PRINTER_ADDRESS is required for the tcp transport")
		}
		return func() (printer.Sink, error) {
			s, err := DialTCP(c.Address, c.ConnectTimeout)
			if err != nil {
				return nil, err
			}
			return s, nil
		}, nil
	case config.TransportFile:
		return FileOpener(c.Path), nil
	default:
		return nil, fmt.Errorf("Unrecognised transport %q", c.Transport)
	}
}

func FileOpener(path string) Opener {
	return func() (printer.Sink, error) {
		s, err := OpenFile(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
