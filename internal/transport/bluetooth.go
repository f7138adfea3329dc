// This package provides the connections a receipt can be printed over.
// Each one is opened for a single receipt and closed afterwards.
package transport

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tinygo.org/x/bluetooth"

	"sandreceipt/internal/printer"
)

type BluetoothOptions struct {
	Names       []string
	ServiceUUID bluetooth.UUID
	WriterUUID  bluetooth.UUID
	ScanTimeout time.Duration
	// Largest write the device accepts in one GATT packet
	ChunkSize int
}

// BluetoothSink writes to the printer's GATT write characteristic.
type BluetoothSink struct {
	device    bluetooth.Device
	writer    bluetooth.DeviceCharacteristic
	chunkSize int
}

// Reports whether a device name contains any of the wanted names, ignoring case.
func MatchesName(deviceName string, names []string) bool {
	deviceName = strings.ToLower(deviceName)
	for _, n := range names {
		if n != "" && strings.Contains(deviceName, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// Scans for the first printer whose name matches, connects and finds its
// write characteristic. Fails with printer.ErrDeviceUnavailable if Bluetooth
// is off or no printer is found before the scan times out.
func ConnectBluetooth(opts BluetoothOptions) (*BluetoothSink, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("%w: couldn't enable Bluetooth:\n%w", printer.ErrDeviceUnavailable, err)
	}

	result, err := scanByName(adapter, opts.Names, opts.ScanTimeout)
	if err != nil {
		return nil, err
	}

	slog.Debug("Connecting to device...", "deviceName", result.LocalName())
	device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't connect to %s:\n%w", printer.ErrDeviceUnavailable, result.LocalName(), err)
	}

	slog.Debug("Discovering service...")
	services, err := device.DiscoverServices([]bluetooth.UUID{opts.ServiceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return nil, fmt.Errorf("%w: printer service %s not found: %v", printer.ErrDeviceUnavailable, opts.ServiceUUID, err)
	}

	slog.Debug("Discovering characteristics...")
	characteristics, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{opts.WriterUUID})
	if err != nil || len(characteristics) == 0 {
		device.Disconnect()
		return nil, fmt.Errorf("%w: write characteristic %s not found: %v", printer.ErrDeviceUnavailable, opts.WriterUUID, err)
	}

	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 20
	}
	return &BluetoothSink{device: device, writer: characteristics[0], chunkSize: chunkSize}, nil
}

func scanByName(adapter *bluetooth.Adapter, names []string, timeout time.Duration) (bluetooth.ScanResult, error) {
	devices := make(chan bluetooth.ScanResult, 1)
	scanErrors := make(chan error, 1)

	go func() {
		scanErrors <- adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if MatchesName(result.LocalName(), names) {
				slog.Info("Found device:", "deviceName", result.LocalName())
				select {
				case devices <- result:
				default:
				}
				adapter.StopScan()
			}
		})
	}()

	select {
	case dev := <-devices:
		return dev, nil
	case err := <-scanErrors:
		// Scan returns once the callback stops it, so a device may be waiting
		select {
		case dev := <-devices:
			return dev, nil
		default:
		}
		return bluetooth.ScanResult{}, fmt.Errorf("%w: scan ended without finding %q: %v", printer.ErrDeviceUnavailable, names, err)
	case <-time.After(timeout):
		adapter.StopScan()
		return bluetooth.ScanResult{}, fmt.Errorf("%w: no printer matching %q found within %v", printer.ErrDeviceUnavailable, names, timeout)
	}
}

func (s *BluetoothSink) Write(data []byte) error {
	for start := 0; start < len(data); start += s.chunkSize {
		end := min(start+s.chunkSize, len(data))
		if _, err := s.writer.WriteWithoutResponse(data[start:end]); err != nil {
			if start > 0 {
				return &printer.PartialWriteError{N: start, Err: err}
			}
			return err
		}
	}
	slog.Debug("Wrote data to device", "size", len(data))
	return nil
}

func (s *BluetoothSink) Close() error {
	return s.device.Disconnect()
}
