package transport

import (
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sandreceipt/internal/config"
	"sandreceipt/internal/printer"
)

var someChunks = [][]byte{{0x1B, 0x61, 0x01}, []byte("Consumer Copy\n\n"), {0x1B, 0x61, 0x00}}

func TestMatchesName(t *testing.T) {
	names := []string{"MLP 3120_2E89", "MLP 3120_3155", "Printer"}
	tests := []struct {
		deviceName string
		want       bool
	}{
		{"MLP 3120_2E89", true},
		{"mlp 3120_3155", true},
		{"BlueTooth PRINTER 58", true},
		{"MLP 3120_0000", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := MatchesName(tt.deviceName, names); got != tt.want {
			t.Errorf("MatchesName(%q) = %v, want %v", tt.deviceName, got, tt.want)
		}
	}
	if MatchesName("anything", []string{""}) {
		t.Errorf("An empty name shouldn't match every device")
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.bin")
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}

	if err := printer.Print(s, someChunks, printer.Stream); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "\x1Ba\x01Consumer Copy\n\n\x1Ba\x00"
	if string(data) != want {
		t.Errorf("File contains %q, want %q", data, want)
	}
}

func TestOpenFileUnavailable(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing", "rfcomm0"))
	if !errors.Is(err, printer.ErrDeviceUnavailable) {
		t.Errorf("Expected ErrDeviceUnavailable, got %v", err)
	}
}

func TestTCPSink(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			close(received)
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	s, err := DialTCP(l.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	if err := printer.Print(s, someChunks, printer.Buffered); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	select {
	case data := <-received:
		if string(data) != "\x1Ba\x01Consumer Copy\n\n\x1Ba\x00" {
			t.Errorf("Printer received %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the printer to receive data")
	}
}

func TestDialTCPUnavailable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	address := l.Addr().String()
	l.Close()

	if _, err := DialTCP(address, time.Second); !errors.Is(err, printer.ErrDeviceUnavailable) {
		t.Errorf("Expected ErrDeviceUnavailable, got %v", err)
	}
}

func TestNewOpener(t *testing.T) {
	valid := config.PrinterConfig{
		ServiceUUID: "0000ff00-0000-1000-8000-00805f9b34fb",
		WriterUUID:  "0000ff02-0000-1000-8000-00805f9b34fb",
		Address:     "10.0.0.5",
		Path:        "/dev/rfcomm0",
	}

	for _, transport := range []string{config.TransportBluetooth, config.TransportTCP, config.TransportFile} {
		c := valid
		c.Transport = transport
		if o, err := NewOpener(c); err != nil || o == nil {
			t.Errorf("NewOpener(%s) failed: %v", transport, err)
		}
	}

	bad := []config.PrinterConfig{
		{Transport: config.TransportBluetooth, ServiceUUID: "nope", WriterUUID: valid.WriterUUID},
		{Transport: config.TransportBluetooth, ServiceUUID: valid.ServiceUUID, WriterUUID: "nope"},
		{Transport: config.TransportTCP},
		{Transport: "usb"},
	}
	for _, c := range bad {
		if _, err := NewOpener(c); err == nil {
			t.Errorf("NewOpener accepted %+v", c)
		}
	}
}

func TestFileOpener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	s, err := FileOpener(path)()
	if err != nil {
		t.Fatal(err)
	}
	if err := printer.Print(s, someChunks, printer.Stream); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() != int64(printer.Size(someChunks)) {
		t.Errorf("Unexpected output file: %v %v", info, err)
	}
}

func TestFileSinkCountsOnlyWhatTheDeviceTook(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full on this system")
	}
	s, err := OpenFile("/dev/full")
	if err != nil {
		t.Fatal(err)
	}

	chunk := make([]byte, 3000)
	err = printer.Print(s, [][]byte{chunk, chunk, chunk}, printer.Stream)

	var te *printer.TransmissionError
	if !errors.As(err, &te) {
		t.Fatalf("Expected a TransmissionError, got %v", err)
	}
	if te.Written != 0 {
		t.Errorf("A full device took nothing, but Written = %v", te.Written)
	}
}

func TestPartial(t *testing.T) {
	broken := errors.New("broken pipe")

	var pe *printer.PartialWriteError
	if err := partial(5, broken); !errors.As(err, &pe) || pe.N != 5 || !errors.Is(err, broken) {
		t.Errorf("partial(5, err) = %v", err)
	}
	if err := partial(0, broken); err != broken {
		t.Errorf("partial(0, err) = %v, want the error itself", err)
	}
	if err := partial(3, nil); err != nil {
		t.Errorf("partial(3, nil) = %v", err)
	}
}
