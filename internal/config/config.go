package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Printer PrinterConfig
	Receipt ReceiptConfig
	Server  ServerConfig
	// sqlite file for the print journal, empty disables it
	JournalPath string
	LogLevel    slog.Level
}

type PrinterConfig struct {
	// "bluetooth", "tcp" or "file"
	Transport string
	// Printers whose advertised name contains any of these are used
	Names          []string
	Address        string
	Path           string
	ServiceUUID    string
	WriterUUID     string
	ScanTimeout    time.Duration
	ChunkSize      int
	ConnectTimeout time.Duration
	// "stream" or "buffered"
	Mode string
}

type ReceiptConfig struct {
	LogoPath        string
	DitherLogo      bool
	BrandLine1      string
	BrandLine2      string
	SupplyPointName string
}

type ServerConfig struct {
	Port string
}

const (
	TransportBluetooth = "bluetooth"
	TransportTCP       = "tcp"
	TransportFile      = "file"
)

// Loads configuration from the environment, reading a .env file first if
// there is one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Printer: PrinterConfig{
			Transport:   getEnv("PRINTER_TRANSPORT", TransportBluetooth),
			Names:       splitList(getEnv("PRINTER_NAMES", "MLP 3120_2E89,MLP 3120_3155,Printer")),
			Address:     getEnv("PRINTER_ADDRESS", ""),
			Path:        getEnv("PRINTER_PATH", "/dev/rfcomm0"),
			ServiceUUID: getEnv("BLE_SERVICE_UUID", "0000ff00-0000-1000-8000-00805f9b34fb"),
			WriterUUID:  getEnv("BLE_WRITER_UUID", "0000ff02-0000-1000-8000-00805f9b34fb"),
			Mode:        getEnv("PRINT_MODE", "stream"),
		},
		Receipt: ReceiptConfig{
			LogoPath:        getEnv("LOGO_PATH", ""),
			BrandLine1:      getEnv("BRAND_LINE_1", "AP SAND"),
			BrandLine2:      getEnv("BRAND_LINE_2", "MANAGEMENT SYSTEM"),
			SupplyPointName: getEnv("SUPPLY_POINT_NAME", "Narayananellore MSP"),
		},
		Server: ServerConfig{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		JournalPath: getEnv("JOURNAL_PATH", ""),
	}

	var err error
	if c.Printer.ScanTimeout, err = time.ParseDuration(getEnv("BLE_SCAN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("Invalid BLE_SCAN_TIMEOUT:\n%w", err)
	}
	if c.Printer.ConnectTimeout, err = time.ParseDuration(getEnv("PRINTER_CONNECT_TIMEOUT", "5s")); err != nil {
		return nil, fmt.Errorf("Invalid PRINTER_CONNECT_TIMEOUT:\n%w", err)
	}
	if c.Printer.ChunkSize, err = strconv.Atoi(getEnv("BLE_CHUNK_SIZE", "180")); err != nil || c.Printer.ChunkSize <= 0 {
		return nil, fmt.Errorf("Invalid BLE_CHUNK_SIZE %q", os.Getenv("BLE_CHUNK_SIZE"))
	}
	if c.Receipt.DitherLogo, err = strconv.ParseBool(getEnv("DITHER_LOGO", "false")); err != nil {
		return nil, fmt.Errorf("Invalid DITHER_LOGO:\n%w", err)
	}
	if err = c.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("Invalid LOG_LEVEL:\n%w", err)
	}

	switch c.Printer.Transport {
	case TransportBluetooth, TransportTCP, TransportFile:
	default:
		return nil, fmt.Errorf("Unrecognised PRINTER_TRANSPORT %q", c.Printer.Transport)
	}

	return c, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
