package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sandreceipt/internal/config"
	"sandreceipt/internal/header"
	"sandreceipt/internal/model"
	"sandreceipt/internal/printer"
	"sandreceipt/internal/receipt"
	"sandreceipt/internal/server"
	"sandreceipt/internal/transport"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API")
	fieldsPath := flag.String("fields", "", "print one receipt from a JSON file of fields")
	out := flag.String("out", "", "write the receipt bytes to this file instead of the printer")
	flag.Parse()

	if !*serve && *fieldsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*serve, *fieldsPath, *out); err != nil {
		slog.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func run(serve bool, fieldsPath, out string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetLogLoggerLevel(c.LogLevel)

	composer, err := newReceiptComposer(c.Receipt)
	if err != nil {
		return err
	}

	mode, err := printer.ParseMode(c.Printer.Mode)
	if err != nil {
		return err
	}

	transportName := c.Printer.Transport
	var open transport.Opener
	if out != "" {
		transportName = config.TransportFile
		open = transport.FileOpener(out)
	} else if open, err = transport.NewOpener(c.Printer); err != nil {
		return err
	}

	j, err := openJournal(c.JournalPath)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	logger := slog.Default()
	si := server.NewServer(logger.With("src", "server"), open, composer, j, transportName, mode)

	if serve {
		port := c.Server.Port
		slog.Info("Starting server", "port", port, "transport", transportName, "mode", mode)
		s := http.Server{Addr: ":" + port, Handler: si.Handler()}
		return s.ListenAndServe()
	}
	return printOnce(si, fieldsPath)
}

// Renders the header once at startup and builds the receipt composer around it.
func newReceiptComposer(c config.ReceiptConfig) (*receipt.Composer, error) {
	var logoData []byte
	if c.LogoPath != "" {
		var err error
		if logoData, err = os.ReadFile(c.LogoPath); err != nil {
			return nil, fmt.Errorf("Couldn't read logo:\n%w", err)
		}
	}
	logo, err := header.LoadLogo(logoData)
	if err != nil {
		return nil, err
	}

	renderer, err := header.NewGoFontRenderer()
	if err != nil {
		return nil, err
	}
	hc := header.Composer{Renderer: renderer, DitherLogo: c.DitherLogo}
	img := hc.Compose(logo, c.BrandLine1, c.BrandLine2)
	slog.Debug("Composed receipt header", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return receipt.NewComposer(img, c.SupplyPointName)
}

func printOnce(si *server.Server, fieldsPath string) error {
	data, err := os.ReadFile(fieldsPath)
	if err != nil {
		return fmt.Errorf("Couldn't read fields:\n%w", err)
	}
	var request model.ReceiptRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return fmt.Errorf("Couldn't parse %s:\n%w", fieldsPath, err)
	}

	f := request.ToFields(time.Now())
	if err := f.Validate(); err != nil {
		return err
	}

	_, result, err := si.Print(f)
	if err != nil {
		return err
	}
	fmt.Printf("Printed %d bytes\n", result.Written)
	return nil
}
