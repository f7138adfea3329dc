// Package receipt assembles the dispatch receipt byte stream: a consumer copy
// and a driver copy of the order details, a QR code and a closing line.
package receipt

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"sandreceipt/internal/layout"
	"sandreceipt/internal/printer"
	"sandreceipt/internal/qr"
)

const (
	ConsumerCopy           = "Consumer Copy"
	DriverCopy             = "Driver Copy"
	DefaultSupplyPointName = "Narayananellore MSP"
	AddressPrefix          = "Address: "
	ClosingText            = "Thank You"
)

var ErrInvalidFields = errors.New("invalid receipt fields")

// Fields are the pre-formatted values printed on a receipt. All are required.
type Fields struct {
	OrderId        string
	TripNo         string
	CustomerName   string
	CustomerMobile string
	SandQuantity   string
	DispatchDate   string
	DriverName     string
	DriverMobile   string
	VehicleNo      string
	Address        string
	QRPayload      string
}

// Returns ErrInvalidFields naming every field that is blank.
func (f *Fields) Validate() error {
	named := []struct {
		name, value string
	}{
		{"order id", f.OrderId},
		{"trip no", f.TripNo},
		{"customer name", f.CustomerName},
		{"customer mobile", f.CustomerMobile},
		{"sand quantity", f.SandQuantity},
		{"dispatch date", f.DispatchDate},
		{"driver name", f.DriverName},
		{"driver mobile", f.DriverMobile},
		{"vehicle no", f.VehicleNo},
		{"address", f.Address},
		{"qr payload", f.QRPayload},
	}

	var missing []string
	for _, n := range named {
		if strings.TrimSpace(n.value) == "" {
			missing = append(missing, n.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidFields, strings.Join(missing, ", "))
	}
	return nil
}

type Composer struct {
	header          []byte
	supplyPointName string
}

// Encodes the header image once so it can be reused for every receipt.
func NewComposer(header image.Image, supplyPointName string) (*Composer, error) {
	frame, err := printer.EncodeRaster(header)
	if err != nil {
		return nil, fmt.Errorf("Couldn't encode header image:\n%w", err)
	}
	if supplyPointName == "" {
		supplyPointName = DefaultSupplyPointName
	}
	return &Composer{header: frame, supplyPointName: supplyPointName}, nil
}

// Produces every chunk of the receipt in the order it must be written.
// Nothing is written anywhere, so an encoding failure can't leave a
// partial print behind.
func (c *Composer) Compose(f Fields) ([][]byte, error) {
	qrImage, err := qr.Render(f.QRPayload, qr.Size)
	if err != nil {
		return nil, err
	}
	qrFrame, err := printer.EncodeRaster(qrImage)
	if err != nil {
		return nil, fmt.Errorf("Couldn't encode QR image:\n%w", err)
	}

	chunks := [][]byte{printer.NewLines(2)}
	chunks = append(chunks, c.copyBlock(ConsumerCopy, f)...)
	chunks = append(chunks, c.copyBlock(DriverCopy, f)...)

	chunks = append(chunks,
		printer.SetJustify(printer.Centre),
		qrFrame,
		printer.NewLines(2),
	)

	chunks = append(chunks,
		printer.SetFont(printer.FontDoubleHeight),
		printer.SetJustify(printer.Centre),
		[]byte(ClosingText+"\n\n"),
		printer.SetFont(printer.FontNormal),
	)

	return chunks, nil
}

func (c *Composer) copyBlock(label string, f Fields) [][]byte {
	separator := layout.Separator()
	chunks := [][]byte{
		printer.SetJustify(printer.Centre),
		c.header,
		[]byte(label + "\n\n"),
		printer.SetJustify(printer.Left),
		[]byte(separator + "\n"),
		[]byte(c.detailRows(f) + "\n"),
	}

	for _, line := range layout.WrapByWidth(AddressPrefix+f.Address, layout.TotalWidth) {
		chunks = append(chunks,
			printer.SetJustify(printer.Centre),
			[]byte(line+"\n"),
		)
	}

	return append(chunks,
		printer.SetJustify(printer.Left),
		[]byte(separator+"\n\n"),
	)
}

func (c *Composer) detailRows(f Fields) string {
	rows := []struct {
		label, value string
	}{
		{"Order Id", f.OrderId},
		{"Trip No", f.TripNo},
		{"Customer Name", f.CustomerName},
		{"Customer Mobile", f.CustomerMobile},
		{"Sand Quantity:", f.SandQuantity},
		{"Sand Supply Point Name", c.supplyPointName},
		{"Dispatch Date", f.DispatchDate},
		{"Driver Name", f.DriverName},
		{"Driver Mobile", f.DriverMobile},
		{"Vehicle No", f.VehicleNo},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(layout.FormatRow(r.label, r.value))
		b.WriteString("\n")
	}
	return b.String()
}

// Result describes how much of a receipt reached the printer.
type Result struct {
	Size    int
	Written int
}

// Composes the receipt and writes it to the sink. The sink is closed exactly
// once whether composing, writing or flushing fails.
func (c *Composer) PrintReceipt(s printer.Sink, f Fields, mode printer.Mode) (Result, error) {
	chunks, err := c.Compose(f)
	if err != nil {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("Couldn't close printer connection", "error", closeErr)
		}
		return Result{}, err
	}

	result, err := Send(s, chunks, mode)
	if err != nil {
		return result, err
	}
	slog.Info("Printed receipt", "orderId", f.OrderId, "tripNo", f.TripNo, "size", result.Size)
	return result, nil
}

// Writes already composed chunks to the sink, reporting how many bytes it
// accepted when the write fails part way.
func Send(s printer.Sink, chunks [][]byte, mode printer.Mode) (Result, error) {
	result := Result{Size: printer.Size(chunks)}
	if err := printer.Print(s, chunks, mode); err != nil {
		var te *printer.TransmissionError
		if errors.As(err, &te) {
			result.Written = te.Written
		}
		return result, err
	}
	result.Written = result.Size
	return result, nil
}
