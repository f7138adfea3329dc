package model

import (
	"time"

	"github.com/google/uuid"

	"sandreceipt/internal/journal"
	"sandreceipt/internal/receipt"
)

// Layout of the dispatch date filled in when a request leaves it blank
const DispatchDateLayout = "02-01-2006 15:04:05"

type ReceiptRequest struct {
	OrderId        string `json:"orderId"`
	TripNo         string `json:"tripNo"`
	CustomerName   string `json:"customerName"`
	CustomerMobile string `json:"customerMobile"`
	SandQuantity   string `json:"sandQuantity"`
	DispatchDate   string `json:"dispatchDate,omitempty"`
	DriverName     string `json:"driverName"`
	DriverMobile   string `json:"driverMobile"`
	VehicleNo      string `json:"vehicleNo"`
	Address        string `json:"address"`
	QRPayload      string `json:"qrPayload"`
}

type ReceiptResponse struct {
	PrintId      *uuid.UUID `json:"printId,omitempty"`
	Size         int        `json:"size"`
	BytesWritten int        `json:"bytesWritten"`
	Error        string     `json:"error,omitempty"`
}

type JournalEntry struct {
	PrintId      uuid.UUID `json:"printId"`
	OrderId      string    `json:"orderId"`
	TripNo       string    `json:"tripNo"`
	Transport    string    `json:"transport"`
	Mode         string    `json:"mode"`
	Size         int       `json:"size"`
	BytesWritten int       `json:"bytesWritten"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Maps the request onto receipt fields. A blank dispatch date becomes now.
func (r *ReceiptRequest) ToFields(now time.Time) receipt.Fields {
	date := r.DispatchDate
	if date == "" {
		date = now.Format(DispatchDateLayout)
	}
	return receipt.Fields{
		OrderId:        r.OrderId,
		TripNo:         r.TripNo,
		CustomerName:   r.CustomerName,
		CustomerMobile: r.CustomerMobile,
		SandQuantity:   r.SandQuantity,
		DispatchDate:   date,
		DriverName:     r.DriverName,
		DriverMobile:   r.DriverMobile,
		VehicleNo:      r.VehicleNo,
		Address:        r.Address,
		QRPayload:      r.QRPayload,
	}
}

func FromJournalEntry(e journal.Entry) JournalEntry {
	return JournalEntry{
		PrintId:      e.Uuid,
		OrderId:      e.OrderId,
		TripNo:       e.TripNo,
		Transport:    e.Transport,
		Mode:         e.Mode,
		Size:         e.BytesTotal,
		BytesWritten: e.BytesWritten,
		Status:       string(e.Status),
		Error:        e.Error,
		CreatedAt:    e.CreatedAt,
	}
}
