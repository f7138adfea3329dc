package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"sandreceipt/internal/journal"
	"sandreceipt/internal/model"
	"sandreceipt/internal/printer"
	"sandreceipt/internal/receipt"
	"sandreceipt/internal/transport"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
	// Largest accepted receipt request body
	MaxRequestBytes  = 16 << 10
)

type Server struct {
	logger    *slog.Logger
	open      transport.Opener
	composer  *receipt.Composer
	journal   *journal.Journal
	transport string
	mode      printer.Mode
	now       func() time.Time

	// One printer, one receipt at a time
	mu sync.Mutex
}

// The journal may be nil, in which case prints aren't recorded.
func NewServer(logger *slog.Logger, open transport.Opener, composer *receipt.Composer,
	j *journal.Journal, transportName string, mode printer.Mode) *Server {
	return &Server{
		logger:    logger,
		open:      open,
		composer:  composer,
		journal:   j,
		transport: transportName,
		mode:      mode,
		now:       time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/receipts", s.handlePrint)
	mux.HandleFunc("GET /api/receipts", s.handleList)
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok")
	})
	return mux
}

// Composes and prints one receipt, recording the attempt in the journal.
// A receipt that can't be composed is recorded as failed with nothing sent.
// The returned entry is nil when there is no journal.
func (s *Server) Print(f receipt.Fields) (*journal.Entry, receipt.Result, error) {
	chunks, err := s.composer.Compose(f)
	if err != nil {
		s.logger.Error("Couldn't compose receipt", "orderId", f.OrderId, "tripNo", f.TripNo, "error", err)
		return s.record(f, receipt.Result{}, err), receipt.Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := receipt.Result{Size: printer.Size(chunks)}
	sink, err := s.open()
	if err == nil {
		result, err = receipt.Send(sink, chunks, s.mode)
	}

	if err != nil {
		s.logger.Error("Couldn't print receipt", "orderId", f.OrderId, "tripNo", f.TripNo,
			"written", result.Written, "size", result.Size, "error", err)
	} else {
		s.logger.Info("Printed receipt", "orderId", f.OrderId, "tripNo", f.TripNo, "size", result.Size)
	}

	return s.record(f, result, err), result, err
}

func (s *Server) record(f receipt.Fields, result receipt.Result, printErr error) *journal.Entry {
	if s.journal == nil {
		return nil
	}
	e := journal.Entry{
		OrderId:      f.OrderId,
		TripNo:       f.TripNo,
		Transport:    s.transport,
		Mode:         string(s.mode),
		BytesTotal:   result.Size,
		BytesWritten: result.Written,
		Status:       journal.Printed,
	}
	if printErr != nil {
		e.Status = journal.Failed
		e.Error = printErr.Error()
	}
	if err := s.journal.Record(&e); err != nil {
		s.logger.Error("Couldn't record print job", "orderId", f.OrderId, "error", err)
		return nil
	}
	return &e
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var request model.ReceiptRequest
	body := http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("Request body larger than %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	f := request.ToFields(s.now())
	if err := f.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, result, err := s.Print(f)
	response := model.ReceiptResponse{Size: result.Size, BytesWritten: result.Written}
	if entry != nil {
		response.PrintId = &entry.Uuid
	}
	if err != nil {
		response.Error = err.Error()
	}
	writeJson(w, statusFor(err), response)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		http.Error(w, "Print journal is disabled", http.StatusNotFound)
		return
	}

	limit := DefaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		if limit, err = strconv.Atoi(l); err != nil || limit <= 0 || limit > MaxListLimit {
			http.Error(w, fmt.Sprintf("Invalid limit %q", l), http.StatusBadRequest)
			return
		}
	}

	entries, err := s.journal.List(r.URL.Query().Get("orderId"), limit)
	if err != nil {
		s.logger.Error("Couldn't list print jobs", "error", err)
		http.Error(w, "Couldn't list print jobs", http.StatusInternalServerError)
		return
	}

	response := make([]model.JournalEntry, len(entries))
	for i := range entries {
		response[i] = model.FromJournalEntry(entries[i])
	}
	writeJson(w, http.StatusOK, response)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusCreated
	case errors.Is(err, printer.ErrEncode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, printer.ErrDeviceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, printer.ErrTransmission):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Couldn't write response", "error", err)
	}
}
