// Package journal keeps a history of print attempts so an operator can see
// which receipts reached the printer and how much of a failed one was sent.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

//go:embed schema.sql
var schema string

type Status string

const (
	Printed Status = "printed"
	Failed  Status = "failed"
)

type Entry struct {
	Id           int
	Uuid         uuid.UUID
	OrderId      string
	TripNo       string
	Transport    string
	Mode         string
	BytesTotal   int
	BytesWritten int
	Status       Status
	Error        string
	CreatedAt    time.Time
}

type Journal struct {
	Db *sql.DB
}

// Opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open journal database:\n%w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("Couldn't initialise journal database:\n%w", err)
	}
	return &Journal{Db: db}, nil
}

func (j *Journal) Close() error {
	return j.Db.Close()
}

// Stores the entry, filling in its id, UUID and creation time if unset.
func (j *Journal) Record(e *Entry) error {
	if e.Uuid == uuid.Nil {
		e.Uuid = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	row := j.Db.QueryRow(`
    INSERT INTO print_job(uuid, order_id, trip_no, transport, mode, bytes_total, bytes_written, status, error, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    RETURNING id`,
		e.Uuid.String(), e.OrderId, e.TripNo, e.Transport, e.Mode,
		e.BytesTotal, e.BytesWritten, string(e.Status), e.Error,
		e.CreatedAt.Format(time.RFC3339Nano))
	if err := row.Scan(&e.Id); err != nil {
		return fmt.Errorf("Failed to insert into print_job:\n%w", err)
	}
	return nil
}

// Returns the most recent entries first. An empty orderId lists every order.
func (j *Journal) List(orderId string, limit int) ([]Entry, error) {
	rows, err := j.Db.Query(`
    SELECT id, uuid, order_id, trip_no, transport, mode, bytes_total, bytes_written, status, error, created_at
    FROM print_job
    WHERE ? = '' OR order_id = ?
    ORDER BY id DESC
    LIMIT ?`, orderId, orderId, limit)
	if err != nil {
		return nil, fmt.Errorf("Query execution failed:\n%w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var uuidString, status, createdAt string
		if err := rows.Scan(&e.Id, &uuidString, &e.OrderId, &e.TripNo, &e.Transport, &e.Mode,
			&e.BytesTotal, &e.BytesWritten, &status, &e.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("Row scanning failed:\n%w", err)
		}
		if e.Uuid, err = uuid.Parse(uuidString); err != nil {
			return nil, fmt.Errorf("Corrupt print job UUID %q:\n%w", uuidString, err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("Corrupt print job timestamp %q:\n%w", createdAt, err)
		}
		e.Status = Status(status)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error iterating rows:\n%w", err)
	}
	return entries, nil
}
