// Package ledger owns the local append-only record of payment activity.
// The backing file is a JSON array rewritten in full on every append; no
// other component touches the file directly.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmarin/voltcli/pkg/logger"
)

// Store defines the ledger operations the rest of the wallet depends on.
type Store interface {
	// ReadAll returns every record in insertion order. A missing or
	// unparseable backing file reads as an empty ledger, never an error.
	ReadAll(ctx context.Context) []Record

	// Append unconditionally appends a record. Reserved for locally-minted
	// ids where duplication cannot occur.
	Append(ctx context.Context, record Record) error

	// AppendIfAbsent appends unless a record with the same id already
	// exists, and reports whether it inserted. This is the idempotence
	// primitive every reconciliation path goes through.
	AppendIfAbsent(ctx context.Context, record Record) (bool, error)

	// FindByID returns the record with the given id, or nil.
	FindByID(ctx context.Context, id string) *Record
}

type fileStore struct {
	path string
	logg *logger.Logger
}

// NewFileStore wires a ledger store over the given file path.
func NewFileStore(path string, logg *logger.Logger) (Store, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger path required")
	}
	if logg == nil {
		return nil, fmt.Errorf("ledger logger required")
	}
	return &fileStore{path: path, logg: logg}, nil
}

func (s *fileStore) ReadAll(ctx context.Context) []Record {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logg.Warn(ctx, fmt.Sprintf("ledger read failed, treating as empty: %v", err))
		}
		return nil
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("ledger file unparseable, treating as empty: %v", err))
		return nil
	}
	return records
}

func (s *fileStore) Append(ctx context.Context, record Record) error {
	if record.ID == "" {
		return fmt.Errorf("record id required")
	}
	records := append(s.ReadAll(ctx), record)
	return s.write(records)
}

func (s *fileStore) AppendIfAbsent(ctx context.Context, record Record) (bool, error) {
	if record.ID == "" {
		return false, fmt.Errorf("record id required")
	}
	records := s.ReadAll(ctx)
	for _, existing := range records {
		if existing.ID == record.ID {
			return false, nil
		}
	}
	if err := s.write(append(records, record)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *fileStore) FindByID(ctx context.Context, id string) *Record {
	if id == "" {
		return nil
	}
	for _, record := range s.ReadAll(ctx) {
		if record.ID == id {
			found := record
			return &found
		}
	}
	return nil
}

// write rewrites the whole file through a temp file and rename so a killed
// process can never leave a torn ledger behind. Concurrent processes are
// still unsupported; the contract is single-process-at-a-time.
func (s *fileStore) write(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	payload = append(payload, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("creating ledger temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing ledger temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing ledger temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}
