// Package receipts persists invocation receipts as JSON files inside the working directory.
package receipts

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/comfortmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ReceiptStore using a file-per-run strategy.
type Store struct{}

// NewStore creates a new receipt store.
func NewStore() *Store {
	return &Store{}
}

// NewID returns a fresh run ID.
func NewID() string {
	return uuid.NewString()
}

// Put writes the receipt to <workDir>/.comfortmap/receipts/<id>.json and returns that path.
// A receipt without an ID is assigned a new one.
func (s *Store) Put(workDir string, receipt *domain.Receipt) (string, error) {
	if receipt.ID == "" {
		receipt.ID = NewID()
	}
	filename, err := s.filename(workDir, receipt.ID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return "", writeErr(err, filename)
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", writeErr(err, dir)
	}

	tmp, err := os.CreateTemp(dir, receipt.ID+".*.tmp")
	if err != nil {
		return "", writeErr(err, dir)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", writeErr(err, filename)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", writeErr(err, filename)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		_ = os.Remove(tmp.Name())
		return "", writeErr(err, filename)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		_ = os.Remove(tmp.Name())
		return "", writeErr(err, filename)
	}

	return filename, nil
}

// Get reads the receipt with the given run ID from workDir.
func (s *Store) Get(workDir, id string) (*domain.Receipt, error) {
	filename, err := s.filename(workDir, id)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path is built from the working directory and a validated UUID
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, readErr(err, filename)
	}

	var receipt domain.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, readErr(err, filename)
	}

	return &receipt, nil
}

func (s *Store) filename(workDir, id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrReceiptReadFailed, "run id is not a UUID"), "id", id)
	}
	return filepath.Join(workDir, domain.DefaultReceiptsPath(), parsed.String()+".json"), nil
}

func writeErr(err error, path string) error {
	return zerr.With(zerr.Wrap(domain.ErrReceiptWriteFailed, err.Error()), "path", path)
}

func readErr(err error, path string) error {
	return zerr.With(zerr.Wrap(domain.ErrReceiptReadFailed, err.Error()), "path", path)
}
