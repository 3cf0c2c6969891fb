package ports

import "go.trai.ch/comfortmap/internal/core/domain"

// ReceiptStore persists invocation receipts inside the working directory.
//
//go:generate mockgen -source=receipt_store.go -destination=mocks/mock_receipt_store.go -package=mocks
type ReceiptStore interface {
	// Put writes the receipt and returns the path it was written to.
	Put(workDir string, receipt *domain.Receipt) (string, error)

	// Get reads the receipt with the given run ID.
	Get(workDir, id string) (*domain.Receipt, error)
}
