package domain

import "path/filepath"

const (
	// MetaDirName is the name of the per-working-directory metadata directory.
	MetaDirName = ".comfortmap"

	// ReceiptsDirName is the name of the receipts directory.
	ReceiptsDirName = "receipts"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "comfortmap.yaml"

	// DefaultProgram is the executable every catalog descriptor invokes.
	DefaultProgram = "ladybug-comfort"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultReceiptsPath returns the receipts directory relative to a working directory.
// It joins .comfortmap and receipts.
func DefaultReceiptsPath() string {
	return filepath.Join(MetaDirName, ReceiptsDirName)
}
