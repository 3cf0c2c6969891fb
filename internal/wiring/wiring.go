// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/comfortmap/internal/adapters/catalog"
	_ "go.trai.ch/comfortmap/internal/adapters/config"
	_ "go.trai.ch/comfortmap/internal/adapters/fs"
	_ "go.trai.ch/comfortmap/internal/adapters/linear"
	_ "go.trai.ch/comfortmap/internal/adapters/logger"
	_ "go.trai.ch/comfortmap/internal/adapters/receipts"
	_ "go.trai.ch/comfortmap/internal/adapters/shell"
	_ "go.trai.ch/comfortmap/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/comfortmap/internal/app"
	_ "go.trai.ch/comfortmap/internal/engine/render"
)
