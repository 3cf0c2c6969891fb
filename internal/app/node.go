package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/comfortmap/internal/adapters/catalog"  //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/adapters/linear"   //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/adapters/receipts" //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/comfortmap/internal/core/ports"
	"go.trai.ch/comfortmap/internal/engine/render"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			render.NodeID,
			fs.StagerNodeID,
			shell.NodeID,
			fs.CollectorNodeID,
			receipts.NodeID,
			logger.NodeID,
			linear.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[ports.Registry](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.CommandRenderer](ctx)
	if err != nil {
		return nil, err
	}

	stager, err := graft.Dep[ports.Stager](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	collector, err := graft.Dep[ports.Collector](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ReceiptStore](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, registry, renderer, stager, executor, collector, store, log, reporter).WithWatcher(w), nil
}
