package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/comfortmap/internal/core/ports"
)

// NodeID is the unique identifier for the descriptor registry Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Registry, error) {
			registry, err := NewBuiltin()
			if err != nil {
				return nil, err
			}
			return registry, nil
		},
	})
}
