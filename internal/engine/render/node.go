package render

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/comfortmap/internal/core/ports"
)

// NodeID is the unique identifier for the command renderer Graft node.
const NodeID graft.ID = "engine.renderer"

func init() {
	graft.Register(graft.Node[ports.CommandRenderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CommandRenderer, error) {
			return NewRenderer(), nil
		},
	})
}
