package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/brickuv/pkg/brick"
	"github.com/matzehuels/brickuv/pkg/errors"
	"github.com/matzehuels/brickuv/pkg/layout"
	"github.com/matzehuels/brickuv/pkg/mesh"
	"github.com/matzehuels/brickuv/pkg/observability"
)

// =============================================================================
// Unwrap Stage
// =============================================================================

// Unwrap discovers islands in the selection, assigns brick UVs, and packages
// the result into the serializable layout format. The mesh is mutated: loop
// UVs are written in place so the OBJ artifact can be exported from it.
func Unwrap(ctx context.Context, m *mesh.Mesh, meshHash string, opts Options) (layout.Layout, error) {
	p := opts.ToParams()
	if p.Coplanar {
		m.SelectCoplanar(mesh.DefaultCoplanarEpsilon)
	}

	selected := m.SelectedFaces()
	if len(selected) == 0 {
		return layout.Layout{}, errors.New(errors.ErrCodeEmptySelection, "no faces selected")
	}

	hooks := observability.Pipeline()

	hooks.OnIslandsStart(ctx, len(selected))
	islandsStart := time.Now()
	islands, err := brick.FindIslands(m, p)
	hooks.OnIslandsComplete(ctx, len(islands), time.Since(islandsStart), err)
	if err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeFaceNotSelected, err, "discover islands")
	}

	hooks.OnApplyStart(ctx, len(islands))
	applyStart := time.Now()
	brick.Apply(m, islands, p)
	hooks.OnApplyComplete(ctx, time.Since(applyStart), nil)

	l := layout.FromIslands(m, islands, p)
	l.RunID = uuid.NewString()
	l.MeshHash = meshHash
	return l, nil
}
