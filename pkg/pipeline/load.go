package pipeline

import (
	"bytes"
	"os"

	"github.com/matzehuels/brickuv/pkg/cache"
	"github.com/matzehuels/brickuv/pkg/errors"
	"github.com/matzehuels/brickuv/pkg/mesh"
)

// Load reads the input mesh, builds adjacency, and applies the face
// selection. Returns the mesh together with the content hash of the raw
// OBJ source; the hash feeds the layout cache key, so byte-identical
// inputs share cached layouts regardless of where they came from.
func Load(opts Options) (*mesh.Mesh, string, error) {
	data, err := readSource(opts)
	if err != nil {
		return nil, "", err
	}

	m, err := mesh.ReadOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidMesh, err, "parse OBJ")
	}
	if m.FaceCount() == 0 {
		return nil, "", errors.New(errors.ErrCodeInvalidMesh, "mesh has no faces")
	}

	if err := applySelection(m, opts); err != nil {
		return nil, "", err
	}

	return m, cache.Hash(data), nil
}

// readSource returns the raw OBJ bytes from either the inline source or
// the input path.
func readSource(opts Options) ([]byte, error) {
	if opts.OBJ != "" {
		return []byte(opts.OBJ), nil
	}
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.Input)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.Input)
	}
	return data, nil
}

// applySelection marks the faces the unwrap will operate on. An explicit
// face list wins; otherwise every face is selected.
func applySelection(m *mesh.Mesh, opts Options) error {
	if len(opts.Faces) > 0 {
		if err := m.SelectFaces(opts.Faces); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "select faces")
		}
		return nil
	}
	m.SelectAll()
	return nil
}
