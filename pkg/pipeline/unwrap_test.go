package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/brickuv/pkg/errors"
	"github.com/matzehuels/brickuv/pkg/mesh"
)

func TestUnwrapEmptySelection(t *testing.T) {
	m, err := mesh.ReadOBJ(strings.NewReader(stripOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	m.SelectNone()

	opts := Options{Input: "strip.obj"}
	opts.SetUnwrapDefaults()

	_, err = Unwrap(context.Background(), m, "hash", opts)
	if err == nil {
		t.Fatal("Unwrap() should fail on an empty selection")
	}
	if !errors.Is(err, errors.ErrCodeEmptySelection) {
		t.Errorf("error code = %v, want EMPTY_SELECTION", errors.GetCode(err))
	}
}

func TestUnwrapSetsRunID(t *testing.T) {
	m, err := mesh.ReadOBJ(strings.NewReader(stripOBJ))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	m.SelectAll()

	opts := Options{Input: "strip.obj", FixedOrigin: true}
	opts.SetUnwrapDefaults()

	l, err := Unwrap(context.Background(), m, "meshhash", opts)
	if err != nil {
		t.Fatalf("Unwrap() error = %v", err)
	}
	if l.RunID == "" {
		t.Error("RunID should be set")
	}
	if l.MeshHash != "meshhash" {
		t.Errorf("MeshHash = %q, want %q", l.MeshHash, "meshhash")
	}
	if len(l.Islands) != 1 {
		t.Errorf("Islands = %d, want 1", len(l.Islands))
	}
}
