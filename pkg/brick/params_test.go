package brick

import (
	"errors"
	"testing"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"defaults", func(p *Params) {}, nil},
		{"zero texture", func(p *Params) { p.TextureSize.X = 0 }, ErrInvalidTextureSize},
		{"negative texture", func(p *Params) { p.TextureSize.Y = -128 }, ErrInvalidTextureSize},
		{"zero cell", func(p *Params) { p.CellSize = Vec2i{} }, ErrInvalidCellSize},
		{"cell too large", func(p *Params) { p.CellSize.X = 256 }, ErrCellLargerThanTexture},
	}
	for _, tt := range tests {
		p := DefaultParams()
		tt.mutate(&p)
		if err := p.Validate(); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: Validate() error = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestParams_Subdivs(t *testing.T) {
	p := DefaultParams()
	if got := p.Subdivs(); got != (Vec2i{1, 1}) {
		t.Errorf("Subdivs() = %v, want {1 1}", got)
	}
	p.Subdiv = true
	if got := p.Subdivs(); got != p.CellSize {
		t.Errorf("Subdivs() = %v, want %v", got, p.CellSize)
	}
}
