package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNonQuadFace is returned by [ReadOBJ] when a face record does not have
// exactly four corners. Only quad meshes are supported; triangulated or
// n-gon input must be re-gridded in the authoring tool first.
var ErrNonQuadFace = fmt.Errorf("face is not a quad")

// ReadOBJ parses a Wavefront OBJ stream into a Mesh.
//
// Supported records:
//   - "v x y z" vertex positions
//   - "f a b c d" quad faces; corners may use the a/vt/vn form, in which
//     case only the vertex index is used. Negative indices are relative to
//     the end of the vertex list, per the OBJ spec.
//
// All other records (vt, vn, o, g, s, usemtl, comments) are ignored on
// input. Radial adjacency is built before returning, so the mesh is ready
// for traversal.
//
// ReadOBJ returns an error for malformed records, out-of-range indices, and
// non-quad faces. It does not close r.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var p Vec3
			var err error
			if p.X, err = strconv.ParseFloat(fields[1], 64); err == nil {
				if p.Y, err = strconv.ParseFloat(fields[2], 64); err == nil {
					p.Z, err = strconv.ParseFloat(fields[3], 64)
				}
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			m.AddVertex(p)

		case "f":
			if len(fields) != 5 {
				return nil, fmt.Errorf("line %d: %w (%d corners)", lineNo, ErrNonQuadFace, len(fields)-1)
			}
			var corners [4]int
			for i := 0; i < 4; i++ {
				idx, err := parseOBJIndex(fields[i+1], m.VertexCount())
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners[i] = idx
			}
			if _, err := m.AddQuad(corners[0], corners[1], corners[2], corners[3]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	m.BuildAdjacency()
	return m, nil
}

// parseOBJIndex converts a face-corner token ("7", "7/3", "7/3/2", "7//2",
// or a negative relative index) into a zero-based vertex index.
func parseOBJIndex(tok string, vertCount int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("face index %q: %w", tok, err)
	}
	switch {
	case n > 0:
		if n > vertCount {
			return 0, fmt.Errorf("face index %d: %w", n, ErrVertexOutOfRange)
		}
		return n - 1, nil
	case n < 0:
		if -n > vertCount {
			return 0, fmt.Errorf("face index %d: %w", n, ErrVertexOutOfRange)
		}
		return vertCount + n, nil
	default:
		return 0, fmt.Errorf("face index 0 is not valid in OBJ")
	}
}

// ImportOBJ reads the OBJ file at path and returns the decoded mesh.
func ImportOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteOBJ writes the mesh as Wavefront OBJ, including per-loop texture
// coordinates. One vt record is emitted per loop, in loop order, so corner
// i of face f references vt index f*4+i+1. Viewer round-trips preserve the
// UV assignment exactly; no vt deduplication is attempted.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.verts {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, uv := range m.uvs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.U, uv.V)
	}
	for fi := range m.faces {
		bw.WriteString("f")
		l := m.faces[fi].loop
		for i := 0; i < loopsPerFace; i++ {
			fmt.Fprintf(bw, " %d/%d", m.loops[l].vert+1, int(l)+1)
			l = m.loops[l].next
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ExportOBJ writes the mesh to an OBJ file at path with 0644 permissions.
func (m *Mesh) ExportOBJ(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := m.WriteOBJ(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
