package services

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bibekdka/3dd/models"
)

// asciiCubeSTL returns an ASCII STL of an axis-aligned cube with the
// given edge length in mm, corner at the origin.
func asciiCubeSTL(edge float64) string {
	e := edge
	// 12 triangles, outward-facing winding
	quads := [][4][3]float64{
		{{0, 0, 0}, {0, e, 0}, {e, e, 0}, {e, 0, 0}}, // bottom (z=0, normal -z)
		{{0, 0, e}, {e, 0, e}, {e, e, e}, {0, e, e}}, // top
		{{0, 0, 0}, {e, 0, 0}, {e, 0, e}, {0, 0, e}}, // front (y=0)
		{{0, e, 0}, {0, e, e}, {e, e, e}, {e, e, 0}}, // back
		{{0, 0, 0}, {0, 0, e}, {0, e, e}, {0, e, 0}}, // left (x=0)
		{{e, 0, 0}, {e, e, 0}, {e, e, e}, {e, 0, e}}, // right
	}

	var sb strings.Builder
	sb.WriteString("solid cube\n")
	for _, q := range quads {
		for _, tri := range [][3][3]float64{{q[0], q[1], q[2]}, {q[0], q[2], q[3]}} {
			sb.WriteString("  facet normal 0 0 0\n    outer loop\n")
			for _, v := range tri {
				fmt.Fprintf(&sb, "      vertex %g %g %g\n", v[0], v[1], v[2])
			}
			sb.WriteString("    endloop\n  endfacet\n")
		}
	}
	sb.WriteString("endsolid cube\n")
	return sb.String()
}

func writeTempSTL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.stl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestSTLLoader_CubeVolume(t *testing.T) {
	// 10 mm cube: 1000 mm3 = 1 cm3
	path := writeTempSTL(t, asciiCubeSTL(10))

	sample, err := NewSTLLoader().Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(sample.RawVolumeCm3-1.0) > 1e-6 {
		t.Errorf("Expected raw volume 1 cm3, got %v", sample.RawVolumeCm3)
	}
	if sample.FaceCount != 12 {
		t.Errorf("Expected 12 faces, got %d", sample.FaceCount)
	}
	if sample.VertexCount != 8 {
		t.Errorf("Expected 8 distinct vertices, got %d", sample.VertexCount)
	}
	if !sample.Watertight {
		t.Error("Expected closed cube to be watertight")
	}
}

func TestSTLLoader_OpenMeshNotWatertight(t *testing.T) {
	// Cube with the last two facets (right face) removed
	full := asciiCubeSTL(10)
	idx := strings.Index(full, "  facet")
	facets := strings.Split(full[idx:strings.Index(full, "endsolid")], "  facet")
	var sb strings.Builder
	sb.WriteString("solid open\n")
	for _, f := range facets[1 : len(facets)-2] {
		sb.WriteString("  facet" + f)
	}
	sb.WriteString("endsolid open\n")

	path := writeTempSTL(t, sb.String())

	sample, err := NewSTLLoader().Load(path)
	if err != nil {
		t.Fatalf("Expected open mesh to still load, got %v", err)
	}
	if sample.Watertight {
		t.Error("Expected open mesh to be flagged non-watertight")
	}
	if sample.FaceCount != 10 {
		t.Errorf("Expected 10 faces, got %d", sample.FaceCount)
	}
}

func TestSTLLoader_MissingFileIsInputError(t *testing.T) {
	_, err := NewSTLLoader().Load(filepath.Join(t.TempDir(), "nope.stl"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if models.KindOf(err) != models.ErrInput {
		t.Errorf("Expected input error kind, got %q", models.KindOf(err))
	}
}

func TestSTLLoader_CorruptFileIsInputError(t *testing.T) {
	path := writeTempSTL(t, "this is not an STL file at all, just text padding padding padding")

	_, err := NewSTLLoader().Load(path)
	if err == nil {
		t.Fatal("Expected error for corrupt file")
	}
	if models.KindOf(err) != models.ErrInput {
		t.Errorf("Expected input error kind, got %q", models.KindOf(err))
	}
}

func TestSTLLoader_EmptySolidIsInputError(t *testing.T) {
	path := writeTempSTL(t, "solid empty\nendsolid empty\n")

	_, err := NewSTLLoader().Load(path)
	if err == nil {
		t.Fatal("Expected error for empty solid")
	}
	if models.KindOf(err) != models.ErrInput {
		t.Errorf("Expected input error kind, got %q", models.KindOf(err))
	}
}
