// ABOUTME: Geometry adapter loading STL meshes and measuring volume
// ABOUTME: Converts native mm3 volume to cm3 exactly once, here

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/hschendel/stl"

	"github.com/Bibekdka/3dd/models"
)

// MeshLoader loads mesh files and reports their geometry. The interface
// exists so the analyzer can be tested without fixture files.
type MeshLoader interface {
	Load(path string) (models.MeshVolumeSample, error)
}

// STLLoader reads STL files (binary or ASCII) from disk.
type STLLoader struct{}

func NewSTLLoader() *STLLoader {
	return &STLLoader{}
}

// Load reads the STL at path and returns its volume sample. STL files
// carry no units; millimeters are assumed, as every mainstream slicer
// does, and the volume is reported in cm3 (divide by 1000, applied
// exactly once).
func (l *STLLoader) Load(path string) (models.MeshVolumeSample, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return models.MeshVolumeSample{}, models.NewInputError("mesh.load", fmt.Sprintf("cannot read STL file %s", path), err)
	}

	if len(solid.Triangles) == 0 {
		return models.MeshVolumeSample{}, models.NewInputError("mesh.load", fmt.Sprintf("mesh %s has no triangles", path), nil)
	}

	volumeMm3 := signedVolumeMm3(solid)
	if volumeMm3 <= 0 || math.IsNaN(volumeMm3) || math.IsInf(volumeMm3, 0) {
		return models.MeshVolumeSample{}, models.NewInputError("mesh.load", fmt.Sprintf("mesh %s has degenerate volume %v mm3", path, volumeMm3), nil)
	}

	sample := models.MeshVolumeSample{
		RawVolumeCm3: volumeMm3 / 1000.0,
		VertexCount:  countVertices(solid),
		FaceCount:    len(solid.Triangles),
		Watertight:   isWatertight(solid),
	}

	if !sample.Watertight {
		slog.Warn("Mesh is not watertight, volume may be inaccurate", "path", path)
	}

	return sample, nil
}

// signedVolumeMm3 sums signed tetrahedron volumes against the origin
// (divergence theorem). The absolute value tolerates inverted winding.
func signedVolumeMm3(solid *stl.Solid) float64 {
	var total float64
	for _, tri := range solid.Triangles {
		a := toFloat64(tri.Vertices[0])
		b := toFloat64(tri.Vertices[1])
		c := toFloat64(tri.Vertices[2])

		// a · (b × c) / 6
		cross := [3]float64{
			b[1]*c[2] - b[2]*c[1],
			b[2]*c[0] - b[0]*c[2],
			b[0]*c[1] - b[1]*c[0],
		}
		total += (a[0]*cross[0] + a[1]*cross[1] + a[2]*cross[2]) / 6.0
	}
	return math.Abs(total)
}

// countVertices counts distinct vertex positions.
func countVertices(solid *stl.Solid) int {
	seen := make(map[stl.Vec3]struct{}, len(solid.Triangles)*3)
	for _, tri := range solid.Triangles {
		for _, v := range tri.Vertices {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

type meshEdge struct {
	a, b stl.Vec3
}

// isWatertight reports whether every undirected edge is shared by exactly
// two faces, i.e. the surface is a closed 2-manifold with a well-defined
// volume.
func isWatertight(solid *stl.Solid) bool {
	edges := make(map[meshEdge]int, len(solid.Triangles)*3)
	for _, tri := range solid.Triangles {
		for i := 0; i < 3; i++ {
			a := tri.Vertices[i]
			b := tri.Vertices[(i+1)%3]
			edges[orderedEdge(a, b)]++
		}
	}
	for _, count := range edges {
		if count != 2 {
			return false
		}
	}
	return true
}

// orderedEdge normalizes an edge so that (a,b) and (b,a) collide.
func orderedEdge(a, b stl.Vec3) meshEdge {
	if lessVec(b, a) {
		return meshEdge{b, a}
	}
	return meshEdge{a, b}
}

func lessVec(a, b stl.Vec3) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func toFloat64(v stl.Vec3) [3]float64 {
	return [3]float64{float64(v[0]), float64(v[1]), float64(v[2])}
}
