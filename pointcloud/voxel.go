package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// VoxelCoords stores the coordinates of a cell in a voxel grid.
type VoxelCoords struct {
	I, J, K int64
}

// IsEqual tests if two VoxelCoords are the same.
func (c VoxelCoords) IsEqual(c2 VoxelCoords) bool {
	return c.I == c2.I && c.J == c2.J && c.K == c2.K
}

// voxelCoordinates returns the voxel cell containing pt on a grid with the
// given cell size, anchored at ptMin.
func voxelCoordinates(pt, ptMin r3.Vector, voxelSize float64) VoxelCoords {
	return VoxelCoords{
		I: int64(math.Floor((pt.X - ptMin.X) / voxelSize)),
		J: int64(math.Floor((pt.Y - ptMin.Y) / voxelSize)),
		K: int64(math.Floor((pt.Z - ptMin.Z) / voxelSize)),
	}
}

type voxelCell struct {
	sum r3.Vector
	n   int
}

// VoxelDownsample reduces the density of the cloud in place by collapsing
// every occupied voxel cell to the barycenter of its points. Cells are
// emitted in first-seen order, so the result is deterministic and roughly
// preserves the original traversal order of the cloud.
func (pc *PointCloud) VoxelDownsample(voxelSize float64) error {
	if math.IsNaN(voxelSize) || voxelSize <= 0 {
		return ErrInvalidVoxelSize
	}
	if len(pc.points) == 0 {
		return nil
	}

	ptMin := pc.points[0]
	for _, p := range pc.points[1:] {
		ptMin.X = math.Min(ptMin.X, p.X)
		ptMin.Y = math.Min(ptMin.Y, p.Y)
		ptMin.Z = math.Min(ptMin.Z, p.Z)
	}

	cells := make(map[VoxelCoords]*voxelCell)
	order := make([]VoxelCoords, 0, len(pc.points))
	for _, p := range pc.points {
		k := voxelCoordinates(p, ptMin, voxelSize)
		cell, ok := cells[k]
		if !ok {
			cell = &voxelCell{}
			cells[k] = cell
			order = append(order, k)
		}
		cell.sum = cell.sum.Add(p)
		cell.n++
	}

	out := make([]r3.Vector, 0, len(order))
	for _, k := range order {
		cell := cells[k]
		out = append(out, cell.sum.Mul(1./float64(cell.n)))
	}
	pc.points = out
	return nil
}
