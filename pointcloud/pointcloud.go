// Package pointcloud defines the ordered 3D point containers backing the
// field geometry, along with voxel downsampling, principal-component
// extraction and plane primitives.
//
// Unlike a generic spatial index, point order is part of the contract here:
// clouds come out of per-pixel reconstruction, and callers rely on indices
// staying meaningful while points are moved in place.
package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/cropscout/fieldscene/spatialmath"
)

// PointCloud is an ordered, mutable collection of 3D points.
type PointCloud struct {
	points []r3.Vector
}

// New returns an empty PointCloud.
func New() *PointCloud {
	return &PointCloud{}
}

// NewFromPoints returns a PointCloud holding a copy of the given points.
func NewFromPoints(points []r3.Vector) *PointCloud {
	pts := make([]r3.Vector, len(points))
	copy(pts, points)
	return &PointCloud{points: pts}
}

// Size returns the number of points in the cloud.
func (pc *PointCloud) Size() int {
	return len(pc.points)
}

// At returns the point at index i.
func (pc *PointCloud) At(i int) r3.Vector {
	return pc.points[i]
}

// SetAt replaces the point at index i.
func (pc *PointCloud) SetAt(i int, p r3.Vector) {
	pc.points[i] = p
}

// Points returns a copy of the points in order.
func (pc *PointCloud) Points() []r3.Vector {
	out := make([]r3.Vector, len(pc.points))
	copy(out, pc.points)
	return out
}

// Iterate calls fn for every point in order. If fn returns false, iteration
// stops after the call returns.
func (pc *PointCloud) Iterate(fn func(i int, p r3.Vector) bool) {
	for i, p := range pc.points {
		if !fn(i, p) {
			return
		}
	}
}

// Mean returns the arithmetic mean of all points in the cloud.
func (pc *PointCloud) Mean() (r3.Vector, error) {
	if len(pc.points) == 0 {
		return r3.Vector{}, ErrEmptyCloud
	}
	sum := r3.Vector{}
	for _, p := range pc.points {
		sum = sum.Add(p)
	}
	return sum.Mul(1. / float64(len(pc.points))), nil
}

// ApplyTransform maps every point of the cloud through tf in place.
func (pc *PointCloud) ApplyTransform(tf *spatialmath.RigidTransform) error {
	for i, p := range pc.points {
		moved, err := tf.TransformPoint(p)
		if err != nil {
			return errors.Wrapf(err, "transforming point %d", i)
		}
		pc.points[i] = moved
	}
	return nil
}
