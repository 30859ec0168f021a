package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// Plane is an infinite plane through Center with the given Normal. Offset is
// the d coefficient of the plane equation ax + by + cz + d = 0.
type Plane struct {
	Normal r3.Vector
	Center r3.Vector
	Offset float64
}

// NewPlane builds the plane through center with the given normal vector.
func NewPlane(normal, center r3.Vector) Plane {
	return Plane{Normal: normal, Center: center, Offset: -normal.Dot(center)}
}

// Equation returns the coefficients of the plane equation as [a b c d].
func (p Plane) Equation() [4]float64 {
	return [4]float64{p.Normal.X, p.Normal.Y, p.Normal.Z, p.Offset}
}

// Distance returns the signed distance from pt to the plane. The sign says
// which side of the plane the point is on, relative to the normal.
func (p Plane) Distance(pt r3.Vector) float64 {
	norm := p.Normal.Norm()
	if norm == 0 {
		return 0
	}
	return (p.Normal.Dot(pt) + p.Offset) / norm
}

// Intersect returns the intersection of the infinite line through p0 and p1
// with the plane, or nil if the line is parallel to it.
func (p Plane) Intersect(p0, p1 r3.Vector) *r3.Vector {
	dir := p1.Sub(p0)
	denom := p.Normal.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return nil
	}
	t := -(p.Normal.Dot(p0) + p.Offset) / denom
	result := p0.Add(dir.Mul(t))
	return &result
}
