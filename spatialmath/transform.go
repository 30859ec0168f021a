package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// singularEps is the determinant / homogeneous-scale magnitude below which a
// matrix is treated as numerically singular.
const singularEps = 1e-12

// RigidTransform is a rigid-body transformation in homogeneous coordinates.
// When built through the constructors in this package the bottom row of the
// wrapped 4x4 matrix is always [0 0 0 1].
type RigidTransform struct {
	mat mgl64.Mat4
}

// NewIdentityTransform returns the transform that moves nothing.
func NewIdentityTransform() *RigidTransform {
	return &RigidTransform{mgl64.Ident4()}
}

// NewPoseTransform builds the homogeneous transform for a pose given as a
// translation and an Euler-angle rotation. The rotation block is composed as
// yaw about z, then pitch about y, then roll about x. Angles are taken as-is,
// with no range normalization.
func NewPoseTransform(translation r3.Vector, ea *EulerAngles) *RigidTransform {
	m := mgl64.HomogRotate3DZ(ea.Yaw).Mul4(
		mgl64.HomogRotate3DY(ea.Pitch).Mul4(
			mgl64.HomogRotate3DX(ea.Roll)))
	m.Set(0, 3, translation.X)
	m.Set(1, 3, translation.Y)
	m.Set(2, 3, translation.Z)
	return &RigidTransform{m}
}

// NewTransformFromMat4 wraps an existing homogeneous matrix. The caller is
// responsible for the matrix actually being a valid transform.
func NewTransformFromMat4(m mgl64.Mat4) *RigidTransform {
	return &RigidTransform{m}
}

// Mat4 returns a copy of the underlying matrix.
func (t *RigidTransform) Mat4() mgl64.Mat4 {
	return t.mat
}

// Rotation returns the upper-left 3x3 rotation block.
func (t *RigidTransform) Rotation() mgl64.Mat3 {
	return t.mat.Mat3()
}

// Translation returns the translation column of the transform.
func (t *RigidTransform) Translation() r3.Vector {
	return r3.Vector{X: t.mat.At(0, 3), Y: t.mat.At(1, 3), Z: t.mat.At(2, 3)}
}

// Mul composes two transforms. The receiver is the transform applied last:
// a.Mul(b).TransformPoint(p) applies b first, then a.
func (t *RigidTransform) Mul(other *RigidTransform) *RigidTransform {
	return &RigidTransform{t.mat.Mul4(other.mat)}
}

// Invert returns the inverse transform. A degenerate rotation block makes
// the matrix singular, which is reported as ErrSingularTransform.
func (t *RigidTransform) Invert() (*RigidTransform, error) {
	if math.Abs(t.mat.Det()) < singularEps {
		return nil, ErrSingularTransform
	}
	return &RigidTransform{t.mat.Inv()}, nil
}

// TransformPoint applies the transform to a single 3D point. The point is
// promoted to homogeneous coordinates, multiplied through, and divided by
// the resulting scale component. A zero scale is reported as ErrZeroScale
// instead of letting NaN values leak into downstream features.
func (t *RigidTransform) TransformPoint(p r3.Vector) (r3.Vector, error) {
	hom := t.mat.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	w := hom.W()
	if math.Abs(w) < singularEps {
		return r3.Vector{}, ErrZeroScale
	}
	return r3.Vector{X: hom.X() / w, Y: hom.Y() / w, Z: hom.Z() / w}, nil
}

// ApproxEqual reports whether two transforms agree elementwise within tol,
// as an absolute difference. Relative-epsilon comparisons are useless here:
// rigid transforms are full of exact zeros and ones that only pick up
// rounding noise, so the tolerance must apply to the difference itself.
func (t *RigidTransform) ApproxEqual(other *RigidTransform, tol float64) bool {
	for i := range t.mat {
		if math.Abs(t.mat[i]-other.mat[i]) > tol {
			return false
		}
	}
	return true
}
