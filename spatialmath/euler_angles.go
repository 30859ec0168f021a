// Package spatialmath implements the rigid-body algebra used to re-frame
// reconstructed field geometry: Euler-angle rotations, homogeneous
// transformation matrices, and their application to 3D points.
package spatialmath

// EulerAngles holds a rotation expressed as roll, pitch and yaw, in radians.
type EulerAngles struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// NewZeroEulerAngles returns an EulerAngles which means no rotation.
func NewZeroEulerAngles() *EulerAngles {
	return &EulerAngles{}
}
