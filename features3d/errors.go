package features3d

import "errors"

var (
	// ErrNilCloud is returned when a nil point cloud is passed to a constructor.
	ErrNilCloud = errors.New("point cloud is nil")

	// ErrNoIntersection is returned when a crop's growth line never meets the
	// ground plane.
	ErrNoIntersection = errors.New("growth line is parallel to the ground plane")
)
