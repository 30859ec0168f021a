package pointcloud

import "errors"

var (
	// ErrEmptyCloud is returned when an operation needs at least one point.
	ErrEmptyCloud = errors.New("point cloud is empty")

	// ErrTooFewPoints is returned when a point cloud has insufficient points
	// for an operation.
	ErrTooFewPoints = errors.New("too few points for operation")

	// ErrInvalidVoxelSize is returned when a voxel size is not a positive number.
	ErrInvalidVoxelSize = errors.New("voxel size must be positive")
)
