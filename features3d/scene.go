package features3d

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/cropscout/fieldscene/spatialmath"
)

// AgriculturalScene ties together the crops and ground plane reconstructed
// from one RGB/depth frame pair, and re-frames both from the camera frame
// into the world frame once pose information is available.
//
// A scene is exclusively owned by the caller driving it; none of its methods
// are safe for concurrent use.
type AgriculturalScene struct {
	index       int
	cropGroup   *CropGroup
	groundPlane *GroundPlane

	// extrinsics stays nil until the first AddExtrinsicsInformation call and
	// is never recomputed afterwards.
	extrinsics *spatialmath.RigidTransform

	logger golog.Logger
}

// NewAgriculturalScene builds a scene from its already-reconstructed
// components. index is the scene's position in its capture sequence.
func NewAgriculturalScene(index int, group *CropGroup, gp *GroundPlane, logger golog.Logger) (*AgriculturalScene, error) {
	if group == nil {
		return nil, errors.New("scene needs a crop group")
	}
	if gp == nil {
		return nil, errors.New("scene needs a ground plane")
	}
	return &AgriculturalScene{index: index, cropGroup: group, groundPlane: gp, logger: logger}, nil
}

// Index returns the scene's position in its sequence.
func (s *AgriculturalScene) Index() int {
	return s.index
}

// CropGroup returns the scene's crops.
func (s *AgriculturalScene) CropGroup() *CropGroup {
	return s.cropGroup
}

// GroundPlane returns the scene's ground plane.
func (s *AgriculturalScene) GroundPlane() *GroundPlane {
	return s.groundPlane
}

// Extrinsics returns the cached camera-to-world transform and whether it has
// been computed yet.
func (s *AgriculturalScene) Extrinsics() (*spatialmath.RigidTransform, bool) {
	return s.extrinsics, s.extrinsics != nil
}

// GetTransformationMatrix builds the homogeneous transform for a pose given
// as raw translation and rotation lists, the shape poses arrive in from the
// upstream odometry log. The rotation list is consumed positionally as roll,
// pitch, yaw in radians; a fourth element, as carried by quaternion-shaped
// records, is accepted and ignored.
func GetTransformationMatrix(translation, rotation []float64) (*spatialmath.RigidTransform, error) {
	if len(translation) != 3 {
		return nil, errors.Errorf("translation must have 3 components, got %d", len(translation))
	}
	if len(rotation) != 3 && len(rotation) != 4 {
		return nil, errors.Errorf("rotation must have 3 or 4 components, got %d", len(rotation))
	}
	return spatialmath.NewPoseTransform(
		r3.Vector{X: translation[0], Y: translation[1], Z: translation[2]},
		&spatialmath.EulerAngles{Roll: rotation[0], Pitch: rotation[1], Yaw: rotation[2]},
	), nil
}

// AddExtrinsicsInformation computes the scene extrinsics from the given
// world-body and camera-body pose pairs, applies them to every point of the
// ground plane and every crop, and re-derives all features.
//
// The matrix itself is computed at most once per scene: later calls reuse
// the cached extrinsics no matter which poses they pass. Points are still
// re-transformed on every call, so a second call moves already-moved points
// under the cached transform. That re-entry behavior deliberately matches
// the upstream pipeline; callers that need a pure no-op must check
// Extrinsics() before calling.
func (s *AgriculturalScene) AddExtrinsicsInformation(
	posWorldBody, orientWorldBody, posCameraBody, orientCameraBody []float64,
) error {
	if s.extrinsics == nil {
		tWorldBody, err := GetTransformationMatrix(posWorldBody, orientWorldBody)
		if err != nil {
			return errors.Wrap(err, "world-body pose")
		}
		tCameraBody, err := GetTransformationMatrix(posCameraBody, orientCameraBody)
		if err != nil {
			return errors.Wrap(err, "camera-body pose")
		}
		tBodyCamera, err := tCameraBody.Invert()
		if err != nil {
			return errors.Wrap(err, "camera-body pose")
		}
		s.extrinsics = tWorldBody.Mul(tBodyCamera)
	} else if s.logger != nil {
		s.logger.Debugf("scene %d: extrinsics already cached, re-applying without recomputing the matrix", s.index)
	}

	// Ground plane strictly first: crop emergence below consumes the updated
	// plane coefficients.
	if err := s.groundPlane.PointCloud().ApplyTransform(s.extrinsics); err != nil {
		return errors.Wrap(err, "ground plane")
	}
	if err := s.groundPlane.RecomputeFeatures(); err != nil {
		return errors.Wrap(err, "ground plane")
	}

	for i, c := range s.cropGroup.Crops() {
		if err := c.PointCloud().ApplyTransform(s.extrinsics); err != nil {
			return errors.Wrapf(err, "crop %d", i)
		}
		if err := c.RecomputeFeatures(s.groundPlane); err != nil {
			return errors.Wrapf(err, "crop %d", i)
		}
	}
	return nil
}

// Downsample voxel-downsamples the crop and ground point sets. A
// non-positive or NaN size leaves the corresponding set untouched. Derived
// features are not recomputed here; that remains the caller's
// responsibility, matching the upstream pipeline which downsamples before
// deriving anything.
func (s *AgriculturalScene) Downsample(cropVoxelSize, groundVoxelSize float64) error {
	var result error
	if !math.IsNaN(cropVoxelSize) && cropVoxelSize > 0 {
		result = multierr.Append(result, s.cropGroup.Downsample(cropVoxelSize))
	}
	if !math.IsNaN(groundVoxelSize) && groundVoxelSize > 0 {
		result = multierr.Append(result, errors.Wrap(s.groundPlane.Downsample(groundVoxelSize), "ground plane"))
	}
	return result
}
