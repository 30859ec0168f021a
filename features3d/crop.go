package features3d

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/cropscout/fieldscene/pointcloud"
)

// Crop owns the point set of one detected crop and its derived features.
// The emerging point is only meaningful relative to the ground plane it was
// last derived against, and stays absent until RecomputeFeatures runs with
// one.
type Crop struct {
	cloud *pointcloud.PointCloud

	averagePoint  r3.Vector
	growthVector  r3.Vector
	growthAngles  [3]float64
	emergingPoint *r3.Vector
}

// NewCrop builds a crop over the given cloud and derives the features that
// do not need a ground plane.
func NewCrop(cloud *pointcloud.PointCloud) (*Crop, error) {
	if cloud == nil {
		return nil, ErrNilCloud
	}
	c := &Crop{cloud: cloud}
	if err := c.recomputeIntrinsic(); err != nil {
		return nil, err
	}
	return c, nil
}

// PointCloud returns the mutable crop point set.
func (c *Crop) PointCloud() *pointcloud.PointCloud {
	return c.cloud
}

// recomputeIntrinsic re-derives the features that depend only on the crop's
// own points: average point, dominant growth direction, axis angles.
func (c *Crop) recomputeIntrinsic() error {
	avg, err := c.cloud.Mean()
	if err != nil {
		return errors.Wrap(err, "crop average point")
	}
	dirs, err := c.cloud.PrincipalComponents(1)
	if err != nil {
		return errors.Wrap(err, "crop growth vector")
	}
	c.averagePoint = avg
	c.growthVector = dirs[0]
	c.growthAngles = vectorAxisAngles(c.growthVector)
	return nil
}

// RecomputeFeatures re-derives every crop feature from the current points,
// in dependency order: average point, growth vector, growth angles, and the
// emerging point against gp. The ground plane's own features must already be
// current; the scene orchestrator guarantees that ordering.
func (c *Crop) RecomputeFeatures(gp *GroundPlane) error {
	if err := c.recomputeIntrinsic(); err != nil {
		return err
	}

	// The decomposition picks an arbitrary sign. Orient growth away from the
	// ground so the angles read canopy-up; the emergence line itself is
	// unaffected.
	pl := gp.Plane()
	d0 := pl.Distance(c.averagePoint)
	d1 := pl.Distance(c.averagePoint.Add(c.growthVector))
	if d0 > 0 && d1 < d0 || d0 < 0 && d1 > d0 {
		c.growthVector = c.growthVector.Mul(-1)
		c.growthAngles = vectorAxisAngles(c.growthVector)
	}

	emerging, err := gp.FindEmergingPoint(c)
	if err != nil {
		return err
	}
	c.emergingPoint = &emerging
	return nil
}

// AveragePoint returns the mean of the crop points.
func (c *Crop) AveragePoint() r3.Vector {
	return c.averagePoint
}

// GrowthVector returns the dominant principal direction of the crop points.
func (c *Crop) GrowthVector() r3.Vector {
	return c.growthVector
}

// GrowthAngles returns the angles of the growth vector against the x, y and
// z axes, in radians.
func (c *Crop) GrowthAngles() [3]float64 {
	return c.growthAngles
}

// EmergingPoint returns where the crop is estimated to meet the ground
// plane, and whether that has been derived yet.
func (c *Crop) EmergingPoint() (r3.Vector, bool) {
	if c.emergingPoint == nil {
		return r3.Vector{}, false
	}
	return *c.emergingPoint, true
}

// Downsample reduces the crop point set with a voxel grid. Derived features
// are not recomputed here.
func (c *Crop) Downsample(voxelSize float64) error {
	return c.cloud.VoxelDownsample(voxelSize)
}

// vectorAxisAngles returns the angles between v and the coordinate axes.
func vectorAxisAngles(v r3.Vector) [3]float64 {
	norm := v.Norm()
	if norm == 0 {
		return [3]float64{}
	}
	return [3]float64{
		math.Acos(v.X / norm),
		math.Acos(v.Y / norm),
		math.Acos(v.Z / norm),
	}
}
