// Package features3d models the 3D features of one observed agricultural
// scene: the ground plane, the crops above it, and the scene orchestration
// that re-frames both with camera extrinsics.
package features3d

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/cropscout/fieldscene/pointcloud"
)

// GroundPlane owns the ground point set of a scene and the features derived
// from it. The derived fields form a unit: each one feeds the next, and none
// is valid against a point set that changed since the last RecomputeFeatures
// call.
type GroundPlane struct {
	cloud *pointcloud.PointCloud

	averagePoint        r3.Vector
	principalDirections [2]r3.Vector
	normalVector        r3.Vector
	coefficients        [4]float64
}

// NewGroundPlane builds a ground plane over the given cloud and derives its
// features immediately, so a freshly constructed plane can never be read in
// a stale state.
func NewGroundPlane(cloud *pointcloud.PointCloud) (*GroundPlane, error) {
	if cloud == nil {
		return nil, ErrNilCloud
	}
	gp := &GroundPlane{cloud: cloud}
	if err := gp.RecomputeFeatures(); err != nil {
		return nil, err
	}
	return gp, nil
}

// PointCloud returns the mutable ground point set.
func (gp *GroundPlane) PointCloud() *pointcloud.PointCloud {
	return gp.cloud
}

// RecomputeFeatures re-derives every feature from the current points, in
// dependency order: average point, the two in-plane principal directions,
// their cross product as the normal vector, and the plane equation through
// the average point with that normal. Fields are only assigned once every
// computation succeeded, so a failed recompute leaves the previous
// consistent state in place.
func (gp *GroundPlane) RecomputeFeatures() error {
	avg, err := gp.cloud.Mean()
	if err != nil {
		return errors.Wrap(err, "ground plane average point")
	}
	dirs, err := gp.cloud.PrincipalComponents(2)
	if err != nil {
		return errors.Wrap(err, "ground plane principal directions")
	}

	gp.averagePoint = avg
	gp.principalDirections = [2]r3.Vector{dirs[0], dirs[1]}
	gp.normalVector = dirs[0].Cross(dirs[1])
	gp.coefficients = pointcloud.NewPlane(gp.normalVector, gp.averagePoint).Equation()
	return nil
}

// AveragePoint returns the mean of the ground points.
func (gp *GroundPlane) AveragePoint() r3.Vector {
	return gp.averagePoint
}

// PrincipalDirections returns the two dominant in-plane directions.
func (gp *GroundPlane) PrincipalDirections() [2]r3.Vector {
	return gp.principalDirections
}

// NormalVector returns the plane normal.
func (gp *GroundPlane) NormalVector() r3.Vector {
	return gp.normalVector
}

// Coefficients returns the plane equation coefficients [a b c d] of
// ax + by + cz + d = 0.
func (gp *GroundPlane) Coefficients() [4]float64 {
	return gp.coefficients
}

// Plane returns the fitted plane primitive.
func (gp *GroundPlane) Plane() pointcloud.Plane {
	return pointcloud.NewPlane(gp.normalVector, gp.averagePoint)
}

// Downsample reduces the ground point set with a voxel grid. Derived
// features are not recomputed here; a caller that reads features after
// downsampling must call RecomputeFeatures first.
func (gp *GroundPlane) Downsample(voxelSize float64) error {
	return gp.cloud.VoxelDownsample(voxelSize)
}

// FindEmergingPoint estimates where the crop's growth line meets this
// ground plane. The plane's features must be current with respect to its
// points.
func (gp *GroundPlane) FindEmergingPoint(c *Crop) (r3.Vector, error) {
	p0 := c.AveragePoint()
	p1 := p0.Add(c.GrowthVector())
	hit := gp.Plane().Intersect(p0, p1)
	if hit == nil {
		return r3.Vector{}, ErrNoIntersection
	}
	return *hit, nil
}
