package features3d

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// CropGroup is the ordered collection of crops detected in one scene. It has
// no derived state of its own beyond the per-crop fields.
type CropGroup struct {
	crops []*Crop
}

// NewCropGroup returns a group over the given crops, kept in detection order.
func NewCropGroup(crops ...*Crop) *CropGroup {
	return &CropGroup{crops: crops}
}

// Crops returns the crops in detection order.
func (g *CropGroup) Crops() []*Crop {
	return g.crops
}

// Size returns the number of crops in the group.
func (g *CropGroup) Size() int {
	return len(g.crops)
}

// Downsample voxel-downsamples every crop's point set. A failing crop does
// not stop the others; errors are combined.
func (g *CropGroup) Downsample(voxelSize float64) error {
	var result error
	for i, c := range g.crops {
		if err := c.Downsample(voxelSize); err != nil {
			result = multierr.Append(result, errors.Wrapf(err, "crop %d", i))
		}
	}
	return result
}
