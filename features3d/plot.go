package features3d

import (
	"fmt"
	"image/color"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cropscout/fieldscene/pointcloud"
)

// Plot colors, kept distinct enough to read on a white background.
var (
	groundColor   = color.RGBA{R: 139, G: 90, B: 43, A: 255}
	cropColor     = color.RGBA{G: 140, A: 255}
	lineColor     = color.RGBA{G: 90, B: 40, A: 255}
	emergingColor = color.RGBA{R: 220, A: 255}
)

// PlotOptions selects what SavePlot draws.
type PlotOptions struct {
	ShowCropPoints     bool
	ShowPlanePoints    bool
	ShowEmergingPoints bool

	// LineScalars sample each crop's growth line at averagePoint +
	// s*growthVector for every scalar s. Empty means no lines.
	LineScalars []float64
}

// SavePlot renders a top-down (x, y) view of the scene to path. The image
// format is chosen from the file extension, as supported by gonum/plot.
func (s *AgriculturalScene) SavePlot(path string, opts PlotOptions) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("scene %d", s.index)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if err := s.groundPlane.plotOnto(p, opts.ShowPlanePoints); err != nil {
		return err
	}
	if err := s.cropGroup.plotOnto(p, opts); err != nil {
		return err
	}
	return errors.Wrap(p.Save(6*vg.Inch, 6*vg.Inch, path), "saving scene plot")
}

func (gp *GroundPlane) plotOnto(p *plot.Plot, showPoints bool) error {
	if !showPoints {
		return nil
	}
	sc, err := plotter.NewScatter(cloudXYs(gp.cloud))
	if err != nil {
		return errors.Wrap(err, "ground plane scatter")
	}
	sc.GlyphStyle.Color = groundColor
	p.Add(sc)
	p.Legend.Add("ground", sc)
	return nil
}

func (g *CropGroup) plotOnto(p *plot.Plot, opts PlotOptions) error {
	for i, c := range g.crops {
		if opts.ShowCropPoints {
			sc, err := plotter.NewScatter(cloudXYs(c.cloud))
			if err != nil {
				return errors.Wrapf(err, "crop %d scatter", i)
			}
			sc.GlyphStyle.Color = cropColor
			p.Add(sc)
		}
		if len(opts.LineScalars) > 0 {
			xys := make(plotter.XYs, len(opts.LineScalars))
			for j, scalar := range opts.LineScalars {
				pt := c.averagePoint.Add(c.growthVector.Mul(scalar))
				xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			ln, err := plotter.NewLine(xys)
			if err != nil {
				return errors.Wrapf(err, "crop %d growth line", i)
			}
			ln.Color = lineColor
			p.Add(ln)
		}
		if opts.ShowEmergingPoints {
			emerging, ok := c.EmergingPoint()
			if !ok {
				continue
			}
			sc, err := plotter.NewScatter(plotter.XYs{{X: emerging.X, Y: emerging.Y}})
			if err != nil {
				return errors.Wrapf(err, "crop %d emerging point", i)
			}
			sc.GlyphStyle.Color = emergingColor
			p.Add(sc)
		}
	}
	return nil
}

func cloudXYs(pc *pointcloud.PointCloud) plotter.XYs {
	xys := make(plotter.XYs, 0, pc.Size())
	pc.Iterate(func(_ int, pt r3.Vector) bool {
		xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
		return true
	})
	return xys
}
