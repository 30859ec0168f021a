package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// PrincipalComponents returns the n dominant directions of variation of the
// cloud as unit vectors, in decreasing order of explained variance. The
// mean-centered point matrix is factorized with a singular value
// decomposition; its right singular vectors are the principal directions.
//
// A cloud with fewer than n+1 points cannot span n directions and is
// rejected with ErrTooFewPoints rather than producing undefined directions.
func (pc *PointCloud) PrincipalComponents(n int) ([]r3.Vector, error) {
	if n < 1 || n > 3 {
		return nil, errors.Errorf("cannot extract %d principal components from 3D points", n)
	}
	if len(pc.points) < n+1 {
		return nil, errors.Wrapf(ErrTooFewPoints, "%d points cannot span %d principal directions", len(pc.points), n)
	}

	center, err := pc.Mean()
	if err != nil {
		return nil, err
	}
	data := make([]float64, 0, 3*len(pc.points))
	for _, p := range pc.points {
		data = append(data, p.X-center.X, p.Y-center.Y, p.Z-center.Z)
	}
	centered := mat.NewDense(len(pc.points), 3, data)

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, errors.New("failed to factorize centered point matrix")
	}
	var v mat.Dense
	svd.VTo(&v)

	dirs := make([]r3.Vector, n)
	for j := 0; j < n; j++ {
		dirs[j] = canonicalSign(r3.Vector{X: v.At(0, j), Y: v.At(1, j), Z: v.At(2, j)})
	}
	return dirs, nil
}

// canonicalSign flips a direction so its first component of meaningful
// magnitude is positive. SVD is sign-ambiguous; pinning the sign keeps
// repeated recomputation over the same points stable.
func canonicalSign(v r3.Vector) r3.Vector {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.Abs(c) > 1e-12 {
			if c < 0 {
				return v.Mul(-1)
			}
			return v
		}
	}
	return v
}
