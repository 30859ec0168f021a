package pointcloud

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestPrincipalComponentsLine(t *testing.T) {
	pc := NewFromPoints([]r3.Vector{
		{X: -2, Y: 0, Z: 0},
		{X: -1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
	})
	dirs, err := pc.PrincipalComponents(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(dirs), test.ShouldEqual, 1)
	test.That(t, dirs[0].X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, dirs[0].Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, dirs[0].Z, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestPrincipalComponentsPlane(t *testing.T) {
	// a flat grid in the z = 5 plane with more spread in x than y
	var pts []r3.Vector
	for i := -3; i <= 3; i++ {
		for j := -1; j <= 1; j++ {
			pts = append(pts, r3.Vector{X: float64(i), Y: float64(j), Z: 5})
		}
	}
	pc := NewFromPoints(pts)
	dirs, err := pc.PrincipalComponents(2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(dirs), test.ShouldEqual, 2)

	// both directions lie in the plane and are orthonormal
	for _, d := range dirs {
		test.That(t, d.Norm(), test.ShouldAlmostEqual, 1, 1e-9)
		test.That(t, d.Z, test.ShouldAlmostEqual, 0, 1e-9)
	}
	test.That(t, dirs[0].Dot(dirs[1]), test.ShouldAlmostEqual, 0, 1e-9)

	// dominant spread is along x
	test.That(t, math.Abs(dirs[0].X), test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, math.Abs(dirs[1].Y), test.ShouldAlmostEqual, 1, 1e-9)
}

func TestPrincipalComponentsSignStable(t *testing.T) {
	pc := NewFromPoints([]r3.Vector{
		{X: 1, Y: 2, Z: 3},
		{X: 2, Y: 2.5, Z: 2},
		{X: 3, Y: 3.5, Z: 1.5},
		{X: 4, Y: 3.8, Z: 0.2},
	})
	first, err := pc.PrincipalComponents(1)
	test.That(t, err, test.ShouldBeNil)
	second, err := pc.PrincipalComponents(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second[0].X, test.ShouldAlmostEqual, first[0].X)
	test.That(t, second[0].Y, test.ShouldAlmostEqual, first[0].Y)
	test.That(t, second[0].Z, test.ShouldAlmostEqual, first[0].Z)
}

func TestPrincipalComponentsDegenerate(t *testing.T) {
	pc := NewFromPoints([]r3.Vector{{X: 1, Y: 1, Z: 1}})
	_, err := pc.PrincipalComponents(1)
	test.That(t, errors.Is(err, ErrTooFewPoints), test.ShouldBeTrue)

	pc = NewFromPoints([]r3.Vector{{X: 1}, {X: 2}})
	_, err = pc.PrincipalComponents(2)
	test.That(t, errors.Is(err, ErrTooFewPoints), test.ShouldBeTrue)

	_, err = pc.PrincipalComponents(0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = pc.PrincipalComponents(4)
	test.That(t, err, test.ShouldNotBeNil)
}
