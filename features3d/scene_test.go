package features3d

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/cropscout/fieldscene/spatialmath"
)

func makeScene(t *testing.T) *AgriculturalScene {
	t.Helper()
	gp, err := NewGroundPlane(flatGroundCloud(0))
	test.That(t, err, test.ShouldBeNil)
	c, err := NewCrop(stalkCloud(1, 1))
	test.That(t, err, test.ShouldBeNil)
	scene, err := NewAgriculturalScene(0, NewCropGroup(c), gp, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return scene
}

var identityPose = []float64{0, 0, 0}

// quaternion-shaped rotation record: roll, pitch, yaw, plus a trailing
// element that the transform builder ignores
var identityOrient = []float64{0, 0, 0, 1}

func TestGetTransformationMatrix(t *testing.T) {
	tf, err := GetTransformationMatrix([]float64{1, 2, 3}, identityOrient)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tf.Translation(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})

	_, err = GetTransformationMatrix([]float64{1, 2}, identityOrient)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = GetTransformationMatrix([]float64{1, 2, 3}, []float64{0, 0})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = GetTransformationMatrix([]float64{1, 2, 3}, []float64{0, 0, 0, 0, 0})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAddExtrinsicsIdentity(t *testing.T) {
	scene := makeScene(t)
	_, ok := scene.Extrinsics()
	test.That(t, ok, test.ShouldBeFalse)

	before := scene.GroundPlane().PointCloud().Points()
	err := scene.AddExtrinsicsInformation(identityPose, identityOrient, identityPose, identityOrient)
	test.That(t, err, test.ShouldBeNil)

	ext, ok := scene.Extrinsics()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, ext.ApproxEqual(spatialmath.NewIdentityTransform(), 1e-9), test.ShouldBeTrue)

	after := scene.GroundPlane().PointCloud().Points()
	for i := range before {
		test.That(t, after[i].X, test.ShouldAlmostEqual, before[i].X, 1e-9)
		test.That(t, after[i].Y, test.ShouldAlmostEqual, before[i].Y, 1e-9)
		test.That(t, after[i].Z, test.ShouldAlmostEqual, before[i].Z, 1e-9)
	}
}

func TestAddExtrinsicsTranslation(t *testing.T) {
	scene := makeScene(t)
	err := scene.AddExtrinsicsInformation([]float64{1, 0, 0}, identityOrient, identityPose, identityOrient)
	test.That(t, err, test.ShouldBeNil)

	// the ground point that started at the origin moved one unit along x
	origin := scene.GroundPlane().PointCloud().At(0)
	test.That(t, origin.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, origin.Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, origin.Z, test.ShouldAlmostEqual, 0, 1e-9)

	// derived features moved with the points
	test.That(t, scene.GroundPlane().AveragePoint().X, test.ShouldAlmostEqual, 2, 1e-9)
	crop := scene.CropGroup().Crops()[0]
	test.That(t, crop.AveragePoint().X, test.ShouldAlmostEqual, 2, 1e-9)
	emerging, ok := crop.EmergingPoint()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, emerging.X, test.ShouldAlmostEqual, 2, 1e-9)
	test.That(t, emerging.Z, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestAddExtrinsicsCachesMatrix(t *testing.T) {
	scene := makeScene(t)
	err := scene.AddExtrinsicsInformation([]float64{1, 0, 0}, identityOrient, identityPose, identityOrient)
	test.That(t, err, test.ShouldBeNil)
	first, _ := scene.Extrinsics()

	// a second call with completely different poses must not change the
	// cached matrix, but still re-applies it: the origin point moves again.
	err = scene.AddExtrinsicsInformation([]float64{5, 5, 5}, identityOrient, []float64{-2, 0, 1}, identityOrient)
	test.That(t, err, test.ShouldBeNil)
	second, _ := scene.Extrinsics()
	test.That(t, second.ApproxEqual(first, 1e-12), test.ShouldBeTrue)

	origin := scene.GroundPlane().PointCloud().At(0)
	test.That(t, origin.X, test.ShouldAlmostEqual, 2, 1e-9)
}

func TestAddExtrinsicsBadPose(t *testing.T) {
	scene := makeScene(t)
	err := scene.AddExtrinsicsInformation([]float64{1}, identityOrient, identityPose, identityOrient)
	test.That(t, err, test.ShouldNotBeNil)
	// nothing was cached or mutated
	_, ok := scene.Extrinsics()
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, scene.GroundPlane().PointCloud().At(0), test.ShouldResemble, r3.Vector{})
}

func TestAddExtrinsicsConsistency(t *testing.T) {
	scene := makeScene(t)
	rot := []float64{0.2, -0.1, 0.4}
	err := scene.AddExtrinsicsInformation([]float64{3, -1, 0.5}, rot, []float64{0.1, 0.2, 0.3}, []float64{0, 0.05, -0.2})
	test.That(t, err, test.ShouldBeNil)

	// plane equation holds for every transformed ground point
	eq := scene.GroundPlane().Coefficients()
	scene.GroundPlane().PointCloud().Iterate(func(_ int, p r3.Vector) bool {
		test.That(t, eq[0]*p.X+eq[1]*p.Y+eq[2]*p.Z+eq[3], test.ShouldAlmostEqual, 0, 1e-9)
		return true
	})

	// the crop's emerging point lies on the updated plane
	crop := scene.CropGroup().Crops()[0]
	emerging, ok := crop.EmergingPoint()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, scene.GroundPlane().Plane().Distance(emerging), test.ShouldAlmostEqual, 0, 1e-9)
}

func TestSceneDownsample(t *testing.T) {
	scene := makeScene(t)
	groundBefore := scene.GroundPlane().PointCloud().Size()
	cropBefore := scene.CropGroup().Crops()[0].PointCloud().Size()

	// zero sizes leave both clouds untouched
	test.That(t, scene.Downsample(0, 0), test.ShouldBeNil)
	test.That(t, scene.GroundPlane().PointCloud().Size(), test.ShouldEqual, groundBefore)
	test.That(t, scene.CropGroup().Crops()[0].PointCloud().Size(), test.ShouldEqual, cropBefore)

	// downsample only the crop
	test.That(t, scene.Downsample(100, 0), test.ShouldBeNil)
	test.That(t, scene.CropGroup().Crops()[0].PointCloud().Size(), test.ShouldEqual, 1)
	test.That(t, scene.GroundPlane().PointCloud().Size(), test.ShouldEqual, groundBefore)

	// then the ground
	test.That(t, scene.Downsample(0, 1.5), test.ShouldBeNil)
	test.That(t, scene.GroundPlane().PointCloud().Size(), test.ShouldBeLessThan, groundBefore)
}

func TestSceneConstructorPreconditions(t *testing.T) {
	gp, err := NewGroundPlane(flatGroundCloud(0))
	test.That(t, err, test.ShouldBeNil)
	_, err = NewAgriculturalScene(0, nil, gp, nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewAgriculturalScene(0, NewCropGroup(), nil, nil)
	test.That(t, err, test.ShouldNotBeNil)
}
