package cubesim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestOrbitCameraDefaults(t *testing.T) {
	cam := NewOrbitCamera(640, 480)
	if d := cam.Eye().Len(); math.Abs(d-DefaultCameraDistance) > 1e-9 {
		t.Errorf("eye distance = %v, want %v", d, DefaultCameraDistance)
	}
	if _, _, w, h := cam.Viewport(); w != 640 || h != 480 {
		t.Errorf("viewport = %dx%d", w, h)
	}

	// The view matrix puts the eye at the origin.
	got := mgl64.TransformCoordinate(cam.Eye(), cam.View())
	if !got.ApproxEqualThreshold(mgl64.Vec3{}, 1e-9) {
		t.Errorf("view * eye = %v, want origin", got)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := NewOrbitCamera(100, 100)
	cam.Orbit(0, 10000)
	if cam.Pitch != 89 {
		t.Errorf("pitch = %v, want 89", cam.Pitch)
	}
	cam.Orbit(0, -20000)
	if cam.Pitch != -89 {
		t.Errorf("pitch = %v, want -89", cam.Pitch)
	}

	cam.Yaw = 0
	cam.Orbit(100, 0)
	if math.Abs(cam.Yaw-30) > 1e-9 {
		t.Errorf("yaw = %v, want 30", cam.Yaw)
	}
}

func TestProjectionAspectOverride(t *testing.T) {
	cam := NewOrbitCamera(200, 100)
	wide := cam.Projection()
	cam.Aspect = 1
	square := cam.Projection()
	if wide == square {
		t.Error("Aspect should override the viewport ratio")
	}
	if square.At(0, 0) != square.At(1, 1) {
		t.Errorf("square aspect should scale x and y alike: %v vs %v", square.At(0, 0), square.At(1, 1))
	}
}
