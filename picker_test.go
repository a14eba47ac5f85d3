package cubesim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCastRayAlongInwardNormal(t *testing.T) {
	for _, face := range Faces {
		n := face.Side().Normal()
		center := n.Mul(FaceHalfExtent)
		origin := center.Add(n.Mul(5))
		ray := Ray{Origin: origin, Dir: n.Mul(-1)}

		hit, ok := CastRay(ray, origin)
		if !ok {
			t.Errorf("%v: ray at the face center missed", face)
			continue
		}
		if hit.Face != face {
			t.Errorf("ray at %v center hit %v", face, hit.Face)
		}
		if math.Abs(hit.T-5) > 1e-9 {
			t.Errorf("%v: t = %v, want 5", face, hit.T)
		}
	}
}

func TestCastRayMiss(t *testing.T) {
	origin := mgl64.Vec3{0, 0, 10}
	tests := []struct {
		name string
		dir  mgl64.Vec3
	}{
		{"parallel to the front face", mgl64.Vec3{0, 1, 0}},
		{"pointing away", mgl64.Vec3{0, 0, 1}},
		{"passing beside", mgl64.Vec3{0.5, 0, -1}.Normalize()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := CastRay(Ray{Origin: origin, Dir: tt.dir}, origin); ok {
				t.Errorf("expected no hit, got %+v", hit)
			}
		})
	}
}

func TestCastRayNearestFaceWins(t *testing.T) {
	eye := mgl64.Vec3{6, 6, 6}
	// Aim at a point on U near the front right corner.
	target := mgl64.Vec3{1.2, 1.65, 1.0}
	ray := Ray{Origin: eye, Dir: target.Sub(eye).Normalize()}

	hit, ok := CastRay(ray, eye)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Face != FaceU {
		t.Errorf("hit %v, want U", hit.Face)
	}
}

func TestCastRaySkipsFacesTurnedAway(t *testing.T) {
	// The eye sits in front, so the back face is never a candidate even if
	// the ray would cross its plane.
	eye := mgl64.Vec3{0, 0, 8}
	ray := Ray{Origin: mgl64.Vec3{0, 0, -8}, Dir: mgl64.Vec3{0, 0, 1}}
	hit, ok := CastRay(ray, eye)
	if !ok || hit.Face != FaceF {
		t.Errorf("hit = %+v ok = %v, want F", hit, ok)
	}
}

func TestPickFromCamera(t *testing.T) {
	tests := []struct {
		pitch, yaw float64
		want       Face
	}{
		{0, 0, FaceF},
		{0, 90, FaceR},
		{0, 180, FaceB},
		{0, -90, FaceL},
		{89, 0, FaceU},
		{-89, 0, FaceD},
	}
	for _, tt := range tests {
		cam := NewOrbitCamera(800, 600)
		cam.Pitch, cam.Yaw = tt.pitch, tt.yaw
		p := NewPicker(cam)

		got, ok := p.Pick(400, 300)
		if !ok || got != tt.want {
			t.Errorf("pitch %v yaw %v: Pick = %v, %v; want %v", tt.pitch, tt.yaw, got, ok, tt.want)
		}
	}
}

func TestPickMissesBackground(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	cam.Pitch, cam.Yaw = 0, 0
	p := NewPicker(cam)

	if face, ok := p.Pick(5, 5); ok {
		t.Errorf("corner pick hit %v", face)
	}
}

func TestPickHitPoint(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	cam.Pitch, cam.Yaw = 0, 0
	p := NewPicker(cam)

	hit, ok := p.PickHit(400, 300)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !hit.Point.ApproxEqualThreshold(mgl64.Vec3{0, 0, FaceHalfExtent}, 1e-6) {
		t.Errorf("hit point = %v", hit.Point)
	}
	if eye := p.Eye(); !eye.ApproxEqualThreshold(mgl64.Vec3{0, 0, DefaultCameraDistance}, 1e-9) {
		t.Errorf("eye = %v", eye)
	}
}

type fixedViewer struct {
	view, proj mgl64.Mat4
	w, h       int
}

func (v fixedViewer) View() mgl64.Mat4           { return v.view }
func (v fixedViewer) Projection() mgl64.Mat4     { return v.proj }
func (v fixedViewer) Viewport() (x, y, w, h int) { return 0, 0, v.w, v.h }

func TestPickSingularMatrices(t *testing.T) {
	p := NewPicker(fixedViewer{w: 800, h: 600})
	if face, ok := p.Pick(400, 300); ok {
		t.Errorf("singular matrices picked %v", face)
	}
	if eye := p.Eye(); eye != defaultEye {
		t.Errorf("eye = %v, want fallback %v", eye, defaultEye)
	}
}

func TestPickEmptyViewport(t *testing.T) {
	cam := NewOrbitCamera(0, 0)
	if _, ok := NewPicker(cam).Pick(0, 0); ok {
		t.Error("empty viewport should never hit")
	}
}

func TestStickerAt(t *testing.T) {
	tests := []struct {
		name     string
		hit      Hit
		wantPos  Position
		wantSide Side
		wantOK   bool
	}{
		{"front right edge", Hit{Face: FaceF, Point: mgl64.Vec3{1.15, 0.2, FaceHalfExtent}}, Position{1, 0, 1}, SidePosZ, true},
		{"top corner", Hit{Face: FaceU, Point: mgl64.Vec3{-1.3, FaceHalfExtent, -1.0}}, Position{-1, 1, -1}, SidePosY, true},
		{"left center", Hit{Face: FaceL, Point: mgl64.Vec3{-FaceHalfExtent, 0.1, -0.1}}, Position{-1, 0, 0}, SideNegX, true},
		{"gap", Hit{Face: FaceF, Point: mgl64.Vec3{0.6, 0, FaceHalfExtent}}, Position{}, SidePosZ, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, side, ok := StickerAt(tt.hit)
			if ok != tt.wantOK || side != tt.wantSide {
				t.Fatalf("StickerAt = %v %v %v, want %v %v %v", pos, side, ok, tt.wantPos, tt.wantSide, tt.wantOK)
			}
			if ok && pos != tt.wantPos {
				t.Errorf("pos = %v, want %v", pos, tt.wantPos)
			}
		})
	}
}

func TestNewPickerNilViewerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPicker(nil) should panic")
		}
	}()
	NewPicker(nil)
}
