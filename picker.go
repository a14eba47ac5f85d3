package cubesim

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// CubieSpacing is the distance between neighboring cubie centers in world units.
	CubieSpacing = 1.15

	// StickerHalfSize is half the edge length of one sticker.
	StickerHalfSize = 0.5

	// FaceHalfExtent is the half size of one outer face quad.
	FaceHalfExtent = CubieSpacing + StickerHalfSize

	parallelEpsilon = 1e-6
	quadTolerance   = 1e-3
)

// defaultEye is used when the view matrix cannot be inverted.
var defaultEye = mgl64.Vec3{0, 0, 8}

// Viewer supplies the camera state a pick is made against.
type Viewer interface {
	View() mgl64.Mat4
	Projection() mgl64.Mat4
	Viewport() (x, y, w, h int)
}

// Ray is a half line in world space. Dir is normalized.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hit is the nearest face a ray struck.
type Hit struct {
	Face  Face
	T     float64
	Point mgl64.Vec3
}

type faceQuad struct {
	face    Face
	center  mgl64.Vec3
	normal  mgl64.Vec3
	corners [4]mgl64.Vec3 // counter-clockwise seen from outside
}

var faceQuads = func() []faceQuad {
	const h = FaceHalfExtent
	return []faceQuad{
		{FaceF, mgl64.Vec3{0, 0, h}, mgl64.Vec3{0, 0, 1},
			[4]mgl64.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{FaceB, mgl64.Vec3{0, 0, -h}, mgl64.Vec3{0, 0, -1},
			[4]mgl64.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{FaceR, mgl64.Vec3{h, 0, 0}, mgl64.Vec3{1, 0, 0},
			[4]mgl64.Vec3{{h, -h, -h}, {h, -h, h}, {h, h, h}, {h, h, -h}}},
		{FaceL, mgl64.Vec3{-h, 0, 0}, mgl64.Vec3{-1, 0, 0},
			[4]mgl64.Vec3{{-h, -h, h}, {-h, -h, -h}, {-h, h, -h}, {-h, h, h}}},
		{FaceU, mgl64.Vec3{0, h, 0}, mgl64.Vec3{0, 1, 0},
			[4]mgl64.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{FaceD, mgl64.Vec3{0, -h, 0}, mgl64.Vec3{0, -1, 0},
			[4]mgl64.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
}()

// Picker turns screen points into selected faces.
type Picker struct {
	viewer Viewer
	logger *slog.Logger
}

// NewPicker creates a picker over viewer. It panics if viewer is nil.
func NewPicker(viewer Viewer, opts ...Option) *Picker {
	if viewer == nil {
		panic("cubesim: NewPicker called with nil viewer")
	}
	cfg := newConfig(opts)
	return &Picker{viewer: viewer, logger: cfg.logger}
}

// Ray unprojects a window point (origin top-left) into a world-space ray.
// It reports false when the matrices are singular.
func (p *Picker) Ray(x, y float64) (Ray, bool) {
	view, proj := p.viewer.View(), p.viewer.Projection()
	vx, vy, w, h := p.viewer.Viewport()
	if w <= 0 || h <= 0 {
		return Ray{}, false
	}

	winY := float64(vy+h) - y
	near, err := mgl64.UnProject(mgl64.Vec3{x, winY, 0}, view, proj, vx, vy, w, h)
	if err != nil {
		return Ray{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{x, winY, 1}, view, proj, vx, vy, w, h)
	if err != nil {
		return Ray{}, false
	}

	dir := far.Sub(near)
	if dir.Len() < parallelEpsilon || !finite(dir) {
		return Ray{}, false
	}
	return Ray{Origin: near, Dir: dir.Normalize()}, true
}

// Eye returns the camera position in world space.
func (p *Picker) Eye() mgl64.Vec3 {
	return eyeOf(p.viewer.View())
}

func eyeOf(view mgl64.Mat4) mgl64.Vec3 {
	inv := view.Inv()
	if inv == (mgl64.Mat4{}) {
		return defaultEye
	}
	return inv.Col(3).Vec3()
}

// Pick returns the face under a window point.
func (p *Picker) Pick(x, y float64) (Face, bool) {
	h, ok := p.PickHit(x, y)
	return h.Face, ok
}

// PickHit is Pick with the hit distance and world-space point.
func (p *Picker) PickHit(x, y float64) (Hit, bool) {
	ray, ok := p.Ray(x, y)
	if !ok {
		p.logger.Debug("pick: degenerate ray", "x", x, "y", y)
		return Hit{}, false
	}
	return CastRay(ray, p.Eye())
}

// CastRay intersects ray with the outer faces that point toward eye and
// returns the nearest hit.
func CastRay(ray Ray, eye mgl64.Vec3) (Hit, bool) {
	var best Hit
	found := false

	for i := range faceQuads {
		q := &faceQuads[i]
		toEye := eye.Sub(q.center)
		if toEye.Len() == 0 || toEye.Normalize().Dot(q.normal) <= 0 {
			continue
		}
		t, pt, ok := q.intersect(ray)
		if !ok {
			continue
		}
		if !found || t < best.T {
			best = Hit{Face: q.face, T: t, Point: pt}
			found = true
		}
	}
	return best, found
}

func (q *faceQuad) intersect(ray Ray) (float64, mgl64.Vec3, bool) {
	denom := ray.Dir.Dot(q.normal)
	if math.Abs(denom) < parallelEpsilon {
		return 0, mgl64.Vec3{}, false
	}
	t := q.center.Sub(ray.Origin).Dot(q.normal) / denom
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	pt := ray.At(t)
	if !q.contains(pt) {
		return 0, mgl64.Vec3{}, false
	}
	return t, pt, true
}

// contains tests pt against every edge: the edge-to-point cross product must
// agree with the quad normal.
func (q *faceQuad) contains(pt mgl64.Vec3) bool {
	for i := 0; i < 4; i++ {
		v1, v2, v3 := q.corners[i], q.corners[(i+1)%4], q.corners[(i+2)%4]
		edge := v2.Sub(v1)
		cross := edge.Cross(pt.Sub(v1))
		n := edge.Cross(v3.Sub(v2))
		if n.Len() > parallelEpsilon {
			n = n.Normalize()
		}
		if cross.Dot(n) < -quadTolerance {
			return false
		}
	}
	return true
}

// StickerAt maps a hit point to the cubie position and side it lands on.
// ok is false when the point falls in the gap between stickers.
func StickerAt(h Hit) (pos Position, side Side, ok bool) {
	side = h.Face.Side()
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		if axis == side.Axis() {
			pos.set(axis, side.Sign())
			continue
		}
		coord := h.Point[axis]
		idx := int(math.Round(coord / CubieSpacing))
		idx = max(-1, min(1, idx))
		if math.Abs(coord-float64(idx)*CubieSpacing) > StickerHalfSize {
			return pos, side, false
		}
		pos.set(axis, idx)
	}
	return pos, side, true
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
