package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/facelet"
)

// A terminal cell is roughly twice as tall as it is wide, so the camera
// viewport uses two vertical units per row.
const cellHeight = 2

const (
	stickerInset = 0.85 * cubesim.StickerHalfSize
	bodyHalf     = cubesim.CubieSpacing / 2
)

type surface int

const (
	surfaceNone surface = iota
	surfaceBody
	surfaceSticker
)

// cellPoint returns the window point at the center of a terminal cell.
func cellPoint(col, row int) (x, y float64) {
	return float64(col) + 0.5, (float64(row) + 0.5) * cellHeight
}

// trace finds the nearest sticker or cubie body a ray hits. Animated
// cubies are traced in their rotated frame.
func trace(cube *cubesim.Cube, ray cubesim.Ray) (surface, cubesim.Color) {
	best := math.Inf(1)
	hit, color := surfaceNone, cubesim.Color(0)

	for _, cb := range cube.Cubies() {
		origin, dir := ray.Origin, ray.Dir
		if rot, ok := cb.AnimationTransform(); ok {
			inv := rot.Transpose()
			origin = inv.Mul4x1(origin.Vec4(1)).Vec3()
			dir = inv.Mul4x1(dir.Vec4(0)).Vec3()
		}
		center := cb.Position.Vec3().Mul(cubesim.CubieSpacing)

		for _, s := range cubesim.Sides {
			if !cb.Outer(s) {
				continue
			}
			n := s.Normal()
			denom := dir.Dot(n)
			if denom >= 0 {
				continue
			}
			plane := center.Add(n.Mul(cubesim.StickerHalfSize))
			t := plane.Sub(origin).Dot(n) / denom
			if t < 0 || t >= best {
				continue
			}
			kind := onSticker(origin.Add(dir.Mul(t)).Sub(plane), s.Axis())
			if kind == surfaceNone {
				continue
			}
			best, hit, color = t, kind, cb.Color(s)
		}
	}
	return hit, color
}

func onSticker(d mgl64.Vec3, normal cubesim.Axis) surface {
	kind := surfaceSticker
	for _, axis := range []cubesim.Axis{cubesim.AxisX, cubesim.AxisY, cubesim.AxisZ} {
		if axis == normal {
			continue
		}
		off := math.Abs(d[axis])
		if off > bodyHalf {
			return surfaceNone
		}
		if off > stickerInset {
			kind = surfaceBody
		}
	}
	return kind
}

var (
	bodyStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#1a1a1a"))
	stickerStyle = func() map[cubesim.Color]lipgloss.Style {
		m := make(map[cubesim.Color]lipgloss.Style)
		for c := cubesim.White; c <= cubesim.Orange; c++ {
			m[c] = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
		}
		return m
	}()
)

type cell struct {
	kind  surface
	color cubesim.Color
}

// renderCube ray-traces the cube into cols×rows terminal cells. Runs of
// equal cells share one styled span.
func renderCube(cube *cubesim.Cube, picker *cubesim.Picker, cols, rows int) string {
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		var run cell
		n := 0
		flush := func() {
			if n == 0 {
				return
			}
			span := strings.Repeat(" ", n)
			switch run.kind {
			case surfaceBody:
				span = bodyStyle.Render(span)
			case surfaceSticker:
				span = stickerStyle[run.color].Render(span)
			}
			sb.WriteString(span)
			n = 0
		}

		for col := 0; col < cols; col++ {
			var c cell
			if ray, ok := picker.Ray(cellPoint(col, row)); ok {
				c.kind, c.color = trace(cube, ray)
			}
			if n > 0 && c != run {
				flush()
			}
			run = c
			n++
		}
		flush()
		if row < rows-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderNet draws the unfolded cube with colored two-column stickers.
func renderNet(cube *cubesim.Cube) string {
	return cube.Grid().Net(func(f facelet.Face) string {
		color := cubesim.Face(f.String()).Side().SolvedColor()
		return stickerStyle[color].Render("  ")
	})
}
