package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdowncam/common"
	"github.com/milk9111/topdowncam/obj"
	"golang.org/x/image/colornames"
)

const (
	fieldOfView = 60
	nearPlane   = 0.1
	farPlane    = 500

	gridExtent = 60
	gridStep   = 5
	gridFade   = 80
)

// viewport projects world points to screen pixels for one frame.
type viewport struct {
	view, proj mgl32.Mat4
	viewProj   mgl32.Mat4
	w, h       int
}

func newViewport(cam *obj.OrbitCamera, w, h int) viewport {
	view := cam.ViewMatrix()
	proj := mgl32.Perspective(mgl32.DegToRad(fieldOfView), float32(w)/float32(h), nearPlane, farPlane)
	return viewport{view: view, proj: proj, viewProj: proj.Mul4(view), w: w, h: h}
}

// project returns screen coordinates with y down, or false behind the near
// plane.
func (v viewport) project(p mgl32.Vec3) (float32, float32, bool) {
	if v.viewProj.Mul4x1(p.Vec4(1)).W() < nearPlane {
		return 0, 0, false
	}
	win := mgl32.Project(p, v.view, v.proj, 0, 0, v.w, v.h)
	return win.X(), float32(v.h) - win.Y(), true
}

func (v viewport) line(screen *ebiten.Image, a, b mgl32.Vec3, width float32, clr color.Color) {
	x0, y0, ok0 := v.project(a)
	x1, y1, ok1 := v.project(b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

func drawScene(screen *ebiten.Image, cam *obj.OrbitCamera, target mgl32.Vec3) {
	b := screen.Bounds()
	vp := newViewport(cam, b.Dx(), b.Dy())

	drawGrid(screen, vp, target)

	origin := mgl32.Vec3{}
	vp.line(screen, origin, mgl32.Vec3{3, 0, 0}, 2, colornames.Red)
	vp.line(screen, origin, mgl32.Vec3{0, 3, 0}, 2, colornames.Limegreen)
	vp.line(screen, origin, mgl32.Vec3{0, 0, 3}, 2, colornames.Dodgerblue)

	drawTarget(screen, vp, target)
}

// drawGrid draws the ground plane around the target in short segments so
// lines crossing behind the camera are clipped piecewise.
func drawGrid(screen *ebiten.Image, vp viewport, center mgl32.Vec3) {
	cx := float32(int(center.X()/gridStep) * gridStep)
	cz := float32(int(center.Z()/gridStep) * gridStep)

	for i := float32(-gridExtent); i <= gridExtent; i += gridStep {
		for j := float32(-gridExtent); j < gridExtent; j += gridStep {
			along := []mgl32.Vec3{
				{cx + i, 0, cz + j}, {cx + i, 0, cz + j + gridStep},
				{cx + j, 0, cz + i}, {cx + j + gridStep, 0, cz + i},
			}
			for k := 0; k < len(along); k += 2 {
				mid := along[k].Add(along[k+1]).Mul(0.5)
				dist := mid.Sub(center).Len()
				alpha := common.Lerp(160, 0, common.Clamp(dist/gridFade, 0, 1))
				if alpha <= 0 {
					continue
				}
				vp.line(screen, along[k], along[k+1], 1, color.NRGBA{R: 0x80, G: 0x88, B: 0x99, A: uint8(alpha)})
			}
		}
	}
}

func drawTarget(screen *ebiten.Image, vp viewport, target mgl32.Vec3) {
	x, y, ok := vp.project(target)
	if !ok {
		return
	}
	rx, ry, ok := vp.project(target.Add(mgl32.Vec3{0.5, 0, 0}))
	if !ok {
		return
	}
	r := mgl32.Vec2{rx - x, ry - y}.Len()
	if r < 3 {
		r = 3
	}
	vector.DrawFilledCircle(screen, x, y, r, colornames.Orange, true)
	vp.line(screen, target, target.Add(mgl32.Vec3{0, 1.5, 0}), 2, colornames.White)
}
