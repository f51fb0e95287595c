package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/obj"
)

var mouseButtons = [...]ebiten.MouseButton{
	obj.Primary:   ebiten.MouseButtonLeft,
	obj.Secondary: ebiten.MouseButtonRight,
	obj.Middle:    ebiten.MouseButtonMiddle,
}

// ebitenInput polls Ebitengine once per frame. Mouse values are raw cursor
// pixels and wheel notches; the orbit camera system scales them.
type ebitenInput struct {
	lastX, lastY int
	primed       bool

	blocked func(x, y int) bool
}

func newEbitenInput(blocked func(x, y int) bool) *ebitenInput {
	return &ebitenInput{blocked: blocked}
}

func (i *ebitenInput) Poll() component.Input {
	var in component.Input

	x, y := ebiten.CursorPosition()
	if i.primed {
		in.MouseDeltaX = float32(x - i.lastX)
	}
	i.lastX, i.lastY, i.primed = x, y, true

	_, wheel := ebiten.Wheel()
	in.ScrollDelta = float32(wheel)

	for b, eb := range mouseButtons {
		in.Buttons[b] = ebiten.IsMouseButtonPressed(eb)
	}

	// the panel owns the mouse while the cursor is over it
	if i.blocked != nil && i.blocked(x, y) {
		in.MouseDeltaX, in.ScrollDelta = 0, 0
		in.Buttons = [3]bool{}
	}

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.MoveZ -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.MoveZ += 1
	}

	return in
}
