package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdowncam/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var background = color.NRGBA{R: 0x12, G: 0x14, B: 0x18, A: 0xff}

type Game struct {
	frames int
	debug  bool

	input *ebitenInput
	world *system.World

	ui            *ebitenui.UI
	inspector     *inspector
	showInspector bool
}

func NewGame(watchDirs []string, debug bool) (*Game, error) {
	g := &Game{debug: debug, showInspector: true}
	g.input = newEbitenInput(g.overInspector)

	world, err := system.NewWorld(system.Options{Input: g.input, WatchDirs: watchDirs})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.world = world

	g.inspector = newInspector(world)
	g.ui = g.inspector.ui
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showInspector = !g.showInspector
	}

	if g.showInspector {
		g.ui.Update()
	}

	g.world.Update()
	g.inspector.refresh()

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	cam := g.world.Camera()
	if cam != nil && cam.Controller.Initialized() {
		drawScene(screen, cam.Controller, g.world.TargetPosition())
	}

	if g.showInspector {
		g.ui.Draw(screen)
	}

	hud := fmt.Sprintf("FPS: %.2f    RMB drag: orbit    wheel: zoom    WASD: move    Tab: inspector", ebiten.ActualFPS())
	if g.debug && cam != nil {
		c := cam.Controller
		hud += fmt.Sprintf("\npos %v\noffset %v\nlook %v", c.Position(), c.Offset(), c.LookAt())
	}
	if status := g.world.Status(); status != "" {
		hud += "\n" + status
	}
	ebitenutil.DebugPrint(screen, hud)
}

// overInspector reports whether a cursor position is covered by the panel.
func (g *Game) overInspector(x, y int) bool {
	return g.showInspector && x >= baseWidth-inspectorWidth
}

func (g *Game) Close() error {
	return g.world.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
