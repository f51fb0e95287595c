package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/topdowncam/obj"
	"github.com/milk9111/topdowncam/prefabs"
	"github.com/milk9111/topdowncam/system"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const inspectorWidth = 280

var (
	labelColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	btnColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	btnPressed = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
)

// inspector is the camera settings panel. Every edit goes through
// OrbitCamera.EditConfig so the config is validated and the effective speeds
// are re-derived.
type inspector struct {
	world *system.World
	ui    *ebitenui.UI

	face     ebtext.Face
	btnImage *widget.ButtonImage
	btnText  *widget.ButtonTextColor

	rows      []inspectorRow
	clipboard bool
}

type inspectorRow struct {
	label *widget.Text
	text  func(cfg obj.CameraConfig) string
}

type floatField struct {
	name string
	step float32
	ptr  func(cfg *obj.CameraConfig) *float32
}

type boolField struct {
	name string
	ptr  func(cfg *obj.CameraConfig) *bool
}

var inspectorBools = []boolField{
	{"Rotation", func(c *obj.CameraConfig) *bool { return &c.AllowRotation }},
	{"Zoom", func(c *obj.CameraConfig) *bool { return &c.AllowZoom }},
	{"Invert zoom", func(c *obj.CameraConfig) *bool { return &c.InvertZoom }},
}

var inspectorFloats = []floatField{
	{"Turn speed", 0.5, func(c *obj.CameraConfig) *float32 { return &c.TurnSpeed }},
	{"Zoom speed", 0.5, func(c *obj.CameraConfig) *float32 { return &c.ZoomSpeed }},
	{"Height", 1, func(c *obj.CameraConfig) *float32 { return &c.HeightAboveTarget }},
	{"Distance", 1, func(c *obj.CameraConfig) *float32 { return &c.DistanceFromTarget }},
	{"Min height", 1, func(c *obj.CameraConfig) *float32 { return &c.MinHeightAboveTarget }},
	{"Max height", 1, func(c *obj.CameraConfig) *float32 { return &c.MaxHeightAboveTarget }},
}

func newInspector(world *system.World) *inspector {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	in := &inspector{
		world:    world,
		face:     goFace,
		btnImage: &widget.ButtonImage{Idle: imageui.NewNineSliceColor(btnColor), Pressed: imageui.NewNineSliceColor(btnPressed)},
		btnText:  &widget.ButtonTextColor{Idle: labelColor},
	}

	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable", "err", err)
	} else {
		in.clipboard = true
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(inspectorWidth, baseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(in.newText("Orbit camera"))

	for _, f := range inspectorBools {
		panel.AddChild(in.boolRow(f))
	}
	for _, f := range inspectorFloats {
		panel.AddChild(in.floatRow(f))
	}
	panel.AddChild(in.buttonRow())

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	in.ui = &ebitenui.UI{Container: root}
	in.refresh()
	return in
}

func (in *inspector) newText(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &in.face, labelColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.MinSize(150, 0)),
	)
}

func (in *inspector) newButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(in.btnImage),
		widget.ButtonOpts.Text(label, &in.face, in.btnText),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (in *inspector) row(label *widget.Text, text func(cfg obj.CameraConfig) string, buttons ...*widget.Button) *widget.Container {
	c := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	c.AddChild(label)
	for _, b := range buttons {
		c.AddChild(b)
	}
	in.rows = append(in.rows, inspectorRow{label: label, text: text})
	return c
}

func (in *inspector) boolRow(f boolField) *widget.Container {
	text := func(cfg obj.CameraConfig) string {
		state := "off"
		if *f.ptr(&cfg) {
			state = "on"
		}
		return fmt.Sprintf("%s: %s", f.name, state)
	}
	toggle := in.newButton("toggle", func() {
		in.edit(func(cfg *obj.CameraConfig) {
			v := f.ptr(cfg)
			*v = !*v
		})
	})
	return in.row(in.newText(f.name), text, toggle)
}

func (in *inspector) floatRow(f floatField) *widget.Container {
	text := func(cfg obj.CameraConfig) string {
		return fmt.Sprintf("%s: %.1f", f.name, *f.ptr(&cfg))
	}
	step := func(d float32) func() {
		return func() {
			in.edit(func(cfg *obj.CameraConfig) { *f.ptr(cfg) += d })
		}
	}
	return in.row(in.newText(f.name), text, in.newButton("-", step(-f.step)), in.newButton("+", step(f.step)))
}

func (in *inspector) buttonRow() *widget.Container {
	text := func(cfg obj.CameraConfig) string {
		return fmt.Sprintf("Button: %s", cfg.RotationButton)
	}
	cycle := in.newButton("cycle", func() {
		in.edit(func(cfg *obj.CameraConfig) {
			cfg.RotationButton = (cfg.RotationButton + 1) % (obj.Middle + 1)
		})
	})
	copyYAML := in.newButton("Copy YAML", in.copyConfig)
	return in.row(in.newText("Button"), text, cycle, copyYAML)
}

func (in *inspector) edit(fn func(cfg *obj.CameraConfig)) {
	cam := in.world.Camera()
	if cam == nil {
		return
	}
	cam.Controller.EditConfig(fn)
	cam.Config = cam.Controller.Config()
	in.refresh()
}

func (in *inspector) copyConfig() {
	cam := in.world.Camera()
	if cam == nil {
		return
	}
	spec := prefabs.NewCameraSpec("orbit_camera", cam.TargetName, cam.Controller.Config(), prefabs.InputSpec{
		MouseSensitivity:  cam.MouseSensitivity,
		ScrollSensitivity: cam.ScrollSensitivity,
	})
	data, err := spec.Marshal()
	if err != nil {
		slog.Error("copy camera config", "err", err)
		return
	}
	if !in.clipboard {
		slog.Warn("clipboard unavailable, camera config not copied")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	slog.Info("camera config copied", "bytes", len(data))
}

// refresh pulls the live config into the labels.
func (in *inspector) refresh() {
	cam := in.world.Camera()
	if cam == nil {
		return
	}
	cfg := cam.Controller.Config()
	for _, r := range in.rows {
		r.label.Label = r.text(cfg)
	}
}
