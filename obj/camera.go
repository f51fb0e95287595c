package obj

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

//go:generate go tool stringer -type=MouseButton

// MouseButton identifies the mouse button that must be held to orbit.
type MouseButton int

const (
	Primary MouseButton = iota
	Secondary
	Middle
)

// ParseMouseButton resolves a button name such as "secondary".
func ParseMouseButton(s string) (MouseButton, bool) {
	for b := Primary; b <= Middle; b++ {
		if strings.EqualFold(strings.TrimSpace(s), b.String()) {
			return b, true
		}
	}
	return 0, false
}

// WorldUp is the axis the camera orbits around.
var WorldUp = mgl32.Vec3{0, 1, 0}

// CameraConfig holds the user-tunable orbit camera parameters.
type CameraConfig struct {
	AllowRotation bool
	AllowZoom     bool
	InvertZoom    bool

	TurnSpeed float32
	ZoomSpeed float32

	HeightAboveTarget    float32
	DistanceFromTarget   float32
	MinHeightAboveTarget float32
	MaxHeightAboveTarget float32

	RotationButton MouseButton
}

// DefaultCameraConfig returns the stock configuration.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AllowRotation:        true,
		AllowZoom:            true,
		TurnSpeed:            4,
		ZoomSpeed:            4,
		HeightAboveTarget:    10,
		DistanceFromTarget:   10,
		MinHeightAboveTarget: 10,
		MaxHeightAboveTarget: 40,
		RotationButton:       Secondary,
	}
}

// Validate clamps every distance field to [0, +Inf). Min and max are not
// reordered.
func (c *CameraConfig) Validate() {
	c.HeightAboveTarget = clampNonNegative(c.HeightAboveTarget)
	c.DistanceFromTarget = clampNonNegative(c.DistanceFromTarget)
	c.MinHeightAboveTarget = clampNonNegative(c.MinHeightAboveTarget)
	c.MaxHeightAboveTarget = clampNonNegative(c.MaxHeightAboveTarget)
}

func clampNonNegative(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxFloat32 {
		return math.MaxFloat32
	}
	return v
}

// Target is anything the camera can follow.
type Target interface {
	Position() mgl32.Vec3
}

// FrameInput is the input snapshot consumed by one UpdateFrame call.
type FrameInput struct {
	MouseDeltaX float32
	ScrollDelta float32
	// RotationHeld reports whether the configured rotation button is down.
	RotationHeld bool
}

// OrbitCamera follows a target at a fixed offset, orbits it around world up
// while the rotation button is held and zooms by moving the offset's height.
type OrbitCamera struct {
	config CameraConfig
	target Target

	offset    mgl32.Vec3
	turnSpeed float32
	zoomSpeed float32

	position mgl32.Vec3
	lookAt   mgl32.Vec3
	forward  mgl32.Vec3
}

// NewOrbitCamera creates a camera that still has to be initialized.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{config: DefaultCameraConfig(), forward: mgl32.Vec3{0, 0, -1}}
}

// Initialize binds the target and derives the starting offset from the
// target's current position.
func (c *OrbitCamera) Initialize(target Target, config CameraConfig) {
	c.target = target
	c.config = config

	p := target.Position()
	c.offset = mgl32.Vec3{p.X(), p.Y() + config.HeightAboveTarget, p.Z() + config.DistanceFromTarget}
	c.applySpeedFlags()
	c.place(p)
}

func (c *OrbitCamera) applySpeedFlags() {
	c.turnSpeed = c.config.TurnSpeed
	c.zoomSpeed = c.config.ZoomSpeed

	if !c.config.AllowRotation {
		c.turnSpeed = 0
	}
	if !c.config.AllowZoom {
		c.zoomSpeed = 0
	}
	if c.config.InvertZoom {
		c.zoomSpeed *= -1
	}
}

// UpdateFrame advances the camera by one frame. Call it after the target has
// moved for this frame.
func (c *OrbitCamera) UpdateFrame(in FrameInput) {
	if c.target == nil {
		return
	}

	rotation := in.MouseDeltaX * c.turnSpeed
	if !in.RotationHeld {
		rotation = 0
	}

	c.offset = c.offset.Add(mgl32.Vec3{0, c.ComputeZoom(in.ScrollDelta), 0})
	c.offset = mgl32.QuatRotate(mgl32.DegToRad(rotation), WorldUp).Rotate(c.offset)

	c.place(c.target.Position())
}

// ComputeZoom returns the height change a scroll delta produces, or 0 when
// the whole change would leave the [min, max] height band.
func (c *OrbitCamera) ComputeZoom(scrollDelta float32) float32 {
	zoom := scrollDelta * c.zoomSpeed

	if zoom == 0 {
		return 0
	}

	if zoom+c.offset.Y() < c.config.MinHeightAboveTarget {
		return 0
	} else if zoom+c.offset.Y() > c.config.MaxHeightAboveTarget {
		return 0
	}

	return zoom
}

// ValidateConfig clamps the configured distances. Call it after editing the
// config outside the frame loop.
func (c *OrbitCamera) ValidateConfig() {
	c.config.Validate()
}

// EditConfig applies fn to the config, validates the result and re-derives
// the effective speeds. The offset is left alone.
func (c *OrbitCamera) EditConfig(fn func(cfg *CameraConfig)) {
	if fn != nil {
		fn(&c.config)
	}
	c.ValidateConfig()
	c.applySpeedFlags()
}

// Reconfigure replaces the whole config, e.g. after a file reload.
func (c *OrbitCamera) Reconfigure(cfg CameraConfig) {
	c.EditConfig(func(current *CameraConfig) { *current = cfg })
}

func (c *OrbitCamera) place(targetPos mgl32.Vec3) {
	c.position = targetPos.Add(c.offset)
	c.lookAt = targetPos

	dir := c.lookAt.Sub(c.position)
	if dir.Len() == 0 {
		return
	}
	c.forward = dir.Normalize()
}

// Config returns a copy of the current config.
func (c *OrbitCamera) Config() CameraConfig {
	return c.config
}

// Target returns the followed target, nil before Initialize.
func (c *OrbitCamera) Target() Target {
	return c.target
}

// Initialized reports whether Initialize has bound a target.
func (c *OrbitCamera) Initialized() bool {
	return c.target != nil
}

// Offset is the camera position relative to the target.
func (c *OrbitCamera) Offset() mgl32.Vec3 {
	return c.offset
}

// Position is the camera's world position after the last placement.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	return c.position
}

// LookAt is the target position the camera was last aimed at.
func (c *OrbitCamera) LookAt() mgl32.Vec3 {
	return c.lookAt
}

// Forward is the unit view direction.
func (c *OrbitCamera) Forward() mgl32.Vec3 {
	return c.forward
}

// TurnSpeed is the turn speed after the rotation flag was applied.
func (c *OrbitCamera) TurnSpeed() float32 {
	return c.turnSpeed
}

// ZoomSpeed is the zoom speed after the zoom and invert flags were applied.
func (c *OrbitCamera) ZoomSpeed() float32 {
	return c.zoomSpeed
}

// ViewMatrix returns the world-to-view transform.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	up := WorldUp
	// looking straight down or up has no defined roll
	if mgl32.Abs(c.forward.Dot(WorldUp)) > 1-1e-6 {
		up = mgl32.Vec3{0, 0, -1}
	}
	return mgl32.LookAtV(c.position, c.position.Add(c.forward), up)
}
