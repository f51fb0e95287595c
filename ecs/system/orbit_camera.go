package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/obj"
)

// OrbitCameraSystem drives every orbit camera once per frame. It must run
// after the systems that move targets.
type OrbitCameraSystem struct{}

func NewOrbitCameraSystem() *OrbitCameraSystem {
	return &OrbitCameraSystem{}
}

func (cs *OrbitCameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.OrbitCameraComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, cam *component.OrbitCamera, input *component.Input, transform *component.Transform) {
			if !initializeCamera(w, e, cam) {
				return
			}
			cam.Controller.UpdateFrame(frameInput(cam, input))

			transform.Position = cam.Controller.Position()
			transform.Forward = cam.Controller.Forward()
		})
}

// OrbitCameraInitSystem binds cameras to their targets before anything moves,
// so the starting offset is taken from the targets' frame-start positions.
type OrbitCameraInitSystem struct{}

func NewOrbitCameraInitSystem() *OrbitCameraInitSystem {
	return &OrbitCameraInitSystem{}
}

func (cs *OrbitCameraInitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.OrbitCameraComponent.Kind(), func(e ecs.Entity, cam *component.OrbitCamera) {
		initializeCamera(w, e, cam)
	})
}

// initializeCamera binds an uninitialized camera to its target and reports
// whether the camera is ready for UpdateFrame.
func initializeCamera(w *ecs.World, e ecs.Entity, cam *component.OrbitCamera) bool {
	if cam.Controller == nil {
		cam.Controller = obj.NewOrbitCamera()
	}
	if cam.Controller.Initialized() {
		return true
	}

	targetEntity, ok := findTarget(w, cam.TargetName)
	if !ok {
		return false
	}
	cam.Controller.Initialize(&transformTarget{w: w, e: targetEntity}, cam.Config)
	slog.Debug("orbit camera initialized", "entity", e, "target", targetEntity, "offset", cam.Controller.Offset())
	return true
}

// frameInput turns raw device input into the controller's axis units. A zero
// sensitivity passes the raw value through.
func frameInput(cam *component.OrbitCamera, input *component.Input) obj.FrameInput {
	held := false
	if b := int(cam.Controller.Config().RotationButton); b >= 0 && b < len(input.Buttons) {
		held = input.Buttons[b]
	}
	return obj.FrameInput{
		MouseDeltaX:  input.MouseDeltaX * sensitivity(cam.MouseSensitivity),
		ScrollDelta:  input.ScrollDelta * sensitivity(cam.ScrollSensitivity),
		RotationHeld: held,
	}
}

func sensitivity(v float32) float32 {
	if v <= 0 {
		return 1
	}
	return v
}

func findTarget(w *ecs.World, name string) (ecs.Entity, bool) {
	for _, e := range w.Query(component.TargetComponent.Kind(), component.TransformComponent.Kind()) {
		target, _ := ecs.Get(w, e, component.TargetComponent.Kind())
		if name == "" || target.Name == name {
			return e, true
		}
	}
	return 0, false
}

// transformTarget reads a target entity's position. If the entity goes away
// the camera keeps following its last known position.
type transformTarget struct {
	w    *ecs.World
	e    ecs.Entity
	last mgl32.Vec3
}

func (t *transformTarget) Position() mgl32.Vec3 {
	if transform, ok := ecs.Get(t.w, t.e, component.TransformComponent.Kind()); ok {
		t.last = transform.Position
	}
	return t.last
}
