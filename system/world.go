package system

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/ecs/entity"
	ecssystem "github.com/milk9111/topdowncam/ecs/system"
	"github.com/milk9111/topdowncam/prefabs"
)

// Options configures a World. Nil specs are loaded from the prefabs.
type Options struct {
	Input  ecssystem.InputSource
	Camera *prefabs.CameraSpec
	Target *prefabs.TargetSpec
	// WatchDirs enables live reload of prefab files in these directories.
	WatchDirs []string
	// Kinematic skips the physics world and integrates target motion directly.
	Kinematic bool
}

// World owns the ECS world, the fixed system order and the prefab watcher.
type World struct {
	ECS *ecs.World

	CameraEntity ecs.Entity
	TargetEntity ecs.Entity

	watcher *prefabs.Watcher
	status  *statusSystem
}

// NewWorld builds the scene: one target, one orbit camera, and the systems
// config reload, input, camera init, target script, target movement and
// orbit camera in that order.
func NewWorld(opts Options) (*World, error) {
	targetSpec := opts.Target
	if targetSpec == nil {
		spec, err := prefabs.LoadTargetSpec()
		if err != nil {
			return nil, err
		}
		targetSpec = spec
	}
	cameraSpec := opts.Camera
	if cameraSpec == nil {
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return nil, err
		}
		cameraSpec = spec
	}

	w := &World{ECS: ecs.NewWorld(), status: &statusSystem{}}
	if !opts.Kinematic {
		w.ECS.SetPhysicsWorld(ecs.NewPhysicsWorld(targetSpec.Damping))
	}

	var err error
	if w.TargetEntity, err = entity.NewTarget(w.ECS, targetSpec); err != nil {
		return nil, err
	}
	if w.CameraEntity, err = entity.NewOrbitCamera(w.ECS, cameraSpec); err != nil {
		return nil, err
	}

	var events <-chan string
	var errs <-chan error
	if len(opts.WatchDirs) > 0 {
		w.watcher, err = prefabs.NewWatcher(opts.WatchDirs...)
		if err != nil {
			return nil, fmt.Errorf("world: %w", err)
		}
		events, errs = w.watcher.Events, w.watcher.Errors
		slog.Info("watching prefabs", "dirs", opts.WatchDirs)
	}

	scripts := ecssystem.NewTargetScriptSystem()
	w.ECS.AddSystemAt(ecs.StagePresent, w.status)
	w.ECS.AddSystemAt(ecs.StageCamera, ecssystem.NewOrbitCameraSystem())
	w.ECS.AddSystemAt(ecs.StageMovement, ecssystem.NewTargetMovementSystem())
	w.ECS.AddSystemAt(ecs.StageSimulate, scripts)
	w.ECS.AddSystemAt(ecs.StageInput, ecssystem.NewInputSystem(opts.Input))
	w.ECS.AddSystemAt(ecs.StageInput, ecssystem.NewOrbitCameraInitSystem())
	w.ECS.AddSystemAt(ecs.StageConfig, ecssystem.NewConfigReloadSystem(events, errs, scripts))

	return w, nil
}

// Update advances the scene by one frame.
func (w *World) Update() {
	w.ECS.Update()
}

// Camera returns the camera component.
func (w *World) Camera() *component.OrbitCamera {
	cam, ok := ecs.Get(w.ECS, w.CameraEntity, component.OrbitCameraComponent.Kind())
	if !ok {
		return nil
	}
	return cam
}

// TargetPosition returns where the followed target currently is.
func (w *World) TargetPosition() mgl32.Vec3 {
	if t, ok := ecs.Get(w.ECS, w.TargetEntity, component.TransformComponent.Kind()); ok {
		return t.Position
	}
	return mgl32.Vec3{}
}

// Status returns a short description of the last config or script event.
func (w *World) Status() string {
	return w.status.last
}

func (w *World) Close() error {
	if w == nil || w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// statusSystem keeps the latest notable event for display.
type statusSystem struct {
	last string
}

func (s *statusSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventCameraConfigReloaded:
			s.last = fmt.Sprintf("reloaded %v", evt.Data)
		case ecs.EventCameraConfigRejected, ecs.EventTargetScriptFailed:
			var err error
			if e, ok := evt.Data.(error); ok {
				err = e
			} else {
				err = errors.New("unknown error")
			}
			s.last = fmt.Sprintf("%s: %v", evt.Type, err)
		}
	}
}
