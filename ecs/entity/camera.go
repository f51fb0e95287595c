package entity

import (
	"fmt"

	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/obj"
	"github.com/milk9111/topdowncam/prefabs"
)

// NewOrbitCamera creates the camera entity from a camera prefab spec. The
// controller is bound to its target by the orbit camera systems.
func NewOrbitCamera(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	cfg, err := spec.Config()
	if err != nil {
		return 0, fmt.Errorf("camera: config: %w", err)
	}
	mouse, scroll := spec.Input.Sensitivity()

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.OrbitCameraComponent.Kind(), &component.OrbitCamera{
		Controller:        obj.NewOrbitCamera(),
		Config:            cfg,
		TargetName:        spec.Target,
		MouseSensitivity:  mouse,
		ScrollSensitivity: scroll,
	}); err != nil {
		return 0, fmt.Errorf("camera: add orbit camera: %w", err)
	}

	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	if err := ecs.Add(w, camera, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("camera: add input: %w", err)
	}

	return camera, nil
}
