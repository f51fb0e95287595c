package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/prefabs"
)

// NewTarget creates the followed entity from a target prefab spec.
func NewTarget(w *ecs.World, spec *prefabs.TargetSpec) (ecs.Entity, error) {
	target := ecs.CreateEntity(w)

	if err := ecs.Add(w, target, component.TargetComponent.Kind(), &component.Target{
		Name:      spec.Name,
		MoveSpeed: spec.MoveSpeed,
		Radius:    spec.Radius,
	}); err != nil {
		return 0, fmt.Errorf("target: add target: %w", err)
	}

	if err := ecs.Add(w, target, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl32.Vec3{spec.Transform.X, spec.Transform.Y, spec.Transform.Z},
	}); err != nil {
		return 0, fmt.Errorf("target: add transform: %w", err)
	}

	if err := ecs.Add(w, target, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("target: add input: %w", err)
	}

	if spec.Script != "" {
		if err := ecs.Add(w, target, component.ScriptComponent.Kind(), &component.Script{Path: spec.Script}); err != nil {
			return 0, fmt.Errorf("target: add script: %w", err)
		}
	}

	return target, nil
}
