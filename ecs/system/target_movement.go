package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/topdowncam/common"
	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
)

// TargetMovementSystem moves targets across the ground plane from their move
// input. With a physics world attached the motion goes through Chipmunk,
// otherwise positions are integrated directly.
type TargetMovementSystem struct {
	dt float64
}

func NewTargetMovementSystem() *TargetMovementSystem {
	return &TargetMovementSystem{dt: common.FixedStep}
}

func (s *TargetMovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach3(w, component.TargetComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, target *component.Target, input *component.Input, transform *component.Transform) {
			move := mgl32.Vec2{input.MoveX, input.MoveZ}
			if move.Len() > 1 {
				move = move.Normalize()
			}
			vel := move.Mul(target.MoveSpeed)

			if pw == nil {
				transform.Position = transform.Position.Add(mgl32.Vec3{vel.X(), 0, vel.Y()}.Mul(float32(s.dt)))
				return
			}

			pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok {
				pb = &component.PhysicsBody{Radius: float64(target.Radius)}
				if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), pb); err != nil {
					panic("target movement: add physics body: " + err.Error())
				}
			}
			if pb.Body == nil {
				pb.Body = pw.EnsureBody(e, float64(transform.Position.X()), float64(transform.Position.Z()), pb.Radius)
			}
			if move.Len() > 0 {
				pb.Body.SetVelocity(float64(vel.X()), float64(vel.Y()))
			}
		})

	if pw == nil {
		return
	}
	pw.Step(s.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, pb *component.PhysicsBody, transform *component.Transform) {
			if pb.Body == nil {
				return
			}
			pos := pb.Body.Position()
			transform.Position = mgl32.Vec3{float32(pos.X), transform.Position.Y(), float32(pos.Y)}
		})
}
