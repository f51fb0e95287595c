package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
)

const collisionTypeTarget cp.CollisionType = 1

// PhysicsWorld owns the Chipmunk space used for ground-plane motion. World X
// maps to space X and world Z maps to space Y; height is not simulated.
type PhysicsWorld struct {
	space  *cp.Space
	bodies map[Entity]*cp.Body
}

// NewPhysicsWorld creates a gravity-free space. damping is the fraction of
// velocity kept per second.
func NewPhysicsWorld(damping float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	if damping > 0 && damping <= 1 {
		space.SetDamping(damping)
	}
	return &PhysicsWorld{
		space:  space,
		bodies: make(map[Entity]*cp.Body),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// EnsureBody returns the body for e, creating a circle body at (x, z) on first
// use.
func (pw *PhysicsWorld) EnsureBody(e Entity, x, z, radius float64) *cp.Body {
	if pw == nil || pw.space == nil {
		return nil
	}
	if body, ok := pw.bodies[e]; ok {
		return body
	}
	if radius <= 0 {
		radius = 0.5
	}

	mass := 1.0
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: z})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeTarget)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies[e] = body
	return body
}

// RemoveBody drops the body of e from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil {
		return
	}
	body, ok := pw.bodies[e]
	if !ok {
		return
	}
	body.EachShape(func(s *cp.Shape) {
		pw.space.RemoveShape(s)
	})
	pw.space.RemoveBody(body)
	delete(pw.bodies, e)
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}
