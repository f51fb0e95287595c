package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data for ground-plane motion.
type PhysicsBody struct {
	Body   *cp.Body
	Radius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
