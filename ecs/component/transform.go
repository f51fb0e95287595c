package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is a world-space placement. Forward is only meaningful for
// entities that aim somewhere, such as cameras.
type Transform struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
}

var TransformComponent = NewComponent[Transform]()
