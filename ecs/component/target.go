package component

// Target marks an entity the camera can follow.
type Target struct {
	Name      string
	MoveSpeed float32
	Radius    float32
}

var TargetComponent = NewComponent[Target]()
