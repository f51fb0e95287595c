package component

// Input stores per-frame input state for an entity.
type Input struct {
	MouseDeltaX float32
	ScrollDelta float32
	// Buttons is indexed by obj.MouseButton.
	Buttons [3]bool

	MoveX float32
	MoveZ float32
}

var InputComponent = NewComponent[Input]()
