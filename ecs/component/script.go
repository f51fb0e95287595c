package component

// Script drives an entity's movement from a tengo script instead of Input.
type Script struct {
	Path string
	// Elapsed is the script clock in seconds.
	Elapsed float64
	Failed  bool
}

var ScriptComponent = NewComponent[Script]()
