package component

import "github.com/milk9111/topdowncam/obj"

// OrbitCamera attaches an orbit controller to an entity. TargetName selects
// the followed entity by its Target name.
type OrbitCamera struct {
	Controller *obj.OrbitCamera
	Config     obj.CameraConfig
	TargetName string

	// MouseSensitivity scales raw cursor pixels into mouse axis units.
	MouseSensitivity float32
	// ScrollSensitivity scales wheel notches into scroll axis units.
	ScrollSensitivity float32
}

var OrbitCameraComponent = NewComponent[OrbitCamera]()
