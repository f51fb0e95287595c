package system

import (
	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
)

// InputSource produces one input snapshot per frame. The viewer polls
// Ebitengine; the simulator replays a trace.
type InputSource interface {
	Poll() component.Input
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || w == nil {
		return
	}

	snapshot := i.source.Poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		scripted := ecs.Has(w, e, component.ScriptComponent.Kind())
		moveX, moveZ := input.MoveX, input.MoveZ
		*input = snapshot
		// scripted entities keep the move vector their script produced
		if scripted {
			input.MoveX, input.MoveZ = moveX, moveZ
		}
	})
}
