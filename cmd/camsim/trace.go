package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/obj"
	"gopkg.in/yaml.v3"
)

var errEmptyTrace = errors.New("camsim: trace has no frames")

// traceFrame is one frame of recorded input. Mouse values are raw pixels and
// wheel notches, the same units the viewer polls.
type traceFrame struct {
	MouseDX float32  `yaml:"mouse_dx"`
	Scroll  float32  `yaml:"scroll"`
	Buttons []string `yaml:"buttons"`
	MoveX   float32  `yaml:"move_x"`
	MoveZ   float32  `yaml:"move_z"`
}

func loadTrace(path string) ([]component.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("camsim: read trace %s: %w", path, err)
	}
	return parseTrace(data)
}

func parseTrace(data []byte) ([]component.Input, error) {
	var frames []traceFrame
	if err := yaml.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("camsim: unmarshal trace: %w", err)
	}
	if len(frames) == 0 {
		return nil, errEmptyTrace
	}

	out := make([]component.Input, len(frames))
	for i, f := range frames {
		in := component.Input{MouseDeltaX: f.MouseDX, ScrollDelta: f.Scroll, MoveX: f.MoveX, MoveZ: f.MoveZ}
		for _, name := range f.Buttons {
			b, ok := obj.ParseMouseButton(name)
			if !ok {
				return nil, fmt.Errorf("camsim: frame %d: unknown button %q", i, name)
			}
			in.Buttons[b] = true
		}
		out[i] = in
	}
	return out, nil
}

// replay feeds a trace to the input system, repeating the last frame once
// the trace runs out.
type replay struct {
	frames []component.Input
	next   int
}

func (r *replay) Poll() component.Input {
	if len(r.frames) == 0 {
		return component.Input{}
	}
	i := min(r.next, len(r.frames)-1)
	r.next++
	return r.frames[i]
}
