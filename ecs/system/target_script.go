package system

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/topdowncam/common"
	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/prefabs"
)

// scripts must define move(t, x, z) returning {x: ..., z: ...}
const targetScriptDispatch = `
__out := move(__t, __x, __z)
`

type targetScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
}

// TargetScriptSystem feeds scripted move vectors into the Input of entities
// carrying a Script component.
type TargetScriptSystem struct {
	load  func(path string) ([]byte, error)
	cache map[ecs.Entity]*targetScriptRuntime
}

func NewTargetScriptSystem() *TargetScriptSystem {
	return &TargetScriptSystem{
		load:  prefabs.LoadScript,
		cache: make(map[ecs.Entity]*targetScriptRuntime),
	}
}

func (s *TargetScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.ScriptComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, script *component.Script, input *component.Input, transform *component.Transform) {
			if script.Failed || script.Path == "" {
				return
			}

			rt, err := s.runtime(e, script.Path)
			if err == nil {
				input.MoveX, input.MoveZ, err = rt.move(script.Elapsed, transform.Position.X(), transform.Position.Z())
			}
			if err != nil {
				slog.Error("target script failed", "entity", e, "path", script.Path, "err", err)
				script.Failed = true
				input.MoveX, input.MoveZ = 0, 0
				w.Events().Push(ecs.Event{Type: ecs.EventTargetScriptFailed, Data: err})
				return
			}

			script.Elapsed += common.FixedStep
		})
}

// Invalidate drops every compiled script so the next update reloads them.
func (s *TargetScriptSystem) Invalidate(w *ecs.World) {
	if s == nil {
		return
	}
	clear(s.cache)
	ecs.ForEach(w, component.ScriptComponent.Kind(), func(_ ecs.Entity, script *component.Script) {
		script.Failed = false
	})
}

func (s *TargetScriptSystem) runtime(e ecs.Entity, path string) (*targetScriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}

	src, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	script := tengo.NewScript(append(src, []byte(targetScriptDispatch)...))
	_ = script.Add("__t", 0.0)
	_ = script.Add("__x", 0.0)
	_ = script.Add("__z", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	rt := &targetScriptRuntime{path: path, compiled: compiled}
	s.cache[e] = rt
	return rt, nil
}

func (rt *targetScriptRuntime) move(t float64, x, z float32) (float32, float32, error) {
	if err := rt.compiled.Set("__t", t); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Set("__x", float64(x)); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Set("__z", float64(z)); err != nil {
		return 0, 0, err
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, 0, err
	}

	out := rt.compiled.Get("__out").Map()
	if out == nil {
		return 0, 0, fmt.Errorf("move must return a map, got %s", rt.compiled.Get("__out").ValueType())
	}
	return toFloat32(out["x"]), toFloat32(out["z"]), nil
}

func toFloat32(v any) float32 {
	switch n := v.(type) {
	case float64:
		return float32(n)
	case int64:
		return float32(n)
	case int:
		return float32(n)
	}
	return 0
}
