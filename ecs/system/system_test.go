package system

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/obj"
	"github.com/milk9111/topdowncam/prefabs"
)

type fixedInput struct {
	in component.Input
}

func (f *fixedInput) Poll() component.Input {
	return f.in
}

func near(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-3)
}

type scene struct {
	w      *ecs.World
	target ecs.Entity
	camera ecs.Entity
	input  *fixedInput
}

// newScene builds a kinematic target at the origin and a camera with raw
// (unscaled) input.
func newScene(t *testing.T, cfg obj.CameraConfig) *scene {
	t.Helper()
	s := &scene{w: ecs.NewWorld(), input: &fixedInput{}}

	s.target = ecs.CreateEntity(s.w)
	s.camera = ecs.CreateEntity(s.w)
	for _, err := range []error{
		ecs.Add(s.w, s.target, component.TargetComponent.Kind(), &component.Target{Name: "player", MoveSpeed: 6}),
		ecs.Add(s.w, s.target, component.TransformComponent.Kind(), &component.Transform{}),
		ecs.Add(s.w, s.target, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(s.w, s.camera, component.OrbitCameraComponent.Kind(), &component.OrbitCamera{Config: cfg, TargetName: "player"}),
		ecs.Add(s.w, s.camera, component.TransformComponent.Kind(), &component.Transform{}),
		ecs.Add(s.w, s.camera, component.InputComponent.Kind(), &component.Input{}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	s.w.AddSystemAt(ecs.StageCamera, NewOrbitCameraSystem())
	s.w.AddSystemAt(ecs.StageInput, NewInputSystem(s.input))
	s.w.AddSystemAt(ecs.StageInput, NewOrbitCameraInitSystem())
	s.w.AddSystemAt(ecs.StageMovement, NewTargetMovementSystem())
	return s
}

func (s *scene) cameraTransform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.w, s.camera, component.TransformComponent.Kind())
	if !ok {
		t.Fatal("camera transform missing")
	}
	return tr
}

func (s *scene) targetPosition(t *testing.T) mgl32.Vec3 {
	t.Helper()
	tr, ok := ecs.Get(s.w, s.target, component.TransformComponent.Kind())
	if !ok {
		t.Fatal("target transform missing")
	}
	return tr.Position
}

func TestOrbitCameraSystemInitializesOnFirstFrame(t *testing.T) {
	s := newScene(t, obj.DefaultCameraConfig())
	s.w.Update()

	tr := s.cameraTransform(t)
	if !near(tr.Position, mgl32.Vec3{0, 10, 10}) {
		t.Fatalf("expected camera at (0,10,10), got %v", tr.Position)
	}
	if !near(tr.Forward, mgl32.Vec3{0, -1, -1}.Normalize()) {
		t.Fatalf("expected camera to look at the origin, got forward %v", tr.Forward)
	}
}

func TestOrbitCameraSystemAppliesFirstFrameInput(t *testing.T) {
	s := newScene(t, obj.DefaultCameraConfig())
	// zoom 1 * 4 = +4 height, then 22.5 * 4 = 90 degrees
	s.input.in = component.Input{MouseDeltaX: 22.5, ScrollDelta: 1, Buttons: [3]bool{false, true, false}}
	s.w.Update()

	cam, _ := ecs.Get(s.w, s.camera, component.OrbitCameraComponent.Kind())
	if got := cam.Controller.Offset(); !near(got, mgl32.Vec3{10, 14, 0}) {
		t.Fatalf("expected first frame input to be applied, got offset %v", got)
	}
	if got := s.cameraTransform(t).Position; !near(got, mgl32.Vec3{10, 14, 0}) {
		t.Fatalf("expected camera at (10,14,0), got %v", got)
	}
}

func TestOrbitCameraInitUsesFrameStartTargetPosition(t *testing.T) {
	s := newScene(t, obj.DefaultCameraConfig())
	s.input.in = component.Input{MoveX: 1}
	s.w.Update()

	cam, _ := ecs.Get(s.w, s.camera, component.OrbitCameraComponent.Kind())
	if got := cam.Controller.Offset(); !near(got, mgl32.Vec3{0, 10, 10}) {
		t.Fatalf("offset must come from the target's position before it moved, got %v", got)
	}
	target := s.targetPosition(t)
	if target.X() <= 0 {
		t.Fatalf("expected the target to move on the first frame, got %v", target)
	}
	if got := s.cameraTransform(t).Position; !near(got, target.Add(mgl32.Vec3{0, 10, 10})) {
		t.Fatalf("camera %v should follow the moved target %v", got, target)
	}
}

func TestOrbitCameraSystemWithoutTarget(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	for _, err := range []error{
		ecs.Add(w, e, component.OrbitCameraComponent.Kind(), &component.OrbitCamera{Config: obj.DefaultCameraConfig(), TargetName: "nobody"}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MouseDeltaX: 10}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	w.AddSystemAt(ecs.StageInput, NewOrbitCameraInitSystem())
	w.AddSystemAt(ecs.StageCamera, NewOrbitCameraSystem())
	w.Update()

	cam, _ := ecs.Get(w, e, component.OrbitCameraComponent.Kind())
	if cam.Controller == nil || cam.Controller.Initialized() {
		t.Fatalf("camera without a target must stay uninitialized")
	}
}

func TestOrbitCameraSystemRotationButton(t *testing.T) {
	cases := []struct {
		name    string
		button  obj.MouseButton
		buttons [3]bool
		rotates bool
	}{
		{"secondary_held", obj.Secondary, [3]bool{false, true, false}, true},
		{"primary_held_secondary_configured", obj.Secondary, [3]bool{true, false, false}, false},
		{"middle_held", obj.Middle, [3]bool{false, false, true}, true},
		{"nothing_held", obj.Primary, [3]bool{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := obj.DefaultCameraConfig()
			cfg.RotationButton = c.button
			s := newScene(t, cfg)
			s.w.Update()

			s.input.in = component.Input{MouseDeltaX: 22.5, Buttons: c.buttons}
			s.w.Update()

			want := mgl32.Vec3{0, 10, 10}
			if c.rotates {
				want = mgl32.Vec3{10, 10, 0}
			}
			if got := s.cameraTransform(t).Position; !near(got, want) {
				t.Fatalf("expected camera at %v, got %v", want, got)
			}
		})
	}
}

func TestOrbitCameraSystemAppliesSensitivity(t *testing.T) {
	s := newScene(t, obj.DefaultCameraConfig())
	cam, _ := ecs.Get(s.w, s.camera, component.OrbitCameraComponent.Kind())
	cam.MouseSensitivity = 0.1
	cam.ScrollSensitivity = 0.1
	s.w.Update()

	// 225 px * 0.1 * 4 = 90 degrees; 10 notches * 0.1 * 4 = 4 height
	s.input.in = component.Input{MouseDeltaX: 225, ScrollDelta: 10, Buttons: [3]bool{false, true, false}}
	s.w.Update()

	if got := cam.Controller.Offset(); !near(got, mgl32.Vec3{10, 14, 0}) {
		t.Fatalf("unexpected offset %v", got)
	}
}

func TestCameraReadsTargetPositionOfSameFrame(t *testing.T) {
	s := newScene(t, obj.DefaultCameraConfig())
	s.w.Update()

	s.input.in = component.Input{MoveX: 1}
	for i := 0; i < 30; i++ {
		s.w.Update()

		target := s.targetPosition(t)
		tr := s.cameraTransform(t)
		if !near(tr.Position, target.Add(mgl32.Vec3{0, 10, 10})) {
			t.Fatalf("frame %d: camera %v lags target %v", i, tr.Position, target)
		}
	}

	if got := s.targetPosition(t); math.Abs(float64(got.X())-3) > 1e-3 {
		t.Fatalf("expected target to move 3 units in half a second, got %v", got)
	}
}

func TestTargetMovementWithPhysics(t *testing.T) {
	s := newScene(t, obj.DefaultCameraConfig())
	s.w.SetPhysicsWorld(ecs.NewPhysicsWorld(1))
	s.input.in = component.Input{MoveX: 1, MoveZ: 1}

	for i := 0; i < 60; i++ {
		s.w.Update()
	}

	got := s.targetPosition(t)
	want := float32(6 / math.Sqrt2)
	if math.Abs(float64(got.X()-want)) > 0.05 || math.Abs(float64(got.Z()-want)) > 0.05 || got.Y() != 0 {
		t.Fatalf("expected target near (%v, 0, %v), got %v", want, want, got)
	}
	if !ecs.Has(s.w, s.target, component.PhysicsBodyComponent.Kind()) {
		t.Fatalf("expected a physics body on the target")
	}
}

func TestInputSystemKeepsScriptedMove(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{MoveX: 0.5}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: "patrol.tengo"}); err != nil {
		t.Fatal(err)
	}

	NewInputSystem(&fixedInput{in: component.Input{MouseDeltaX: 3, MoveX: -1}}).Update(w)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if in.MouseDeltaX != 3 || in.MoveX != 0.5 {
		t.Fatalf("unexpected input %+v", in)
	}
}

func scriptWorld(t *testing.T, path string) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	for _, err := range []error{
		ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: path}),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return w, e
}

func TestTargetScriptSystem(t *testing.T) {
	w, e := scriptWorld(t, "patrol.tengo")
	s := NewTargetScriptSystem()

	s.Update(w)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if math.Abs(float64(in.MoveX)) > 1e-6 || math.Abs(float64(in.MoveZ)-1) > 1e-6 {
		t.Fatalf("expected patrol to start along +z, got (%v, %v)", in.MoveX, in.MoveZ)
	}
	script, _ := ecs.Get(w, e, component.ScriptComponent.Kind())
	if script.Elapsed <= 0 || script.Failed {
		t.Fatalf("unexpected script state %+v", script)
	}

	// a quarter lap later the patrol heads along -x
	script.Elapsed = 3
	s.Update(w)
	if math.Abs(float64(in.MoveX)+1) > 1e-6 || math.Abs(float64(in.MoveZ)) > 1e-6 {
		t.Fatalf("expected (-1, 0), got (%v, %v)", in.MoveX, in.MoveZ)
	}
}

func TestTargetScriptSystemFailure(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"compile_error", "move := func(t, x, z {", nil},
		{"not_a_map", "move := func(t, x, z) { return 1 }", nil},
		{"load_error", "", errors.New("boom")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, e := scriptWorld(t, "broken.tengo")
			s := NewTargetScriptSystem()
			s.load = func(string) ([]byte, error) {
				if c.err != nil {
					return nil, c.err
				}
				return []byte(c.src), nil
			}

			s.Update(w)

			script, _ := ecs.Get(w, e, component.ScriptComponent.Kind())
			if !script.Failed {
				t.Fatalf("expected script to be marked failed")
			}
			evts := w.Events().Drain()
			if len(evts) != 1 || evts[0].Type != ecs.EventTargetScriptFailed {
				t.Fatalf("expected a script failure event, got %v", evts)
			}

			s.Invalidate(w)
			if script.Failed {
				t.Fatalf("Invalidate should clear the failed flag")
			}
		})
	}
}

func TestConfigReloadSystem(t *testing.T) {
	s := newScene(t, obj.DefaultCameraConfig())
	s.w.Update()
	cam, _ := ecs.Get(s.w, s.camera, component.OrbitCameraComponent.Kind())

	events := make(chan string, 4)
	reload := NewConfigReloadSystem(events, nil, nil)

	t.Run("applies_and_validates", func(t *testing.T) {
		reload.loadCamera = func() (*prefabs.CameraSpec, error) {
			return prefabs.ParseCameraSpec([]byte("allow_rotation: false\nheight_above_target: -4\ninput:\n  mouse_sensitivity: 0.5\n"))
		}
		events <- "prefabs/camera.yaml"
		events <- "prefabs/notes.yaml"
		reload.Update(s.w)

		cfg := cam.Controller.Config()
		if cfg.AllowRotation || cfg.HeightAboveTarget != 0 {
			t.Fatalf("expected reloaded and clamped config, got %+v", cfg)
		}
		if cam.Controller.TurnSpeed() != 0 || cam.MouseSensitivity != 0.5 {
			t.Fatalf("expected effective turn speed 0 and sensitivity 0.5, got %v %v", cam.Controller.TurnSpeed(), cam.MouseSensitivity)
		}
		if !near(cam.Controller.Offset(), mgl32.Vec3{0, 10, 10}) {
			t.Fatalf("reload must not move the camera offset, got %v", cam.Controller.Offset())
		}
		evts := s.w.Events().Drain()
		if len(evts) != 1 || evts[0].Type != ecs.EventCameraConfigReloaded {
			t.Fatalf("expected one reload event, got %v", evts)
		}
	})

	t.Run("rejects_bad_spec", func(t *testing.T) {
		before := cam.Controller.Config()
		reload.loadCamera = func() (*prefabs.CameraSpec, error) {
			return prefabs.ParseCameraSpec([]byte("rotation_button: pinky\n"))
		}
		events <- "camera.yaml"
		reload.Update(s.w)

		if cam.Controller.Config() != before {
			t.Fatalf("rejected reload must keep the previous config")
		}
		evts := s.w.Events().Drain()
		if len(evts) != 1 || evts[0].Type != ecs.EventCameraConfigRejected {
			t.Fatalf("expected one rejection event, got %v", evts)
		}
	})

	t.Run("rejects_empty_document", func(t *testing.T) {
		cam.Controller.EditConfig(func(cfg *obj.CameraConfig) {
			cfg.AllowRotation = true
			cfg.TurnSpeed = 9
			cfg.MaxHeightAboveTarget = 80
		})
		before := cam.Controller.Config()

		for _, load := range []func() (*prefabs.CameraSpec, error){
			func() (*prefabs.CameraSpec, error) { return prefabs.ParseCameraSpec([]byte("")) },
			func() (*prefabs.CameraSpec, error) { return nil, nil },
		} {
			reload.loadCamera = load
			events <- "camera.yaml"
			reload.Update(s.w)

			if cam.Controller.Config() != before || cam.Controller.TurnSpeed() != 9 {
				t.Fatalf("empty document must keep the previous config, got %+v", cam.Controller.Config())
			}
			evts := s.w.Events().Drain()
			if len(evts) != 1 || evts[0].Type != ecs.EventCameraConfigRejected {
				t.Fatalf("expected one rejection event, got %v", evts)
			}
		}
	})

	t.Run("closed_channel", func(t *testing.T) {
		close(events)
		reload.Update(s.w)
		reload.Update(s.w)
	})
}
