package system

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/milk9111/topdowncam/ecs"
	"github.com/milk9111/topdowncam/ecs/component"
	"github.com/milk9111/topdowncam/prefabs"
)

// ConfigReloadSystem applies prefab file changes reported by a watcher
// without blocking the frame.
type ConfigReloadSystem struct {
	events <-chan string
	errors <-chan error

	loadCamera func() (*prefabs.CameraSpec, error)
	scripts    *TargetScriptSystem
}

func NewConfigReloadSystem(events <-chan string, errs <-chan error, scripts *TargetScriptSystem) *ConfigReloadSystem {
	return &ConfigReloadSystem{
		events:     events,
		errors:     errs,
		loadCamera: prefabs.LoadCameraSpec,
		scripts:    scripts,
	}
}

func (s *ConfigReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for {
		select {
		case path, ok := <-s.events:
			if !ok {
				s.events = nil
				continue
			}
			s.apply(w, path)
		case err, ok := <-s.errors:
			if !ok {
				s.errors = nil
				continue
			}
			slog.Warn("prefab watcher error", "err", err)
		default:
			return
		}
	}
}

func (s *ConfigReloadSystem) apply(w *ecs.World, path string) {
	switch {
	case prefabs.IsPrefab(path, prefabs.CameraFile):
		spec, err := s.loadCamera()
		if err == nil && spec == nil {
			err = prefabs.ErrEmptySpec
		}
		if err != nil {
			s.reject(w, path, err)
			return
		}
		cfg, err := spec.Config()
		if err != nil {
			s.reject(w, path, err)
			return
		}
		mouse, scroll := spec.Input.Sensitivity()

		ecs.ForEach(w, component.OrbitCameraComponent.Kind(), func(_ ecs.Entity, cam *component.OrbitCamera) {
			cam.Config = cfg
			cam.MouseSensitivity = mouse
			cam.ScrollSensitivity = scroll
			if cam.Controller != nil {
				cam.Controller.Reconfigure(cfg)
			}
		})
		slog.Info("camera config reloaded", "path", path)
		w.Events().Push(ecs.Event{Type: ecs.EventCameraConfigReloaded, Data: path})
	case s.scripts != nil && strings.EqualFold(filepath.Ext(path), ".tengo"):
		s.scripts.Invalidate(w)
		slog.Info("target scripts reloaded", "path", path)
	}
}

func (s *ConfigReloadSystem) reject(w *ecs.World, path string, err error) {
	slog.Error("camera config reload rejected", "path", path, "err", err)
	w.Events().Push(ecs.Event{Type: ecs.EventCameraConfigRejected, Data: err})
}
