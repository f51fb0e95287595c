package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/topdowncam/obj"
	"gopkg.in/yaml.v3"
)

const (
	CameraFile = "camera.yaml"
	TargetFile = "target.yaml"
)

var (
	ErrUnknownMouseButton = errors.New("prefabs: unknown mouse button")
	// ErrEmptySpec is returned for a document with no fields, e.g. a file
	// caught between truncate and write.
	ErrEmptySpec = errors.New("prefabs: empty spec document")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := decodeSpec(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func decodeSpec(data []byte, out any) error {
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) == 0 {
		return ErrEmptySpec
	}
	return yaml.Unmarshal(data, out)
}

type TransformSpec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

type InputSpec struct {
	MouseSensitivity  float32 `yaml:"mouse_sensitivity"`
	ScrollSensitivity float32 `yaml:"scroll_sensitivity"`
}

// CameraSpec is the YAML form of obj.CameraConfig. Pointer fields tell
// "missing" apart from an explicit zero or false.
type CameraSpec struct {
	Name   string `yaml:"name"`
	Target string `yaml:"target"`

	AllowRotation *bool `yaml:"allow_rotation"`
	AllowZoom     *bool `yaml:"allow_zoom"`
	InvertZoom    *bool `yaml:"invert_zoom"`

	TurnSpeed *float32 `yaml:"turn_speed"`
	ZoomSpeed *float32 `yaml:"zoom_speed"`

	HeightAboveTarget    *float32 `yaml:"height_above_target"`
	DistanceFromTarget   *float32 `yaml:"distance_from_target"`
	MinHeightAboveTarget *float32 `yaml:"min_height_above_target"`
	MaxHeightAboveTarget *float32 `yaml:"max_height_above_target"`

	RotationButton string `yaml:"rotation_button"`

	Input InputSpec `yaml:"input"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParseCameraSpec decodes a camera spec from raw YAML.
func ParseCameraSpec(data []byte) (*CameraSpec, error) {
	var spec CameraSpec
	if err := decodeSpec(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal camera spec: %w", err)
	}
	return &spec, nil
}

// Config converts the spec to a validated camera config, filling missing
// fields from obj.DefaultCameraConfig.
func (s *CameraSpec) Config() (obj.CameraConfig, error) {
	cfg := obj.DefaultCameraConfig()
	if s == nil {
		return cfg, nil
	}

	setBool(&cfg.AllowRotation, s.AllowRotation)
	setBool(&cfg.AllowZoom, s.AllowZoom)
	setBool(&cfg.InvertZoom, s.InvertZoom)
	setFloat(&cfg.TurnSpeed, s.TurnSpeed)
	setFloat(&cfg.ZoomSpeed, s.ZoomSpeed)
	setFloat(&cfg.HeightAboveTarget, s.HeightAboveTarget)
	setFloat(&cfg.DistanceFromTarget, s.DistanceFromTarget)
	setFloat(&cfg.MinHeightAboveTarget, s.MinHeightAboveTarget)
	setFloat(&cfg.MaxHeightAboveTarget, s.MaxHeightAboveTarget)

	if s.RotationButton != "" {
		b, ok := obj.ParseMouseButton(s.RotationButton)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", ErrUnknownMouseButton, s.RotationButton)
		}
		cfg.RotationButton = b
	}

	cfg.Validate()
	return cfg, nil
}

// NewCameraSpec builds a fully populated spec from a config, e.g. for
// copying the live settings as YAML.
func NewCameraSpec(name, target string, cfg obj.CameraConfig, in InputSpec) *CameraSpec {
	return &CameraSpec{
		Name:                 name,
		Target:               target,
		AllowRotation:        &cfg.AllowRotation,
		AllowZoom:            &cfg.AllowZoom,
		InvertZoom:           &cfg.InvertZoom,
		TurnSpeed:            &cfg.TurnSpeed,
		ZoomSpeed:            &cfg.ZoomSpeed,
		HeightAboveTarget:    &cfg.HeightAboveTarget,
		DistanceFromTarget:   &cfg.DistanceFromTarget,
		MinHeightAboveTarget: &cfg.MinHeightAboveTarget,
		MaxHeightAboveTarget: &cfg.MaxHeightAboveTarget,
		RotationButton:       cfg.RotationButton.String(),
		Input:                in,
	}
}

// Marshal encodes the spec as YAML.
func (s *CameraSpec) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal camera spec: %w", err)
	}
	return data, nil
}

// Sensitivity returns the input scaling with 0.1 defaults.
func (s InputSpec) Sensitivity() (mouse, scroll float32) {
	mouse, scroll = s.MouseSensitivity, s.ScrollSensitivity
	if mouse <= 0 {
		mouse = 0.1
	}
	if scroll <= 0 {
		scroll = 0.1
	}
	return mouse, scroll
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}

type TargetSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	MoveSpeed float32       `yaml:"move_speed"`
	Radius    float32       `yaml:"radius"`
	Damping   float64       `yaml:"damping"`
	Script    string        `yaml:"script"`
}

func LoadTargetSpec() (*TargetSpec, error) {
	spec, err := LoadSpec[TargetSpec](TargetFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
