package prefabs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnimationSpec describes a spritesheet and its clips.
type AnimationSpec struct {
	Name    string                      `yaml:"name"`
	Sheet   string                      `yaml:"sheet"`
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
	Current string                      `yaml:"current"`
}

// AnimationDefSpec is a single clip. Events maps a 0-based frame index to the
// event names fired when the clip enters that frame.
type AnimationDefSpec struct {
	Name       string           `yaml:"name"`
	Row        int              `yaml:"row"`
	ColStart   int              `yaml:"col_start"`
	FrameCount int              `yaml:"frame_count"`
	FrameW     int              `yaml:"frame_w"`
	FrameH     int              `yaml:"frame_h"`
	FPS        float64          `yaml:"fps"`
	Loop       bool             `yaml:"loop"`
	Events     map[int][]string `yaml:"events"`
}

// BindingSpec maps animation event names to scripted callbacks.
type BindingSpec struct {
	Name   string             `yaml:"name"`
	Events []EventBindingSpec `yaml:"events"`
}

type EventBindingSpec struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadFile decodes a spec from an arbitrary path on disk.
func LoadFile[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("prefabs: read %s: %w", path, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}

	return spec, nil
}

func LoadAnimationSpec(filename string) (*AnimationSpec, error) {
	spec, err := LoadSpec[AnimationSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func LoadBindingSpec(filename string) (*BindingSpec, error) {
	spec, err := LoadSpec[BindingSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks that every clip has frames and that event frames fall
// inside the clip.
func (s *AnimationSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("nil animation spec")
	}
	for key, def := range s.Defs {
		if def.FrameCount <= 0 {
			return fmt.Errorf("clip %q: frame_count must be positive", key)
		}
		for frame := range def.Events {
			if frame < 0 || frame >= def.FrameCount {
				return fmt.Errorf("clip %q: event frame %d out of range [0,%d)", key, frame, def.FrameCount)
			}
		}
	}
	if s.Current != "" {
		if _, ok := s.Defs[s.Current]; !ok {
			return fmt.Errorf("current clip %q not defined", s.Current)
		}
	}
	return nil
}
