package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Vec3 is a plain triple used by config files.
type Vec3 struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	Z float64 `json:"z" yaml:"z" toml:"z"`
}

// ModelSpec describes one model asset and where it spawns.
type ModelSpec struct {
	Path     string  `json:"path" yaml:"path" toml:"path"`
	Position Vec3    `json:"position" yaml:"position" toml:"position"`
	Rotation Vec3    `json:"rotation" yaml:"rotation" toml:"rotation"`
	Scale    float64 `json:"scale" yaml:"scale" toml:"scale"`
	// Nodes is used by the procedural source when no model file is loaded.
	Nodes int `json:"nodes" yaml:"nodes" toml:"nodes"`
}

// Camera holds the fixed viewpoint of the vignette.
type Camera struct {
	Position Vec3    `json:"position" yaml:"position" toml:"position"`
	Target   Vec3    `json:"target" yaml:"target" toml:"target"`
	Fovy     float64 `json:"fovy" yaml:"fovy" toml:"fovy"`
}

// Trajectory tunes the throw animation.
type Trajectory struct {
	// HalfGravity switches the vertical term from g*t^2 to g*t^2/2.
	HalfGravity bool `json:"half_gravity" yaml:"half_gravity" toml:"half_gravity"`
}

// Audio toggles synthesized feedback cues.
type Audio struct {
	Enabled bool    `json:"enabled" yaml:"enabled" toml:"enabled"`
	Volume  float64 `json:"volume" yaml:"volume" toml:"volume"`
}

// Scene is the file-backed part of the configuration.
type Scene struct {
	Background string     `json:"background" yaml:"background" toml:"background"`
	Creature   ModelSpec  `json:"creature" yaml:"creature" toml:"creature"`
	Ball       ModelSpec  `json:"ball" yaml:"ball" toml:"ball"`
	Camera     Camera     `json:"camera" yaml:"camera" toml:"camera"`
	Trajectory Trajectory `json:"trajectory" yaml:"trajectory" toml:"trajectory"`
	Audio      Audio      `json:"audio" yaml:"audio" toml:"audio"`
	Seed       int64      `json:"seed" yaml:"seed" toml:"seed"`
	LogLevel   string     `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// DefaultScene returns the layout of the original vignette.
func DefaultScene() Scene {
	return Scene{
		Background: filepath.Join("assets", "textures", "forest-background.jpg"),
		Creature: ModelSpec{
			Path:     filepath.Join("assets", "models", "creature.glb"),
			Position: Vec3{X: 0, Y: 0.5, Z: -1},
			Rotation: Vec3{Y: CreatureSpawnRotationY},
			Scale:    1,
			Nodes:    3,
		},
		Ball: ModelSpec{
			Path:     filepath.Join("assets", "models", "ball.glb"),
			Position: Vec3{X: 0, Y: -0.5, Z: 2},
			Rotation: Vec3{Y: BallSpawnRotationY},
			Scale:    1,
			Nodes:    2,
		},
		Camera: Camera{
			Position: Vec3{X: 0, Y: 1, Z: 5},
			Target:   Vec3{},
			Fovy:     CameraFovy,
		},
		Audio:    Audio{Enabled: true, Volume: 0.4},
		LogLevel: "info",
	}
}

// Load reads a scene file. The format is picked by extension: .json is JSON,
// .toml is TOML, anything else is YAML. Missing fields keep their defaults.
func Load(path string) (Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, errors.Wrapf(err, "read scene config %s", path)
	}

	scene := DefaultScene()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&scene); err != nil {
			return Scene{}, errors.Wrapf(err, "decode json scene config %s", path)
		}
	case ".toml":
		md, err := toml.Decode(string(raw), &scene)
		if err != nil {
			return Scene{}, errors.Wrapf(err, "decode toml scene config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Scene{}, errors.Errorf("decode toml scene config %s: unknown field %s", path, undecoded[0])
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&scene); err != nil {
			return Scene{}, errors.Wrapf(err, "decode yaml scene config %s", path)
		}
	}

	if err := scene.Validate(); err != nil {
		return Scene{}, errors.Wrapf(err, "invalid scene config %s", path)
	}
	return scene, nil
}

// Validate rejects values the vignette cannot render.
func (s Scene) Validate() error {
	if s.Creature.Scale <= 0 || s.Ball.Scale <= 0 {
		return errors.New("model scale must be positive")
	}
	if s.Camera.Fovy <= 0 || s.Camera.Fovy >= 180 {
		return errors.Errorf("camera fovy %.1f out of range (0, 180)", s.Camera.Fovy)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return errors.Errorf("audio volume %.2f out of range [0, 1]", s.Audio.Volume)
	}
	if s.Creature.Nodes < 0 || s.Ball.Nodes < 0 {
		return errors.New("procedural node count must not be negative")
	}
	return nil
}
