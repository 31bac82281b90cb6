package impulse2d

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bramblekeep/impulse2d/vec"
)

// Config holds the tunables a World is built from. Zero-value Config is
// not meaningful on its own; use DefaultConfig or LoadConfig.
type Config struct {
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"`

	Iterations int `yaml:"iterations"`

	SleepVelocityThreshold float64 `yaml:"sleep_velocity_threshold"`
	SleepDuration          float64 `yaml:"sleep_duration"`
}

// Gravity is the configured gravity vector.
func (c Config) Gravity() vec.Vec2 { return vec.Vec2{X: c.GravityX, Y: c.GravityY} }

// DefaultConfig returns the engine's default tunables: Earth-ish gravity
// pulling down the Y axis, 10 solver iterations per step and sleeping
// disabled (spec.md §9's invariants hold with or without sleeping; it is
// an opt-in convenience, not a required behavior).
func DefaultConfig() Config {
	return Config{
		GravityY:   -10,
		Iterations: 10,
	}
}

// LoadConfig reads a yaml file and overlays it onto DefaultConfig,
// returning an error if the file cannot be read or parsed. A parse
// failure is also logged; a read failure is only returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("impulse2d: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Error("impulse2d: config parse failed", "path", path, "err", err)
		return cfg, fmt.Errorf("impulse2d: parse config %s: %w", path, err)
	}
	return cfg, nil
}
