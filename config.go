package physics

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

// Config holds the tunables of an Engine. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	/// Coefficient of restitution used by the collision impulse.
	Restitution vect.Float `toml:"restitution" yaml:"restitution"`
	/// Separation speed added to every collision impulse so resolved
	/// contacts do not re-penetrate on the next sub-step.
	MinSpeed vect.Float `toml:"min_speed" yaml:"min_speed"`
	/// Remaining step time below which a penetration is treated as the
	/// time of impact instead of being bisected further.
	TimeTolerance vect.Float `toml:"time_tolerance" yaml:"time_tolerance"`
	/// Upper bound on advance/rollback iterations per Step.
	MaxSubSteps int `toml:"max_sub_steps" yaml:"max_sub_steps"`

	MaxContacts int `toml:"max_contacts" yaml:"max_contacts"`
	/// Upper bound on set changes of the contact force solver, 0 means no limit.
	MaxPivots     int        `toml:"max_pivots" yaml:"max_pivots"`
	SolverEpsilon vect.Float `toml:"solver_epsilon" yaml:"solver_epsilon"`

	MaxShapes     int `toml:"max_shapes" yaml:"max_shapes"`
	MaxObjects    int `toml:"max_objects" yaml:"max_objects"`
	MaxHeightMaps int `toml:"max_height_maps" yaml:"max_height_maps"`

	/// World height of a full red channel in a height map image.
	HeightScale vect.Float `toml:"height_scale" yaml:"height_scale"`
}

func DefaultConfig() Config {
	return Config{
		Restitution:   0.2,
		MinSpeed:      0.05,
		TimeTolerance: 1e-4,
		MaxSubSteps:   32,
		MaxContacts:   32,
		MaxPivots:     1000,
		SolverEpsilon: 1e-6,
		MaxShapes:     128,
		MaxObjects:    128,
		MaxHeightMaps: 2,
		HeightScale:   10,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Restitution < 0 || c.Restitution > 1:
		return fmt.Errorf("%w: restitution %v outside [0, 1]", ErrInvalidConfig, c.Restitution)
	case c.MinSpeed < 0:
		return fmt.Errorf("%w: negative min_speed", ErrInvalidConfig)
	case c.TimeTolerance <= 0:
		return fmt.Errorf("%w: time_tolerance must be positive", ErrInvalidConfig)
	case c.MaxSubSteps <= 0:
		return fmt.Errorf("%w: max_sub_steps must be positive", ErrInvalidConfig)
	case c.MaxContacts <= 0:
		return fmt.Errorf("%w: max_contacts must be positive", ErrInvalidConfig)
	case c.MaxPivots < 0:
		return fmt.Errorf("%w: negative max_pivots", ErrInvalidConfig)
	case c.SolverEpsilon <= 0:
		return fmt.Errorf("%w: solver_epsilon must be positive", ErrInvalidConfig)
	case c.MaxShapes < 0 || c.MaxObjects < 0 || c.MaxHeightMaps < 0:
		return fmt.Errorf("%w: negative capacity", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a TOML or YAML file (picked by extension) on top of
// DefaultConfig, so files only need to name the values they change.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()
	if err := DecodeFile(data, ext, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeFile strictly decodes TOML or YAML data into v, picking the format
// from the file extension ext. Unknown keys are errors and empty data leaves
// v untouched.
func DecodeFile(data []byte, ext string, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml", "":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(v)
	default:
		return fmt.Errorf("%w: unsupported file type %q", ErrInvalidConfig, ext)
	}
}

// TOML renders the config, used by the CLI to print defaults.
func (c Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
