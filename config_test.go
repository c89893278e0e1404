package physics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MonsterRestart/Fun-sub000/vect"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, vect.Float(0.2), cfg.Restitution)
	assert.Equal(t, vect.Float(0.05), cfg.MinSpeed)
	assert.Equal(t, 32, cfg.MaxSubSteps)
	assert.Equal(t, 32, cfg.MaxContacts)
	assert.Equal(t, 128, cfg.MaxShapes)
	assert.Equal(t, 128, cfg.MaxObjects)
	assert.Equal(t, 2, cfg.MaxHeightMaps)
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"toml", ".toml", "restitution = 0.5\nmax_contacts = 64\n"},
		{"yaml", ".yaml", "restitution: 0.5\nmax_contacts: 64\n"},
		{"yml", "yml", "restitution: 0.5\nmax_contacts: 64\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, vect.Float(0.5), cfg.Restitution)
			assert.Equal(t, 64, cfg.MaxContacts)
			// untouched values keep their defaults
			assert.Equal(t, DefaultConfig().MinSpeed, cfg.MinSpeed)
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"unknown toml key", ".toml", "gravity = 9.8\n"},
		{"unknown yaml key", ".yaml", "gravity: 9.8\n"},
		{"bad syntax", ".toml", "restitution = = 1\n"},
		{"unsupported type", ".json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), tt.ext)
			assert.Error(t, err)
		})
	}

	_, err := ParseConfig([]byte("restitution = 2.0\n"), ".toml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDecodeFile(t *testing.T) {
	type scene struct {
		Name   string `toml:"name" yaml:"name"`
		Config Config `toml:"config" yaml:"config"`
	}
	tests := []struct {
		ext  string
		data string
	}{
		{".toml", "name = \"drop\"\n[config]\nmax_contacts = 8\n"},
		{".YAML", "name: drop\nconfig:\n  max_contacts: 8\n"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			sc := scene{Config: DefaultConfig()}
			require.NoError(t, DecodeFile([]byte(tt.data), tt.ext, &sc))
			assert.Equal(t, "drop", sc.Name)
			assert.Equal(t, 8, sc.Config.MaxContacts)
			assert.Equal(t, DefaultConfig().Restitution, sc.Config.Restitution)
		})
	}

	sc := scene{}
	assert.Error(t, DecodeFile([]byte("name = \"x\"\nextra = 1\n"), ".toml", &sc))
	assert.Error(t, DecodeFile([]byte("{}"), ".json", &sc))
}

func TestParseEmptyConfig(t *testing.T) {
	cfg, err := ParseConfig(nil, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeTolerance = 2e-4
	cfg.MaxPivots = 10

	data, err := cfg.TOML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
