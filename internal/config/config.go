package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/catalog"
	"github.com/san-kum/sortviz/internal/engine"
)

const (
	DefaultSpeed   = 50
	DefaultTheme   = "default"
	DefaultDataDir = ".sortviz"
	DefaultLevel   = "info"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Algorithm engine.Algorithm `yaml:"algorithm"`
	Size      int              `yaml:"size"`
	Shape     arrays.Shape     `yaml:"shape"`
	Seed      int64            `yaml:"seed"`
	Speed     int              `yaml:"speed"`
	Language  catalog.Language `yaml:"language"`
	Theme     string           `yaml:"theme"`
	DataDir   string           `yaml:"data_dir"`
	LogLevel  string           `yaml:"log_level"`
	Pacing    PacingConfig     `yaml:"pacing"`
}

// PacingConfig is the speed range and the delays it maps to, in
// milliseconds.
type PacingConfig struct {
	SpeedMin   int `yaml:"speed_min"`
	SpeedMax   int `yaml:"speed_max"`
	DelayMinMS int `yaml:"delay_min_ms"`
	DelayMaxMS int `yaml:"delay_max_ms"`
}

func (p PacingConfig) Engine() engine.Pacing {
	return engine.Pacing{
		SpeedMin: p.SpeedMin,
		SpeedMax: p.SpeedMax,
		DelayMin: time.Duration(p.DelayMinMS) * time.Millisecond,
		DelayMax: time.Duration(p.DelayMaxMS) * time.Millisecond,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: engine.Bubble,
		Size:      arrays.DefaultSize,
		Shape:     arrays.Random,
		Speed:     DefaultSpeed,
		Language:  catalog.JavaScript,
		Theme:     DefaultTheme,
		DataDir:   DefaultDataDir,
		LogLevel:  DefaultLevel,
		Pacing: PacingConfig{
			SpeedMin:   engine.DefaultSpeedMin,
			SpeedMax:   engine.DefaultSpeedMax,
			DelayMinMS: int(engine.DefaultDelayMin / time.Millisecond),
			DelayMaxMS: int(engine.DefaultDelayMax / time.Millisecond),
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !c.Algorithm.Valid() {
		return fmt.Errorf("%w: algorithm %d", ErrInvalidConfig, uint8(c.Algorithm))
	}
	if c.Size < arrays.MinSize || c.Size > arrays.MaxSize {
		return fmt.Errorf("%w: size %d outside [%d, %d]", ErrInvalidConfig, c.Size, arrays.MinSize, arrays.MaxSize)
	}
	p := c.Pacing.Engine()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Speed < p.SpeedMin || c.Speed > p.SpeedMax {
		return fmt.Errorf("%w: speed %d outside [%d, %d]", ErrInvalidConfig, c.Speed, p.SpeedMin, p.SpeedMax)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: empty data_dir", ErrInvalidConfig)
	}
	return nil
}
