package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/voxelsplace/shipvox/scene"
	"github.com/voxelsplace/shipvox/voxel"
)

// Config holds the application settings.
type Config struct {
	LogLevel      string   `json:"logLevel" mapstructure:"logLevel"`
	LogFormat     string   `json:"logFormat" mapstructure:"logFormat"`
	LogFile       string   `json:"logFile" mapstructure:"logFile"`
	FPS           int      `json:"fps" mapstructure:"fps"`
	CubeExtent    float64  `json:"cubeExtent" mapstructure:"cubeExtent"`
	CubeSize      float64  `json:"cubeSize" mapstructure:"cubeSize"`
	Materials     []string `json:"materials" mapstructure:"materials"`
	Background    string   `json:"background" mapstructure:"background"`
	ViewportsFile string   `json:"viewportsFile" mapstructure:"viewportsFile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")
	v.SetDefault("logFile", "")
	v.SetDefault("fps", 30)
	v.SetDefault("cubeExtent", 0.0)
	v.SetDefault("cubeSize", scene.DefaultCubeSize)
	v.SetDefault("materials", []string{"#ffffff", "#aaaaaa"})
	v.SetDefault("background", "#000000")
	v.SetDefault("viewportsFile", "")
}

// Load reads shipvox.{json,yaml,toml} from configDir if present, then
// SHIPVOX_* environment variables, on top of the defaults. An empty
// configDir skips the file.
func Load(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SHIPVOX")
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("shipvox")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", voxel.ErrConfiguration, c.FPS)
	}
	if c.CubeExtent < 0 {
		return fmt.Errorf("%w: cubeExtent must not be negative", voxel.ErrConfiguration)
	}
	if _, err := c.SceneMaterials(); err != nil {
		return err
	}
	if _, err := scene.ParseColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %v", voxel.ErrConfiguration, err)
	}
	return nil
}

// SceneMaterials converts the configured colours, base first.
func (c Config) SceneMaterials() ([]scene.Material, error) {
	if len(c.Materials) < voxel.MaterialCount {
		return nil, fmt.Errorf("%w: need %d materials, got %d", voxel.ErrConfiguration, voxel.MaterialCount, len(c.Materials))
	}
	names := []string{"base", "accent"}
	out := make([]scene.Material, len(c.Materials))
	for i, s := range c.Materials {
		color, err := scene.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("%w: material %d: %v", voxel.ErrConfiguration, i, err)
		}
		out[i] = scene.Material{Color: color}
		if i < len(names) {
			out[i].Name = names[i]
		}
	}
	return out, nil
}

// BackgroundColor returns the parsed background colour. It assumes Validate
// passed, as it does for every Config returned by Load; an unparsable colour
// yields black.
func (c Config) BackgroundColor() uint32 {
	color, _ := scene.ParseColor(c.Background)
	return color
}
