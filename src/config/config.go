package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NumFloors        = 6
	WeightLimit      = 8
	DoorDelay        = 1 * time.Second
	IdleDelay        = 3 * time.Second
	TickInterval     = time.Second / 32
	TickStep         = 1.0 / 32
	SensorPollRate   = 25 * time.Millisecond
	BeaconInterval   = 500 * time.Millisecond
	DefaultLogLevel  = "info"
	DefaultEnvFile   = ".env"
	maxTickStepError = 1e-9
)

var (
	ErrInvalidFloors      = errors.New("num_floors must be positive")
	ErrInvalidWeightLimit = errors.New("weight_limit must be positive")
	ErrInvalidDuration    = errors.New("durations must be positive")
	ErrInvalidTickStep    = errors.New("tick_step must divide one floor into a whole number of ticks")
	ErrInvalidLogLevel    = errors.New("unknown log_level")
)

type Config struct {
	NumFloors      int           `yaml:"num_floors"`
	WeightLimit    int           `yaml:"weight_limit"`
	DoorDelay      time.Duration `yaml:"door_delay"`
	IdleDelay      time.Duration `yaml:"idle_delay"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	TickStep       float64       `yaml:"tick_step"`
	SensorPollRate time.Duration `yaml:"sensor_poll_rate"`
	PanelAddr      string        `yaml:"panel_addr"`
	BeaconPort     int           `yaml:"beacon_port"`
	BeaconInterval time.Duration `yaml:"beacon_interval"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
}

func Default() Config {
	return Config{
		NumFloors:      NumFloors,
		WeightLimit:    WeightLimit,
		DoorDelay:      DoorDelay,
		IdleDelay:      IdleDelay,
		TickInterval:   TickInterval,
		TickStep:       TickStep,
		SensorPollRate: SensorPollRate,
		BeaconInterval: BeaconInterval,
		LogLevel:       DefaultLogLevel,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// LoadEnv applies ELEVATOR_* overrides from the env file at path and the process environment.
// Process environment wins over the file. A missing file is not an error.
func (c *Config) LoadEnv(path string) error {
	vars := map[string]string{}
	if path != "" {
		fileVars, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}
	return c.ApplyEnv(vars)
}

var envKeys = []string{
	"ELEVATOR_FLOORS",
	"ELEVATOR_WEIGHT_LIMIT",
	"ELEVATOR_DOOR_DELAY",
	"ELEVATOR_IDLE_DELAY",
	"ELEVATOR_TICK_INTERVAL",
	"ELEVATOR_TICK_STEP",
	"ELEVATOR_PANEL_ADDR",
	"ELEVATOR_BEACON_PORT",
	"ELEVATOR_LOG_LEVEL",
	"ELEVATOR_LOG_FILE",
}

// ApplyEnv overrides fields from ELEVATOR_* keys in vars. Unknown keys are ignored.
func (c *Config) ApplyEnv(vars map[string]string) error {
	for key, v := range vars {
		var err error
		switch key {
		case "ELEVATOR_FLOORS":
			c.NumFloors, err = strconv.Atoi(v)
		case "ELEVATOR_WEIGHT_LIMIT":
			c.WeightLimit, err = strconv.Atoi(v)
		case "ELEVATOR_DOOR_DELAY":
			c.DoorDelay, err = time.ParseDuration(v)
		case "ELEVATOR_IDLE_DELAY":
			c.IdleDelay, err = time.ParseDuration(v)
		case "ELEVATOR_TICK_INTERVAL":
			c.TickInterval, err = time.ParseDuration(v)
		case "ELEVATOR_TICK_STEP":
			c.TickStep, err = strconv.ParseFloat(v, 64)
		case "ELEVATOR_PANEL_ADDR":
			c.PanelAddr = v
		case "ELEVATOR_BEACON_PORT":
			c.BeaconPort, err = strconv.Atoi(v)
		case "ELEVATOR_LOG_LEVEL":
			c.LogLevel = v
		case "ELEVATOR_LOG_FILE":
			c.LogFile = v
		}
		if err != nil {
			return fmt.Errorf("%s=%q: %w", key, v, err)
		}
	}
	return nil
}

func (c Config) Validate() error {
	if c.NumFloors <= 0 {
		return ErrInvalidFloors
	}
	if c.WeightLimit <= 0 {
		return ErrInvalidWeightLimit
	}
	if c.DoorDelay <= 0 || c.IdleDelay <= 0 || c.TickInterval <= 0 || c.SensorPollRate <= 0 || c.BeaconInterval <= 0 {
		return ErrInvalidDuration
	}
	if c.TickStep <= 0 || c.TickStep > 1 {
		return ErrInvalidTickStep
	}
	ticks := 1 / c.TickStep
	if math.Abs(ticks-math.Round(ticks)) > maxTickStepError*ticks {
		return ErrInvalidTickStep
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
