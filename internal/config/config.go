// Package config loads the pagerd configuration: built-in defaults, overlaid by a YAML file,
// overlaid by PAGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/BeatGlow/pager/display"
	"github.com/BeatGlow/pager/page"
)

// EnvPrefix prefixes all environment variables read by [Load].
const EnvPrefix = "PAGER_"

// Display drivers besides the hardware controllers of package display.
const (
	TerminalDriver    = "term"  // renders to the terminal
	FramebufferDriver = "fbdev" // kernel framebuffer device
)

// Page kinds.
const (
	KindText        = "text"
	KindUptime      = "uptime"
	KindClock       = "clock"
	KindImage       = "image"
	KindScreensaver = "screensaver"
	KindRain        = "rain"
)

var kinds = []string{KindText, KindUptime, KindClock, KindImage, KindScreensaver, KindRain}

// Config is the complete pagerd configuration.
type Config struct {
	Display   DisplayConfig   `yaml:"display" envPrefix:"DISPLAY_"`
	Rotation  RotationConfig  `yaml:"rotation" envPrefix:"ROTATION_"`
	MQTT      MQTTConfig      `yaml:"mqtt" envPrefix:"MQTT_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"OTEL_"`
	Metrics   MetricsConfig   `yaml:"metrics" envPrefix:"METRICS_"`
	Pages     []PageConfig    `yaml:"pages"`
}

// DisplayConfig selects the display and how it is connected.
type DisplayConfig struct {
	Driver   string    `yaml:"driver" env:"DRIVER"` // ssd1306, ssd1305, sh1106, fbdev or term
	Width    int       `yaml:"width" env:"WIDTH"`
	Height   int       `yaml:"height" env:"HEIGHT"`
	Rotation string    `yaml:"rotation" env:"ROTATION"` // 0, 90, 180 or 270
	Contrast uint8     `yaml:"contrast" env:"CONTRAST"`
	Bus      string    `yaml:"bus" env:"BUS"`       // i2c or spi
	Device   string    `yaml:"device" env:"DEVICE"` // framebuffer device of the fbdev driver
	I2C      I2CConfig `yaml:"i2c" envPrefix:"I2C_"`
	SPI      SPIConfig `yaml:"spi" envPrefix:"SPI_"`
}

// I2CConfig of an I²C connected display.
type I2CConfig struct {
	Bus     int   `yaml:"bus" env:"BUS"` // -1 for the first bus found
	Address uint8 `yaml:"address" env:"ADDRESS"`
}

// SPIConfig of an SPI connected display.
type SPIConfig struct {
	Bus    int    `yaml:"bus" env:"BUS"`
	Device int    `yaml:"device" env:"DEVICE"`
	Speed  uint32 `yaml:"speed" env:"SPEED"` // Hz
	DC     string `yaml:"dc" env:"DC"`       // GPIO name of the data/command pin
	Reset  string `yaml:"reset" env:"RESET"` // GPIO name of the reset pin
}

// RotationConfig tunes the page rotator.
type RotationConfig struct {
	DefaultDuration time.Duration `yaml:"default_duration" env:"DEFAULT_DURATION"`
	Splash          time.Duration `yaml:"splash" env:"SPLASH"`
	SkipErrors      bool          `yaml:"skip_errors" env:"SKIP_ERRORS"`
}

// MQTTConfig enables navigation over MQTT when Broker is set.
type MQTTConfig struct {
	Broker   string `yaml:"broker" env:"BROKER"` // host:port or URL
	Topic    string `yaml:"topic" env:"TOPIC"`
	ClientID string `yaml:"client_id" env:"CLIENT_ID"` // random when empty
	Username string `yaml:"username" env:"USERNAME"`
	Password string `yaml:"password" env:"PASSWORD"`
	QoS      byte   `yaml:"qos" env:"QOS"`
}

// TelemetryConfig enables OTLP trace export.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" env:"ENABLED"`
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen" env:"LISTEN"` // e.g. :9100
	Path   string `yaml:"path" env:"PATH"`
}

// PageConfig describes one page of the rotation.
type PageConfig struct {
	Kind     string        `yaml:"kind"`
	Text     string        `yaml:"text,omitempty"`
	Image    string        `yaml:"image,omitempty"` // BMP file, built-in image when empty
	Align    string        `yaml:"align,omitempty"`
	FontSize float64       `yaml:"font_size,omitempty"` // Go Mono at this size, bitmap font when zero
	FPS      uint8         `yaml:"fps,omitempty"`
	Seed     uint64        `yaml:"seed,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
}

// Default returns the built-in configuration: an SSD1306 128×64 on the first I²C bus showing
// the demo pages.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Driver:   "ssd1306",
			Width:    128,
			Height:   64,
			Rotation: "0",
			Contrast: 0x7f,
			Bus:      "i2c",
			Device:   "/dev/fb1",
			I2C: I2CConfig{
				Bus:     -1,
				Address: 0x3c,
			},
			SPI: SPIConfig{
				Speed: 8000000,
				DC:    "GPIO24",
				Reset: "GPIO25",
			},
		},
		Rotation: RotationConfig{
			DefaultDuration: 5 * time.Second,
			Splash:          500 * time.Millisecond,
		},
		MQTT: MQTTConfig{
			Topic: "pager/command",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "pagerd",
		},
		Metrics: MetricsConfig{
			Path: "/metrics",
		},
		Pages: []PageConfig{
			{Kind: KindText, Text: "Hello, World!"},
			{Kind: KindScreensaver},
			{Kind: KindUptime, FPS: 1},
			{Kind: KindImage, Align: "right bottom", Duration: time.Second},
			{Kind: KindRain, Seed: 0xda7a, Duration: 10 * time.Second},
		},
	}
}

// Load returns the default configuration overlaid by the YAML file at path, if path is not
// empty, and by the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read: %w", err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values pagerd cannot work with.
func (cfg *Config) Validate() error {
	var errs []error

	d := cfg.Display
	hardware := slices.Contains(display.Drivers(), d.Driver)
	if !hardware && d.Driver != TerminalDriver && d.Driver != FramebufferDriver {
		errs = append(errs, fmt.Errorf("display: unknown driver %q", d.Driver))
	}
	if d.Width <= 0 || d.Height <= 0 {
		errs = append(errs, fmt.Errorf("display: invalid size %dx%d", d.Width, d.Height))
	}
	if _, err := display.ParseRotation(d.Rotation); err != nil {
		errs = append(errs, err)
	}
	if hardware && d.Bus != "i2c" && d.Bus != "spi" {
		errs = append(errs, fmt.Errorf("display: unknown bus %q", d.Bus))
	}

	if cfg.Rotation.DefaultDuration <= 0 {
		errs = append(errs, errors.New("rotation: default duration must be positive"))
	}
	if cfg.MQTT.QoS > 2 {
		errs = append(errs, fmt.Errorf("mqtt: invalid qos %d", cfg.MQTT.QoS))
	}

	if cfg.Metrics.Listen != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics: invalid path %q", cfg.Metrics.Path))
	}

	if len(cfg.Pages) == 0 {
		errs = append(errs, errors.New("pages: none configured"))
	}
	for i, p := range cfg.Pages {
		if !slices.Contains(kinds, p.Kind) {
			errs = append(errs, fmt.Errorf("pages[%d]: unknown kind %q", i, p.Kind))
		}
		if p.Duration < 0 {
			errs = append(errs, fmt.Errorf("pages[%d]: negative duration", i))
		}
		if _, _, err := page.ParseAlignment(p.Align); err != nil {
			errs = append(errs, fmt.Errorf("pages[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
