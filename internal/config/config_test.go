package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "pager.yaml")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Driver != "ssd1306" || cfg.Display.Width != 128 || cfg.Display.Height != 64 {
		t.Errorf("expected ssd1306 128x64, got %s %dx%d", cfg.Display.Driver, cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.I2C.Address != 0x3c {
		t.Errorf("expected I2C address 0x3c, got %#02x", cfg.Display.I2C.Address)
	}
	if cfg.Rotation.DefaultDuration != 5*time.Second {
		t.Errorf("expected default duration 5s, got %s", cfg.Rotation.DefaultDuration)
	}
	if n := len(cfg.Pages); n != 5 {
		t.Fatalf("expected 5 demo pages, got %d", n)
	}
	if d := cfg.Pages[4].Duration; d != 10*time.Second {
		t.Errorf("expected rain page to last 10s, got %s", d)
	}
}

func TestLoadFile(t *testing.T) {
	name := writeConfig(t, `
display:
  driver: sh1106
  rotation: "180"
  i2c:
    address: 0x3d
rotation:
  default_duration: 2s
  skip_errors: true
mqtt:
  broker: localhost:1883
pages:
  - kind: text
    text: "Hi"
    font_size: 14
  - kind: image
    image: logo.bmp
    align: left top
    duration: 1500ms
`)
	cfg, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Driver != "sh1106" {
		t.Errorf("expected driver sh1106, got %q", cfg.Display.Driver)
	}
	if cfg.Display.Width != 128 {
		t.Errorf("expected default width to survive, got %d", cfg.Display.Width)
	}
	if cfg.Display.I2C.Address != 0x3d {
		t.Errorf("expected I2C address 0x3d, got %#02x", cfg.Display.I2C.Address)
	}
	if cfg.Rotation.DefaultDuration != 2*time.Second || !cfg.Rotation.SkipErrors {
		t.Errorf("unexpected rotation config %+v", cfg.Rotation)
	}
	if cfg.MQTT.Broker != "localhost:1883" || cfg.MQTT.Topic != "pager/command" {
		t.Errorf("unexpected mqtt config %+v", cfg.MQTT)
	}
	if n := len(cfg.Pages); n != 2 {
		t.Fatalf("expected pages replaced by the 2 configured ones, got %d", n)
	}
	if p := cfg.Pages[1]; p.Duration != 1500*time.Millisecond || p.Align != "left top" {
		t.Errorf("unexpected image page %+v", p)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PAGER_DISPLAY_DRIVER", "term")
	t.Setenv("PAGER_DISPLAY_I2C_ADDRESS", "61")
	t.Setenv("PAGER_ROTATION_DEFAULT_DURATION", "750ms")
	t.Setenv("PAGER_MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("PAGER_OTEL_ENABLED", "true")
	t.Setenv("PAGER_METRICS_LISTEN", ":9100")

	name := writeConfig(t, "display:\n  driver: ssd1305\n")
	cfg, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Driver != TerminalDriver {
		t.Errorf("expected environment to override the file, got driver %q", cfg.Display.Driver)
	}
	if cfg.Display.I2C.Address != 61 {
		t.Errorf("expected I2C address 61, got %d", cfg.Display.I2C.Address)
	}
	if cfg.Rotation.DefaultDuration != 750*time.Millisecond {
		t.Errorf("expected 750ms, got %s", cfg.Rotation.DefaultDuration)
	}
	if cfg.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("unexpected broker %q", cfg.MQTT.Broker)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("expected telemetry enabled")
	}
	if cfg.Metrics.Listen != ":9100" || cfg.Metrics.Path != "/metrics" {
		t.Errorf("unexpected metrics config %+v", cfg.Metrics)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		Name    string
		Content string
		Want    string
	}{
		{"driver", "display:\n  driver: st7789\n", `unknown driver "st7789"`},
		{"size", "display:\n  width: 0\n", "invalid size"},
		{"rotation", "display:\n  rotation: 45\n", "invalid rotation"},
		{"bus", "display:\n  bus: usb\n", `unknown bus "usb"`},
		{"duration", "rotation:\n  default_duration: 0s\n", "default duration"},
		{"no pages", "pages: []\n", "none configured"},
		{"kind", "pages:\n  - kind: video\n", `unknown kind "video"`},
		{"align", "pages:\n  - kind: image\n    align: diagonal\n", "invalid alignment"},
		{"qos", "mqtt:\n  qos: 3\n", "invalid qos"},
		{"metrics path", "metrics:\n  listen: \":9100\"\n  path: metrics\n", "invalid path"},
		{"syntax", "display: [\n", "parse"},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			_, err := Load(writeConfig(it, test.Content))
			if err == nil {
				it.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.Want) {
				it.Errorf("expected error containing %q, got %q", test.Want, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
