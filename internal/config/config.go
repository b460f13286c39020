package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the demo viewer configuration
type Settings struct {
	Window  WindowSettings  `toml:"window"`
	Camera  CameraSettings  `toml:"camera"`
	Assets  AssetSettings   `toml:"assets"`
	Render  RenderSettings  `toml:"render"`
	Logging LoggingSettings `toml:"logging"`
}

type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type CameraSettings struct {
	HorizontalFOV float32 `toml:"horizontal_fov"` // degrees
	Near          float32 `toml:"near"`
	Far           float32 `toml:"far"`
	TurnSpeed     float32 `toml:"turn_speed"` // degrees per second
	MoveSpeed     float32 `toml:"move_speed"` // units per second
}

type AssetSettings struct {
	Dir            string `toml:"dir"`
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
	Texture        string `toml:"texture"`
	HotReload      bool   `toml:"hot_reload"`
}

type RenderSettings struct {
	ClearColor [4]float32 `toml:"clear_color"`
	FPSLimit   int        `toml:"fps_limit"` // 0 = unlimited
	SpinSpeed  float32    `toml:"spin_speed"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is given
func Default() *Settings {
	return &Settings{
		Window: WindowSettings{Width: 900, Height: 600, Title: "glwrapper demo", VSync: true},
		Camera: CameraSettings{HorizontalFOV: 90, Near: 0.1, Far: 100, TurnSpeed: 90, MoveSpeed: 2},
		Assets: AssetSettings{
			Dir:            "assets",
			VertexShader:   "shaders/textured.vert",
			FragmentShader: "shaders/textured.frag",
			Texture:        "textures/checker.bmp",
		},
		Render:  RenderSettings{ClearColor: [4]float32{0.53, 0.81, 0.92, 1}, FPSLimit: 120, SpinSpeed: 45},
		Logging: LoggingSettings{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. Missing keys keep their default values.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	s.clamp()
	return s, nil
}

func (s *Settings) clamp() {
	s.Window.Width = clampInt(s.Window.Width, 160, 7680)
	s.Window.Height = clampInt(s.Window.Height, 120, 4320)
	s.Camera.HorizontalFOV = clampFloat(s.Camera.HorizontalFOV, 30, 150)
	if s.Camera.Near <= 0 {
		s.Camera.Near = 0.1
	}
	if s.Camera.Far <= s.Camera.Near {
		s.Camera.Far = s.Camera.Near * 1000
	}
	s.Render.FPSLimit = clampInt(s.Render.FPSLimit, 0, 1000)
}

// LogLevel maps the configured level name to a slog level; unknown names mean info
func (s *Settings) LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Aspect returns width/height of the configured window
func (w WindowSettings) Aspect() float32 {
	return float32(w.Width) / float32(w.Height)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Runtime-adjustable values, shared between the input callbacks and the render loop

type runtimeSettings struct {
	mu            sync.RWMutex
	fpsLimit      int
	showProfiling bool
}

var global = &runtimeSettings{fpsLimit: 120}

func GetFPSLimit() int {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.fpsLimit
}

// SetFPSLimit sets the frame cap; 0 disables it
func SetFPSLimit(limit int) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.fpsLimit = clampInt(limit, 0, 1000)
}

func GetShowProfiling() bool {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.showProfiling
}

func ToggleShowProfiling() bool {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.showProfiling = !global.showProfiling
	return global.showProfiling
}
