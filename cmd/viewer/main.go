package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"glwrapper/internal/config"
	"glwrapper/internal/frame"
	"glwrapper/internal/input"
	"glwrapper/internal/profiling"
	"glwrapper/pkg/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML settings file")
	flag.Parse()

	settings := config.Default()
	if *configPath != "" {
		s, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		settings = s
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel()}))
	slog.SetDefault(logger)
	config.SetFPSLimit(settings.Render.FPSLimit)

	defer closer.Close()
	if err := run(settings, logger); err != nil {
		logger.Error("viewer stopped", "err", err)
		closer.Exit(1)
	}
}

func run(settings *config.Settings, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	// closer hooks run on their own goroutine; GL teardown stays on this thread
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(settings.Window.Width, settings.Window.Height, settings.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if settings.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Info("OpenGL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	gl.Enable(gl.DEPTH_TEST)

	assets := os.DirFS(settings.Assets.Dir)
	sc, err := newScene(gpu.GL{}, assets, settings, logger)
	if err != nil {
		return err
	}
	defer sc.Delete()

	im := input.NewManager()
	setupInputHandlers(window, im, sc)

	var reload <-chan string
	if settings.Assets.HotReload {
		watcher, err := gpu.NewShaderWatcher(logger,
			filepath.Join(settings.Assets.Dir, settings.Assets.VertexShader),
			filepath.Join(settings.Assets.Dir, settings.Assets.FragmentShader))
		if err != nil {
			logger.Warn("shader hot reload disabled", "err", err)
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			go watcher.Run(ctx)
			closer.Bind(func() {
				cancel()
				watcher.Close()
			})
			reload = watcher.Changed()
		}
	}

	limiter := frame.NewLimiter()
	fps := frame.NewCounter(time.Second)
	last := time.Now()

	for !window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		profiling.ResetFrame()

		select {
		case path := <-reload:
			logger.Info("shader changed", "file", path)
			sc.reloadShaders()
		default:
		}
		if handleActions(im, sc, dt, settings) {
			window.SetShouldClose(true)
		}

		sc.update(dt)
		sc.render()

		window.SwapBuffers()
		glfw.PollEvents()
		im.PostUpdate()

		if rate, ok := fps.Tick(time.Now()); ok {
			if config.GetShowProfiling() {
				logger.Info("frame", "fps", rate, "top", profiling.TopN(5))
			} else {
				logger.Info("frame", "fps", rate)
			}
		}
		limiter.Wait(config.GetFPSLimit())
	}
	return nil
}
