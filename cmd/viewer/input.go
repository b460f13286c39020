package main

import (
	"glwrapper/internal/config"
	"glwrapper/internal/input"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, im *input.Manager, sc *scene) {
	im.SetKeyCallback(window)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	})

	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		sc.setViewport(width, height)
	})
}

// handleActions applies held and pressed actions to the scene; it reports whether to quit
func handleActions(im *input.Manager, sc *scene, dt float32, settings *config.Settings) bool {
	if im.JustPressed(input.ActionQuit) {
		return true
	}
	if im.JustPressed(input.ActionReloadShaders) {
		sc.reloadShaders()
	}
	if im.JustPressed(input.ActionToggleSpin) {
		sc.spinning = !sc.spinning
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		config.ToggleShowProfiling()
	}

	turn := im.Axis(input.ActionTurnRight, input.ActionTurnLeft)
	if turn != 0 {
		sc.camera.Rotate(turn * settings.Camera.TurnSpeed * dt)
	}

	step := settings.Camera.MoveSpeed * dt
	forward := im.Axis(input.ActionMoveBackward, input.ActionMoveForward) * step
	strafe := im.Axis(input.ActionStrafeLeft, input.ActionStrafeRight) * step
	lift := im.Axis(input.ActionMoveDown, input.ActionMoveUp) * step
	if forward != 0 || strafe != 0 || lift != 0 {
		f := sc.camera.Forward()
		// right is forward turned 90 degrees clockwise about Y
		rx, rz := -f.Z(), f.X()
		sc.camera.Translate(f.X()*forward+rx*strafe, lift, f.Z()*forward+rz*strafe)
	}
	return false
}
