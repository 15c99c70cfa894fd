package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"citydrive/internal/drive"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func anyDown(window *glfw.Window, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// DriveInput samples the held driving keys: WASD or arrows, Shift to turn
// tighter.
func DriveInput(window *glfw.Window) drive.InputState {
	return drive.InputState{
		Forward:  anyDown(window, glfw.KeyW, glfw.KeyUp),
		Backward: anyDown(window, glfw.KeyS, glfw.KeyDown),
		Left:     anyDown(window, glfw.KeyA, glfw.KeyLeft),
		Right:    anyDown(window, glfw.KeyD, glfw.KeyRight),
		Tight:    anyDown(window, glfw.KeyLeftShift, glfw.KeyRightShift),
	}
}
