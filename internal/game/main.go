package game

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"citydrive/internal/drive"
	"citydrive/internal/scene"
)

// Options configures a desktop run.
type Options struct {
	Game        drive.Config
	VehiclePath string
	Mute        bool
}

// RunDesktop opens the window and drives the game until it is closed.
// It must be called from the main goroutine.
func RunDesktop(opts Options, log *zap.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info("opengl ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	audio, err := NewAudio(log)
	if err != nil {
		log.Warn("audio init failed, continuing without sound", zap.Error(err))
		audio = nil
	} else {
		defer audio.Close()
		if opts.Mute {
			audio.ToggleMute()
		}
	}

	if fbW, fbH := window.GetFramebufferSize(); fbW > 0 && fbH > 0 {
		opts.Game.Viewport.Width, opts.Game.Viewport.Height = fbW, fbH
	}
	g, err := drive.NewGame(opts.Game, log)
	if err != nil {
		return err
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		g.Resize(w, h)
	})

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.DepthFunc(gl.LESS)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	rend.UploadCity(g.Layout)

	lastCrash := -CrashSoundGap
	g.Bus.Subscribe(drive.EventItemCollected, func(e drive.Event) {
		audio.Play(SoundChime)
	})
	g.Bus.Subscribe(drive.EventCollision, func(e drive.Event) {
		if g.Now()-lastCrash >= CrashSoundGap {
			audio.Play(SoundThump)
		}
		lastCrash = g.Now()
	})
	g.Bus.Subscribe(drive.EventGearShift, func(e drive.Event) {
		log.Debug("gear shift", zap.Int("gear", e.Gear))
		audio.Play(SoundBlip)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	vehicle := drive.LoadVehicleAsync(ctx, opts.VehiclePath, log)

	input := NewInput()
	var lastHUD time.Time
	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > MaxFrameDT {
			dt = MaxFrameDT
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyM) {
			log.Info("audio", zap.Bool("muted", audio.ToggleMute()))
		}

		if vehicle != nil {
			select {
			case spec, ok := <-vehicle:
				vehicle = nil
				if ok {
					if err := g.AttachVehicle(spec); err != nil {
						log.Error("attach vehicle", zap.Error(err))
					}
				}
			default:
			}
		}

		g.Tick(DriveInput(window), dt)

		if v := g.Vehicle(); v != nil {
			audio.SetRPM(v.Ctrl.State().RPM)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.Draw(g, fbW, fbH)

		if t := time.Now(); t.Sub(lastHUD) >= HUDRefresh {
			window.SetTitle(scene.HUD(WindowTitle, g.Snapshot()))
			lastHUD = t
		}
		window.SwapBuffers()
	}
	return nil
}
