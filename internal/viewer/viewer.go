// Package viewer runs the interactive plant window: drag particles, watch the
// stems relax and the mesh rebuild.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/stemforge/internal/config"
	"github.com/Faultbox/stemforge/internal/engine/camera"
	"github.com/Faultbox/stemforge/internal/engine/debug"
	"github.com/Faultbox/stemforge/internal/engine/input"
	"github.com/Faultbox/stemforge/internal/engine/lighting"
	"github.com/Faultbox/stemforge/internal/engine/renderer"
	"github.com/Faultbox/stemforge/internal/engine/window"
	"github.com/Faultbox/stemforge/internal/logger"
	"github.com/Faultbox/stemforge/internal/plant"
	"github.com/Faultbox/stemforge/internal/viewer/control"
)

const title = "Stemforge"

// Viewer is the main viewer instance.
type Viewer struct {
	cfg  *config.Config
	spec plant.Spec
	log  *zap.Logger

	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	plant       *plant.Plant
	interaction *control.Interaction
	sun         lighting.Sun
	wireframe   bool
	showFPS     bool
	uploaded    bool
}

// New opens the window and builds the initial plant.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{cfg: cfg, log: logger.Named("viewer"), wireframe: cfg.Viewer.Wireframe, showFPS: cfg.Viewer.ShowFPS, sun: lighting.DefaultSun()}

	var err error
	if v.spec, err = cfg.PlantSpec(); err != nil {
		return nil, err
	}
	if v.plant, err = plant.Generate(v.spec); err != nil {
		return nil, fmt.Errorf("failed to generate plant: %w", err)
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
		zap.Int("stems", v.plant.Hierarchy().Len()),
	)

	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context, and the drawable can be larger than
	// the window on high-DPI screens.
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	ww, wh := v.window.Size()
	v.interaction = control.NewInteraction(camera.NewOrbitCamera(), v.plant, ww, wh)
	return v, nil
}

// Run loops until the window closes: input, drag, relax, draw, present.
func (v *Viewer) Run() error {
	v.running = true
	frames := 0
	fpsTimer := time.Now()
	v.log.Info("starting viewer loop")

	for v.running {
		if v.input.Update() {
			break
		}
		if err := v.handleEvents(); err != nil {
			return err
		}
		if err := v.update(); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		v.render()
		v.window.SwapBuffers()

		frames++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			if v.showFPS {
				v.window.SetTitle(fmt.Sprintf("%s | %d FPS", title, frames))
			}
			frames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// Close frees the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents() error {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			dw, dh := v.window.DrawableSize()
			v.renderer.Resize(dw, dh)
			v.interaction.Resize(e.Width, e.Height)

		case input.EventMouseDown:
			switch e.Button {
			case input.ButtonLeft:
				if v.interaction.PrimaryDown(e.MouseX, e.MouseY) {
					v.log.Debug("particle grabbed", zap.Int("particle", v.interaction.Dragged()))
				}
			case input.ButtonRight:
				v.interaction.SecondaryDown()
			}

		case input.EventMouseUp:
			v.interaction.Release()

		case input.EventMouseMove:
			if err := v.interaction.Move(e.MouseX, e.MouseY, e.DX, e.DY); err != nil {
				return fmt.Errorf("drag: %w", err)
			}

		case input.EventMouseWheel:
			v.interaction.Zoom(e.DY)

		case input.EventKeyDown:
			if err := v.handleKey(e.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Viewer) handleKey(key sdl.Scancode) error {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_W:
		v.wireframe = !v.wireframe
	case sdl.SCANCODE_F:
		if b, ok := v.plant.Mesh().Bounds(); ok {
			v.interaction.Camera.FitToBounds(b.Min, b.Max)
		}
	case sdl.SCANCODE_R:
		p, err := plant.Generate(v.spec)
		if err != nil {
			return fmt.Errorf("regenerate: %w", err)
		}
		v.plant = p
		v.interaction.SetPlant(p)
		v.uploaded = false
		v.log.Info("plant reset")
	case sdl.SCANCODE_F12:
		v.screenshot()
	}
	return nil
}

func (v *Viewer) update() error {
	if err := v.interaction.Follow(); err != nil {
		return err
	}
	ticks := max(v.cfg.Solver.TicksPerFrame, 1)
	for range ticks {
		rep, err := v.plant.Tick()
		if err != nil {
			return err
		}
		if rep.Regenerated {
			v.uploaded = false
		}
	}
	return nil
}

func (v *Viewer) render() {
	if !v.uploaded {
		v.renderer.UploadMesh(v.plant.Mesh().Export())
		v.uploaded = true
	}

	overlay := debug.Markers(v.plant.Markers(), v.interaction.Dragged())
	if !v.wireframe {
		overlay = append(overlay, debug.MeshEdges(v.plant.Mesh().Export())...)
	}

	cam := v.interaction.Camera
	v.renderer.Draw(renderer.Frame{
		ViewProj:  cam.ViewProjection(v.renderer.Aspect()),
		Sun:       v.sun,
		Wireframe: v.wireframe,
		Overlay:   overlay,
	})
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := debug.SaveScreenshot(filepath.Join(config.ConfigDir(), "screenshots"), pixels, w, h, time.Now())
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}
