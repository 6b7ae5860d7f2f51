// glyphcast - orthographic 3D mesh renderer for the terminal.
// Casts one ray per character cell and shades hits onto an ASCII ramp.
//
// Controls:
//
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"glyphcast/internal/logger"
	"glyphcast/pkg/geometry"
	"glyphcast/pkg/math3d"
	"glyphcast/pkg/models"
	"glyphcast/pkg/render"
	"glyphcast/pkg/scene"
)

var (
	scenePath = flag.String("scene", "", "Path to a YAML scene file")
	targetFPS = flag.Int("fps", 30, "Target FPS")
	logPath   = flag.String("log", "glyphcast.log", "Log file path (empty disables logging)")
	logLevel  = flag.String("level", "info", "Log level (debug, info, warn, error)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glyphcast - terminal mesh renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glyphcast [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset rotation\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// Rotation converts the spring state to a mesh rotation.
func (r *RotationState) Rotation() math3d.Rotation {
	return math3d.NewRotation(r.Yaw.Position, r.Pitch.Position, r.Roll.Position)
}

func run(modelPath string) error {
	log := logger.New(*logLevel, logger.DefaultFileConfig(*logPath))
	defer log.Sync() //nolint:errcheck

	cfg, err := scene.Load(*scenePath)
	if err != nil {
		return err
	}

	world, err := cfg.World(log)
	if err != nil {
		return err
	}
	renderer, err := cfg.Renderer(log)
	if err != nil {
		return err
	}

	// A model file on the command line replaces the configured shapes.
	if modelPath != "" {
		mesh, err := loadModel(modelPath)
		if err != nil {
			return err
		}
		mesh, err = fitToWorld(mesh, world)
		if err != nil {
			return err
		}
		world.Reset()
		center := math3d.V3(float64(world.Width())/2, float64(world.Height())/2, float64(world.Depth())/2)
		if err := world.AddMesh(mesh.Name(), mesh, center, math3d.IdentityRotation()); err != nil {
			return err
		}
		log.Info("loaded model",
			zap.String("path", modelPath),
			zap.Int("triangles", mesh.TriangleCount()))
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	termRenderer := render.NewTerminalRenderer(term, width, height)

	rotation := NewRotationState(*targetFPS)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
						(rand.Float64()-0.5)*1.5,
					)
				case ev.MatchString("r"):
					rotation.Reset()
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()
	lastStats := time.Now()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background()) //nolint:errcheck
	}

	vp := world.Viewport()
	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		rotation.Update()

		rot := rotation.Rotation()
		for _, p := range world.Placements() {
			if err := world.SetRotation(p.Name, rot); err != nil {
				cleanup()
				return err
			}
		}

		frame, stats := renderer.RenderViewport(world.Placements(), vp)
		termRenderer.Render(frame)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		if time.Since(lastStats) >= time.Second {
			lastStats = time.Now()
			log.Debug("frame",
				zap.Int64("rays", stats.Rays),
				zap.Int64("cells", stats.CellsShaded),
				zap.Int64("triangle_tests", stats.Traversal.TriangleTests),
				zap.Duration("elapsed", stats.Elapsed))
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// loadModel picks a loader by file extension.
func loadModel(path string) (*geometry.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return models.LoadOBJ(path)
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}
}

// fitToWorld scales a model so it fills about half the world's
// smaller grid axis, centered on its own bounds.
func fitToWorld(mesh *geometry.Mesh, w *scene.World) (*geometry.Mesh, error) {
	size := mesh.Bounds().Size()
	maxDim := size.MaxComponent()
	if maxDim <= 0 {
		return nil, fmt.Errorf("model %q has no volume", mesh.Name())
	}
	target := 0.5 * math.Min(float64(w.Width()), float64(w.Height()))
	scaled, err := mesh.Scaled(target / maxDim)
	if err != nil {
		return nil, err
	}
	return scaled.Translated(scaled.Bounds().Center().Negate()), nil
}
