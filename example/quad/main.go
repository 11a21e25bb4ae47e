// Quad draws an indexed, vertex-colored rectangle with shaders read from
// VertexShader.txt and FragmentShader.txt. The rectangle slowly rotates and pulses
// through the transform and brightness uniforms.
//
//	cd example/quad && go run .
//
// With hot_reload = true in learngl.toml, saving either shader file rebuilds the
// program; a replacement that fails to link is discarded and the previous one kept.
package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
	"github.com/go-theft-auto/shader/config"
)

var vertices = []float32{
	// positions     // colors
	0.5, 0.5, 0.0, 1.0, 0.0, 0.0, // top right
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom right
	-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, // bottom left
	-0.5, 0.5, 0.0, 1.0, 0.0, 1.0, // top left
}

var indices = []uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		return err
	}
	shader.SetVerbose(cfg.Log.Verbose)

	window, err := opengl.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync)
	if err != nil {
		return err
	}
	defer window.Destroy()

	mgr := shader.NewManager(opengl.NewDevice(),
		shader.WithStrict(cfg.Shaders.Strict),
		shader.WithInfoLogLimit(cfg.Shaders.InfoLogLimit),
	)

	prog, err := mgr.BuildFiles(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if prog == nil {
		return fmt.Errorf("build shader program: %w", err)
	}
	// prog is replaced on reload, so delete whatever is current at exit.
	defer func() { prog.Delete() }()

	var watcher *shader.Watcher
	if cfg.Shaders.HotReload {
		watcher, err = mgr.Watch(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	mesh, err := opengl.NewMesh(vertices, indices, opengl.VertexLayout{3, 3})
	if err != nil {
		return err
	}
	defer mesh.Delete()

	for !window.ShouldClose() {
		if watcher != nil && watcher.Poll() {
			prog, err = mgr.RebuildFiles(prog, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
			if err != nil {
				slog.Warn("shader reload failed, keeping previous program", "err", err)
			}
		}

		window.Clear(cfg.Render.ClearColor)

		if prog.Linked() {
			t := float32(window.Time())
			if err := prog.Use(); err != nil {
				return err
			}
			if err := prog.SetFloat("brightness", 0.75+0.25*float32(math.Sin(float64(t)*2))); err != nil {
				return err
			}
			if err := prog.SetMat4("transform", mgl32.HomogRotate3DZ(t*0.5)); err != nil {
				return err
			}
			mesh.Draw()
		}

		if cfg.Render.Debug {
			if err := opengl.CheckError(); err != nil {
				return fmt.Errorf("frame: %w", err)
			}
		}

		window.EndFrame()
	}

	return nil
}
