// Triangle draws a single orange triangle with shader sources compiled from string
// literals.
//
//	go run ./example/triangle
//
// Settings are read from learngl.toml in the working directory when present.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
	"github.com/go-theft-auto/shader/config"
)

const vertexShaderSource = `#version 330 core
layout (location = 0) in vec3 aPos;

void main() {
    gl_Position = vec4(aPos, 1.0);
}
`

const fragmentShaderSource = `#version 330 core
out vec4 FragColor;

void main() {
    FragColor = vec4(1.0, 0.5, 0.2, 1.0);
}
`

var vertices = []float32{
	-0.5, -0.5, 0.0, // left
	0.5, -0.5, 0.0, // right
	0.0, 0.5, 0.0, // top
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

	// Compile and link failures are already logged; keep running like the tutorial does.
	prog, err := mgr.Build(vertexShaderSource, fragmentShaderSource)
	if prog == nil {
		return fmt.Errorf("build shader program: %w", err)
	}
	defer prog.Delete()

	mesh, err := opengl.NewMesh(vertices, nil, opengl.VertexLayout{3})
	if err != nil {
		return err
	}
	defer mesh.Delete()

	for !window.ShouldClose() {
		window.Clear(cfg.Render.ClearColor)

		// An unlinked program has nothing to draw with; its log was reported at startup.
		if prog.Linked() {
			if err := prog.Use(); err != nil {
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
