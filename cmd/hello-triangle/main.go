// Command hello-triangle draws a single triangle with shaders compiled from
// string literals.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/polyfloyd/learngl/capture"
	"github.com/polyfloyd/learngl/lesson"
	"github.com/polyfloyd/learngl/mesh"
	"github.com/polyfloyd/learngl/shader"
	"github.com/polyfloyd/learngl/window"
)

const vertexShaderSource = `#version 330 core
layout (location = 0) in vec3 aPos;
void main()
{
   gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}
`

const fragmentShaderSource = `#version 330 core
out vec4 FragColor;
void main()
{
    FragColor = vec4(1.0f, 0.7f, 0.5f, 1.0f);
}
`

var vertices = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

var defaults = lesson.Config{
	Title:      "LearnOpenGl",
	Width:      800,
	Height:     600,
	ClearColor: []float32{0.2, 0.3, 0.4, 0.5},
}

func main() {
	log.SetOutput(os.Stderr)
	// OpenGL contexts are bound to threads.
	runtime.LockOSThread()

	configFile := flag.String("c", "", "An HCL lesson file, may replace the \"triangle\" program")
	outputFile := flag.String("o", "", "Render a single frame to this image file and exit")
	verbose := flag.Bool("v", false, "List the active uniforms of the program")
	debug := flag.Bool("debug", false, "Log OpenGL debug messages")
	flag.Parse()

	err := run(*configFile, *outputFile, *verbose, *debug)
	lesson.Report(os.Stderr, err)
	os.Exit(lesson.ExitCode(err))
}

func run(configFile, outputFile string, verbose, debug bool) error {
	cfg := defaults
	if configFile != "" {
		var err error
		if cfg, err = lesson.Load(configFile, defaults); err != nil {
			return err
		}
	}
	sources, _, err := cfg.Sources("triangle",
		shader.Vertex(shader.SourceBuf(vertexShaderSource)),
		shader.Fragment(shader.SourceBuf(fragmentShaderSource)),
	)
	if err != nil {
		return err
	}

	win, err := window.Open(window.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Hidden: outputFile != "",
		Debug:  debug,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", lesson.ErrWindow, err)
	}
	defer win.Close()

	tri, err := mesh.New(vertices, mesh.Layout{3})
	if err != nil {
		return err
	}
	defer tri.Delete()

	program, err := shader.Build(shader.GLDriver{}, sources...)
	if err != nil {
		return err
	}
	defer program.Delete()
	if verbose {
		for _, u := range program.Uniforms() {
			log.Printf("%s", u)
		}
	}

	r, g, b, a := cfg.Clear()
	draw := func() {
		gl.ClearColor(r, g, b, a)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		program.Use()
		tri.Draw()
	}

	if outputFile != "" {
		img, err := capture.Render(cfg.Width, cfg.Height, draw)
		if err != nil {
			return err
		}
		return capture.WriteFile(outputFile, img)
	}

	for !win.ShouldClose() {
		win.ProcessInput()
		draw()
		win.SwapBuffers()
		win.PollEvents()
	}
	return nil
}
