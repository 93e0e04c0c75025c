// Command hello-window opens a window and clears it every frame.
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
	"github.com/polyfloyd/learngl/window"
)

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

	configFile := flag.String("c", "", "An HCL lesson file overriding the window settings")
	outputFile := flag.String("o", "", "Render a single frame to this image file and exit")
	verbose := flag.Bool("v", false, "Show verbose output about the OpenGL context")
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
	if verbose {
		log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
		log.Printf("OpenGL renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	}

	r, g, b, a := cfg.Clear()
	draw := func() {
		gl.ClearColor(r, g, b, a)
		gl.Clear(gl.COLOR_BUFFER_BIT)
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
