// Command shader draws a triangle with a color per vertex. The shaders can
// be loaded from files named by a lesson file and rebuilt when they change.
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"runtime"
	"slices"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/polyfloyd/learngl/capture"
	"github.com/polyfloyd/learngl/lesson"
	"github.com/polyfloyd/learngl/mesh"
	"github.com/polyfloyd/learngl/shader"
	"github.com/polyfloyd/learngl/window"
)

var (
	//go:embed shaders/shader.vs
	vertexShaderSource string
	//go:embed shaders/shader.fs
	fragmentShaderSource string
)

var vertices = []float32{
	// positions      // colors
	-0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
}

var defaults = lesson.Config{
	Title:      "LearnOpenGl",
	Width:      800,
	Height:     600,
	ClearColor: []float32{0.2, 0.3, 0.4, 0.5},
}

type options struct {
	configFile string
	outputFile string
	verbose    bool
	watch      bool
	debug      bool
}

func main() {
	log.SetOutput(os.Stderr)
	// OpenGL contexts are bound to threads.
	runtime.LockOSThread()

	var opts options
	flag.StringVar(&opts.configFile, "c", "", "An HCL lesson file, may replace the \"triangle\" program")
	flag.StringVar(&opts.outputFile, "o", "", "Render a single frame to this image file and exit")
	flag.BoolVar(&opts.verbose, "v", false, "List the active uniforms of the program")
	flag.BoolVar(&opts.watch, "w", false, "Watch the shader source files for changes")
	flag.BoolVar(&opts.debug, "debug", false, "Log OpenGL debug messages")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		signal.Stop(sig)
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	lesson.Report(os.Stderr, err)
	os.Exit(lesson.ExitCode(err))
}

func run(ctx context.Context, opts options) error {
	cfg := defaults
	if opts.configFile != "" {
		var err error
		if cfg, err = lesson.Load(opts.configFile, defaults); err != nil {
			return err
		}
	}
	loadSources := func() ([]shader.StageSource, []string, error) {
		return cfg.Sources("triangle",
			shader.Vertex(shader.SourceBuf(vertexShaderSource)),
			shader.Fragment(shader.SourceBuf(fragmentShaderSource)),
		)
	}
	sources, files, err := loadSources()
	if err != nil {
		return err
	}

	win, err := window.Open(window.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Hidden: opts.outputFile != "",
		Debug:  opts.debug,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", lesson.ErrWindow, err)
	}
	defer win.Close()

	tri, err := mesh.New(vertices, mesh.Layout{3, 3})
	if err != nil {
		return err
	}
	defer tri.Delete()

	program, err := shader.Build(shader.GLDriver{}, sources...)
	if err != nil {
		return err
	}
	// The program may be replaced by a reload.
	defer func() { program.Delete() }()
	if opts.verbose {
		logUniforms(program)
	}

	r, g, b, a := cfg.Clear()
	draw := func() {
		gl.ClearColor(r, g, b, a)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		program.Use()
		tri.Draw()
	}

	if opts.outputFile != "" {
		img, err := capture.Render(cfg.Width, cfg.Height, draw)
		if err != nil {
			return err
		}
		return capture.WriteFile(opts.outputFile, img)
	}

	var changes <-chan struct{}
	stopWatching := func() {}
	defer func() { stopWatching() }()
	watch := func(files []string) error {
		stopWatching()
		watchCtx, cancel := context.WithCancel(ctx)
		c, err := lesson.Watch(watchCtx, files)
		if err != nil {
			cancel()
			return err
		}
		changes, stopWatching = c, cancel
		return nil
	}
	if opts.watch {
		if len(files) == 0 {
			log.Printf("No shader files to watch, name them in a lesson file with -c")
		} else if err := watch(files); err != nil {
			return err
		}
	}

	for !win.ShouldClose() && ctx.Err() == nil {
		select {
		case _, ok := <-changes:
			if !ok {
				changes = nil
				break
			}
			newSources, newFiles, err := loadSources()
			if err != nil {
				log.Printf("Reloading shaders: %v", err)
				break
			}
			newProgram, err := shader.Build(shader.GLDriver{}, newSources...)
			if err != nil {
				lesson.Report(os.Stderr, err)
				log.Printf("Keeping the previous program")
			} else {
				program.Delete()
				program = newProgram
				log.Printf("Reloaded shaders")
				if opts.verbose {
					logUniforms(program)
				}
			}
			if !slices.Equal(files, newFiles) {
				files = newFiles
				if err := watch(files); err != nil {
					return err
				}
			}
		default:
		}

		win.ProcessInput()
		draw()
		win.SwapBuffers()
		win.PollEvents()
	}
	return nil
}

func logUniforms(program *shader.Program) {
	uniforms := program.Uniforms()
	for _, name := range slices.Sorted(maps.Keys(uniforms)) {
		log.Printf("%s", uniforms[name])
	}
}
