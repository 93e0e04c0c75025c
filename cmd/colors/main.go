// Command colors draws ten textured cubes lit by a directional light whose
// color changes over time. WASD moves the camera, the mouse looks around and
// the scroll wheel zooms.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"maps"
	"os"
	"runtime"
	"slices"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/polyfloyd/learngl/camera"
	"github.com/polyfloyd/learngl/capture"
	"github.com/polyfloyd/learngl/lesson"
	"github.com/polyfloyd/learngl/mesh"
	"github.com/polyfloyd/learngl/shader"
	"github.com/polyfloyd/learngl/texture"
	"github.com/polyfloyd/learngl/window"
)

var (
	//go:embed shaders/color.vs
	objectVertexSource string
	//go:embed shaders/color.fs
	objectFragmentSource string
	//go:embed shaders/cube.vs
	lampVertexSource string
	//go:embed shaders/cube.fs
	lampFragmentSource string
)

var defaults = lesson.Config{
	Title:      "LearnOpenGL",
	Width:      800,
	Height:     600,
	ClearColor: []float32{0.1, 0.1, 0.1, 1.0},
}

// The time at which frames rendered with -o are taken.
const snapshotTime = 1.0

type options struct {
	configFile   string
	outputFile   string
	diffuseFile  string
	specularFile string
	lamp         bool
	verbose      bool
	debug        bool
}

func main() {
	log.SetOutput(os.Stderr)
	// OpenGL contexts are bound to threads.
	runtime.LockOSThread()

	var opts options
	flag.StringVar(&opts.configFile, "c", "", "An HCL lesson file, may replace the \"object\" and \"lamp\" programs")
	flag.StringVar(&opts.outputFile, "o", "", "Render a single frame to this image file and exit")
	flag.StringVar(&opts.diffuseFile, "diffuse", "", "The diffuse map of the cubes, a checkerboard if unset")
	flag.StringVar(&opts.specularFile, "specular", "", "The specular map of the cubes, a checkerboard if unset")
	flag.BoolVar(&opts.lamp, "lamp", false, "Draw a small cube where the light would be")
	flag.BoolVar(&opts.verbose, "v", false, "List the active uniforms of the programs")
	flag.BoolVar(&opts.debug, "debug", false, "Log OpenGL debug messages")
	flag.Parse()

	err := run(opts)
	lesson.Report(os.Stderr, err)
	os.Exit(lesson.ExitCode(err))
}

func run(opts options) error {
	cfg := defaults
	if opts.configFile != "" {
		var err error
		if cfg, err = lesson.Load(opts.configFile, defaults); err != nil {
			return err
		}
	}
	objectSources, _, err := cfg.Sources("object",
		shader.Vertex(shader.SourceBuf(objectVertexSource)),
		shader.Fragment(shader.SourceBuf(objectFragmentSource)),
	)
	if err != nil {
		return err
	}
	lampSources, _, err := cfg.Sources("lamp",
		shader.Vertex(shader.SourceBuf(lampVertexSource)),
		shader.Fragment(shader.SourceBuf(lampFragmentSource)),
	)
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

	state := camera.NewState(camera.New(mgl32.Vec3{0, 0, 6}), cfg.Width, cfg.Height)
	if opts.outputFile == "" {
		fbWidth, fbHeight := win.GetFramebufferSize()
		state.FramebufferResized(fbWidth, fbHeight)
		win.Attach(state)
		defer win.Attach(nil)
		win.CaptureCursor()
	}
	gl.Enable(gl.DEPTH_TEST)

	objectProgram, err := shader.Build(shader.GLDriver{}, objectSources...)
	if err != nil {
		return err
	}
	defer objectProgram.Delete()
	lampProgram, err := shader.Build(shader.GLDriver{}, lampSources...)
	if err != nil {
		return err
	}
	defer lampProgram.Delete()
	if opts.verbose {
		logUniforms("object", objectProgram)
		logUniforms("lamp", lampProgram)
	}

	cube, err := mesh.New(cubeVertices, mesh.Layout{3, 3, 2})
	if err != nil {
		return err
	}
	defer cube.Delete()
	// The lamp only uses the positions of the cube.
	lamp := cube.Share(1)
	defer lamp.Delete()

	diffuseMap, err := loadTexture(opts.diffuseFile, color.RGBA{R: 0xb0, G: 0x7a, B: 0x3c, A: 0xff}, color.RGBA{R: 0x5a, G: 0x3a, B: 0x1a, A: 0xff})
	if err != nil {
		return err
	}
	defer diffuseMap.Delete()
	specularMap, err := loadTexture(opts.specularFile, color.White, color.Black)
	if err != nil {
		return err
	}
	defer specularMap.Delete()

	objectProgram.Use()
	objectProgram.SetInt("material.diffuse", 0)
	objectProgram.SetInt("material.specular", 1)

	r, g, b, a := cfg.Clear()
	draw := func(now float64) {
		gl.ClearColor(r, g, b, a)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		ambient, diffuse := lightColors(now)
		projection := state.Camera.Projection(state.Aspect())
		view := state.Camera.ViewMatrix()

		objectProgram.Use()
		objectProgram.SetVec3("light.direction", lightDirection)
		objectProgram.SetVec3("viewPos", state.Camera.Position)
		objectProgram.SetFloat("material.shininess", 32)
		objectProgram.SetVec3("light.ambient", ambient)
		objectProgram.SetVec3("light.diffuse", diffuse)
		objectProgram.SetVec3("light.specular", mgl32.Vec3{1, 1, 1})
		objectProgram.SetMat4("projection", projection)
		objectProgram.SetMat4("view", view)

		diffuseMap.Bind(0)
		specularMap.Bind(1)
		for i := range cubePositions {
			objectProgram.SetMat4("model", cubeModel(i))
			cube.Draw()
		}

		if opts.lamp {
			lampProgram.Use()
			lampProgram.SetMat4("projection", projection)
			lampProgram.SetMat4("view", view)
			lampProgram.SetMat4("model", lampModel())
			lamp.Draw()
		}
	}

	if opts.outputFile != "" {
		img, err := capture.Render(cfg.Width, cfg.Height, func() { draw(snapshotTime) })
		if err != nil {
			return err
		}
		return capture.WriteFile(opts.outputFile, img)
	}

	for !win.ShouldClose() {
		now := win.Time()
		state.Tick(now)
		processInput(win, state)
		draw(now)
		win.SwapBuffers()
		win.PollEvents()
	}
	return nil
}

func processInput(win *window.Window, state *camera.State) {
	win.ProcessInput()
	keys := map[glfw.Key]camera.Movement{
		glfw.KeyW: camera.Forward,
		glfw.KeyS: camera.Backward,
		glfw.KeyA: camera.Left,
		glfw.KeyD: camera.Right,
	}
	for key, dir := range keys {
		if win.KeyPressed(key) {
			state.Move(dir)
		}
	}
}

// loadTexture uploads the image file, or a checkerboard of a and b if no file
// is given.
func loadTexture(filename string, a, b color.Color) (*texture.Texture, error) {
	var img *image.RGBA
	if filename == "" {
		img = texture.Checker(256, 8, a, b)
	} else {
		var err error
		if img, err = texture.Decode(filename); err != nil {
			return nil, fmt.Errorf("failed to load texture: %w", err)
		}
	}
	return texture.Upload(img), nil
}

func logUniforms(name string, program *shader.Program) {
	uniforms := program.Uniforms()
	for _, u := range slices.Sorted(maps.Keys(uniforms)) {
		log.Printf("%s: %s", name, uniforms[u])
	}
}
