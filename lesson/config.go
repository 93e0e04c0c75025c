// Package lesson holds what the lesson programs share: the HCL lesson file,
// the exit status policy and shader file watching.
package lesson

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/polyfloyd/learngl/shader"
)

// ErrConfig marks errors in the lesson configuration.
var ErrConfig = errors.New("invalid lesson configuration")

// Config describes the window and the shader programs of a lesson.
//
//	title       = "LearnOpenGL"
//	width       = 1280
//	height      = 720
//	clear_color = [0.2, 0.3, 0.4, 1.0]
//
//	program "object" {
//	  vertex   = "${lesson_dir}/color.vs"
//	  fragment = "${lesson_dir}/color.fs"
//	}
type Config struct {
	Title      string          `hcl:"title,optional"`
	Width      int             `hcl:"width,optional"`
	Height     int             `hcl:"height,optional"`
	ClearColor []float32       `hcl:"clear_color,optional"`
	Programs   []ProgramConfig `hcl:"program,block"`
}

// ProgramConfig names the files a shader program is built from.
type ProgramConfig struct {
	Name     string `hcl:"name,label"`
	Vertex   string `hcl:"vertex"`
	Fragment string `hcl:"fragment"`
}

// Load decodes a lesson file. Attributes the file leaves out are taken from
// defaults. Relative shader paths are resolved against the file's directory,
// which is also available in expressions as lesson_dir.
func Load(path string, defaults Config) (Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, err
	}
	dir := filepath.Dir(absPath)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(absPath)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %s", ErrConfig, path, diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"lesson_dir": cty.StringVal(dir),
		},
	}
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &cfg); diags.HasErrors() {
		return Config{}, fmt.Errorf("%w: failed to decode %s: %s", ErrConfig, path, diags.Error())
	}
	for i, p := range cfg.Programs {
		cfg.Programs[i].Vertex = resolve(dir, p.Vertex)
		cfg.Programs[i].Fragment = resolve(dir, p.Fragment)
	}

	cfg = cfg.withDefaults(defaults)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func resolve(dir, file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

func (c Config) withDefaults(defaults Config) Config {
	if c.Title == "" {
		c.Title = defaults.Title
	}
	if c.Width == 0 {
		c.Width = defaults.Width
	}
	if c.Height == 0 {
		c.Height = defaults.Height
	}
	if c.ClearColor == nil {
		c.ClearColor = defaults.ClearColor
	}
	for _, p := range defaults.Programs {
		if _, ok := c.Program(p.Name); !ok {
			c.Programs = append(c.Programs, p)
		}
	}
	return c
}

// Validate checks the window geometry, the clear color and that programs are
// uniquely named and complete.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: no geometry dimension can be 0 or less, got (%d, %d)", ErrConfig, c.Width, c.Height)
	}
	if n := len(c.ClearColor); n != 0 && n != 3 && n != 4 {
		return fmt.Errorf("%w: clear_color needs 3 or 4 components, got %d", ErrConfig, n)
	}
	for _, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear_color components must be within [0, 1], got %v", ErrConfig, v)
		}
	}
	seen := map[string]bool{}
	for _, p := range c.Programs {
		if seen[p.Name] {
			return fmt.Errorf("%w: program %q is defined more than once", ErrConfig, p.Name)
		}
		seen[p.Name] = true
		if p.Vertex == "" || p.Fragment == "" {
			return fmt.Errorf("%w: program %q needs both a vertex and a fragment shader", ErrConfig, p.Name)
		}
	}
	return nil
}

// Clear returns the clear color, defaulting alpha to 1.
func (c Config) Clear() (r, g, b, a float32) {
	switch len(c.ClearColor) {
	case 3:
		return c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], 1
	case 4:
		return c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3]
	}
	return 0, 0, 0, 1
}

func (c Config) Program(name string) (ProgramConfig, bool) {
	for _, p := range c.Programs {
		if p.Name == name {
			return p, true
		}
	}
	return ProgramConfig{}, false
}

// Sources returns the stage sources of the named program and the files they
// were read from. Programs the configuration does not name use fallback.
func (c Config) Sources(name string, fallback ...shader.StageSource) ([]shader.StageSource, []string, error) {
	p, ok := c.Program(name)
	if !ok {
		return fallback, nil, nil
	}
	vertex, err := shader.Includes(p.Vertex)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: program %q: %w", ErrConfig, name, err)
	}
	fragment, err := shader.Includes(p.Fragment)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: program %q: %w", ErrConfig, name, err)
	}
	var files []string
	for _, f := range append(append([]shader.SourceFile{}, vertex...), fragment...) {
		files = append(files, f.Filename)
	}
	stages := []shader.StageSource{
		shader.Vertex(shader.SourceFiles(vertex...)...),
		shader.Fragment(shader.SourceFiles(fragment...)...),
	}
	return stages, files, nil
}
