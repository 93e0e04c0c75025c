package lesson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/learngl/shader"
)

var testDefaults = Config{
	Title:      "LearnOpenGL",
	Width:      800,
	Height:     600,
	ClearColor: []float32{0, 0, 0, 1},
}

func writeLesson(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lesson.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load("testdata/lesson.hcl", testDefaults)
	require.NoError(t, err)

	assert.Equal(t, "Shader test", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)

	r, g, b, a := cfg.Clear()
	assert.Equal(t, []float32{0.2, 0.3, 0.4, 1}, []float32{r, g, b, a})

	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)
	p, ok := cfg.Program("triangle")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "shader.vs"), p.Vertex)
	assert.Equal(t, filepath.Join(dir, "shader.fs"), p.Fragment)
}

func TestLoadDefaults(t *testing.T) {
	path := writeLesson(t, `width = 1024`)
	cfg, err := Load(path, testDefaults)
	require.NoError(t, err)

	assert.Equal(t, "LearnOpenGL", cfg.Title)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, []float32{0, 0, 0, 1}, cfg.ClearColor)
	assert.Empty(t, cfg.Programs)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"zero width":      `width = 0` + "\nheight = -1",
		"short color":     `clear_color = [1, 0]`,
		"color range":     `clear_color = [2, 0, 0]`,
		"syntax":          `width = `,
		"unknown":         `depth = 3`,
		"missing stage":   `program "a" { vertex = "a.vs" }`,
		"duplicate":       "program \"a\" {\n vertex = \"a.vs\"\n fragment = \"a.fs\"\n}\nprogram \"a\" {\n vertex = \"b.vs\"\n fragment = \"b.fs\"\n}",
		"wrong attr type": `width = "wide"`,
	}
	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeLesson(t, contents), testDefaults)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Equal(t, ExitConfig, ExitCode(err))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"), testDefaults)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSources(t *testing.T) {
	cfg, err := Load("testdata/lesson.hcl", testDefaults)
	require.NoError(t, err)

	stages, files, err := cfg.Sources("triangle")
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, shader.StageVertex, stages[0].Stage)
	assert.Equal(t, shader.StageFragment, stages[1].Stage)
	assert.Len(t, stages[0].Sources, 1)
	assert.Len(t, stages[1].Sources, 2, "the include precedes the fragment shader")

	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "shader.vs"),
		filepath.Join(dir, "common.glsl"),
		filepath.Join(dir, "shader.fs"),
	}, files)
}

func TestSourcesFallback(t *testing.T) {
	fallback := []shader.StageSource{
		shader.Vertex(shader.SourceBuf("void main() {}")),
		shader.Fragment(shader.SourceBuf("void main() {}")),
	}
	stages, files, err := testDefaults.Sources("triangle", fallback...)
	require.NoError(t, err)
	assert.Equal(t, fallback, stages)
	assert.Empty(t, files)
}

func TestSourcesMissingFile(t *testing.T) {
	cfg := testDefaults
	cfg.Programs = []ProgramConfig{{Name: "p", Vertex: "testdata/missing.vs", Fragment: "testdata/shader.fs"}}
	_, _, err := cfg.Sources("p")
	assert.ErrorIs(t, err, ErrConfig)
}
