package lesson

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polyfloyd/learngl/shader"
)

// failingDriver rejects every stage listed in failCompile and every link when
// failLink is set.
type failingDriver struct {
	failCompile map[shader.Stage]bool
	failLink    bool

	next   uint32
	stages map[uint32]shader.Stage
}

func (d *failingDriver) CreateShader(stage shader.Stage) uint32 {
	if d.stages == nil {
		d.stages = map[uint32]shader.Stage{}
	}
	d.next++
	d.stages[d.next] = stage
	return d.next
}
func (d *failingDriver) ShaderSource(uint32, string) {}
func (d *failingDriver) CompileShader(uint32)        {}
func (d *failingDriver) CompileStatus(id uint32) bool {
	return !d.failCompile[d.stages[id]]
}
func (d *failingDriver) ShaderInfoLog(uint32) string { return "0:1(1): error: syntax error" }
func (d *failingDriver) DeleteShader(uint32)         {}
func (d *failingDriver) CreateProgram() uint32 {
	d.next++
	return d.next
}
func (d *failingDriver) AttachShader(uint32, uint32)  {}
func (d *failingDriver) DetachShader(uint32, uint32)  {}
func (d *failingDriver) LinkProgram(uint32)           {}
func (d *failingDriver) LinkStatus(uint32) bool       { return !d.failLink }
func (d *failingDriver) ProgramInfoLog(uint32) string { return "error: linking failed" }
func (d *failingDriver) DeleteProgram(uint32)         {}

func buildError(drv *failingDriver) error {
	_, err := shader.Build(drv,
		shader.Vertex(shader.SourceBuf("void main() {}")),
		shader.Fragment(shader.SourceBuf("void main() {}")),
	)
	return err
}

func TestExitCode(t *testing.T) {
	vertexErr := buildError(&failingDriver{failCompile: map[shader.Stage]bool{shader.StageVertex: true}})
	fragmentErr := buildError(&failingDriver{failCompile: map[shader.Stage]bool{shader.StageFragment: true}})
	bothErr := buildError(&failingDriver{failCompile: map[shader.Stage]bool{shader.StageVertex: true, shader.StageFragment: true}})
	linkErr := buildError(&failingDriver{failLink: true})

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, ExitOK},
		{"window", fmt.Errorf("%w: no display", ErrWindow), ExitWindow},
		{"vertex", vertexErr, ExitVertex},
		{"fragment", fragmentErr, ExitFragment},
		{"both stages", bothErr, ExitVertex},
		{"wrapped fragment", fmt.Errorf("building program: %w", fragmentErr), ExitFragment},
		{"link", linkErr, ExitLink},
		{"config", fmt.Errorf("%w: bad", ErrConfig), ExitConfig},
		{"other", errors.New("disk full"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCode(tt.err))
		})
	}
}

func TestExitCodesDistinct(t *testing.T) {
	codes := []int{ExitWindow, ExitVertex, ExitFragment, ExitLink, ExitConfig, ExitFailure}
	seen := map[int]bool{ExitOK: true}
	for _, c := range codes {
		assert.False(t, seen[c], "exit status %d is used twice", c)
		seen[c] = true
	}
}
