package shader

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Stage names the pipeline step a shader is compiled for.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

func (stage Stage) valid() bool {
	return stage == StageVertex || stage == StageFragment
}

func (stage Stage) glEnum() (uint32, error) {
	switch stage {
	case StageVertex:
		return gl.VERTEX_SHADER, nil
	case StageFragment:
		return gl.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("invalid pipeline stage: %q", string(stage))
}

// StageSource pairs a stage with the source text it is compiled from. The
// text may be spread over multiple sources which are concatenated in order.
type StageSource struct {
	Stage   Stage
	Sources []Source
}

// Vertex is shorthand for a vertex StageSource.
func Vertex(sources ...Source) StageSource {
	return StageSource{Stage: StageVertex, Sources: sources}
}

// Fragment is shorthand for a fragment StageSource.
func Fragment(sources ...Source) StageSource {
	return StageSource{Stage: StageFragment, Sources: sources}
}
