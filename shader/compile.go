package shader

import (
	"errors"
	"fmt"
)

const sourceSeparator = "\n\n"

var errNoStages = errors.New("no shader stages to link")

// CompiledStage is a successfully compiled shader stage. It is consumed by
// LinkProgram, which releases it whatever the outcome.
type CompiledStage struct {
	stage Stage
	id    uint32
}

func (cs CompiledStage) Stage() Stage { return cs.stage }

// CompileStage compiles the concatenation of sources for a single stage.
//
// A failed compilation yields a CompileError carrying the driver's diagnostic
// log. The driver handle of a failed stage is released before returning.
func CompileStage(drv Driver, stage Stage, sources ...Source) (CompiledStage, error) {
	if !stage.valid() {
		return CompiledStage{}, fmt.Errorf("invalid pipeline stage: %q", string(stage))
	}

	var src string
	files := make([]sourceInfo, 0, len(sources))
	for i, s := range sources {
		c, err := s.Contents()
		if err != nil {
			return CompiledStage{}, fmt.Errorf("error reading %s source: %w", stage, err)
		}
		files = append(files, sourceInfo{name: sourceName(s, i), text: string(c)})
		src += string(c)
		src += sourceSeparator
	}

	id := drv.CreateShader(stage)
	drv.ShaderSource(id, src)
	drv.CompileShader(id)
	if !drv.CompileStatus(id) {
		log := drv.ShaderInfoLog(id)
		drv.DeleteShader(id)
		return CompiledStage{}, CompileError{
			sources: files,
			stage:   stage,
			log:     nonEmptyLog(log),
		}
	}
	return CompiledStage{stage: stage, id: id}, nil
}

// LinkProgram links compiled stages into a program. Every stage is detached
// and released afterwards, also when linking fails.
func LinkProgram(drv Driver, stages ...CompiledStage) (*Program, error) {
	if len(stages) == 0 {
		return nil, errNoStages
	}
	stages = uniqueStages(stages)

	program := drv.CreateProgram()
	for _, st := range stages {
		drv.AttachShader(program, st.id)
	}
	drv.LinkProgram(program)

	var linkErr error
	if !drv.LinkStatus(program) {
		linkErr = LinkError{log: nonEmptyLog(drv.ProgramInfoLog(program))}
	}

	for _, st := range stages {
		drv.DetachShader(program, st.id)
		drv.DeleteShader(st.id)
	}
	if linkErr != nil {
		drv.DeleteProgram(program)
		return nil, linkErr
	}
	return &Program{drv: drv, id: program}, nil
}

// Build compiles all stage sources and links them into a program.
//
// Every stage is compiled before anything is linked. If one or more stages
// fail, the stages that did compile are released and the compile errors are
// returned in the order of the sources.
func Build(drv Driver, sources ...StageSource) (*Program, error) {
	if len(sources) == 0 {
		return nil, errNoStages
	}
	stages := make([]CompiledStage, 0, len(sources))
	var errs []error
	for _, src := range sources {
		st, err := CompileStage(drv, src.Stage, src.Sources...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stages = append(stages, st)
	}
	if len(errs) > 0 {
		for _, st := range stages {
			drv.DeleteShader(st.id)
		}
		if len(errs) == 1 {
			return nil, errs[0]
		}
		return nil, errors.Join(errs...)
	}
	return LinkProgram(drv, stages...)
}

func uniqueStages(stages []CompiledStage) []CompiledStage {
	seen := make(map[uint32]bool, len(stages))
	out := stages[:0:0]
	for _, st := range stages {
		if seen[st.id] {
			continue
		}
		seen[st.id] = true
		out = append(out, st)
	}
	return out
}

func nonEmptyLog(log string) string {
	if log == "" {
		return "(the driver provided no diagnostic log)"
	}
	return log
}
