package shader

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	fakeOutRe = regexp.MustCompile(`(?m)^\s*out\s+\w+\s+(\w+)\s*;`)
	fakeInRe  = regexp.MustCompile(`(?m)^\s*in\s+\w+\s+(\w+)\s*;`)
)

// recordingDriver is an in-memory Driver. A stage fails to compile if its
// source contains "#error" and a program fails to link if a fragment input
// is not written by the vertex stage.
type recordingDriver struct {
	next     uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32][]uint32

	created, deleted  int
	programsCreated   int
	programsDeleted   int
	doubleDeletes     int
	attachedAfterFree int
}

type fakeShader struct {
	stage    Stage
	source   string
	compiled bool
	log      string
}

func newRecordingDriver() *recordingDriver {
	return &recordingDriver{
		shaders:  map[uint32]*fakeShader{},
		programs: map[uint32][]uint32{},
	}
}

func (d *recordingDriver) handle() uint32 {
	d.next++
	return d.next
}

// live returns the number of stage handles that have not been released.
func (d *recordingDriver) live() int {
	return len(d.shaders)
}

func (d *recordingDriver) CreateShader(stage Stage) uint32 {
	id := d.handle()
	d.shaders[id] = &fakeShader{stage: stage}
	d.created++
	return id
}

func (d *recordingDriver) ShaderSource(shader uint32, source string) {
	d.shaders[shader].source = source
}

func (d *recordingDriver) CompileShader(shader uint32) {
	sh := d.shaders[shader]
	for i, line := range strings.Split(sh.source, "\n") {
		if strings.Contains(line, "#error") {
			sh.log = fmt.Sprintf("0:%d(2): error: %s", i+1, strings.TrimSpace(line))
			return
		}
	}
	sh.compiled = true
}

func (d *recordingDriver) CompileStatus(shader uint32) bool {
	return d.shaders[shader].compiled
}

func (d *recordingDriver) ShaderInfoLog(shader uint32) string {
	return d.shaders[shader].log
}

func (d *recordingDriver) DeleteShader(shader uint32) {
	if _, ok := d.shaders[shader]; !ok {
		d.doubleDeletes++
		return
	}
	delete(d.shaders, shader)
	d.deleted++
}

func (d *recordingDriver) CreateProgram() uint32 {
	id := d.handle()
	d.programs[id] = nil
	d.programsCreated++
	return id
}

func (d *recordingDriver) AttachShader(program, shader uint32) {
	if _, ok := d.shaders[shader]; !ok {
		d.attachedAfterFree++
	}
	d.programs[program] = append(d.programs[program], shader)
}

func (d *recordingDriver) DetachShader(program, shader uint32) {}

func (d *recordingDriver) LinkProgram(program uint32) {}

func (d *recordingDriver) LinkStatus(program uint32) bool {
	return d.ProgramInfoLog(program) == ""
}

func (d *recordingDriver) ProgramInfoLog(program uint32) string {
	outputs := map[string]bool{}
	var inputs []string
	for _, id := range d.programs[program] {
		sh := d.shaders[id]
		if sh == nil {
			return "error: attached shader was deleted"
		}
		switch sh.stage {
		case StageVertex:
			for _, m := range fakeOutRe.FindAllStringSubmatch(sh.source, -1) {
				outputs[m[1]] = true
			}
		case StageFragment:
			for _, m := range fakeInRe.FindAllStringSubmatch(sh.source, -1) {
				inputs = append(inputs, m[1])
			}
		}
	}
	for _, in := range inputs {
		if !outputs[in] {
			return fmt.Sprintf("error: %s not written by the vertex shader", in)
		}
	}
	return ""
}

func (d *recordingDriver) DeleteProgram(program uint32) {
	if _, ok := d.programs[program]; !ok {
		d.doubleDeletes++
		return
	}
	delete(d.programs, program)
	d.programsDeleted++
}
