package shader

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gookit/color"
)

type sourceInfo struct {
	name string
	text string
}

// CompileError is returned when the driver rejects the source of a stage.
type CompileError struct {
	sources []sourceInfo

	stage Stage
	log   string
}

func (err CompileError) Error() string {
	return fmt.Sprintf("error compiling %s shader:\n%s", err.stage, err.log)
}

// Stage returns the stage that failed to compile.
func (err CompileError) Stage() Stage { return err.stage }

// Log returns the driver's diagnostic log.
func (err CompileError) Log() string { return err.log }

// LinkError is returned when compiled stages could not be linked.
type LinkError struct {
	log string
}

func (err LinkError) Error() string {
	return "error linking shader program:\n" + err.log
}

// Log returns the driver's diagnostic log.
func (err LinkError) Log() string { return err.log }

// A Marker points at a diagnostic in one of the sources a stage was compiled
// from.
type Marker struct {
	// Source is the index of the source, Line is 1-based within it.
	Source  int
	Line    int
	Message string
}

var markerRes = []*regexp.Regexp{
	// Mesa: 0:3(2): error: ...
	regexp.MustCompile(`^(\d+):(\d+)\(\d+\):\s*(.*)$`),
	// NVIDIA: 0(3) : error C0000: ...
	regexp.MustCompile(`^(\d+)\((\d+)\)\s*:\s*(.*)$`),
	// AMD, ANGLE and most others: ERROR: 0:3: ...
	regexp.MustCompile(`^(?:ERROR|WARNING):\s*(\d+):(\d+):\s*(.*)$`),
}

// Markers parses the diagnostic log. Lines the driver reports against the
// concatenated source are mapped back to the source they originate from.
func (err CompileError) Markers() []Marker {
	var markers []Marker
	for _, line := range strings.Split(err.log, "\n") {
		line = strings.TrimSpace(line)
		for _, re := range markerRes {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			global, _ := strconv.Atoi(m[2])
			src, local := err.locate(global)
			markers = append(markers, Marker{Source: src, Line: local, Message: m[3]})
			break
		}
	}
	return markers
}

func (err CompileError) locate(global int) (int, int) {
	offsets := make([]int, len(err.sources))
	offset := 0
	for i, s := range err.sources {
		offsets[i] = offset
		offset += strings.Count(s.text, "\n") + strings.Count(sourceSeparator, "\n")
	}
	for i := len(offsets) - 1; i >= 0; i-- {
		if global > offsets[i] {
			return i, global - offsets[i]
		}
	}
	return 0, global
}

// PrettyPrint writes the diagnostics together with the offending source
// lines. The raw log is written if it could not be parsed.
func (err CompileError) PrettyPrint(out io.Writer, colored bool) {
	paint := func(c color.Color, s string) string {
		if !colored {
			return s
		}
		return c.Sprint(s)
	}

	markers := err.Markers()
	if len(markers) == 0 {
		fmt.Fprintf(out, "%s\n", err.Error())
		return
	}
	fmt.Fprintf(out, "%s\n", paint(color.Bold, fmt.Sprintf("error compiling %s shader:", err.stage)))
	for _, m := range markers {
		name := fmt.Sprintf("<source %d>", m.Source)
		var text string
		if m.Source < len(err.sources) {
			name = err.sources[m.Source].name
			lines := strings.Split(err.sources[m.Source].text, "\n")
			if m.Line >= 1 && m.Line <= len(lines) {
				text = strings.TrimSpace(lines[m.Line-1])
			}
		}
		fmt.Fprintf(out, "%s: %s\n", paint(color.Bold, fmt.Sprintf("%s:%d", name, m.Line)), paint(color.Red, m.Message))
		if text != "" {
			fmt.Fprintf(out, "    %s\n", paint(color.Cyan, text))
		}
	}
}
