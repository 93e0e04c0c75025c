package shader

import (
	"testing"
)

func TestMarkerFormats(t *testing.T) {
	logs := map[string]string{
		"mesa":   "0:3(2): error: `a' undeclared",
		"nvidia": "0(3) : error C1008: undefined variable \"a\"",
		"amd":    "ERROR: 0:3: 'a' : undeclared identifier",
	}
	for vendor, log := range logs {
		t.Run(vendor, func(t *testing.T) {
			cerr := CompileError{
				sources: []sourceInfo{{name: "a.glsl", text: "\nvoid main() {\n\ta = 12;\n}\n"}},
				stage:   StageVertex,
				log:     log,
			}
			m := cerr.Markers()
			if len(m) != 1 {
				t.Fatalf("expected one marker, got %d", len(m))
			}
			if m[0].Source != 0 || m[0].Line != 3 {
				t.Fatalf("unexpected position: %+v", m[0])
			}
			if m[0].Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}

func TestMarkerSecondSource(t *testing.T) {
	cerr := CompileError{
		sources: []sourceInfo{
			{name: "lib.glsl", text: "float f() {\n\treturn 1.0;\n}\n"},
			{name: "main.glsl", text: "void main() {\n\ta = 12;\n}\n"},
		},
		stage: StageFragment,
		// lib.glsl spans 3 lines plus the 2 line separator.
		log: "0:7(2): error: `a' undeclared\n0:2(1): warning: unused",
	}
	m := cerr.Markers()
	if len(m) != 2 {
		t.Fatalf("expected two markers, got %d", len(m))
	}
	if m[0].Source != 1 || m[0].Line != 2 {
		t.Fatalf("unexpected position: %+v", m[0])
	}
	if m[1].Source != 0 || m[1].Line != 2 {
		t.Fatalf("unexpected position: %+v", m[1])
	}
}

func TestMarkerUnparsable(t *testing.T) {
	cerr := CompileError{stage: StageVertex, log: "something went wrong"}
	if m := cerr.Markers(); len(m) != 0 {
		t.Fatalf("expected no markers, got %+v", m)
	}
}
