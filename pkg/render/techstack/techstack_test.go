package techstack

import (
	"bytes"
	"encoding/xml"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/profile/profiletest"
	"github.com/matzehuels/galaxyprofile/pkg/render"
)

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("document is not well-formed: %v", err)
		}
	}
}

func sampleInput() render.Input {
	return render.Input{Config: profiletest.Config(), Languages: profiletest.Languages()}
}

func TestRender(t *testing.T) {
	out := string(Render(sampleInput()))

	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("not a complete svg document")
	}
	wellFormed(t, out)

	for _, want := range []string{
		"LANGUAGE TELEMETRY",
		"FOCUS SECTORS",
		">Python</text>",
		">40.7%</text>",
		">Frontend</text>",
		">DevOps</text>",
		">(3)</text>",
		`stroke-dasharray="3,3"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Excluded languages never get a bar.
	for _, excluded := range []string{">CSS</text>", ">Shell</text>"} {
		if strings.Contains(out, excluded) {
			t.Errorf("excluded language %s rendered", excluded)
		}
	}
}

func TestRenderSectorsPerArm(t *testing.T) {
	tests := []struct {
		arms int
	}{
		{1}, {2}, {3}, {5},
	}
	for _, tt := range tests {
		cfg := profiletest.Config()
		cfg.Arms = nil
		for i := range tt.arms {
			cfg.Arms = append(cfg.Arms, profile.Arm{Name: "arm" + string(rune('A'+i)), Color: "synapse_cyan", Items: []string{"x"}})
		}
		cfg.Projects = nil
		out := string(Render(render.Input{Config: cfg}))
		if got := strings.Count(out, `fill-opacity="0.10"`); got != tt.arms {
			t.Errorf("arms=%d: sectors = %d", tt.arms, got)
		}
		if got := strings.Count(out, `values="0.35;0.35;1.0;0.35;0.35"`); got != tt.arms {
			t.Errorf("arms=%d: dots = %d", tt.arms, got)
		}
		wellFormed(t, out)
	}
}

func TestHeight(t *testing.T) {
	tests := []struct {
		rows int
		want int
	}{
		{0, 240},
		{3, 240},
		{8, 261},
		{12, 349},
	}
	for _, tt := range tests {
		if got := Height(tt.rows); got != tt.want {
			t.Errorf("Height(%d) = %d, want %d", tt.rows, got, tt.want)
		}
	}
}

func TestRenderEmptyLanguages(t *testing.T) {
	in := render.Input{Config: profiletest.Config()}
	out := string(Render(in))
	if strings.Contains(out, `attributeName="width"`) {
		t.Error("empty languages should render no bars")
	}
	if !strings.Contains(out, `height="240"`) {
		t.Error("empty languages should use the radar height")
	}
	wellFormed(t, out)
}

func TestRenderMinimumBarWidth(t *testing.T) {
	in := render.Input{Config: profiletest.Config(), Languages: profile.Languages{"Go": 100000, "Zig": 1}}
	out := string(Render(in))
	if !strings.Contains(out, `width="4" height="12"`) {
		t.Error("tiny shares should get the minimum 4px bar")
	}
	if !strings.Contains(out, `width="200" height="12"`) {
		t.Error("dominant language should get the full bar")
	}
}

func TestRenderEscapes(t *testing.T) {
	cfg := profiletest.Config()
	cfg.Arms[0].Name = "R&D <lab>"
	out := string(Render(render.Input{Config: cfg, Languages: profile.Languages{"C++ & <friends>": 10}}))
	if strings.Contains(out, "<lab>") || strings.Contains(out, "<friends>") {
		t.Error("user text not escaped")
	}
	wellFormed(t, out)
}

func TestPulseBegin(t *testing.T) {
	tests := []struct {
		angle float64
		want  float64
	}{
		{0, 7.7},
		{45, 0.7},
		{180, 3.7},
		{359, 7.677777777777778},
		{720, 7.7},
	}
	for _, tt := range tests {
		got := PulseBegin(tt.angle)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PulseBegin(%v) = %v, want %v", tt.angle, got, tt.want)
		}
		if got < 0 || got >= sweepPeriod {
			t.Errorf("PulseBegin(%v) = %v outside [0, 8)", tt.angle, got)
		}
	}
}

func TestDeterministic(t *testing.T) {
	in := sampleInput()
	if !bytes.Equal(Render(in), Render(in)) {
		t.Error("identical inputs produced different output")
	}
}
