package stats

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/galaxyprofile/pkg/profile"
	"github.com/matzehuels/galaxyprofile/pkg/profile/profiletest"
	"github.com/matzehuels/galaxyprofile/pkg/render"
	"github.com/matzehuels/galaxyprofile/pkg/render/theme"
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

func TestRender(t *testing.T) {
	out := string(Render(render.Input{Config: profiletest.Config(), Stats: profiletest.Stats()}))

	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("not a complete svg document")
	}
	wellFormed(t, out)

	for _, want := range []string{
		"MISSION TELEMETRY",
		">1.8k</text>",
		">342</text>",
		">156</text>",
		">89</text>",
		">42</text>",
		">Commits</text>",
		">PRs</text>",
		`id="num-glow"`,
		`viewBox="0 0 850 180"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if got := strings.Count(out, `class="metric-cell"`); got != 5 {
		t.Errorf("cells = %d, want 5", got)
	}
	// Four dividers between five cells.
	if got := strings.Count(out, `y1="55"`); got != 4 {
		t.Errorf("dividers = %d, want 4", got)
	}
	if !strings.Contains(out, `translate(85, 95)`) {
		t.Error("first cell should be centered in a 170px column")
	}
}

func TestRenderMetricOrderAndColors(t *testing.T) {
	cfg := profiletest.Config()
	cfg.Stats.Metrics = []profile.Metric{profile.MetricStars, profile.MetricCommits}
	out := string(Render(render.Input{Config: cfg, Stats: profiletest.Stats()}))

	stars := strings.Index(out, ">Stars</text>")
	commits := strings.Index(out, ">Commits</text>")
	if stars < 0 || commits < 0 || stars > commits {
		t.Error("cells should follow configured metric order")
	}
	if !strings.Contains(out, `fill="`+theme.Default()[theme.AxonAmber]+`" class="metric-icon"`) {
		t.Error("stars icon should use axon_amber")
	}
	if got := strings.Count(out, `class="metric-cell"`); got != 2 {
		t.Errorf("cells = %d, want 2", got)
	}
	if !strings.Contains(out, `translate(212.5, 95)`) {
		t.Error("two cells should be 425px wide")
	}
}

func TestRenderMissingStats(t *testing.T) {
	out := string(Render(render.Input{Config: profiletest.Config()}))
	if got := strings.Count(out, ">0</text>"); got != 10 {
		t.Errorf("zero values = %d, want 10 (glow + value per cell)", got)
	}
	wellFormed(t, out)
}

func TestRenderNoMetrics(t *testing.T) {
	cfg := profiletest.Config()
	cfg.Stats.Metrics = nil
	out := string(Render(render.Input{Config: cfg, Stats: profiletest.Stats()}))
	if strings.Contains(out, "metric-cell") {
		t.Error("no metrics should render no cells")
	}
	if !strings.Contains(out, "MISSION TELEMETRY") {
		t.Error("card should still render")
	}
	wellFormed(t, out)
}

func TestRenderLargeValues(t *testing.T) {
	stats := profile.Stats{profile.MetricCommits: 2_500_000, profile.MetricStars: 1000}
	out := string(Render(render.Input{Config: profiletest.Config(), Stats: stats}))
	for _, want := range []string{">2.5M</text>", ">1.0k</text>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDeterministic(t *testing.T) {
	in := render.Input{Config: profiletest.Config(), Stats: profiletest.Stats()}
	if !bytes.Equal(Render(in), Render(in)) {
		t.Error("identical inputs produced different output")
	}
}

func TestSlot(t *testing.T) {
	tests := []struct {
		m    profile.Metric
		want string
	}{
		{profile.MetricCommits, theme.SynapseCyan},
		{profile.MetricStars, theme.AxonAmber},
		{profile.MetricPRs, theme.DendriteViolet},
		{profile.MetricIssues, theme.SynapseCyan},
		{profile.MetricRepos, theme.DendriteViolet},
		{profile.Metric("other"), theme.SynapseCyan},
	}
	for _, tt := range tests {
		if got := Slot(tt.m); got != tt.want {
			t.Errorf("Slot(%s) = %s, want %s", tt.m, got, tt.want)
		}
	}
}
