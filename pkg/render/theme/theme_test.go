package theme

import (
	"slices"
	"testing"

	"github.com/matzehuels/galaxyprofile/pkg/errors"
)

func TestDefaultIsCopy(t *testing.T) {
	a := Default()
	a[Void] = "#ffffff"
	if b := Default(); b[Void] != "#080c14" {
		t.Errorf("Default() shares state: void = %s", b[Void])
	}
	if len(Default()) != len(Slots) {
		t.Errorf("Default() has %d slots, want %d", len(Default()), len(Slots))
	}
}

func TestResolve(t *testing.T) {
	th := Resolve(map[string]string{
		SynapseCyan: "#ff0000",
		"custom":    "#123456",
	})

	tests := []struct {
		slot string
		want string
	}{
		{SynapseCyan, "#ff0000"},
		{DendriteViolet, "#a78bfa"},
		{"custom", "#123456"},
	}
	for _, tt := range tests {
		if got := th[tt.slot]; got != tt.want {
			t.Errorf("th[%s] = %s, want %s", tt.slot, got, tt.want)
		}
	}

	if got := Resolve(nil); len(got) != len(Slots) {
		t.Errorf("Resolve(nil) has %d slots", len(got))
	}
}

func TestColorFallback(t *testing.T) {
	th := Resolve(map[string]string{SynapseCyan: "#010203"})
	if got := th.Color("missing"); got != "#010203" {
		t.Errorf("Color(missing) = %s, want overridden primary", got)
	}
	if got := (Theme{}).Color("missing"); got != "#00d4ff" {
		t.Errorf("empty theme Color = %s, want #00d4ff", got)
	}
}

func TestArmColors(t *testing.T) {
	th := Default()
	got := th.ArmColors(DendriteViolet, SynapseCyan, "nope", AxonAmber)
	want := []string{"#a78bfa", "#00d4ff", "#00d4ff", "#ffb020"}
	if !slices.Equal(got, want) {
		t.Errorf("ArmColors() = %v, want %v", got, want)
	}
	if got := th.ArmColors(); len(got) != 0 {
		t.Errorf("ArmColors() with no arms = %v", got)
	}
}

func TestLanguageColor(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"Python", "#3572A5"},
		{"Go", "#00ADD8"},
		{"Vim Script", "#199f4b"},
		{"Brainfuck", "#8b949e"},
		{"python", "#8b949e"},
	}
	for _, tt := range tests {
		if got := LanguageColor(tt.lang); got != tt.want {
			t.Errorf("LanguageColor(%q) = %s, want %s", tt.lang, got, tt.want)
		}
	}
	if len(languageColors) != 40 {
		t.Errorf("language table has %d entries, want 40", len(languageColors))
	}
}

func TestValidHex(t *testing.T) {
	for _, s := range []string{"#00d4ff", "#ABCDEF", "#000000"} {
		if !ValidHex(s) {
			t.Errorf("ValidHex(%q) = false", s)
		}
	}
	for _, s := range []string{"", "00d4ff", "#fff", "#00d4ffaa", "#gggggg", "not-a-color"} {
		if ValidHex(s) {
			t.Errorf("ValidHex(%q) = true", s)
		}
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("#ff0000")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("Parse(#ff0000) = %v", c)
	}

	_, err = Parse("red")
	if !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("Parse(red) error = %v, want INVALID_COLOR", err)
	}
}

func TestBlend(t *testing.T) {
	if got := Blend("#00d4ff", "#080c14", 0); got != "#00d4ff" {
		t.Errorf("Blend(t=0) = %s, want first color", got)
	}
	if got := Blend("#00d4ff", "#080c14", 1); got != "#080c14" {
		t.Errorf("Blend(t=1) = %s, want second color", got)
	}
	mid := Blend("#000000", "#ffffff", 0.5)
	if !ValidHex(mid) || mid == "#000000" || mid == "#ffffff" {
		t.Errorf("Blend(t=.5) = %s, want an intermediate hex", mid)
	}
	if got := Blend("bogus", "#ffffff", 0.5); got != "bogus" {
		t.Errorf("Blend(invalid) = %s, want input unchanged", got)
	}
}
