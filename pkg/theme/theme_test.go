package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinsRegistered(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != Dark || names[1] != Light {
		t.Fatalf("Names() = %v, want [dark light]", names)
	}
}

func TestForMode(t *testing.T) {
	if got := ForMode(true); got.Name != Dark || !got.Dark {
		t.Errorf("ForMode(true) = %q (dark=%v), want dark", got.Name, got.Dark)
	}
	if got := ForMode(false); got.Name != Light || got.Dark {
		t.Errorf("ForMode(false) = %q (dark=%v), want light", got.Name, got.Dark)
	}
}

func TestGetUnknownFallsBackToLight(t *testing.T) {
	if got := Get("solarized"); got.Name != Light {
		t.Errorf("Get(unknown).Name = %q, want %q", got.Name, Light)
	}
	if got := Get("DARK"); got.Name != Dark {
		t.Errorf("Get is case-insensitive, got %q", got.Name)
	}
}

func TestBuiltinsValid(t *testing.T) {
	for _, name := range Names() {
		if err := thValidateTheme(Get(name)); err != nil {
			t.Errorf("builtin %q invalid: %v", name, err)
		}
	}
}

func TestStageColor(t *testing.T) {
	th := Get(Light)
	cases := []struct {
		stage int
		want  string
	}{
		{-1, th.StageNone},
		{0, th.StageNone},
		{1, th.StageLow},
		{3, th.StageLow},
		{4, th.StageHigh},
		{8, th.StageHigh},
	}
	for _, tc := range cases {
		if got := th.StageColor(tc.stage); got != tc.want {
			t.Errorf("StageColor(%d) = %q, want %q", tc.stage, got, tc.want)
		}
	}
}

func TestLoadFromTOMLOverridesBase(t *testing.T) {
	data := []byte(`
name = "midnight"
mode = "dark"

[base]
accent = "#ff00ff"

[stage]
high = "#ff0000"
`)
	th, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if th.Name != "midnight" || !th.Dark {
		t.Errorf("got name=%q dark=%v", th.Name, th.Dark)
	}
	if th.Accent != "#ff00ff" || th.StageHigh != "#ff0000" {
		t.Errorf("overrides not applied: accent=%q high=%q", th.Accent, th.StageHigh)
	}
	if th.Background != Get(Dark).Background {
		t.Errorf("unset fields should come from the dark palette, got %q", th.Background)
	}
}

func TestLoadFromTOMLRejectsBadColor(t *testing.T) {
	_, err := LoadFromTOML([]byte("name = \"x\"\n[base]\naccent = \"orange\"\n"))
	if err == nil || !strings.Contains(err.Error(), "base.accent") {
		t.Fatalf("expected invalid color error naming base.accent, got %v", err)
	}
}

func TestLoadFromTOMLRejectsBadMode(t *testing.T) {
	if _, err := LoadFromTOML([]byte(`mode = "sepia"`)); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLoadFromTOMLMalformed(t *testing.T) {
	if _, err := LoadFromTOML([]byte("name = ")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	orig := Get(Dark)
	data, err := SaveToTOML(orig)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	back, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if back != orig {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, orig)
	}
}

func TestLoadFileAndRegisterOverride(t *testing.T) {
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "light.toml")
	if err := os.WriteFile(path, []byte("name = \"light\"\n[base]\naccent = \"#123456\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	Register(th)

	if got := ForMode(false).Accent; got != "#123456" {
		t.Errorf("override not active, accent = %q", got)
	}

	Reset()
	if got := ForMode(false).Accent; got != thLightTheme().Accent {
		t.Errorf("Reset did not restore builtin, accent = %q", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
