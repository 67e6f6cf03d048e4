package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivierh59500/particle-field-go/internal/particles"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultProducesStockOptions(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	o, err := c.Options(800, 600)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := particles.DefaultOptions(800, 600)
	if o != want {
		t.Fatalf("options = %+v\nwant %+v", o, want)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Particles != particles.DefaultCount || c.Backend != BackendWindow {
		t.Fatalf("config = %+v, want defaults", c)
	}
}

func TestSaveThenLoadKeepsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.json")
	c := Default()
	c.Particles = 12
	c.Color = "#ff0000"
	c.Partition = "grid"
	if err := Save(path, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Particles != 12 || got.Color != "#ff0000" || got.Partition != "grid" {
		t.Fatalf("loaded %+v", got)
	}
}

func TestLoadRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{particles:"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(envMap(map[string]string{
		"PARTICLES_BACKEND":        "terminal",
		"PARTICLES_COUNT":          "25",
		"PARTICLES_POINTER_RADIUS": "90.5",
		"PARTICLES_SEED":           "99",
		"PARTICLES_SHOW_HUD":       "true",
		"PARTICLES_COLOR":          "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.Backend != BackendTerminal || c.Particles != 25 || c.PointerRadius != 90.5 || c.Seed != 99 || !c.ShowHUD {
		t.Fatalf("config = %+v", c)
	}
	if c.Color != "#667eea" {
		t.Fatalf("empty variable overrode colour: %q", c.Color)
	}
}

func TestApplyEnvCoversEveryTunable(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(envMap(map[string]string{
		"PARTICLES_POINTER_FORCE":     "0.3",
		"PARTICLES_MAX_INITIAL_SPEED": "0.5",
		"PARTICLES_MIN_SIZE":          "0.5",
		"PARTICLES_MAX_SIZE":          "4",
		"PARTICLES_PARTICLE_ALPHA":    "0.6",
		"PARTICLES_LINE_WIDTH":        "1.5",
		"PARTICLES_DRIFT":             "0.02",
		"PARTICLES_DRIFT_SCALE":       "0.01",
		"PARTICLES_LINK_DISTANCE":     "90",
		"PARTICLES_DAMPING":           "0.95",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	want := Default()
	want.PointerForce = 0.3
	want.MaxInitialSpeed = 0.5
	want.MinSize = 0.5
	want.MaxSize = 4
	want.ParticleAlpha = 0.6
	want.LineWidth = 1.5
	want.Drift = 0.02
	want.DriftScale = 0.01
	want.LinkDistance = 90
	want.Damping = 0.95
	if c != want {
		t.Fatalf("config = %+v\nwant %+v", c, want)
	}
	o, err := c.Options(100, 100)
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if o.PointerForce != 0.3 || o.MaxSize != 4 || o.LineWidth != 1.5 || o.DriftScale != 0.01 {
		t.Fatalf("options = %+v", o)
	}
}

func TestApplyEnvReportsBadNumbers(t *testing.T) {
	for key, val := range map[string]string{
		"PARTICLES_COUNT":             "lots",
		"PARTICLES_DAMPING":           "sticky",
		"PARTICLES_SEED":              "0x",
		"PARTICLES_RESPAWN_ON_RESIZE": "maybe",
	} {
		c := Default()
		if err := c.ApplyEnv(envMap(map[string]string{key: val})); err == nil {
			t.Fatalf("%s=%s accepted", key, val)
		}
	}
}

func TestLoadEnvFileDoesNotOverrideExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "PARTICLES_TEST_FROM_FILE=file\nPARTICLES_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PARTICLES_TEST_PRESET", "process")
	t.Setenv("PARTICLES_TEST_FROM_FILE", "")
	os.Unsetenv("PARTICLES_TEST_FROM_FILE")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("PARTICLES_TEST_FROM_FILE"); got != "file" {
		t.Fatalf("PARTICLES_TEST_FROM_FILE = %q, want file", got)
	}
	if got := os.Getenv("PARTICLES_TEST_PRESET"); got != "process" {
		t.Fatalf("PARTICLES_TEST_PRESET = %q, want process", got)
	}
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#667eea")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if c != (color.RGBA{R: 102, G: 126, B: 234, A: 255}) {
		t.Fatalf("colour = %+v", c)
	}
	if c, err := ParseColor("#fff"); err != nil || c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("short form = %+v, %v", c, err)
	}
	if _, err := ParseColor("blue"); err == nil {
		t.Fatal("expected error for named colour")
	}
}

func TestOptionsPropagatesValidation(t *testing.T) {
	c := Default()
	c.PointerRadius = 0
	if _, err := c.Options(100, 100); !errors.Is(err, particles.ErrInvalidOptions) {
		t.Fatalf("err = %v, want ErrInvalidOptions", err)
	}
	c = Default()
	c.Partition = "octree"
	if _, err := c.Options(100, 100); err == nil {
		t.Fatal("expected partition error")
	}
}

func TestValidateBackend(t *testing.T) {
	c := Default()
	c.Backend = "webgl"
	if err := c.Validate(); err == nil {
		t.Fatal("expected backend error")
	}
}
