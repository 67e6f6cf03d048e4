// Package config loads the particle field settings from defaults, a JSON
// file, a .env file and PARTICLES_* environment variables, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/particle-field-go/internal/particles"
)

const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// Config is the on-disk shape of the settings.
type Config struct {
	Backend string `json:"backend"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	TPS     int    `json:"tps"`

	Particles       int     `json:"particles"`
	PointerRadius   float64 `json:"pointer_radius"`
	PointerForce    float64 `json:"pointer_force"`
	LinkDistance    float64 `json:"link_distance"`
	Damping         float64 `json:"damping"`
	MaxInitialSpeed float64 `json:"max_initial_speed"`
	MinSize         float64 `json:"min_size"`
	MaxSize         float64 `json:"max_size"`

	Color         string  `json:"color"`
	Background    string  `json:"background"`
	ParticleAlpha float64 `json:"particle_alpha"`
	LineWidth     float64 `json:"line_width"`

	Drift      float64 `json:"drift"`
	DriftScale float64 `json:"drift_scale"`

	Partition       string `json:"partition"`
	RespawnOnResize bool   `json:"respawn_on_resize"`
	Seed            int64  `json:"seed"`

	ShowHUD  bool   `json:"show_hud"`
	Cursor   bool   `json:"cursor"`
	LogLevel string `json:"log_level"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		Backend:         BackendWindow,
		Width:           800,
		Height:          600,
		TPS:             60,
		Particles:       particles.DefaultCount,
		PointerRadius:   particles.DefaultPointerRadius,
		PointerForce:    particles.DefaultPointerForce,
		LinkDistance:    particles.DefaultLinkDistance,
		Damping:         particles.DefaultDamping,
		MaxInitialSpeed: particles.DefaultMaxInitialSpeed,
		MinSize:         particles.DefaultMinSize,
		MaxSize:         particles.DefaultMaxSize,
		Color:           "#667eea",
		Background:      "#0a0a0f",
		ParticleAlpha:   particles.DefaultParticleAlpha,
		LineWidth:       particles.DefaultLineWidth,
		DriftScale:      particles.DefaultDriftScale,
		Partition:       particles.PartitionAuto.String(),
		Cursor:          true,
		LogLevel:        "info",
	}
}

// Load builds a Config from defaults, then the JSON file at path (skipped
// when path is empty or the file does not exist), then the environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := json.Unmarshal(data, &c); err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return c, err
	}
	return c, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Save writes c as indented JSON.
func Save(path string, c Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from PARTICLES_* variables found by lookup.
// Every JSON field has a variable named after its key, upper-cased, except
// particles (PARTICLES_COUNT).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var err error
	num := func(key string, dst *float64) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if perr != nil {
			err = fmt.Errorf("%s=%q: %w", key, v, perr)
			return
		}
		*dst = f
	}
	integer := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		n, perr := strconv.Atoi(strings.TrimSpace(v))
		if perr != nil {
			err = fmt.Errorf("%s=%q: %w", key, v, perr)
			return
		}
		*dst = n
	}
	flag := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		b, perr := strconv.ParseBool(strings.TrimSpace(v))
		if perr != nil {
			err = fmt.Errorf("%s=%q: %w", key, v, perr)
			return
		}
		*dst = b
	}

	str("PARTICLES_BACKEND", &c.Backend)
	str("PARTICLES_COLOR", &c.Color)
	str("PARTICLES_BACKGROUND", &c.Background)
	str("PARTICLES_PARTITION", &c.Partition)
	str("PARTICLES_LOG_LEVEL", &c.LogLevel)
	integer("PARTICLES_COUNT", &c.Particles)
	integer("PARTICLES_WIDTH", &c.Width)
	integer("PARTICLES_HEIGHT", &c.Height)
	integer("PARTICLES_TPS", &c.TPS)
	num("PARTICLES_POINTER_RADIUS", &c.PointerRadius)
	num("PARTICLES_LINK_DISTANCE", &c.LinkDistance)
	num("PARTICLES_DAMPING", &c.Damping)
	num("PARTICLES_POINTER_FORCE", &c.PointerForce)
	num("PARTICLES_MAX_INITIAL_SPEED", &c.MaxInitialSpeed)
	num("PARTICLES_MIN_SIZE", &c.MinSize)
	num("PARTICLES_MAX_SIZE", &c.MaxSize)
	num("PARTICLES_PARTICLE_ALPHA", &c.ParticleAlpha)
	num("PARTICLES_LINE_WIDTH", &c.LineWidth)
	num("PARTICLES_DRIFT", &c.Drift)
	num("PARTICLES_DRIFT_SCALE", &c.DriftScale)
	flag("PARTICLES_RESPAWN_ON_RESIZE", &c.RespawnOnResize)
	flag("PARTICLES_SHOW_HUD", &c.ShowHUD)
	flag("PARTICLES_CURSOR", &c.Cursor)
	if v, ok := lookup("PARTICLES_SEED"); ok && v != "" && err == nil {
		seed, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if perr != nil {
			return fmt.Errorf("PARTICLES_SEED=%q: %w", v, perr)
		}
		c.Seed = seed
	}
	return err
}

// Validate checks the fields particles.Options does not cover.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.TPS)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	return nil
}

// Options converts c into simulation options for a width x height surface.
func (c Config) Options(width, height float64) (particles.Options, error) {
	o := particles.DefaultOptions(width, height)
	clr, err := ParseColor(c.Color)
	if err != nil {
		return o, err
	}
	part, err := particles.ParsePartition(c.Partition)
	if err != nil {
		return o, err
	}
	o.Count = c.Particles
	o.PointerRadius = c.PointerRadius
	o.PointerForce = c.PointerForce
	o.LinkDistance = c.LinkDistance
	o.Damping = c.Damping
	o.MaxInitialSpeed = c.MaxInitialSpeed
	o.MinSize = c.MinSize
	o.MaxSize = c.MaxSize
	o.Color = clr
	o.ParticleAlpha = c.ParticleAlpha
	o.LineWidth = c.LineWidth
	o.Drift = c.Drift
	o.DriftScale = c.DriftScale
	o.Partition = part
	o.RespawnOnResize = c.RespawnOnResize
	o.Seed = c.Seed
	return o, o.Validate()
}

// ParseColor parses a #rgb or #rrggbb hex colour.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimSpace(s)
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
