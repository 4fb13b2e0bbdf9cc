// Package config holds the runtime settings of the machine and reads
// them from TOML files.
//
// An example file:
//
//	speed = 8.0
//	scale = 12
//	foreground = "#ffb000"
//	background = "#000000"
//	tone = 440.0
//
//	[keys]
//	"1" = 0x1
//	"x" = 0x0
package config

import (
	goio "io"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/chip8/io"
)

const (
	DEFAULT_SPEED = 10.0  // Multiplier of the 60 Hz tick rate.
	DEFAULT_SCALE = 10    // Window pixels per display pixel.
	DEFAULT_TONE  = 440.0 // Beep frequency in Hz.
)

// Config holds the settings of a run.
type Config struct {
	Speed      float64   `toml:"speed"`      // Multiplier of the 60 Hz tick rate.
	Scale      int       `toml:"scale"`      // Window pixels per display pixel.
	Foreground string    `toml:"foreground"` // Lit pixel colour, #rrggbb.
	Background string    `toml:"background"` // Unlit pixel colour, #rrggbb.
	Tone       float64   `toml:"tone"`       // Beep frequency in Hz.
	Mute       bool      `toml:"mute"`       // Disables the beeper.
	Terminal   bool      `toml:"terminal"`   // Uses the terminal frontend.
	Keys       io.Keymap `toml:"keys"`       // Overrides of the default keymap.
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Speed:      DEFAULT_SPEED,
		Scale:      DEFAULT_SCALE,
		Foreground: io.DEFAULT_FOREGROUND,
		Background: io.DEFAULT_BACKGROUND,
		Tone:       DEFAULT_TONE,
	}
}

// Load reads a TOML file over the defaults.
func Load(fsys fs.FS, name string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFS(fsys, name, cfg)
	if err != nil {
		cfg = nil
		err = &ErrConfig{Name: name, Err: err}
		return
	}

	err = cfg.check(name, md)
	if err != nil {
		cfg = nil
		return
	}

	return
}

// Parse reads TOML text over the defaults.
func Parse(text string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, cfg)
	if err != nil {
		cfg = nil
		err = &ErrConfig{Name: "config", Err: err}
		return
	}

	err = cfg.check("config", md)
	if err != nil {
		cfg = nil
		return
	}

	return
}

// check rejects unknown settings, then validates.
func (cfg *Config) check(name string, md toml.MetaData) (err error) {
	undecoded := md.Undecoded()
	if len(undecoded) > 0 {
		err = &ErrConfig{Name: name, Key: undecoded[0].String(), Err: ErrUnknownKey}
		return
	}

	err = cfg.Validate()
	if err != nil {
		err = &ErrConfig{Name: name, Err: err}
		return
	}

	return
}

// Validate checks every setting.
func (cfg *Config) Validate() (err error) {
	if !(cfg.Speed > 0) {
		err = ErrSpeed
		return
	}

	if cfg.Scale <= 0 {
		err = ErrScale
		return
	}

	if !(cfg.Tone > 0) {
		err = ErrTone
		return
	}

	_, err = cfg.Palette()
	if err != nil {
		return
	}

	err = cfg.Keys.Validate()
	if err != nil {
		return
	}

	return
}

// Palette returns the parsed display colours.
func (cfg *Config) Palette() (pal io.Palette, err error) {
	pal.Foreground, err = io.ParseColor(cfg.Foreground)
	if err != nil {
		return
	}

	pal.Background, err = io.ParseColor(cfg.Background)
	if err != nil {
		return
	}

	return
}

// Keymap returns the default keymap with the configured overrides.
func (cfg *Config) Keymap() io.Keymap {
	return io.DefaultKeymap.Merge(cfg.Keys)
}

// Write encodes the settings as TOML.
func (cfg *Config) Write(w goio.Writer) (err error) {
	err = toml.NewEncoder(w).Encode(cfg)
	return
}
