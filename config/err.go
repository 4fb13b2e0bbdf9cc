package config

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrSpeed      = errors.New(f("speed must be positive"))
	ErrScale      = errors.New(f("scale must be positive"))
	ErrTone       = errors.New(f("tone must be positive"))
	ErrUnknownKey = errors.New(f("unknown setting"))
)

// ErrConfig indicates the configuration file and setting at fault.
type ErrConfig struct {
	Name string
	Key  string
	Err  error
}

func (err *ErrConfig) Error() string {
	if err.Key == "" {
		return f("%v: %v", err.Name, err.Err)
	}
	return f("%v: %v: %v", err.Name, err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
