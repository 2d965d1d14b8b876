// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultContainerType is the tag of containers created by Mount.
	DefaultContainerType = `div`
	// DefaultContainerClass is the class of containers created by Mount.
	DefaultContainerClass = `render-container`
	// RootClass is added to the host body and html elements, in app mode.
	RootClass = `render-root`
)

// Options is the runtime configuration of a Scheduler, see
// [Scheduler.SetOptions].
type Options struct {
	// ContainerType is the tag of containers created by Mount.
	ContainerType string `yaml:"containerType"`

	// ContainerClass is the class added to containers created by Mount.
	ContainerClass string `yaml:"containerClass"`

	// FPSCap is the maximum frame rate, 0 disables the cap.
	FPSCap float64 `yaml:"fpsCap"`

	// RunLoop controls whether Run steps. Disabling it pauses the loop, and
	// re-enabling it resumes the loop, if it had actually paused.
	RunLoop bool `yaml:"runLoop"`

	// AppMode adds RootClass to the host body and html elements, on the
	// first Mount.
	AppMode bool `yaml:"appMode"`
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		ContainerType:  DefaultContainerType,
		ContainerClass: DefaultContainerClass,
		RunLoop:        true,
		AppMode:        true,
	}
}

// LoadOptions decodes YAML from r, overlaying DefaultOptions. Unknown keys
// are rejected. An empty document yields the defaults.
func LoadOptions(r io.Reader) (Options, error) {
	options := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&options); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf(`scheduler: decode options: %w`, err)
	}
	if err := options.validate(); err != nil {
		return Options{}, err
	}
	return options, nil
}

func (o Options) validate() error {
	if err := validateFPSCap(o.FPSCap); err != nil {
		return err
	}
	if o.ContainerType == `` {
		return errors.New(`scheduler: empty container type`)
	}
	return nil
}

func validateFPSCap(fps float64) error {
	if fps < 0 || math.IsNaN(fps) {
		return fmt.Errorf(`%w: %v`, ErrInvalidFPSCap, fps)
	}
	return nil
}
