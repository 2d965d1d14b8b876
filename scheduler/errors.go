// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package scheduler

import (
	"errors"
)

var (
	// ErrAlreadyRunning is returned by Run if the scheduler is already running.
	ErrAlreadyRunning = errors.New(`scheduler: already running`)

	// ErrInvalidFPSCap is returned for negative or NaN frame rate caps.
	ErrInvalidFPSCap = errors.New(`scheduler: invalid fps cap`)

	// ErrNilRoot is returned when registering a nil Root.
	ErrNilRoot = errors.New(`scheduler: nil root`)

	// ErrNoHost is returned by operations that require a host document, if
	// none was configured, see WithHost.
	ErrNoHost = errors.New(`scheduler: no host document`)
)
