// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrNoDevice is returned when an operation needs a GPU device and
	// the engine has none.
	ErrNoDevice = errors.New("render: no GPU device")

	// ErrEngineClosed is returned by operations on a closed engine.
	ErrEngineClosed = errors.New("render: engine is closed")

	// ErrNilMap is returned by Engine.Add when the map is nil.
	ErrNilMap = errors.New("render: map is nil")
)
