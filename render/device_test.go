// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNullDeviceHandle(t *testing.T) {
	var h NullDeviceHandle
	if h.Device() != nil {
		t.Error("Device() != nil")
	}
	if h.Queue() != nil {
		t.Error("Queue() != nil")
	}
	if h.Adapter() != nil {
		t.Error("Adapter() != nil")
	}
	if got := h.SurfaceFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat() = %v, want undefined", got)
	}
}

func TestUnwrapHandle(t *testing.T) {
	if dev := unwrapHandle(nil); dev != nil {
		t.Errorf("unwrapHandle(nil) = %v, want nil", dev)
	}
	// NullDeviceHandle lacks the HalDevice/HalQueue extension, so it
	// must not unwrap.
	if dev := unwrapHandle(NullDeviceHandle{}); dev != nil {
		t.Errorf("unwrapHandle(NullDeviceHandle{}) = %v, want nil", dev)
	}
}

func TestSurfaceFormat(t *testing.T) {
	if got := surfaceFormat(nil); got != gputypes.TextureFormatUndefined {
		t.Errorf("surfaceFormat(nil) = %v, want undefined", got)
	}
	if got := surfaceFormat(NullDeviceHandle{}); got != gputypes.TextureFormatUndefined {
		t.Errorf("surfaceFormat(null) = %v, want undefined", got)
	}
}
