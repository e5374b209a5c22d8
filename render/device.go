// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tilemap/internal/gpu"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (a windowing framework, a game loop, a test harness) owns the
// device and passes a handle to the engine. Handles whose concrete type
// also implements
//
//	HalDevice() any
//	HalQueue() any
//
// are unwrapped to hal.Device and hal.Queue and drawn through directly;
// this is the gogpu convention for device sharing. A handle without the
// extension (including NullDeviceHandle) yields a deviceless engine that
// still tracks meshes CPU-side.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so any provider
// from the gpucontext ecosystem plugs in unchanged.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device behind it. An engine
// built from it synthesizes and tracks meshes but never uploads or
// draws; tests use it to exercise the sync state machine without a GPU.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns unknown adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// unwrapHandle extracts a shared hal device from a provider handle.
// Returns nil when the handle carries no usable device.
func unwrapHandle(handle DeviceHandle) *gpu.Device {
	if handle == nil {
		return nil
	}
	dev, err := gpu.FromProvider(handle)
	if err != nil {
		return nil
	}
	return dev
}

// surfaceFormat picks the pipeline target format from the handle, if it
// reports one.
func surfaceFormat(handle DeviceHandle) gputypes.TextureFormat {
	if handle == nil {
		return gputypes.TextureFormatUndefined
	}
	return handle.SurfaceFormat()
}

// RenderPass is the encoder the engine records draws into. It is the
// hal render pass type; the alias keeps hal out of caller signatures.
type RenderPass = hal.RenderPassEncoder
