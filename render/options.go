// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

// engineConfig holds optional configuration for NewEngine.
type engineConfig struct {
	halDevice   hal.Device
	halQueue    hal.Queue
	ownDevice   bool
	format      gputypes.TextureFormat
	sampleCount uint32
	workers     int
	useSPIRV    bool
}

// WithDevice hands the engine an explicit hal device and queue, taking
// precedence over whatever the DeviceHandle carries. The engine does not
// own them; Close leaves them alive.
func WithDevice(device hal.Device, queue hal.Queue) Option {
	return func(c *engineConfig) {
		c.halDevice = device
		c.halQueue = queue
	}
}

// WithOwnedDevice makes the engine open its own device on the Vulkan
// backend when the handle provides none. The engine destroys it on
// Close. NewEngine fails with the bootstrap error if no adapter opens.
func WithOwnedDevice() Option {
	return func(c *engineConfig) {
		c.ownDevice = true
	}
}

// WithTargetFormat overrides the color attachment format the pipelines
// target. The default is the handle's surface format, or BGRA8Unorm
// when the handle reports none.
func WithTargetFormat(format gputypes.TextureFormat) Option {
	return func(c *engineConfig) {
		c.format = format
	}
}

// WithSampleCount sets the MSAA sample count for the pipelines. The
// default is 1.
func WithSampleCount(count uint32) Option {
	return func(c *engineConfig) {
		if count >= 1 {
			c.sampleCount = count
		}
	}
}

// WithWorkers sets the mesh synthesis worker count. Values below 1 fall
// back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *engineConfig) {
		c.workers = n
	}
}

// WithSPIRVShaders pre-translates the WGSL shaders to SPIR-V through
// naga at pipeline creation, for backends that consume SPIR-V directly.
func WithSPIRVShaders() Option {
	return func(c *engineConfig) {
		c.useSPIRV = true
	}
}
