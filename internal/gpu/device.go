package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tilemap"
)

// Device bundles the HAL device and queue the renderer records against,
// along with the instance when the renderer created them itself. Shared
// devices are never destroyed on Close.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	owned    bool
}

// HAL returns the underlying device.
func (d *Device) HAL() hal.Device { return d.device }

// Queue returns the submission queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// Owned reports whether Close will destroy the device.
func (d *Device) Owned() bool { return d.owned }

// WrapDevice adopts an externally owned device and queue. Close releases
// nothing.
func WrapDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{device: device, queue: queue}
}

// FromProvider unwraps a shared device from a gpucontext-style provider.
// The provider must expose HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue (the gogpu convention for device sharing).
func FromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("provider HalQueue is not hal.Queue")
	}
	return WrapDevice(device, queue), nil
}

// NewDevice opens a device on the Vulkan backend, preferring discrete and
// integrated GPUs over software adapters. The returned Device is owned:
// Close destroys it.
func NewDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}
	tilemap.Logger().Info("tilemap: GPU device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		owned:    true,
	}, nil
}

// Close destroys the device and instance when owned. Safe to call more
// than once.
func (d *Device) Close() {
	if d == nil {
		return
	}
	if d.owned {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	d.owned = false
}
