package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/tilemap.wgsl
var staticShaderSource string

//go:embed shaders/tilemap_dynamic.wgsl
var dynamicShaderSource string

// StaticShaderSource returns the WGSL source for the static-mode shader.
func StaticShaderSource() string { return staticShaderSource }

// DynamicShaderSource returns the WGSL source for the dynamic-mode shader.
func DynamicShaderSource() string { return dynamicShaderSource }

// compileSPIRV translates WGSL to SPIR-V words for backends that consume
// pre-translated shaders instead of raw WGSL.
func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// createShaderModule builds a shader module from WGSL source, optionally
// pre-translating to SPIR-V via naga.
func createShaderModule(device hal.Device, label, source string, useSPIRV bool) (hal.ShaderModule, error) {
	if source == "" {
		return nil, fmt.Errorf("%s shader source is empty", label)
	}
	if useSPIRV {
		words, err := compileSPIRV(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  label,
			Source: hal.ShaderSource{SPIRV: words},
		})
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: source},
	})
}
