package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// AtlasTexture is an uploaded sprite sheet: the sampled texture, its
// bindable view, and its texel dimensions.
type AtlasTexture struct {
	texture hal.Texture
	view    hal.TextureView
	width   uint32
	height  uint32
}

// Width returns the texture width in texels.
func (t *AtlasTexture) Width() uint32 { return t.width }

// Height returns the texture height in texels.
func (t *AtlasTexture) Height() uint32 { return t.height }

// UploadAtlas creates an RGBA8 texture from a tightly packed image and
// uploads its pixels. The image must have zero-origin bounds and a stride
// of exactly 4*width (atlas.ToRGBA produces this form).
func UploadAtlas(device hal.Device, queue hal.Queue, label string, img *image.RGBA) (*AtlasTexture, error) {
	b := img.Bounds()
	w := uint32(b.Dx())
	h := uint32(b.Dy())
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("atlas image %s is empty", label)
	}
	if b.Min != (image.Point{}) || img.Stride != int(w)*4 {
		return nil, fmt.Errorf("atlas image %s is not tightly packed", label)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		img.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	return &AtlasTexture{texture: tex, view: view, width: w, height: h}, nil
}

// Destroy releases the view and texture. Safe to call more than once.
func (t *AtlasTexture) Destroy(device hal.Device) {
	if t == nil {
		return
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
