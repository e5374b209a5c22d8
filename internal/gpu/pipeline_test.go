package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tilemap/mesh"
)

// TestStaticVertexLayout pins the static vertex layout to the byte
// format the synthesizer emits.
func TestStaticVertexLayout(t *testing.T) {
	layouts := staticVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("layout count = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != mesh.StaticVertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, mesh.StaticVertexStride)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("step mode = %v, want per-vertex", l.StepMode)
	}
	if len(l.Attributes) != 3 {
		t.Fatalf("attribute count = %d, want 3", len(l.Attributes))
	}

	tests := []struct {
		idx      int
		format   gputypes.VertexFormat
		offset   int
		location int
	}{
		{0, gputypes.VertexFormatFloat32x2, 0, 0},  // position
		{1, gputypes.VertexFormatFloat32x2, 8, 1},  // uv
		{2, gputypes.VertexFormatFloat32x4, 16, 2}, // color
	}
	for _, tt := range tests {
		a := l.Attributes[tt.idx]
		if a.Format != tt.format {
			t.Errorf("attr %d format = %v, want %v", tt.idx, a.Format, tt.format)
		}
		if int(a.Offset) != tt.offset {
			t.Errorf("attr %d offset = %d, want %d", tt.idx, a.Offset, tt.offset)
		}
		if int(a.ShaderLocation) != tt.location {
			t.Errorf("attr %d location = %d, want %d", tt.idx, a.ShaderLocation, tt.location)
		}
	}
}

// TestDynamicVertexLayout pins the position-only dynamic layout.
func TestDynamicVertexLayout(t *testing.T) {
	layouts := dynamicVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("layout count = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != mesh.DynamicVertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, mesh.DynamicVertexStride)
	}
	if len(l.Attributes) != 1 {
		t.Fatalf("attribute count = %d, want 1", len(l.Attributes))
	}
	a := l.Attributes[0]
	if a.Format != gputypes.VertexFormatFloat32x2 {
		t.Errorf("format = %v, want Float32x2", a.Format)
	}
	if int(a.Offset) != 0 || int(a.ShaderLocation) != 0 {
		t.Errorf("attr = offset %d location %d, want 0/0", a.Offset, a.ShaderLocation)
	}
}
