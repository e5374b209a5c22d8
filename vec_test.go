package tilemap

import "testing"

func TestIVecOps(t *testing.T) {
	if got := IV2(1, 2).Add(IV2(3, 4)); got != IV2(4, 6) {
		t.Errorf("IVec2.Add = %v", got)
	}
	if got := IV3(1, 2, 3).Add(IV3(4, 5, 6)); got != IV3(5, 7, 9) {
		t.Errorf("IVec3.Add = %v", got)
	}
	if got := IV3(7, 8, 9).XY(); got != IV2(7, 8) {
		t.Errorf("IVec3.XY = %v", got)
	}
}

func TestVec2Ops(t *testing.T) {
	if got := V2(1, 2).Add(V2(3, 4)); got != V2(4, 6) {
		t.Errorf("Add = %v", got)
	}
	if got := V2(5, 7).Sub(V2(2, 3)); got != V2(3, 4) {
		t.Errorf("Sub = %v", got)
	}
	if got := V2(1.5, -2).Mul(2); got != V2(3, -4) {
		t.Errorf("Mul = %v", got)
	}
	if got := V2(2, 3).MulV(V2(4, 5)); got != V2(8, 15) {
		t.Errorf("MulV = %v", got)
	}
}
