package grid

import "testing"

func TestConverterRoundTrip(t *testing.T) {
	converters := map[string]Converter{
		"vertical":   Vertical,
		"horizontal": Horizontal,
	}
	origins := []Vec3{{}, V(3.5, -2, 7), V(-100, 40, -0.25)}
	sizes := []float64{1, 0.5, 2, 0.7, 1.3}

	for name, conv := range converters {
		for _, origin := range origins {
			for _, size := range sizes {
				for x := 0; x < 12; x++ {
					for y := 0; y < 12; y++ {
						center := conv.GridToWorldCenter(x, y, size, origin)
						if got := conv.WorldToGrid(center, size, origin); got != C(x, y) {
							t.Fatalf("%s: WorldToGrid(GridToWorldCenter(%d,%d)) = %v with size %g origin %v",
								name, x, y, got, size, origin)
						}
					}
				}
			}
		}
	}
}

func TestConverterHalfOpenCells(t *testing.T) {
	// Exact binary cell sizes keep corner arithmetic exact.
	for _, conv := range []Converter{Vertical, Horizontal} {
		for _, size := range []float64{1, 0.5, 2} {
			origin := V(4, 2, -8)
			corner := conv.GridToWorld(2, 3, size, origin)
			if got := conv.WorldToGrid(corner, size, origin); got != C(2, 3) {
				t.Errorf("corner of (2,3) maps to %v, want (2,3)", got)
			}

			// A point just short of the next corner is still inside (2,3).
			next := conv.GridToWorld(3, 4, size, origin)
			inside := corner.Add(next.Sub(corner).Scale(0.999))
			if got := conv.WorldToGrid(inside, size, origin); got != C(2, 3) {
				t.Errorf("point inside (2,3) maps to %v", got)
			}

			// The far corner belongs to the next cell.
			if got := conv.WorldToGrid(next, size, origin); got != C(3, 4) {
				t.Errorf("far corner maps to %v, want (3,4)", got)
			}
		}
	}
}

func TestConverterNegativeFloors(t *testing.T) {
	got := Vertical.WorldToGrid(V(-0.1, -0.1, 0), 1, Vec3{})
	if got != C(-1, -1) {
		t.Errorf("WorldToGrid(-0.1,-0.1) = %v, want (-1,-1)", got)
	}
}

func TestConverterExactCorners(t *testing.T) {
	// 49 * (1/49) rounds to just below 1.
	const size = 49
	for _, conv := range []Converter{Vertical, Horizontal} {
		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				corner := conv.GridToWorld(x, y, size, Vec3{})
				if got := conv.WorldToGrid(corner, size, Vec3{}); got != C(x, y) {
					t.Errorf("WorldToGrid(%v) = %v, want (%d,%d)", corner, got, x, y)
				}
			}
		}
	}
}

func TestVec3Div(t *testing.T) {
	got := V(49, 98, -4.5).Div(49)
	if want := V(1, 2, -4.5/49); got != want {
		t.Errorf("Div(49) = %v, want %v", got, want)
	}
}

func TestConverterAxes(t *testing.T) {
	v := Vertical.GridToWorld(2, 3, 1, Vec3{})
	if v != V(2, 3, 0) {
		t.Errorf("Vertical.GridToWorld(2,3) = %v, want (2,3,0)", v)
	}
	h := Horizontal.GridToWorld(2, 3, 1, Vec3{})
	if h != V(2, 0, 3) {
		t.Errorf("Horizontal.GridToWorld(2,3) = %v, want (2,0,3)", h)
	}

	vc := Vertical.GridToWorldCenter(0, 0, 2, V(1, 1, 1))
	if vc != V(2, 2, 1) {
		t.Errorf("Vertical.GridToWorldCenter(0,0) = %v, want (2,2,1)", vc)
	}
	hc := Horizontal.GridToWorldCenter(0, 0, 2, V(1, 1, 1))
	if hc != V(2, 1, 2) {
		t.Errorf("Horizontal.GridToWorldCenter(0,0) = %v, want (2,1,2)", hc)
	}

	// The inactive axis is ignored on the way back.
	if got := Vertical.WorldToGrid(V(1.5, 2.5, 99), 1, Vec3{}); got != C(1, 2) {
		t.Errorf("Vertical ignores Z: got %v", got)
	}
	if got := Horizontal.WorldToGrid(V(1.5, 99, 2.5), 1, Vec3{}); got != C(1, 2) {
		t.Errorf("Horizontal ignores Y: got %v", got)
	}
}

func TestConverterForward(t *testing.T) {
	if Vertical.Forward() != V(0, 0, 1) {
		t.Errorf("Vertical.Forward() = %v", Vertical.Forward())
	}
	if Horizontal.Forward() != V(0, -1, 0) {
		t.Errorf("Horizontal.Forward() = %v", Horizontal.Forward())
	}
}

func TestConverterFor(t *testing.T) {
	tests := []struct {
		name    string
		want    Converter
		wantErr bool
	}{
		{"vertical", Vertical, false},
		{"", Vertical, false},
		{"horizontal", Horizontal, false},
		{"diagonal", nil, true},
	}

	for _, tc := range tests {
		got, err := ConverterFor(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ConverterFor(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ConverterFor(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}

	if OrientationOf(Horizontal) != OrientationHorizontal || OrientationOf(Vertical) != OrientationVertical {
		t.Error("OrientationOf should invert ConverterFor")
	}
}
