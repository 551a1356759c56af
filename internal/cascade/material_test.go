package cascade

import (
	"testing"

	"RC/internal/shape"

	"github.com/soypat/glgl/math/ms2"
)

func TestBuildMaterialsPaintOrder(t *testing.T) {
	sc := shape.NewScene(32, 32)
	sc.Add(
		shape.NewRectangle(ms2.Vec{X: 10, Y: 10}, ms2.Vec{X: 5, Y: 5}, red),
		shape.NewRectangle(ms2.Vec{X: 14, Y: 10}, ms2.Vec{X: 5, Y: 5}, blue),
	)
	mf := NewMaterialField(32, 32)
	if err := BuildMaterials(sc, mf, 3); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		x, y int
		want shape.Material
	}{
		{12, 10, blue},
		{6, 10, red},
		{6, 15, red}, // on the boundary
		{19, 15, blue},
		{25, 25, shape.Material{}},
		{3, 10, shape.Material{}},
	}
	for _, c := range cases {
		if got := mf.At(c.x, c.y); got != c.want {
			t.Fatalf("(%d,%d): got %+v want %+v", c.x, c.y, got, c.want)
		}
	}
	if mf.Occupied(25, 25) || !mf.Occupied(12, 10) {
		t.Fatalf("occupancy mismatch")
	}
}

func TestBuildMaterialsClearsAndClips(t *testing.T) {
	mf := NewMaterialField(32, 32)
	sc := shape.NewScene(32, 32)
	sc.Add(shape.NewCircle(ms2.Vec{X: 16, Y: 16}, 6, white))
	if err := BuildMaterials(sc, mf, 2); err != nil {
		t.Fatal(err)
	}
	if !mf.Occupied(16, 16) {
		t.Fatalf("circle centre not painted")
	}

	sc.Shapes = sc.Shapes[:0]
	sc.Add(
		shape.NewCircle(ms2.Vec{X: -5, Y: -5}, 10, green),
		shape.NewCircle(ms2.Vec{X: 40, Y: 40}, 5, red),
	)
	if err := BuildMaterials(sc, mf, 1); err != nil {
		t.Fatal(err)
	}
	if mf.Occupied(16, 16) {
		t.Fatalf("previous frame not cleared")
	}
	if got := mf.At(0, 0); got != green {
		t.Fatalf("clipped circle: got %+v want green", got)
	}
	for i, m := range mf.Data {
		if m == red {
			t.Fatalf("off-field circle painted at cell %d", i)
		}
	}
}

func TestBuildMaterialsSizeMismatch(t *testing.T) {
	if err := BuildMaterials(shape.NewScene(32, 16), NewMaterialField(32, 32), 2); err == nil {
		t.Fatalf("expected an error for a 32x16 scene on a 32x32 field")
	}
}
