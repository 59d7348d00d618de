package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/opensr/levels"
	"github.com/milk9111/opensr/prefabs"
)

// Class ids of testCatalog.
const (
	classPlayer = iota
	classPedestrian
	classCar
	classWalker
	classParkedCar
	classRoundCar
	classPolice
	classPassenger
)

func testCatalog(t *testing.T) *prefabs.Catalog {
	t.Helper()
	clips := make([][][]int, 12)
	for i := range clips {
		clips[i] = [][]int{{i}}
	}
	c, err := prefabs.NewCatalog(prefabs.CatalogSpec{
		Classes: []prefabs.ClassSpec{
			{Name: "player", EntityType: int(EntityPlayer), Clip: 0, Width: 6, Height: 6, Weight: 80},
			{Name: "pedestrian", EntityType: int(EntityPedestrian), Clip: 0, Width: 6, Height: 6, Weight: 80},
			{Name: "car", EntityType: int(EntityMovingVehicle), Clip: 11, Width: 16, Height: 8, Weight: 1000},
			{Name: "walker", EntityType: int(EntityExtra), Clip: 0, Width: 6, Height: 6, Weight: 80},
			{Name: "parked", EntityType: int(EntityParkedVehicle), Clip: 11, Width: 16, Height: 8, Weight: 1000},
			{Name: "round", EntityType: int(EntityParkedVehicle), Clip: 11, Width: 10, Height: 10, Weight: 100, Shape: "circle"},
			{Name: "police", EntityType: int(EntityPolice), Clip: 0, Width: 6, Height: 6, Weight: 90},
			{Name: "passenger", EntityType: int(EntityVehiclePedestrian), Clip: 0, Width: 6, Height: 6, Weight: 80},
		},
		Clips:       clips,
		NPCPalettes: []int{3, 4},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

// testContext builds a context over a w x h grid filled with fill.
func testContext(t *testing.T, w, h int, fill int8) *Context {
	t.Helper()
	tiles := make([]int8, w*h)
	for i := range tiles {
		tiles[i] = fill
	}
	return NewContext(levels.New(w, h, tiles), testCatalog(t), NewCamera(240, 320), 1)
}

func addEntity(t *testing.T, ctx *Context, classID int, pos cp.Vector) *Entity {
	t.Helper()
	class, ok := ctx.Catalog.Class(classID)
	if !ok {
		t.Fatalf("no class %d", classID)
	}
	id := ctx.AddEntity(class, pos)
	return &ctx.Entities[id]
}

type recordedSprite struct {
	id      int
	pos     cp.Vector
	palette int
}

type spriteRecorder struct {
	sprites []recordedSprite
}

func (r *spriteRecorder) DrawSprite(id int, pos cp.Vector, flip int, palette int) {
	r.sprites = append(r.sprites, recordedSprite{id: id, pos: pos, palette: palette})
}
