package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/opensr/common"
	"github.com/milk9111/opensr/levels"
	"github.com/milk9111/opensr/obj"
)

const spriteRadius = 4

// palettes stands in for the palette lookup of a real sprite sheet.
var palettes = []color.RGBA{
	colornames.Navy,
	colornames.Crimson,
	colornames.Goldenrod,
	colornames.Seagreen,
	colornames.Orchid,
	colornames.Sienna,
	colornames.Teal,
	colornames.Salmon,
	colornames.Khaki,
	colornames.Slateblue,
	colornames.Olive,
	colornames.Deepskyblue,
}

// Renderer draws the world with flat shapes in place of sprites.
type Renderer struct {
	screen *ebiten.Image
	camera *obj.Camera
	geo    ebiten.GeoM
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Begin sets the target and the camera transform for the frame.
func (r *Renderer) Begin(screen *ebiten.Image, camera *obj.Camera) {
	r.screen = screen
	r.camera = camera
	tl := camera.ViewTopLeft()
	r.geo.Reset()
	r.geo.Translate(-math.Round(tl.X), -math.Round(tl.Y))
	screen.Fill(colornames.Black)
}

func (r *Renderer) toScreen(p cp.Vector) (float32, float32) {
	x, y := r.geo.Apply(p.X, p.Y)
	return float32(x), float32(y)
}

// DrawTiles fills every tile inside the view.
func (r *Renderer) DrawTiles(l *levels.Level) {
	vp := r.camera.Viewport()
	tx0, ty0 := levels.PosToTile(cp.Vector{X: vp.L, Y: vp.B})
	tx1, ty1 := levels.PosToTile(cp.Vector{X: vp.R, Y: vp.T})
	size := float32(common.TileSize)
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			x, y := r.toScreen(levels.TileToPos(tx, ty))
			vector.FillRect(r.screen, x, y, size, size, tileColor(l.TileCodeAt(tx, ty)), false)
		}
	}
}

func tileColor(code int8) color.Color {
	switch {
	case code == levels.TileSidewalk || code == levels.TileSidewalkAlt:
		return colornames.Lightgrey
	case obj.IsIntersection(code):
		return colornames.Dimgray
	case obj.IsRoad(code):
		return colornames.Gray
	case levels.IsImpassableCode(code):
		return colornames.Darkslategray
	}
	return colornames.Darkolivegreen
}

// DrawSprite draws a sprite as a dot in its palette colour.
func (r *Renderer) DrawSprite(id int, pos cp.Vector, flip int, palette int) {
	x, y := r.toScreen(pos)
	c := palettes[0]
	if palette >= 0 && palette < len(palettes) {
		c = palettes[palette]
	}
	vector.FillCircle(r.screen, x, y, spriteRadius, c, false)
}

// DrawShapes outlines every collision shape and each entity's heading.
func (r *Renderer) DrawShapes(ctx *obj.Context) {
	for i := range ctx.Entities {
		e := &ctx.Entities[i]
		if e.Hidden || e.Physical == nil {
			continue
		}
		x, y := r.toScreen(e.Pos)
		switch e.Physical.Shape.Kind {
		case obj.ShapeCircle:
			vector.StrokeCircle(r.screen, x, y, float32(e.Physical.Shape.Radius), 1, colornames.Red, false)
		case obj.ShapeRect:
			c := e.Physical.Corners()
			for k := range c {
				x0, y0 := r.toScreen(c[k])
				x1, y1 := r.toScreen(c[(k+1)%len(c)])
				vector.StrokeLine(r.screen, x0, y0, x1, y1, 1, colornames.Red, false)
			}
		}
		hx, hy := r.toScreen(e.Pos.Add(common.CosSin(e.Angle).Mult(e.Width())))
		vector.StrokeLine(r.screen, x, y, hx, hy, 1, colornames.Yellow, false)
	}
}
