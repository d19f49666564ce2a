package badge

import (
	"image"
	"image/color"
	"sync"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

const (
	DefaultSize = 150
	strokeWidth = 4
)

var (
	mu = sync.Mutex{}

	strokeColor = color.RGBA{0x39, 0x39, 0x39, 0xff}
	headColor   = color.RGBA{0xEE, 0xEE, 0xEE, 0xff}
)

// BuildDriverBadgePNG draws a placeholder portrait: a disc in the team color
// with a head and shoulders silhouette on top.
func BuildDriverBadgePNG(filePath string, teamColor color.RGBA, size int) error {
	mu.Lock()
	defer mu.Unlock()

	if size <= 0 {
		size = DefaultSize
	}
	dest := image.NewRGBA(image.Rect(0, 0, size, size))
	gc := draw2dimg.NewGraphicContext(dest)
	drawBadge(gc, teamColor, float64(size))
	return draw2dimg.SaveToPngFile(filePath, dest)
}

func drawBadge(gc *draw2dimg.GraphicContext, teamColor color.RGBA, size float64) {
	center := size / 2

	gc.Save()
	gc.SetFillColor(teamColor)
	gc.SetStrokeColor(strokeColor)
	gc.SetLineWidth(strokeWidth)
	draw2dkit.Circle(gc, center, center, center-strokeWidth)
	gc.FillStroke()
	gc.Restore()

	gc.Save()
	gc.SetFillColor(headColor)
	draw2dkit.Circle(gc, center, size*0.4, size*0.16)
	gc.Fill()
	draw2dkit.Ellipse(gc, center, size*0.82, size*0.28, size*0.2)
	gc.Fill()
	gc.Restore()
}
