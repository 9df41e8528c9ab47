package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// CaptionColor is the color of preview captions
var CaptionColor = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}

const captionPadding = 6

var (
	captionFont     *truetype.Font
	captionFontErr  error
	captionFontOnce sync.Once
)

func loadCaptionFont() (*truetype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = truetype.Parse(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// captionSize scales the text with the image height
func captionSize(height int) float64 {
	return max(10, float64(height)/40)
}

// drawCaption writes text into the bottom left corner over a dark backdrop
func drawCaption(img *image.RGBA, text string) error {
	f, err := loadCaptionFont()
	if err != nil {
		return fmt.Errorf("failed to load caption font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: captionSize(img.Bounds().Dy())})
	defer face.Close()

	_, advance := font.BoundString(face, text)
	metrics := face.Metrics()
	width := advance.Ceil()
	height := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	bounds := img.Bounds()
	box := image.Rect(0, bounds.Max.Y-height-2*captionPadding, width+2*captionPadding, bounds.Max.Y).Intersect(bounds)
	draw.Draw(img, box, image.NewUniform(color.NRGBA{A: 0x80}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(CaptionColor),
		Face: face,
		Dot:  fixed.P(captionPadding, box.Min.Y+captionPadding+ascent),
	}
	d.DrawString(text)
	return nil
}
