package badge

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	badgeWidth  = 800
	badgeHeight = 400
	errorWidth  = 600
	errorHeight = 300

	headlineText = "PLATINUM"
	footerText   = "ALL ACHIEVEMENTS UNLOCKED"
)

var (
	backgroundTop    = color.NRGBA{R: 0x1b, G: 0x28, B: 0x38, A: 0xff}
	backgroundBottom = color.NRGBA{R: 0x0e, G: 0x14, B: 0x1c, A: 0xff}
	accentGold       = color.NRGBA{R: 0xe8, G: 0xc0, B: 0x6a, A: 0xff}
	textPrimary      = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	textMuted        = color.NRGBA{R: 0x8f, G: 0x98, B: 0xa0, A: 0xff}
)

// Renderer draws completion badges as PNGs. Construct once and share: the
// parsed font faces are reused across renders.
type Renderer struct {
	headline font.Face
	title    font.Face
	footer   font.Face
}

// NewRenderer parses the embedded Go fonts and prepares the drawing faces.
func NewRenderer() (*Renderer, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing regular font: %w", err)
	}

	headline, err := opentype.NewFace(bold, &opentype.FaceOptions{Size: 64, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("building headline face: %w", err)
	}
	title, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("building title face: %w", err)
	}
	footer, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: 18, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("building footer face: %w", err)
	}

	return &Renderer{headline: headline, title: title, footer: footer}, nil
}

// Render produces the 800x400 completion badge for a game.
func (r *Renderer) Render(gameName string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, badgeWidth, badgeHeight))
	fillGradient(img, backgroundTop, backgroundBottom)
	drawBorder(img, accentGold, 6)

	r.drawCentered(img, headlineText, r.headline, accentGold, 160)
	r.drawCentered(img, truncate(gameName, 36), r.title, textPrimary, 240)
	r.drawCentered(img, footerText, r.footer, textMuted, 330)

	return encode(img)
}

// RenderError produces the smaller 600x300 variant shown when the badge
// cannot be built for the requested game.
func (r *Renderer) RenderError(message string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, errorWidth, errorHeight))
	fillGradient(img, backgroundTop, backgroundBottom)
	drawBorder(img, textMuted, 4)

	r.drawCentered(img, "BADGE UNAVAILABLE", r.title, textPrimary, 140)
	r.drawCentered(img, truncate(message, 48), r.footer, textMuted, 190)

	return encode(img)
}

func (r *Renderer) drawCentered(img *image.RGBA, text string, face font.Face, col color.NRGBA, baseline int) {
	if text == "" {
		return
	}
	width := font.MeasureString(face, text)
	bounds := img.Bounds()
	x := (fixed.I(bounds.Dx()) - width) / 2
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: fixed.I(baseline)},
	}
	drawer.DrawString(text)
}

func fillGradient(img *image.RGBA, top, bottom color.NRGBA) {
	bounds := img.Bounds()
	height := bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		t := float64(y-bounds.Min.Y) / float64(height-1)
		row := color.NRGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 0xff,
		}
		draw.Draw(img, image.Rect(bounds.Min.X, y, bounds.Max.X, y+1), image.NewUniform(row), image.Point{}, draw.Src)
	}
}

func drawBorder(img *image.RGBA, col color.NRGBA, thickness int) {
	bounds := img.Bounds()
	src := image.NewUniform(col)
	draw.Draw(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+thickness), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(bounds.Min.X, bounds.Max.Y-thickness, bounds.Max.X, bounds.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+thickness, bounds.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(bounds.Max.X-thickness, bounds.Min.Y, bounds.Max.X, bounds.Max.Y), src, image.Point{}, draw.Src)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding badge: %w", err)
	}
	return buf.Bytes(), nil
}
