// Package gifgen renders the animated translation GIFs: the translated text
// cycling through hues over a white background, with the language name below.
package gifgen

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"strings"

	"gif-translate-bot/internal/utils"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	frameWidth  = 500
	frameHeight = 300
	frameCount  = 20
	frameDelay  = 10 // hundredths of a second, so 100ms per frame
	wrapColumns = 25
)

// Render encodes an animated GIF of text with a "Language: name" line
// beneath it.
func Render(text, language string) ([]byte, error) {
	lines := wrap(text, wrapColumns)
	if len(lines) == 0 {
		lines = []string{""}
	}
	langLine := "Language: " + language

	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	textWidth := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > textWidth {
			textWidth = w
		}
	}
	textHeight := len(lines) * lineHeight

	left := (frameWidth - textWidth) / 2
	top := (frameHeight-textHeight)/2 - 20 // room for the language line below

	anim := &gif.GIF{LoopCount: 0}
	for frame := 0; frame < frameCount; frame++ {
		hue := float64((frame * 360 / frameCount) % 360)
		textColor := hsvToRGB(hue, 100, 80)

		palette := color.Palette{
			color.White,
			textColor,
			color.Black,
		}
		img := image.NewPaletted(image.Rect(0, 0, frameWidth, frameHeight), palette)

		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(textColor),
			Face: face,
		}
		y := top + ascent
		for _, line := range lines {
			drawer.Dot = fixed.P(left, y)
			drawer.DrawString(line)
			y += lineHeight
		}

		drawer.Src = image.NewUniform(color.Black)
		drawer.Dot = fixed.P(left, top+textHeight+20+ascent)
		drawer.DrawString(langLine)

		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, frameDelay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Filename returns a fresh name for an uploaded GIF.
func Filename() string {
	return "translation_" + utils.RandomHex(4) + ".gif"
}

// wrap word-wraps text to at most width runes per line. Words longer than
// width are broken across lines.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	lineLen := 0

	flush := func() {
		if lineLen > 0 {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > width {
			flush()
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		word = string(runes)

		need := len(runes)
		if lineLen > 0 {
			need++ // separating space
		}
		if lineLen+need > width {
			flush()
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += len(runes)
	}
	flush()

	return lines
}

// hsvToRGB converts hue in degrees and saturation/value in percent.
func hsvToRGB(h, s, v float64) color.RGBA {
	h /= 360.0
	s /= 100.0
	v /= 100.0

	if s == 0 {
		g := uint8(v * 255)
		return color.RGBA{g, g, g, 255}
	}

	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}

	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
