package photozip

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
)

// Silhouette describes a built-in placeholder portrait.
type Silhouette struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Filename string `json:"filename"`

	longHair   bool
	background color.RGBA
}

// Silhouettes lists the built-in portraits in display order.
var Silhouettes = []Silhouette{
	{ID: "female", Label: "Silhueta feminina", Filename: "female_silhouette.jpg", longHair: true, background: color.RGBA{0xf8, 0xf9, 0xfa, 0xff}},
	{ID: "male", Label: "Silhueta masculina", Filename: "male_silhouette.jpg", background: color.RGBA{0xf8, 0xf9, 0xfa, 0xff}},
	{ID: "woman", Label: "Mulher", Filename: "woman_silhouette.jpg", longHair: true, background: color.RGBA{0xdc, 0xe8, 0xf5, 0xff}},
	{ID: "man", Label: "Homem", Filename: "man_silhouette.jpg", background: color.RGBA{0xdc, 0xe8, 0xf5, 0xff}},
}

const (
	portraitW = 300
	portraitH = 400
)

var figure = color.RGBA{0x6c, 0x75, 0x7d, 0xff}

var (
	renderMu sync.Mutex
	rendered = map[string]Photo{}
)

// SilhouettePhoto returns the JPEG for a built-in silhouette id. Images are
// rendered once and reused.
func SilhouettePhoto(id string) (Photo, error) {
	var s *Silhouette
	for i := range Silhouettes {
		if Silhouettes[i].ID == id {
			s = &Silhouettes[i]
			break
		}
	}
	if s == nil {
		return Photo{}, fmt.Errorf("%w: %q", ErrUnknownSilhouette, id)
	}

	renderMu.Lock()
	defer renderMu.Unlock()
	if p, ok := rendered[id]; ok {
		return p, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, s.draw(), &jpeg.Options{Quality: 85}); err != nil {
		return Photo{}, fmt.Errorf("render silhouette %s: %w", id, err)
	}
	p := Photo{Data: buf.Bytes(), Ext: "jpg"}
	rendered[id] = p
	return p, nil
}

// draw paints a head and shoulders figure; long hair adds a rounded mass
// behind the head reaching the shoulders.
func (s Silhouette) draw() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, portraitW, portraitH))

	const (
		headX, headY, headR = 150.0, 150.0, 62.0
		bodyX, bodyY        = 150.0, 400.0
		bodyRX, bodyRY      = 130.0, 150.0
	)

	for y := 0; y < portraitH; y++ {
		for x := 0; x < portraitW; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			c := s.background

			switch {
			case inEllipse(fx, fy, headX, headY, headR, headR):
				c = figure
			case inEllipse(fx, fy, bodyX, bodyY, bodyRX, bodyRY):
				c = figure
			case s.longHair && fy > headY-headR && inEllipse(fx, fy, headX, headY+40, headR+18, headR+70):
				c = figure
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func inEllipse(x, y, cx, cy, rx, ry float64) bool {
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return dx*dx+dy*dy <= 1
}
