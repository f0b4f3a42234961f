package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Colours shared by the widgets and the canvas overlays.
var (
	canvasBackground  = color.RGBA{30, 30, 34, 255}
	regionOutline     = color.RGBA{255, 220, 0, 255}
	previewTile       = color.RGBA{255, 255, 255, 160}
	previewEmpty      = color.RGBA{0, 0, 0, 160}
	primarySwatch     = color.RGBA{255, 255, 255, 255}
	secondarySwatch   = color.RGBA{255, 80, 80, 255}
	toolbarBackground = color.RGBA{220, 220, 240, 255}
	actionBackground  = color.RGBA{60, 60, 70, 255}
	statusText        = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	activeToolText    = color.RGBA{0, 0, 200, 255}
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

// toolButtonImage tints the pressed (active) tool of the radio group.
func toolButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     solidNineSlice(color.RGBA{190, 190, 200, 255}),
		Hover:    solidNineSlice(color.RGBA{210, 210, 220, 255}),
		Pressed:  solidNineSlice(color.RGBA{255, 200, 200, 255}),
		Disabled: solidNineSlice(color.RGBA{120, 120, 120, 255}),
	}
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{90, 90, 104, 255}),
				Hover:   solidNineSlice(color.RGBA{110, 110, 126, 255}),
				Pressed: solidNineSlice(color.RGBA{70, 70, 82, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:    statusText,
				Hover:   statusText,
				Pressed: regionOutline,
			},
		},
	}
}
