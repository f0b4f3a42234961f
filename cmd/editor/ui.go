package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/tilekit/edit"
)

// Action is a named command shown in the action bar.
type Action struct {
	Name string
	Run  func()
}

// BuildEditorUI creates the toolbar, the action bar and the status line.
func BuildEditorUI(onToolSelected func(tool edit.Tool), initialTool edit.Tool, actions []Action) (*ebitenui.UI, *ToolBar, *StatusBar) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(&fontFace, onToolSelected, initialTool)
	actionBar := buildActionBar(ui.PrimaryTheme, &fontFace, actions)

	label := widget.NewText(
		widget.TextOpts.Text("", &fontFace, statusText),
	)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	actionBar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	label.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	root.AddChild(toolbarContainer)
	root.AddChild(actionBar)
	root.AddChild(label)

	ui.Container = root
	return ui, toolBar, &StatusBar{label: label}
}

func buildActionBar(theme *widget.Theme, fontFace *text.Face, actions []Action) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(actionBackground)),
	)
	for _, a := range actions {
		run := a.Run
		bar.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.Name, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				run()
			}),
		))
	}
	return bar
}
