package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/tilekit/edit"
)

var toolLabels = map[edit.Tool]string{
	edit.ToolSelect:          "Sel",
	edit.ToolPen:             "Pen",
	edit.ToolRectangle:       "Rect",
	edit.ToolFilledRectangle: "Box",
	edit.ToolLine:            "Line",
	edit.ToolFill:            "Fill",
	edit.ToolFlipHorizontal:  "FlipH",
	edit.ToolFlipVertical:    "FlipV",
	edit.ToolRotate:          "Rot",
	edit.ToolZoomIn:          "Z+",
	edit.ToolZoomOut:         "Z-",
}

func buildToolBar(fontFace *text.Face, onToolSelected func(tool edit.Tool), initialTool edit.Tool) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  activeToolText,
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(480, 40),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarBackground)),
	)

	tools := edit.Tools()
	buttons := make([]*widget.Button, 0, len(tools))
	for _, t := range tools {
		label, ok := toolLabels[t]
		if !ok {
			label = t.String()
		}
		btn := widget.NewButton(
			widget.ButtonOpts.Image(toolButtonImage()),
			widget.ButtonOpts.Text(label, fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(40, 32),
			),
		)
		buttons = append(buttons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}

	tb := &ToolBar{buttons: buttons, tools: tools}
	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil || tb.suppress {
				return
			}
			for idx, b := range buttons {
				if args.Active == b {
					onToolSelected(tools[idx])
					return
				}
			}
		}),
	)
	tb.SetTool(initialTool)

	return toolbar, tb
}
