package main

import (
	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/tilekit/edit"
)

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	tools   []edit.Tool

	// suppress is set while the session drives the selection so the change
	// handler does not echo it back.
	suppress bool
}

func (tb *ToolBar) SetTool(t edit.Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for idx, tool := range tb.tools {
		if tool == t {
			tb.suppress = true
			tb.group.SetActive(tb.buttons[idx])
			tb.suppress = false
			return
		}
	}
}

// StatusBar shows the target, zoom and selected values.
type StatusBar struct {
	label *widget.Text
}

func (sb *StatusBar) SetText(s string) {
	if sb == nil || sb.label == nil {
		return
	}
	sb.label.Label = s
}
