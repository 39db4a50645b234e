package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// center returns a centered primitive with a fixed size.
func center(w, h int, p tview.Primitive) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(tview.NewBox(), 0, 1, false).
			AddItem(p, w, 0, true).
			AddItem(tview.NewBox(), 0, 1, false),
			h, 0, true).
		AddItem(tview.NewBox(), 0, 1, false)
}

func moveDown(l *tview.List) {
	idx := l.GetCurrentItem()
	if idx < l.GetItemCount()-1 {
		l.SetCurrentItem(idx + 1)
	}
}

func moveUp(l *tview.List) {
	idx := l.GetCurrentItem()
	if idx > 0 {
		l.SetCurrentItem(idx - 1)
	}
}

func moveHome(l *tview.List) { l.SetCurrentItem(0) }

func moveEnd(l *tview.List) {
	if c := l.GetItemCount(); c > 0 {
		l.SetCurrentItem(c - 1)
	}
}

func pageDown(l *tview.List) {
	l.SetCurrentItem(pageTarget(l, 1))
}

func pageUp(l *tview.List) {
	l.SetCurrentItem(pageTarget(l, -1))
}

func pageTarget(l *tview.List, dir int) int {
	_, _, _, h := l.GetRect()
	step := h - 3
	if step < 1 {
		step = 5
	}
	idx := l.GetCurrentItem() + dir*step
	if c := l.GetItemCount(); idx > c-1 {
		idx = c - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// styleInputField applies consistent styling to input fields
func styleInputField(f *tview.InputField) {
	f.SetBackgroundColor(tcell.ColorDefault)
	f.SetFieldBackgroundColor(tcell.ColorDefault)
	f.SetBorderAttributes(tcell.AttrNone)
}

// wrapWithRules surrounds a primitive with a simple top and bottom horizontal rule.
func wrapWithRules(p tview.Primitive) tview.Primitive {
	top := tview.NewTextView().SetDynamicColors(true)
	bottom := tview.NewTextView().SetDynamicColors(true)
	line := "[green]" + strings.Repeat("─", 200)
	top.SetText(line)
	bottom.SetText(line)
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 1, 0, false).
		AddItem(p, 0, 1, true).
		AddItem(bottom, 1, 0, false)
}

// pad adds horizontal and vertical padding around a primitive.
func pad(p tview.Primitive, hpad, vpad int) tview.Primitive {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(tview.NewBox(), vpad, 0, false).
		AddItem(tview.NewFlex().
			AddItem(tview.NewBox(), hpad, 0, false).
			AddItem(p, 0, 1, true).
			AddItem(tview.NewBox(), hpad, 0, false),
			0, 1, true).
		AddItem(tview.NewBox(), vpad, 0, false)
}
