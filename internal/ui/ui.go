package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rdo34/todo/internal/app"
	"github.com/rdo34/todo/internal/config"
	"github.com/rdo34/todo/internal/model"
	"github.com/rivo/tview"
)

const (
	taskControls     = "[a] Add  [c] Complete  [f] Favorite  [p] Priority  [x] Delete  [tab] Favorites  [?] Help"
	favoriteControls = "[enter] Add to list  [x] Remove  [tab] Tasks  [?] Help"
	confirmControls  = "[enter] Confirm  [esc] Cancel"
)

type UI struct {
	app        *tview.Application
	grid       *tview.Grid
	tasks      *tview.List
	favorites  *tview.List
	pages      *tview.Pages
	titleLeft  *tview.TextView
	titleRight *tview.TextView
	controls   *tview.TextView
	state      *app.App
	cfg        config.UIConfig

	// Rows currently rendered, index-aligned with the lists.
	shownTasks     []model.Task
	shownFavorites []model.Favorite
	selTaskID      int64
	selFavoriteID  int64
	favoritesFocus bool

	// Inline input area (bottom, above controls)
	inputActive    bool
	inputPrimitive tview.Primitive
	// lightweight confirmation mode (no input box)
	confirmCallback func(confirm bool)
	promptMessage   string

	// Transient notice shown in the footer; noticeSeq invalidates stale timers.
	notice    string
	noticeSeq int
}

// New builds the TUI over an already loaded state.
func New(state *app.App, cfg config.UIConfig) *UI {
	if cfg.CenterWidth <= 0 {
		cfg.CenterWidth = config.DefaultConfig().UI.CenterWidth
	}
	if cfg.NoticeSeconds <= 0 {
		cfg.NoticeSeconds = config.DefaultConfig().UI.NoticeSeconds
	}
	appView := tview.NewApplication()

	// Title: container with left/right aligned text (bottom rule instead of full border)
	titleLeft := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)
	titleRight := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignRight)
	titleGrid := tview.NewGrid().SetRows(1).SetColumns(0, 0)
	titleGrid.AddItem(titleLeft, 0, 0, 1, 1, 0, 0, false)
	titleGrid.AddItem(titleRight, 0, 1, 1, 1, 0, 0, false)
	titleGrid.SetBorder(false)
	headerRule := tview.NewTextView().SetDynamicColors(true)
	headerRule.SetText("[green]" + strings.Repeat("─", 200))
	controls := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)

	tasks := tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true)
	tasks.SetBorder(true)
	tasks.SetTitle(" Tasks ")
	favorites := tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true)
	favorites.SetBorder(true)
	favorites.SetTitle(" Favorites ")

	panes := tview.NewFlex().
		AddItem(tasks, 0, 3, true).
		AddItem(favorites, 0, 2, false)

	grid := tview.NewGrid().
		SetRows(1, 1, 0, 0, 3).            // header, rule, panes, (hidden input), controls
		SetColumns(0, cfg.CenterWidth, 0). // left flex, center fixed width, right flex
		AddItem(titleGrid, 0, 0, 1, 3, 0, 0, false).
		AddItem(headerRule, 1, 0, 1, 3, 0, 0, false).
		AddItem(controls, 4, 0, 1, 3, 0, 0, false)
	grid.AddItem(panes, 2, 1, 1, 1, 0, 0, true)

	u := &UI{
		app:        appView,
		grid:       grid,
		tasks:      tasks,
		favorites:  favorites,
		titleLeft:  titleLeft,
		titleRight: titleRight,
		controls:   controls,
		state:      state,
		cfg:        cfg,
	}

	tasks.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(u.shownTasks) {
			u.selTaskID = u.shownTasks[index].ID
		}
		u.updateStatus()
	})
	tasks.SetSelectedFunc(func(int, string, string, rune) { u.toggleCompleteSelected() })
	favorites.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(u.shownFavorites) {
			u.selFavoriteID = u.shownFavorites[index].ID
		}
		u.updateStatus()
	})
	favorites.SetSelectedFunc(func(int, string, string, rune) { u.readdSelectedFavorite() })

	u.refresh()

	grid.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// When input is active, either let focused input handle keys
		// or handle lightweight confirmation directly here.
		if u.inputActive {
			if u.confirmCallback != nil {
				switch event.Key() {
				case tcell.KeyEnter:
					u.finishConfirm(true)
					return nil
				case tcell.KeyEscape:
					u.finishConfirm(false)
					return nil
				default:
					// Swallow all other keys while confirming
					return nil
				}
			}
			return event
		}
		switch event.Key() {
		case tcell.KeyEscape:
			appView.Stop()
			return nil
		case tcell.KeyTab, tcell.KeyBacktab:
			u.switchPane()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'j':
				moveDown(u.currentList())
				return nil
			case 'k':
				moveUp(u.currentList())
				return nil
			case 'g':
				moveHome(u.currentList())
				return nil
			case 'G':
				moveEnd(u.currentList())
				return nil
			case '?':
				u.showHelp()
				return nil
			case 'a':
				u.showAddDialog()
				return nil
			case 'x':
				if u.favoritesFocus {
					u.confirmRemoveFavorite()
				} else {
					u.confirmDeleteTask()
				}
				return nil
			}
			if u.favoritesFocus {
				return event
			}
			switch event.Rune() {
			case 'c', ' ':
				u.toggleCompleteSelected()
				return nil
			case 'f':
				u.toggleFavoriteSelected()
				return nil
			case 'p':
				u.showPriorityPicker()
				return nil
			}
		case tcell.KeyPgDn:
			pageDown(u.currentList())
			return nil
		case tcell.KeyPgUp:
			pageUp(u.currentList())
			return nil
		}
		return event
	})

	pages := tview.NewPages()
	pages.AddPage("main", grid, true, true)
	u.pages = pages

	return u
}

// Run starts the application event loop.
func (u *UI) Run() error {
	return u.app.SetRoot(u.pages, true).SetFocus(u.tasks).Run()
}

func (u *UI) currentList() *tview.List {
	if u.favoritesFocus {
		return u.favorites
	}
	return u.tasks
}

func (u *UI) switchPane() {
	u.favoritesFocus = !u.favoritesFocus
	u.app.SetFocus(u.currentList())
	u.updateStatus()
}

// refresh rebuilds both lists from state, keeping the selection on the
// same item when it still exists.
func (u *UI) refresh() {
	// Refilling the lists fires their changed funcs; remember the targets first.
	wantTask, wantFavorite := u.selTaskID, u.selFavoriteID
	u.shownTasks = u.state.Tasks()
	u.shownFavorites = u.state.Favorites()

	fill(u.tasks, taskRows(u.shownTasks))
	fill(u.favorites, favoriteRows(u.shownFavorites))

	u.tasks.SetCurrentItem(selectIndex(u.tasks.GetCurrentItem(), taskIDs(u.shownTasks), wantTask))
	u.favorites.SetCurrentItem(selectIndex(u.favorites.GetCurrentItem(), favoriteIDs(u.shownFavorites), wantFavorite))
	u.updateStatus()
}

func fill(l *tview.List, rows []string) {
	prev := l.GetCurrentItem()
	l.Clear()
	for _, r := range rows {
		l.AddItem(r, "", 0, nil)
	}
	if prev >= 0 && prev < len(rows) {
		l.SetCurrentItem(prev)
	}
}

// selectIndex prefers the row holding id, else the current row clamped to the item rows.
func selectIndex(current int, ids []int64, id int64) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	idx := current
	if idx >= len(ids) {
		idx = len(ids) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func taskIDs(ts []model.Task) []int64 {
	out := make([]int64, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func favoriteIDs(fs []model.Favorite) []int64 {
	out := make([]int64, len(fs))
	for i, f := range fs {
		out[i] = f.ID
	}
	return out
}

func (u *UI) selectedTask() (model.Task, bool) {
	idx := u.tasks.GetCurrentItem()
	if idx < 0 || idx >= len(u.shownTasks) {
		return model.Task{}, false
	}
	return u.shownTasks[idx], true
}

func (u *UI) selectedFavorite() (model.Favorite, bool) {
	idx := u.favorites.GetCurrentItem()
	if idx < 0 || idx >= len(u.shownFavorites) {
		return model.Favorite{}, false
	}
	return u.shownFavorites[idx], true
}

func (u *UI) updateStatus() {
	u.titleLeft.SetText("[red::b]TODO[-]")
	u.titleRight.SetText(headerRight(u.state.Stats()))

	if u.inputActive {
		if u.confirmCallback != nil && strings.TrimSpace(u.promptMessage) != "" {
			u.controls.SetText(tview.Escape(u.promptMessage + "  " + confirmControls))
		} else {
			u.controls.SetText(tview.Escape(confirmControls))
		}
		return
	}
	base := tview.Escape(taskControls)
	if u.favoritesFocus {
		base = tview.Escape(favoriteControls)
	}
	if u.notice != "" {
		u.controls.SetText(u.notice + "\n" + base)
		return
	}
	u.controls.SetText(base)
}

// notify shows msg in the footer until it expires or a newer notice replaces it.
func (u *UI) notify(kind noticeKind, msg string) {
	u.noticeSeq++
	seq := u.noticeSeq
	u.notice = formatNotice(kind, msg)
	u.updateStatus()
	time.AfterFunc(time.Duration(u.cfg.NoticeSeconds)*time.Second, func() {
		u.app.QueueUpdateDraw(func() {
			if u.noticeSeq != seq {
				return
			}
			u.notice = ""
			u.updateStatus()
		})
	})
}

func (u *UI) notifyError(err error) {
	kind, msg := noticeForError(err)
	u.notify(kind, msg)
}

// Actions

func (u *UI) showAddDialog() {
	field := tview.NewInputField().SetLabel("Add: ").SetFieldWidth(60)
	field.SetBorder(false)
	styleInputField(field)
	field.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			u.hideInput()
			return nil
		case tcell.KeyEnter:
			t, err := u.state.AddTask(field.GetText())
			if err != nil {
				// Keep the dialog open so the text can be corrected.
				u.notifyError(err)
				return nil
			}
			u.selTaskID = t.ID
			u.hideInput()
			u.refresh()
			u.notify(noticeSuccess, fmt.Sprintf("%q added", t.Text))
			return nil
		}
		return event
	})
	u.showInput(field)
}

func (u *UI) toggleCompleteSelected() {
	t, ok := u.selectedTask()
	if !ok {
		return
	}
	if err := u.state.SetCompleted(t.ID, !t.Completed); err != nil {
		u.notifyError(err)
		return
	}
	u.refresh()
	if !t.Completed {
		u.notify(noticeSuccess, fmt.Sprintf("%q marked as completed", t.Text))
	}
}

func (u *UI) toggleFavoriteSelected() {
	t, ok := u.selectedTask()
	if !ok {
		return
	}
	makeFavorite := !t.Favorite
	if err := u.state.ToggleFavorite(t.ID, makeFavorite); err != nil {
		u.notifyError(err)
		return
	}
	u.selFavoriteID = t.ID
	u.refresh()
	if makeFavorite {
		u.notify(noticeSuccess, fmt.Sprintf("%q added to favorites", t.Text))
	} else {
		u.notify(noticeInfo, fmt.Sprintf("%q removed from favorites", t.Text))
	}
}

func (u *UI) confirmDeleteTask() {
	t, ok := u.selectedTask()
	if !ok {
		return
	}
	u.confirm(fmt.Sprintf("Delete task %q?", t.Text), func() {
		if err := u.state.RemoveTask(t.ID); err != nil {
			u.notifyError(err)
			return
		}
		u.refresh()
		u.notify(noticeInfo, fmt.Sprintf("%q deleted", t.Text))
	})
}

func (u *UI) readdSelectedFavorite() {
	f, ok := u.selectedFavorite()
	if !ok {
		return
	}
	t, err := u.state.AddTaskFromFavorite(f.Text)
	if err != nil {
		u.notifyError(err)
		return
	}
	u.selTaskID = t.ID
	u.refresh()
	u.notify(noticeSuccess, fmt.Sprintf("%q added from favorites", t.Text))
}

func (u *UI) confirmRemoveFavorite() {
	f, ok := u.selectedFavorite()
	if !ok {
		return
	}
	u.confirm(fmt.Sprintf("Remove %q from favorites?", f.Text), func() {
		if err := u.state.RemoveFavorite(f.ID); err != nil {
			u.notifyError(err)
			return
		}
		u.refresh()
		u.notify(noticeInfo, fmt.Sprintf("%q removed from favorites", f.Text))
	})
}

func (u *UI) showPriorityPicker() {
	t, ok := u.selectedTask()
	if !ok {
		return
	}
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(false)
	for _, p := range model.Priorities {
		p := p
		list.AddItem(priorityMarker(p)+" "+priorityLabel(p), "", 0, func() {
			u.closePriorityPicker()
			if err := u.state.SetPriority(t.ID, p); err != nil {
				u.notifyError(err)
				return
			}
			u.refresh()
			u.notify(noticeSuccess, "Priority set to "+string(p))
		})
		if p == t.Priority {
			list.SetCurrentItem(list.GetItemCount() - 1)
		}
	}
	list.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape {
			u.closePriorityPicker()
			return nil
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'j':
				moveDown(list)
				return nil
			case 'k':
				moveUp(list)
				return nil
			}
		}
		return ev
	})

	hintText := "[j/k] Move   [enter] Select   [esc] Cancel"
	hints := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(false).
		SetText(hintText)
	hints.SetBorder(false)

	inner := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(list, len(model.Priorities), 0, true).
		AddItem(hints, 1, 0, false)
	overlay := wrapWithRules(inner)

	height := len(model.Priorities) + 3 // rules + list + hints
	if height < 6 {
		height = 6
	}
	width := len(hintText) + 2
	if width > u.cfg.CenterWidth {
		width = u.cfg.CenterWidth
	}
	u.pages.AddPage("priority-picker", center(width, height, overlay), true, true)
	u.inputActive = true
	u.app.SetFocus(list)
	u.updateStatus()
}

func (u *UI) closePriorityPicker() {
	u.pages.RemovePage("priority-picker")
	u.inputActive = false
	u.app.SetFocus(u.currentList())
	u.updateStatus()
}

func (u *UI) showHelp() {
	lines := []string{
		"[red::b]TODO[-] Help",
		"",
		"Movement:",
		"  j/k   PgUp/PgDn   g/G   Tab switch pane",
		"",
		"Tasks:",
		"  a Add   c/Space Complete   f Favorite   p Priority   x Delete",
		"",
		"Favorites:",
		"  Enter Add to task list   x Remove favorite",
		"",
		"Deleting a task keeps its favorite. Removing a favorite",
		"clears the star on its task.",
		"",
		"Close: Esc",
	}
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true).
		SetText(strings.Join(lines, "\n")).
		SetTextAlign(tview.AlignLeft)
	tv.SetBorder(false)
	tv.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			u.pages.RemovePage("help")
			u.app.SetFocus(u.currentList())
			return nil
		}
		// Swallow other keys so background doesn't react while help is open
		return nil
	})
	u.pages.AddPage("help", pad(wrapWithRules(tv), 1, 1), true, true)
	u.app.SetFocus(tv)
}

// confirm asks for Enter/Esc in the footer before running onConfirm.
func (u *UI) confirm(prompt string, onConfirm func()) {
	u.inputActive = true
	u.promptMessage = prompt
	u.confirmCallback = func(ok bool) {
		if ok {
			onConfirm()
		}
	}
	u.updateStatus()
}

func (u *UI) finishConfirm(ok bool) {
	cb := u.confirmCallback
	u.confirmCallback = nil
	u.inputActive = false
	u.promptMessage = ""
	u.updateStatus()
	cb(ok)
}

// Inline input helpers
func (u *UI) showInput(p tview.Primitive) {
	if u.inputActive && u.inputPrimitive != nil {
		u.grid.RemoveItem(u.inputPrimitive)
	}
	u.confirmCallback = nil
	u.promptMessage = ""
	container := wrapWithRules(p)
	u.inputPrimitive = container
	u.inputActive = true
	u.grid.SetRows(1, 1, 0, 3, 3)
	u.grid.AddItem(container, 3, 1, 1, 1, 0, 0, true)
	u.app.SetFocus(p)
	u.updateStatus()
}

func (u *UI) hideInput() {
	if u.inputPrimitive != nil {
		u.grid.RemoveItem(u.inputPrimitive)
	}
	u.inputActive = false
	u.inputPrimitive = nil
	u.confirmCallback = nil
	u.promptMessage = ""
	u.grid.SetRows(1, 1, 0, 0, 3)
	u.app.SetFocus(u.currentList())
	u.updateStatus()
}
