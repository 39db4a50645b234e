package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rdo34/todo/internal/app"
	"github.com/rdo34/todo/internal/config"
	"github.com/rdo34/todo/internal/model"
	"github.com/rdo34/todo/internal/store"
)

func newTestUI(t *testing.T, texts ...string) *UI {
	t.Helper()
	state := app.New(store.NewMemStore())
	if err := state.Load(); err != nil {
		t.Fatal(err)
	}
	for _, text := range texts {
		if _, err := state.AddTask(text); err != nil {
			t.Fatalf("AddTask(%q): %v", text, err)
		}
	}
	return New(state, config.UIConfig{NoticeSeconds: 60})
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task model.Task
		want []string
		not  []string
	}{
		{
			name: "plain",
			task: model.Task{Text: "Buy milk", Priority: model.PriorityNone},
			want: []string{"☐", "☆", "Buy milk"},
			not:  []string{"★", "●"},
		},
		{
			name: "completed favorite high",
			task: model.Task{Text: "Pay rent", Completed: true, Favorite: true, Priority: model.PriorityHigh},
			want: []string{"☑", "★", "[red]●", "[gray::s]Pay rent"},
		},
		{
			name: "medium",
			task: model.Task{Text: "Stretch", Priority: model.PriorityMedium},
			want: []string{"[yellow]●"},
		},
		{
			name: "text with tag-like brackets is escaped",
			task: model.Task{Text: "fix [red] bug"},
			want: []string{"fix [red[] bug"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTask(tt.task)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatTask = %q, missing %q", got, w)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(got, n) {
					t.Errorf("formatTask = %q, unexpected %q", got, n)
				}
			}
		})
	}
}

func TestTaskRowsPlaceholder(t *testing.T) {
	if rows := taskRows(nil); len(rows) != 1 || rows[0] != emptyTasksText {
		t.Errorf("empty list rows = %v", rows)
	}
	onlyDone := []model.Task{{ID: 1, Text: "done", Completed: true}}
	if rows := taskRows(onlyDone); len(rows) != 2 || rows[1] != emptyTasksText {
		t.Errorf("all-completed rows = %v", rows)
	}
	pending := []model.Task{{ID: 1, Text: "todo"}}
	if rows := taskRows(pending); len(rows) != 1 {
		t.Errorf("pending rows = %v", rows)
	}
}

func TestFavoriteRows(t *testing.T) {
	if rows := favoriteRows(nil); len(rows) != 1 || rows[0] != emptyFavoritesText {
		t.Errorf("rows = %v", rows)
	}
	rows := favoriteRows([]model.Favorite{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}})
	if len(rows) != 2 || rows[0] != "★ a" {
		t.Errorf("rows = %v", rows)
	}
}

func TestHeaderRight(t *testing.T) {
	got := headerRight(app.Stats{Total: 4, Completed: 1, Active: 3, Favorites: 2})
	if got != "3 pending · 1 done · 2 ★  (25% done)" {
		t.Errorf("headerRight = %q", got)
	}
	if got := headerRight(app.Stats{}); strings.Contains(got, "%") {
		t.Errorf("empty header shows percentage: %q", got)
	}
}

func TestNoticeForError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{app.ErrEmptyInput, "Please type a task"},
		{fmt.Errorf("%w: %q", app.ErrDuplicateTask, "x"), "That task is already in your list"},
		{app.ErrDuplicateFavorite, "This task is already a favorite"},
		{errors.New("disk full"), "Error: disk full"},
	}
	for _, tt := range tests {
		kind, msg := noticeForError(tt.err)
		if kind != noticeWarning || msg != tt.want {
			t.Errorf("noticeForError(%v) = %v, %q; want warning, %q", tt.err, kind, msg, tt.want)
		}
	}
}

func TestSelectIndex(t *testing.T) {
	ids := []int64{10, 20, 30}
	tests := []struct {
		current int
		id      int64
		want    int
	}{
		{0, 20, 1},
		{2, 99, 2},
		{5, 99, 2},
		{-1, 99, 0},
	}
	for _, tt := range tests {
		if got := selectIndex(tt.current, ids, tt.id); got != tt.want {
			t.Errorf("selectIndex(%d, %v, %d) = %d, want %d", tt.current, ids, tt.id, got, tt.want)
		}
	}
	if got := selectIndex(3, nil, 1); got != 0 {
		t.Errorf("selectIndex on empty = %d", got)
	}
}

func TestFavoriteDeleteReaddFlow(t *testing.T) {
	u := newTestUI(t, "Buy milk", "Call mom")

	u.tasks.SetCurrentItem(0)
	u.toggleFavoriteSelected()
	if favs := u.state.Favorites(); len(favs) != 1 || favs[0].Text != "Buy milk" {
		t.Fatalf("favorites = %+v", favs)
	}
	if !strings.Contains(u.notice, "added to favorites") {
		t.Errorf("notice = %q", u.notice)
	}

	u.tasks.SetCurrentItem(0)
	u.confirmDeleteTask()
	if u.confirmCallback == nil || !strings.Contains(u.promptMessage, "Buy milk") {
		t.Fatalf("no confirmation prompt: %q", u.promptMessage)
	}
	u.finishConfirm(true)
	if len(u.state.Tasks()) != 1 {
		t.Fatalf("tasks = %+v", u.state.Tasks())
	}
	if len(u.state.Favorites()) != 1 {
		t.Fatal("deleting the task removed its favorite")
	}

	u.switchPane()
	u.favorites.SetCurrentItem(0)
	u.readdSelectedFavorite()
	tasks := u.state.Tasks()
	if len(tasks) != 2 || tasks[1].Text != "Buy milk" || tasks[1].Favorite {
		t.Fatalf("tasks after re-add = %+v", tasks)
	}
	if u.shownTasks[1].ID != tasks[1].ID {
		t.Error("view not refreshed after re-add")
	}

	// A second re-add collides with the active task.
	u.readdSelectedFavorite()
	if !strings.Contains(u.notice, "already in your list") {
		t.Errorf("notice = %q", u.notice)
	}
}

func TestCancelDeleteKeepsTask(t *testing.T) {
	u := newTestUI(t, "Keep me")
	u.confirmDeleteTask()
	u.finishConfirm(false)
	if len(u.state.Tasks()) != 1 {
		t.Error("cancelled delete removed the task")
	}
	if u.inputActive {
		t.Error("confirmation still active")
	}
}

func TestRemoveFavoriteClearsStar(t *testing.T) {
	u := newTestUI(t, "Walk dog")
	u.toggleFavoriteSelected()
	if !u.shownTasks[0].Favorite {
		t.Fatal("task not starred")
	}
	u.switchPane()
	u.confirmRemoveFavorite()
	u.finishConfirm(true)
	if u.shownTasks[0].Favorite {
		t.Error("star not cleared on task after removing favorite")
	}
	if len(u.shownFavorites) != 0 {
		t.Error("favorite still shown")
	}
}

func TestToggleCompleteKeepsSelection(t *testing.T) {
	u := newTestUI(t, "one", "two", "three")
	u.tasks.SetCurrentItem(1)
	u.toggleCompleteSelected()
	if !u.shownTasks[1].Completed {
		t.Fatal("task not completed")
	}
	if u.tasks.GetCurrentItem() != 1 {
		t.Errorf("selection moved to %d", u.tasks.GetCurrentItem())
	}
	u.toggleCompleteSelected()
	if u.shownTasks[1].Completed {
		t.Error("second toggle did not reopen the task")
	}
}
