package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rdo34/todo/internal/app"
	"github.com/rdo34/todo/internal/model"
	"github.com/rivo/tview"
)

const (
	emptyTasksText     = "⟂ No pending tasks, press 'a' to add one"
	emptyFavoritesText = "⟂ No favorite tasks"
)

// Everything in this file derives display strings from state alone; no
// widget is consulted or mutated.

func formatTask(t model.Task) string {
	check := "☐"
	if t.Completed {
		check = "☑"
	}
	star := "☆"
	if t.Favorite {
		star = "[yellow]★[-]"
	}
	text := tview.Escape(t.Text)
	if t.Completed {
		text = "[gray::s]" + text + "[-::-]"
	}
	return priorityMarker(t.Priority) + " " + check + " " + star + " " + text
}

func priorityMarker(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "[red]●[-]"
	case model.PriorityMedium:
		return "[yellow]●[-]"
	default:
		return " "
	}
}

func priorityLabel(p model.Priority) string {
	s := string(p)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatFavorite(f model.Favorite) string {
	return "★ " + tview.Escape(f.Text)
}

// taskRows renders every task and appends the empty placeholder when no
// task is pending.
func taskRows(tasks []model.Task) []string {
	rows := make([]string, 0, len(tasks)+1)
	active := 0
	for _, t := range tasks {
		rows = append(rows, formatTask(t))
		if !t.Completed {
			active++
		}
	}
	if active == 0 {
		rows = append(rows, emptyTasksText)
	}
	return rows
}

func favoriteRows(favs []model.Favorite) []string {
	if len(favs) == 0 {
		return []string{emptyFavoritesText}
	}
	rows := make([]string, 0, len(favs))
	for _, f := range favs {
		rows = append(rows, formatFavorite(f))
	}
	return rows
}

// headerRight summarizes progress, e.g. "3 pending · 2 done · 4 ★ (40% done)".
func headerRight(s app.Stats) string {
	out := strconv.Itoa(s.Active) + " pending · " + strconv.Itoa(s.Completed) + " done · " + strconv.Itoa(s.Favorites) + " ★"
	if s.Total > 0 {
		out += "  (" + strconv.Itoa(s.Completed*100/s.Total) + "% done)"
	}
	return out
}

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarning
)

func (k noticeKind) color() string {
	switch k {
	case noticeSuccess:
		return "green"
	case noticeWarning:
		return "yellow"
	default:
		return "white"
	}
}

// noticeForError maps a rejected operation to the message shown to the user.
func noticeForError(err error) (noticeKind, string) {
	switch {
	case errors.Is(err, app.ErrEmptyInput):
		return noticeWarning, "Please type a task"
	case errors.Is(err, app.ErrDuplicateTask):
		return noticeWarning, "That task is already in your list"
	case errors.Is(err, app.ErrDuplicateFavorite):
		return noticeWarning, "This task is already a favorite"
	case errors.Is(err, app.ErrTaskNotFound):
		return noticeWarning, "That task no longer exists"
	}
	return noticeWarning, fmt.Sprintf("Error: %v", err)
}

func formatNotice(k noticeKind, msg string) string {
	return "[" + k.color() + "]" + tview.Escape(msg) + "[-]"
}
