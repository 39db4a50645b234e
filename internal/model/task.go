package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the accepted values in display order.
var Priorities = []Priority{PriorityNone, PriorityMedium, PriorityHigh}

var ErrInvalidPriority = errors.New("invalid priority")

// ParsePriority accepts none|medium|high in any case.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return PriorityNone, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return PriorityNone, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// UnmarshalJSON decodes unknown or missing values as PriorityNone.
func (p *Priority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*p = PriorityNone
		return nil
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		parsed = PriorityNone
	}
	*p = parsed
	return nil
}

type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Favorite  bool     `json:"favorite"`
	Priority  Priority `json:"priority"`
}

// Favorite is a copy of a task taken when it was favorited. It is not
// kept in step with the task it came from.
type Favorite Task

// Snapshot copies t into a Favorite.
func Snapshot(t Task) Favorite { return Favorite(t) }

// Normalize is the key used for duplicate detection.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
