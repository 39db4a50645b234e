package app

import (
	"io"
	"log"
	"time"

	"github.com/rdo34/todo/internal/model"
	"github.com/rdo34/todo/internal/store"
)

// App holds the task and favorites state and the rules that keep the two
// consistent. Every mutation persists the lists it touched before
// returning. App is not safe for concurrent use; callers serialize
// access (the TUI does so through its event loop).
type App struct {
	Store store.Store

	tasks     *TaskRepository
	favorites *FavoriteRepository
	ids       idGen
	log       *log.Logger
}

type Option func(*App)

// WithLogger routes mutation and warning logs to l.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock replaces the time source used for id assignment.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.ids.now = now }
}

func New(s store.Store, opts ...Option) *App {
	a := &App{
		Store:     s,
		tasks:     newTaskRepository(s),
		favorites: newFavoriteRepository(s),
		ids:       idGen{now: time.Now},
		log:       log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads both lists from the store, then sorts and persists favorites.
func (a *App) Load() error {
	if err := a.tasks.load(); err != nil {
		return err
	}
	if err := a.favorites.load(); err != nil {
		return err
	}
	for _, t := range a.tasks.items {
		a.ids.observe(t.ID)
	}
	for _, f := range a.favorites.items {
		a.ids.observe(f.ID)
	}
	a.log.Printf("loaded %d tasks, %d favorites", len(a.tasks.items), len(a.favorites.items))
	return a.favorites.sortByText()
}

// AddTask creates a task from user input. Duplicates are checked against
// every task, completed or not.
func (a *App) AddTask(text string) (model.Task, error) {
	return a.addTask(text, false)
}

// AddTaskFromFavorite re-adds a favorite's text as a new task. Only
// active tasks count as duplicates. The new task is not linked to the
// favorite.
func (a *App) AddTaskFromFavorite(text string) (model.Task, error) {
	return a.addTask(text, true)
}

func (a *App) addTask(text string, activeOnly bool) (model.Task, error) {
	clean, err := a.tasks.validateNew(text, activeOnly)
	if err != nil {
		return model.Task{}, err
	}
	t := model.Task{
		ID:       a.ids.next(),
		Text:     clean,
		Priority: model.PriorityNone,
	}
	a.log.Printf("add task id=%d text=%q from_favorite=%t", t.ID, t.Text, activeOnly)
	if err := a.tasks.add(t); err != nil {
		a.log.Printf("Warning: %v", err)
		return t, err
	}
	return t, nil
}

// SetCompleted updates the completion flag; unknown ids are ignored.
func (a *App) SetCompleted(id int64, completed bool) error {
	a.log.Printf("set completed id=%d completed=%t", id, completed)
	return a.warn(a.tasks.update(id, func(t *model.Task) { t.Completed = completed }))
}

// SetPriority updates the priority; unknown ids are ignored.
func (a *App) SetPriority(id int64, p model.Priority) error {
	a.log.Printf("set priority id=%d priority=%s", id, p)
	return a.warn(a.tasks.update(id, func(t *model.Task) { t.Priority = p }))
}

// RemoveTask deletes a task. Its favorite, if any, is kept.
func (a *App) RemoveTask(id int64) error {
	a.log.Printf("remove task id=%d", id)
	return a.warn(a.tasks.remove(id))
}

// ToggleFavorite favorites (makeFavorite) or unfavorites the task with
// taskID. Favoriting copies a snapshot of the task into favorites and
// fails with ErrDuplicateFavorite when a favorite with the same
// normalized text exists. Unfavoriting removes every favorite carrying
// taskID and clears the task's flag.
func (a *App) ToggleFavorite(taskID int64, makeFavorite bool) error {
	if makeFavorite {
		t, ok := a.tasks.Get(taskID)
		if !ok {
			return ErrTaskNotFound
		}
		if err := a.favorites.checkText(t.Text); err != nil {
			return err
		}
		i := a.tasks.index(taskID)
		a.tasks.items[i].Favorite = true
		if !a.favorites.has(taskID) {
			a.favorites.add(model.Snapshot(a.tasks.items[i]))
		}
		a.log.Printf("favorite id=%d text=%q", taskID, t.Text)
	} else {
		a.favorites.remove(taskID)
		if i := a.tasks.index(taskID); i >= 0 {
			a.tasks.items[i].Favorite = false
		}
		a.log.Printf("unfavorite id=%d", taskID)
	}
	return a.warn(a.persistBoth())
}

// RemoveFavorite deletes the favorite with id and, if the task it was
// taken from still exists, clears that task's favorite flag.
func (a *App) RemoveFavorite(id int64) error {
	a.favorites.remove(id)
	if i := a.tasks.index(id); i >= 0 {
		a.tasks.items[i].Favorite = false
	}
	a.log.Printf("remove favorite id=%d", id)
	return a.warn(a.persistBoth())
}

func (a *App) persistBoth() error {
	if err := a.tasks.persist(); err != nil {
		return err
	}
	return a.favorites.sortByText()
}

func (a *App) warn(err error) error {
	if err != nil {
		a.log.Printf("Warning: %v", err)
	}
	return err
}

// Tasks returns every task in display order.
func (a *App) Tasks() []model.Task { return a.tasks.List() }

// ActiveTasks returns the tasks that are not completed.
func (a *App) ActiveTasks() []model.Task { return a.tasks.ListActive() }

// Favorites returns the favorites sorted by text.
func (a *App) Favorites() []model.Favorite { return a.favorites.List() }

func (a *App) Task(id int64) (model.Task, bool)         { return a.tasks.Get(id) }
func (a *App) Favorite(id int64) (model.Favorite, bool) { return a.favorites.Get(id) }

type Stats struct {
	Total     int
	Completed int
	Active    int
	Favorites int
}

func (a *App) Stats() Stats {
	s := Stats{Total: len(a.tasks.items), Favorites: len(a.favorites.items)}
	for _, t := range a.tasks.items {
		if t.Completed {
			s.Completed++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}
