package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rdo34/todo/internal/model"
	"github.com/rdo34/todo/internal/store"
)

// FavoriteRepository owns the favorites list, kept sorted by lowercased text.
type FavoriteRepository struct {
	store store.Store
	items []model.Favorite
}

func newFavoriteRepository(s store.Store) *FavoriteRepository {
	return &FavoriteRepository{store: s}
}

func (r *FavoriteRepository) load() error {
	items, err := loadList[model.Favorite](r.store, store.KeyFavorites)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].Priority == "" {
			items[i].Priority = model.PriorityNone
		}
	}
	r.items = items
	return nil
}

func (r *FavoriteRepository) persist() error {
	return saveList(r.store, store.KeyFavorites, r.items)
}

// sortByText orders favorites by lowercased text (stable, ties keep their
// relative order) and persists the result.
// Comparison is bytewise on UTF-8, which matches code-unit order except
// for characters outside the Basic Multilingual Plane.
func (r *FavoriteRepository) sortByText() error {
	sort.SliceStable(r.items, func(i, j int) bool {
		return strings.ToLower(r.items[i].Text) < strings.ToLower(r.items[j].Text)
	})
	return r.persist()
}

func (r *FavoriteRepository) checkText(text string) error {
	key := model.Normalize(text)
	for _, f := range r.items {
		if model.Normalize(f.Text) == key {
			return fmt.Errorf("%w: %q", ErrDuplicateFavorite, f.Text)
		}
	}
	return nil
}

func (r *FavoriteRepository) has(id int64) bool {
	_, ok := r.Get(id)
	return ok
}

func (r *FavoriteRepository) add(f model.Favorite) {
	r.items = append(r.items, f)
}

func (r *FavoriteRepository) remove(id int64) {
	filtered := r.items[:0]
	for _, f := range r.items {
		if f.ID != id {
			filtered = append(filtered, f)
		}
	}
	r.items = filtered
}

// Get returns the favorite with id.
func (r *FavoriteRepository) Get(id int64) (model.Favorite, bool) {
	for _, f := range r.items {
		if f.ID == id {
			return f, true
		}
	}
	return model.Favorite{}, false
}

// List returns a copy of the favorites in sorted order.
func (r *FavoriteRepository) List() []model.Favorite {
	out := make([]model.Favorite, len(r.items))
	copy(out, r.items)
	return out
}
