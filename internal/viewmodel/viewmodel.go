// Package viewmodel owns the observed shopping list: one writer, any number of
// subscribers, and write-through persistence to the item store.
package viewmodel

import (
	"context"
	"log/slog"
	"sync"

	"shopsmart/internal/imagesearch"
	"shopsmart/internal/shopping"
)

// ItemStore is the primary list store.
type ItemStore interface {
	LoadItems(ctx context.Context) ([]shopping.Item, error)
	SaveItems(ctx context.Context, items []shopping.Item) error
}

type ViewModel struct {
	store    ItemStore
	searcher imagesearch.Searcher
	log      *slog.Logger

	mu     sync.Mutex
	items  []shopping.Item
	nextID int
	subs   map[int]func([]shopping.Item)
}

func New(store ItemStore, searcher imagesearch.Searcher, log *slog.Logger) *ViewModel {
	if searcher == nil {
		searcher = imagesearch.Disabled{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ViewModel{
		store:    store,
		searcher: searcher,
		log:      log,
		subs:     map[int]func([]shopping.Item){},
	}
}

// Load replaces the list with the persisted one. A missing or unreadable store
// leaves the list as it is.
func (vm *ViewModel) Load(ctx context.Context) {
	items, err := vm.store.LoadItems(ctx)
	if err != nil {
		vm.log.Warn("load items failed", "error", err)
		return
	}
	vm.log.Debug("items loaded", "count", len(items))
	vm.set(items)
}

// Items returns a copy of the current list.
func (vm *ViewModel) Items() []shopping.Item {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return clone(vm.items)
}

// Update publishes items and persists the full list. The in-memory list is
// replaced even when the save fails.
func (vm *ViewModel) Update(ctx context.Context, items []shopping.Item) error {
	vm.set(items)
	if err := vm.store.SaveItems(ctx, clone(items)); err != nil {
		vm.log.Error("save items failed", "count", len(items), "error", err)
		return &shopping.PersistenceError{Op: "save items", Err: err}
	}
	vm.log.Debug("items saved", "count", len(items))
	return nil
}

// Subscribe registers fn for every change. fn runs on the writer's goroutine.
func (vm *ViewModel) Subscribe(fn func([]shopping.Item)) (unsubscribe func()) {
	vm.mu.Lock()
	id := vm.nextID
	vm.nextID++
	vm.subs[id] = fn
	vm.mu.Unlock()
	return func() {
		vm.mu.Lock()
		delete(vm.subs, id)
		vm.mu.Unlock()
	}
}

// SearchImage never fails: lookup errors are logged and read as no image.
func (vm *ViewModel) SearchImage(ctx context.Context, name string) string {
	url, err := vm.searcher.Search(ctx, name)
	if err != nil {
		vm.log.Warn("image lookup failed", "name", name, "error", err)
		return ""
	}
	return url
}

func (vm *ViewModel) set(items []shopping.Item) {
	vm.mu.Lock()
	vm.items = clone(items)
	subs := make([]func([]shopping.Item), 0, len(vm.subs))
	for _, fn := range vm.subs {
		subs = append(subs, fn)
	}
	snapshot := clone(vm.items)
	vm.mu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

func clone(items []shopping.Item) []shopping.Item {
	if items == nil {
		return nil
	}
	out := make([]shopping.Item, len(items))
	copy(out, items)
	return out
}
