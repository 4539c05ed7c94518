// Package screen is the state and command logic behind the shopping list
// screen. It knows nothing about rendering: a front end feeds it user actions
// and reads state back, and it reports through a Notifier and a Navigator.
package screen

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shopsmart/internal/shopping"
)

// RouteOrders is the navigation target after checkout.
const RouteOrders = "orders"

const (
	msgOrdersSaved  = "Orders saved successfully"
	msgCartEmpty    = "Cart is empty"
	msgOrdersFailed = "Error saving orders"
	msgItemsFailed  = "Error saving items"
)

// ErrAddPending is returned by BeginAdd while an earlier add is still waiting
// on its image lookup.
var ErrAddPending = errors.New("an item is already being added")

// ListModel is the observed item list the controller reads and writes.
type ListModel interface {
	Load(ctx context.Context)
	Items() []shopping.Item
	Update(ctx context.Context, items []shopping.Item) error
	Subscribe(fn func([]shopping.Item)) (unsubscribe func())
	SearchImage(ctx context.Context, name string) string
}

type OrderStore interface {
	SaveOrders(ctx context.Context, records []shopping.OrderRecord) error
}

// Notifier shows short transient messages to the user.
type Notifier interface {
	Notify(msg string)
}

type Navigator interface {
	Navigate(route string)
}

type Options struct {
	Location  *time.Location
	DayLayout string
	Now       func() time.Time
	Logger    *slog.Logger
}

// AddRequest is a validated add waiting for its image lookup. It is only
// applied if the dialog that produced it is still open.
type AddRequest struct {
	gen    uint64
	Name   string
	Amount int
}

type Controller struct {
	list   ListModel
	orders OrderStore
	notify Notifier
	nav    Navigator

	loc    *time.Location
	layout string
	now    func() time.Time
	log    *slog.Logger

	dialogOpen    bool
	loading       bool
	nameInput     string
	amountInput   string
	selected      map[shopping.Item]struct{}
	deleteVisible bool
	gen           uint64

	unsubscribe func()
}

func New(list ListModel, orders OrderStore, notify Notifier, nav Navigator, opts Options) *Controller {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.DayLayout == "" {
		opts.DayLayout = shopping.DefaultDayLayout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	c := &Controller{
		list:     list,
		orders:   orders,
		notify:   notify,
		nav:      nav,
		loc:      opts.Location,
		layout:   opts.DayLayout,
		now:      opts.Now,
		log:      opts.Logger,
		selected: map[shopping.Item]struct{}{},
	}
	c.unsubscribe = list.Subscribe(c.prune)
	return c
}

// Close detaches the controller from the list.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) Load(ctx context.Context) {
	c.list.Load(ctx)
}

func (c *Controller) Items() []shopping.Item {
	return c.list.Items()
}

func (c *Controller) Groups() []shopping.DayGroup {
	return shopping.GroupByDay(c.list.Items(), c.loc, c.layout)
}

func (c *Controller) Total() int {
	return shopping.ComputeTotal(c.list.Items())
}

func (c *Controller) Subtotal() int {
	return shopping.Subtotal(c.list.Items())
}

func (c *Controller) DialogOpen() bool    { return c.dialogOpen }
func (c *Controller) Loading() bool       { return c.loading }
func (c *Controller) NameInput() string   { return c.nameInput }
func (c *Controller) AmountInput() string { return c.amountInput }
func (c *Controller) DeleteVisible() bool { return c.deleteVisible }

func (c *Controller) OpenDialog() {
	c.dialogOpen = true
}

// CancelDialog closes the add dialog. A lookup still in flight is discarded
// when it completes.
func (c *Controller) CancelDialog() {
	c.dialogOpen = false
	c.loading = false
	c.resetInputs()
	c.gen++
}

func (c *Controller) SetName(v string)   { c.nameInput = v }
func (c *Controller) SetAmount(v string) { c.amountInput = v }

// BeginAdd validates the dialog inputs. Every validation message is sent to
// the notifier and nothing changes on failure.
func (c *Controller) BeginAdd() (AddRequest, error) {
	if c.loading {
		return AddRequest{}, ErrAddPending
	}
	if err := shopping.Validate(c.nameInput, c.amountInput); err != nil {
		var verr *shopping.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Messages() {
				c.notify.Notify(msg)
			}
		}
		return AddRequest{}, err
	}
	c.loading = true
	c.gen++
	return AddRequest{
		gen:    c.gen,
		Name:   strings.TrimSpace(c.nameInput),
		Amount: shopping.ParseAmount(c.amountInput),
	}, nil
}

// ResolveImage is the slow half of an add. It touches no controller state and
// is safe to run off the UI goroutine.
func (c *Controller) ResolveImage(ctx context.Context, req AddRequest) string {
	return c.list.SearchImage(ctx, req.Name)
}

// FinishAdd applies a completed lookup. It reports false when the request was
// discarded because the dialog was dismissed in the meantime.
func (c *Controller) FinishAdd(ctx context.Context, req AddRequest, imageURL string) bool {
	if req.gen != c.gen || !c.dialogOpen {
		c.log.Debug("discarding stale add", "name", req.Name)
		return false
	}
	item := shopping.NewItem(req.Name, req.Amount, imageURL, c.now())
	items := append(c.list.Items(), item)
	if err := c.list.Update(ctx, items); err != nil {
		c.notify.Notify(msgItemsFailed)
	}
	c.log.Info("item added", "name", item.Name, "amount", item.Amount, "image", item.HasImage())
	c.resetInputs()
	c.loading = false
	c.dialogOpen = false
	return true
}

// AddItem runs a whole add synchronously: open, validate, look up, apply.
func (c *Controller) AddItem(ctx context.Context, name, amountText string) error {
	c.OpenDialog()
	c.SetName(name)
	c.SetAmount(amountText)
	req, err := c.BeginAdd()
	if err != nil {
		return err
	}
	url := c.ResolveImage(ctx, req)
	if !c.FinishAdd(ctx, req, url) {
		return errors.New("add was cancelled")
	}
	return nil
}

func (c *Controller) ToggleSelect(item shopping.Item, selected bool) {
	if selected {
		if shopping.Contains(c.list.Items(), item) {
			c.selected[item] = struct{}{}
		}
	} else {
		delete(c.selected, item)
	}
	c.deleteVisible = len(c.selected) > 0
}

func (c *Controller) IsSelected(item shopping.Item) bool {
	_, ok := c.selected[item]
	return ok
}

func (c *Controller) Selected() []shopping.Item {
	var out []shopping.Item
	for _, it := range c.list.Items() {
		if _, ok := c.selected[it]; ok && !shopping.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Controller) ClearSelection() {
	c.selected = map[shopping.Item]struct{}{}
	c.deleteVisible = false
}

// DeleteSelected removes every item equal to a selected value and persists
// the result. The selection is cleared either way.
func (c *Controller) DeleteSelected(ctx context.Context) error {
	if len(c.selected) == 0 {
		return nil
	}
	remaining := shopping.RemoveAll(c.list.Items(), c.selected)
	removed := len(c.selected)
	c.ClearSelection()
	if err := c.list.Update(ctx, remaining); err != nil {
		c.notify.Notify(msgItemsFailed)
		return err
	}
	c.log.Info("items deleted", "selected", removed, "remaining", len(remaining))
	return nil
}

// Checkout writes the whole list to the orders store, then navigates to the
// orders screen whether or not the write succeeded.
func (c *Controller) Checkout(ctx context.Context) error {
	items := c.list.Items()
	records := shopping.ToOrders(items)
	err := c.orders.SaveOrders(ctx, records)
	switch {
	case err != nil:
		c.log.Error("save orders failed", "count", len(records), "error", err)
		c.notify.Notify(msgOrdersFailed)
		err = &shopping.PersistenceError{Op: "save orders", Err: err}
	case len(records) == 0:
		c.log.Info("no orders to save, cleared existing orders")
		c.notify.Notify(msgCartEmpty)
	default:
		c.log.Info("orders saved", "count", len(records))
		c.notify.Notify(msgOrdersSaved)
	}
	c.nav.Navigate(RouteOrders)
	return err
}

func (c *Controller) resetInputs() {
	c.nameInput = ""
	c.amountInput = ""
}

// prune keeps the selection a subset of the list.
func (c *Controller) prune(items []shopping.Item) {
	if len(c.selected) == 0 {
		return
	}
	present := make(map[shopping.Item]struct{}, len(items))
	for _, it := range items {
		present[it] = struct{}{}
	}
	for it := range c.selected {
		if _, ok := present[it]; !ok {
			delete(c.selected, it)
		}
	}
	c.deleteVisible = len(c.selected) > 0
}
