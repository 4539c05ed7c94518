package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shopsmart/internal/config"
	"shopsmart/internal/shopping"
	"shopsmart/internal/viewmodel"
)

type memItems struct {
	items []shopping.Item
}

func (m *memItems) LoadItems(context.Context) ([]shopping.Item, error) {
	return append([]shopping.Item(nil), m.items...), nil
}

func (m *memItems) SaveItems(_ context.Context, items []shopping.Item) error {
	m.items = append([]shopping.Item(nil), items...)
	return nil
}

type memOrders struct {
	records []shopping.OrderRecord
	saves   int
}

func (m *memOrders) SaveOrders(_ context.Context, records []shopping.OrderRecord) error {
	m.saves++
	m.records = records
	return nil
}

func (m *memOrders) LoadOrders(context.Context) ([]shopping.OrderRecord, error) {
	return m.records, nil
}

type fixedSearch string

func (s fixedSearch) Search(context.Context, string) (string, error) { return string(s), nil }

func newTestModel(t *testing.T, seed ...shopping.Item) (Model, *memItems, *memOrders) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	items := &memItems{items: seed}
	orders := &memOrders{}
	vm := viewmodel.New(items, fixedSearch("http://img/x.jpg"), log)
	cfg := config.Default()
	cfg.ImageSearch.TimeoutSeconds = 0
	m := newModel(context.Background(), vm, orders, cfg, log)
	m.statusTTL = time.Millisecond
	m.ctrl.Load(context.Background())
	t.Cleanup(m.ctrl.Close)
	return m, items, orders
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// runCmd executes cmd and any batched children, returning the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func TestAddThroughDialog(t *testing.T) {
	m, items, _ := newTestModel(t)
	m, _ = press(t, m, "a")
	if !m.ctrl.DialogOpen() {
		t.Fatalf("expected dialog to open")
	}
	m.nameInput.SetValue("Milk")
	m.amountInput.SetValue("40")

	m, cmd := press(t, m, "enter")
	if !m.ctrl.Loading() {
		t.Fatalf("expected loading while the lookup runs")
	}
	resolved, ok := findMsg[imageResolvedMsg](runCmd(cmd))
	if !ok {
		t.Fatalf("expected an imageResolvedMsg")
	}

	next, _ := m.Update(resolved)
	m = next.(Model)
	if m.ctrl.DialogOpen() || m.ctrl.Loading() {
		t.Fatalf("dialog should close after add")
	}
	if len(items.items) != 1 || items.items[0].ImageURL != "http://img/x.jpg" {
		t.Fatalf("item not persisted with image: %#v", items.items)
	}
	if m.nameInput.Value() != "" || m.amountInput.Value() != "" {
		t.Fatalf("inputs should reset")
	}
	if !strings.Contains(m.View(), "Total: ₹40") {
		t.Fatalf("view missing total:\n%s", m.View())
	}
}

func TestCancelWhileLoadingDropsResult(t *testing.T) {
	m, items, _ := newTestModel(t)
	m, _ = press(t, m, "a")
	m.nameInput.SetValue("Milk")
	m.amountInput.SetValue("40")
	m, cmd := press(t, m, "enter")
	resolved, _ := findMsg[imageResolvedMsg](runCmd(cmd))

	m, _ = press(t, m, "esc")
	if m.ctrl.DialogOpen() {
		t.Fatalf("esc should close the dialog while loading")
	}
	next, _ := m.Update(resolved)
	m = next.(Model)
	if m.ctrl.DialogOpen() || len(items.items) != 0 || len(m.ctrl.Items()) != 0 {
		t.Fatalf("late lookup result must be discarded")
	}
}

func TestEmptyInputsShowBothMessages(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "a")
	m, _ = press(t, m, "enter")
	if !strings.Contains(m.status, "Please enter a valid name") || !strings.Contains(m.status, "Please enter a valid amount") {
		t.Fatalf("expected both validation messages, got %q", m.status)
	}
	if !m.ctrl.DialogOpen() {
		t.Fatalf("dialog should stay open after a validation error")
	}
}

func TestSelectAndDelete(t *testing.T) {
	base := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.Local).UnixMilli()
	m, items, _ := newTestModel(t,
		shopping.Item{Name: "Milk", Amount: 40, DateAdded: base},
		shopping.Item{Name: "Eggs", Amount: 60, DateAdded: base + 1},
		shopping.Item{Name: "Rice", Amount: 90, DateAdded: base + 2},
	)
	m, _ = press(t, m, " ")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, " ")
	if !m.ctrl.DeleteVisible() {
		t.Fatalf("delete should be visible with a selection")
	}
	if !strings.Contains(m.View(), "delete 2 selected") {
		t.Fatalf("header should advertise delete:\n%s", m.View())
	}
	m, _ = press(t, m, "d")
	if len(items.items) != 1 || items.items[0].Name != "Eggs" {
		t.Fatalf("unexpected remaining items %#v", items.items)
	}
	if m.ctrl.DeleteVisible() || strings.Contains(m.View(), "selected") {
		t.Fatalf("delete control should hide after delete")
	}
}

func TestCheckoutNavigatesToOrders(t *testing.T) {
	m, _, orders := newTestModel(t, shopping.Item{Name: "Milk", Amount: 40, DateAdded: 1})
	m, cmd := press(t, m, "c")
	if m.view != viewOrders {
		t.Fatalf("checkout should switch to the orders view")
	}
	if orders.saves != 1 || len(orders.records) != 1 {
		t.Fatalf("orders not saved: %#v", orders.records)
	}
	if m.status != "Orders saved successfully" {
		t.Fatalf("unexpected status %q", m.status)
	}
	loaded, ok := findMsg[ordersLoadedMsg](runCmd(cmd))
	if !ok {
		t.Fatalf("expected orders to load")
	}
	next, _ := m.Update(loaded)
	m = next.(Model)
	if !strings.Contains(m.View(), "My Orders") || !strings.Contains(m.View(), "Milk") {
		t.Fatalf("orders view missing content:\n%s", m.View())
	}

	m, _ = press(t, m, "b")
	if m.view != viewList {
		t.Fatalf("back should return to the list")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	m, _, orders := newTestModel(t)
	m, _ = press(t, m, "c")
	if orders.saves != 1 || orders.records == nil || len(orders.records) != 0 {
		t.Fatalf("empty checkout should save an empty list, got %#v", orders.records)
	}
	if m.status != "Cart is empty" || m.view != viewOrders {
		t.Fatalf("unexpected state: status %q view %v", m.status, m.view)
	}
}

func TestStatusClears(t *testing.T) {
	m, _, _ := newTestModel(t)
	cmd := m.setStatus("hello")
	clr, ok := findMsg[statusClearMsg](runCmd(cmd))
	if !ok {
		t.Fatalf("expected a clear message")
	}
	_ = m.setStatus("newer")
	next, _ := m.Update(clr)
	if next.(Model).status != "newer" {
		t.Fatalf("stale clear must not wipe newer status")
	}
}

func TestEmptyListView(t *testing.T) {
	m, _, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Your shopping list is empty.") {
		t.Fatalf("expected empty state:\n%s", m.View())
	}
}
