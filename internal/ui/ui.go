package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shopsmart/internal/config"
	"shopsmart/internal/screen"
	"shopsmart/internal/shopping"
)

const statusTTL = 4 * time.Second

type view int

const (
	viewList view = iota
	viewOrders
)

const (
	fieldName = iota
	fieldAmount
)

// OrderStore is read by the orders screen and written at checkout.
type OrderStore interface {
	screen.OrderStore
	LoadOrders(ctx context.Context) ([]shopping.OrderRecord, error)
}

type imageResolvedMsg struct {
	req screen.AddRequest
	url string
}

type ordersLoadedMsg struct {
	records []shopping.OrderRecord
	err     error
}

type statusClearMsg struct {
	id int
}

type Model struct {
	ctx    context.Context
	ctrl   *screen.Controller
	orders OrderStore
	bridge *bridge
	cfg    config.Config
	log    *slog.Logger

	view        view
	cursor      int
	nameInput   textinput.Model
	amountInput textinput.Model
	focus       int
	spinner     spinner.Model

	status    string
	statusID  int
	statusTTL time.Duration

	orderList []shopping.OrderRecord
	ordersErr error
}

// Run loads the list and blocks until the user quits.
func Run(ctx context.Context, list screen.ListModel, orders OrderStore, cfg config.Config, log *slog.Logger) error {
	m := newModel(ctx, list, orders, cfg, log)
	defer m.ctrl.Close()
	m.ctrl.Load(ctx)
	m.cursor = clampCursor(0, len(m.rows()))

	program := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, list screen.ListModel, orders OrderStore, cfg config.Config, log *slog.Logger) Model {
	br := &bridge{}
	ctrl := screen.New(list, orders, br, br, screen.Options{
		DayLayout: cfg.DateLayout,
		Logger:    log,
	})

	name := textinput.New()
	name.Placeholder = "Item name"
	name.CharLimit = 128
	name.Width = 32

	amount := textinput.New()
	amount.Placeholder = "Amount"
	amount.CharLimit = 9
	amount.Width = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		ctrl:        ctrl,
		orders:      orders,
		bridge:      br,
		cfg:         cfg,
		log:         log,
		view:        viewList,
		nameInput:   name,
		amountInput: amount,
		spinner:     sp,
		status:      "Press 'a' to add, space to select, 'c' to checkout.",
		statusTTL:   statusTTL,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == viewOrders {
			return m.updateOrders(msg.String())
		}
		if m.ctrl.DialogOpen() {
			return m.updateDialog(msg.String(), msg)
		}
		return m.updateList(msg.String())
	case imageResolvedMsg:
		return m.finishAdd(msg)
	case ordersLoadedMsg:
		m.orderList, m.ordersErr = msg.records, msg.err
		return m, nil
	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case statusClearMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
	case tea.WindowSizeMsg:
		m.nameInput.Width = max(msg.Width-20, 10)
	}
	return m, nil
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	rows := m.rows()
	k := m.cfg.Keys
	switch key {
	case k.Quit:
		return m, tea.Quit
	case k.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case k.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case k.Add:
		m.ctrl.OpenDialog()
		m.focus = fieldName
		m.nameInput.SetValue(m.ctrl.NameInput())
		m.amountInput.SetValue(m.ctrl.AmountInput())
		m.amountInput.Blur()
		return m, m.nameInput.Focus()
	case k.Toggle:
		if len(rows) == 0 {
			return m, nil
		}
		it := rows[clampCursor(m.cursor, len(rows))]
		m.ctrl.ToggleSelect(it, !m.ctrl.IsSelected(it))
	case k.Delete:
		if !m.ctrl.DeleteVisible() {
			return m, nil
		}
		n := len(m.ctrl.Selected())
		if err := m.ctrl.DeleteSelected(m.ctx); err == nil {
			m.cursor = clampCursor(m.cursor, len(m.rows()))
			return m, m.setStatus(pluralize(n, "item") + " deleted")
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		return m, m.flush()
	case k.Checkout:
		_ = m.ctrl.Checkout(m.ctx)
		return m.afterCommand()
	case k.Orders:
		return m.openOrders()
	}
	return m, nil
}

func (m Model) updateDialog(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case k.Cancel, "esc":
		m.ctrl.CancelDialog()
		m.resetInputs()
		return m, m.setStatus("Cancelled")
	case k.Next, "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		if m.focus == fieldName {
			m.amountInput.Blur()
			return m, m.nameInput.Focus()
		}
		m.nameInput.Blur()
		return m, m.amountInput.Focus()
	case k.Confirm, "enter":
		m.ctrl.SetName(m.nameInput.Value())
		m.ctrl.SetAmount(m.amountInput.Value())
		req, err := m.ctrl.BeginAdd()
		if errors.Is(err, screen.ErrAddPending) {
			return m, nil
		}
		if err != nil {
			return m, m.flush()
		}
		return m, tea.Batch(m.spinner.Tick, m.resolveImage(req))
	default:
		var cmd tea.Cmd
		if m.focus == fieldName {
			m.nameInput, cmd = m.nameInput.Update(msg)
		} else {
			m.amountInput, cmd = m.amountInput.Update(msg)
		}
		return m, cmd
	}
}

func (m Model) updateOrders(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case k.Quit:
		return m, tea.Quit
	case k.Back, k.Cancel, "esc", "backspace":
		m.view = viewList
		m.cursor = clampCursor(m.cursor, len(m.rows()))
	}
	return m, nil
}

// resolveImage runs the lookup off the update loop.
func (m Model) resolveImage(req screen.AddRequest) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	timeout := m.cfg.ImageSearch.Timeout()
	return func() tea.Msg {
		lookupCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			lookupCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return imageResolvedMsg{req: req, url: ctrl.ResolveImage(lookupCtx, req)}
	}
}

func (m Model) finishAdd(msg imageResolvedMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.FinishAdd(m.ctx, msg.req, msg.url) {
		return m, nil
	}
	m.resetInputs()
	rows := m.rows()
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Name == msg.req.Name && rows[i].Amount == msg.req.Amount {
			m.cursor = i
			break
		}
	}
	if notes, _ := m.bridge.drain(); len(notes) > 0 {
		return m, m.setStatus(strings.Join(notes, " • "))
	}
	return m, m.setStatus("Added " + msg.req.Name)
}

// afterCommand turns controller notifications and navigation into model
// state.
func (m Model) afterCommand() (tea.Model, tea.Cmd) {
	notes, route := m.bridge.drain()
	var cmds []tea.Cmd
	if len(notes) > 0 {
		cmds = append(cmds, m.setStatus(strings.Join(notes, " • ")))
	}
	if route == screen.RouteOrders {
		var next tea.Model
		var cmd tea.Cmd
		next, cmd = m.openOrders()
		m = next.(Model)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) openOrders() (tea.Model, tea.Cmd) {
	m.view = viewOrders
	m.orderList, m.ordersErr = nil, nil
	orders, ctx := m.orders, m.ctx
	return m, func() tea.Msg {
		records, err := orders.LoadOrders(ctx)
		return ordersLoadedMsg{records: records, err: err}
	}
}

func (m *Model) flush() tea.Cmd {
	notes, _ := m.bridge.drain()
	if len(notes) == 0 {
		return nil
	}
	return m.setStatus(strings.Join(notes, " • "))
}

// setStatus shows text and schedules it to clear unless replaced first.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusID++
	m.status = text
	id := m.statusID
	return tea.Tick(m.statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

func (m *Model) resetInputs() {
	m.nameInput.SetValue("")
	m.amountInput.SetValue("")
	m.nameInput.Blur()
	m.amountInput.Blur()
	m.focus = fieldName
}

// rows flattens the day groups in display order.
func (m Model) rows() []shopping.Item {
	var rows []shopping.Item
	for _, g := range m.ctrl.Groups() {
		rows = append(rows, g.Items...)
	}
	return rows
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
