package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shopsmart/internal/config"
	"shopsmart/internal/shopping"
)

func (m Model) View() string {
	if m.view == viewOrders {
		return m.renderOrders()
	}

	var b strings.Builder
	header := titleStyle.Render("ShopSmart")
	if m.ctrl.DeleteVisible() {
		header += "  " + deleteStyle.Render(fmt.Sprintf("[%s] delete %d selected", keyLabel(m.cfg.Keys.Delete), len(m.ctrl.Selected())))
	}
	b.WriteString(header)
	b.WriteString("\n")

	if len(m.ctrl.Items()) == 0 {
		b.WriteString(emptyStyle.Render("Your shopping list is empty."))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Add items with '%s'.", keyLabel(m.cfg.Keys.Add))))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderGroups())
		b.WriteString(totalStyle.Render(fmt.Sprintf("Total: %s", m.money(m.ctrl.Total()))))
		b.WriteString("\n")
		b.WriteString(checkoutStyle.Render(fmt.Sprintf("[%s] Checkout", keyLabel(m.cfg.Keys.Checkout))))
		b.WriteString("\n")
	}

	if m.ctrl.DialogOpen() {
		b.WriteString(m.renderDialog())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderGroups() string {
	var b strings.Builder
	row := 0
	for _, g := range m.ctrl.Groups() {
		b.WriteString(dayStyle.Render(g.Label))
		b.WriteString("\n")
		for _, it := range g.Items {
			cursor := " "
			if row == m.cursor && !m.ctrl.DialogOpen() {
				cursor = cursorStyle.Render(">")
			}
			check := "[ ]"
			if m.ctrl.IsSelected(it) {
				check = deleteStyle.Render("[x]")
			}
			line := fmt.Sprintf("%s %s %s  %s", cursor, check, nameStyle.Render(it.Name), mutedStyle.Render(m.money(it.Amount)))
			if it.HasImage() {
				line += "  " + mutedStyle.Render("▣ "+truncate(it.ImageURL, 40))
			}
			b.WriteString(line)
			b.WriteString("\n")
			row++
		}
	}
	return b.String()
}

func (m Model) renderDialog() string {
	var b strings.Builder
	b.WriteString(dialogTitle.Render("Add New Item"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Item Name"))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Amount"))
	b.WriteString("\n")
	b.WriteString(m.amountInput.View())
	b.WriteString("\n\n")
	if m.ctrl.Loading() {
		b.WriteString(m.spinner.View() + " looking up an image...")
		b.WriteString("\n")
	}
	k := m.cfg.Keys
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s add • %s switch field • %s cancel", k.Confirm, k.Next, k.Cancel)))
	return dialogStyle.Render(b.String())
}

func (m Model) renderOrders() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Orders"))
	b.WriteString("\n\n")
	switch {
	case m.ordersErr != nil:
		b.WriteString(deleteStyle.Render(fmt.Sprintf("could not load orders: %v", m.ordersErr)))
		b.WriteString("\n")
	case len(m.orderList) == 0:
		b.WriteString(mutedStyle.Render("No orders yet."))
		b.WriteString("\n")
	default:
		width := 0
		for _, o := range m.orderList {
			width = max(width, lipgloss.Width(o.Name))
		}
		for _, o := range m.orderList {
			pad := strings.Repeat(" ", width-lipgloss.Width(o.Name))
			b.WriteString(fmt.Sprintf("  %s%s  %s\n", nameStyle.Render(o.Name), pad, m.money(o.Amount)))
		}
		b.WriteString(totalStyle.Render(fmt.Sprintf("Total: %s", m.money(ordersTotal(m.orderList)))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	k := m.cfg.Keys
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s back • %s quit", k.Back, k.Quit)))
	return b.String()
}

func (m Model) money(v int) string {
	return fmt.Sprintf("%s%d", m.cfg.Currency, v)
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s select • %s delete • %s checkout • %s orders • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Delete, k.Checkout, k.Orders, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func ordersTotal(records []shopping.OrderRecord) int {
	sum := 0
	for _, o := range records {
		sum += o.Amount
	}
	return sum
}
