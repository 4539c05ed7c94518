package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"shopsmart/internal/shopping"
)

// reporter prints controller notifications and remembers where it was told
// to navigate.
type reporter struct {
	out   io.Writer
	route string
}

func newReporter(out io.Writer) *reporter {
	return &reporter{out: out}
}

func (r *reporter) Notify(msg string) {
	fmt.Fprintln(r.out, msg)
}

func (r *reporter) Navigate(route string) {
	r.route = route
}

func printGroups(w io.Writer, groups []shopping.DayGroup, total int, currency string) {
	if len(groups) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(w, "Your shopping list is empty.")
		return
	}
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	for _, g := range groups {
		_, _ = title.Fprintln(w, g.Label)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 60
		for _, it := range g.Items {
			image := ""
			if it.HasImage() {
				image = faint.Sprint(it.ImageURL)
			}
			tbl.AddRow("  "+it.Name, fmt.Sprintf("%s%d", currency, it.Amount), image)
		}
		_, _ = fmt.Fprintln(w, tbl)
		_, _ = fmt.Fprintln(w)
	}
	_, _ = bold.Fprintf(w, "Total: %s%d\n", currency, total)
}

func printOrders(w io.Writer, records []shopping.OrderRecord, currency string) {
	title := color.New(color.Bold, color.Underline)
	_, _ = title.Fprintln(w, "My Orders")
	if len(records) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(w, " none")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Item"), bold.Sprint("Amount"))
	sum := 0
	for _, o := range records {
		tbl.AddRow(o.Name, fmt.Sprintf("%s%d", currency, o.Amount))
		sum += o.Amount
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = bold.Fprintf(w, "Total: %s%d\n", currency, sum)
}
