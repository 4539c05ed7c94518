package ui

// bridge collects what the controller reports during one Update so the model
// can turn it into status text and screen switches.
type bridge struct {
	notes []string
	route string
}

func (b *bridge) Notify(msg string) {
	b.notes = append(b.notes, msg)
}

func (b *bridge) Navigate(route string) {
	b.route = route
}

func (b *bridge) drain() (notes []string, route string) {
	notes, route = b.notes, b.route
	b.notes, b.route = nil, ""
	return notes, route
}
