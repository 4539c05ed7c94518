package shopping

import "time"

// DayGroup is one header plus the items added on that calendar day.
type DayGroup struct {
	Label string
	Day   time.Time
	Items []Item
}

// GroupByDay partitions items by the calendar day of DateAdded in loc. Groups
// follow first-occurrence order and items keep their list order.
func GroupByDay(items []Item, loc *time.Location, layout string) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	if layout == "" {
		layout = DefaultDayLayout
	}
	type dayKey struct {
		year  int
		month time.Month
		day   int
	}
	index := make(map[dayKey]int)
	var groups []DayGroup
	for _, it := range items {
		t := it.Added().In(loc)
		y, m, d := t.Date()
		k := dayKey{y, m, d}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, DayGroup{
				Label: t.Format(layout),
				Day:   time.Date(y, m, d, 0, 0, 0, 0, loc),
			})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
