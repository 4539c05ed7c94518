package shopping

import (
	"testing"
	"time"
)

func at(day, hour int) int64 {
	return time.Date(2026, time.October, day, hour, 30, 0, 0, time.UTC).UnixMilli()
}

func TestGroupByDayPartitionsList(t *testing.T) {
	items := []Item{
		{Name: "Milk", Amount: 1, DateAdded: at(15, 9)},
		{Name: "Eggs", Amount: 2, DateAdded: at(16, 8)},
		{Name: "Tea", Amount: 3, DateAdded: at(15, 22)},
		{Name: "Rice", Amount: 4, DateAdded: at(16, 8)},
		{Name: "Salt", Amount: 5, DateAdded: at(14, 1)},
	}
	groups := GroupByDay(items, time.UTC, "")
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	wantOrder := []string{"Thursday, 15 October 2026", "Friday, 16 October 2026", "Wednesday, 14 October 2026"}
	for i, g := range groups {
		if g.Label != wantOrder[i] {
			t.Fatalf("group %d label = %q, want %q", i, g.Label, wantOrder[i])
		}
	}
	if groups[0].Items[0].Name != "Milk" || groups[0].Items[1].Name != "Tea" {
		t.Fatalf("item order within group not preserved: %#v", groups[0].Items)
	}

	seen := 0
	counts := map[Item]int{}
	for _, g := range groups {
		for _, it := range g.Items {
			counts[it]++
			seen++
		}
	}
	if seen != len(items) {
		t.Fatalf("expected %d grouped items, got %d", len(items), seen)
	}
	for _, it := range items {
		if counts[it] != 1 {
			t.Fatalf("item %q grouped %d times", it.Name, counts[it])
		}
	}
}

func TestGroupByDayUsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 15th is already the 16th in IST.
	items := []Item{
		{Name: "a", DateAdded: time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC).UnixMilli()},
		{Name: "b", DateAdded: time.Date(2026, 10, 16, 3, 0, 0, 0, time.UTC).UnixMilli()},
	}
	if got := len(GroupByDay(items, time.UTC, "")); got != 2 {
		t.Fatalf("UTC: expected 2 groups, got %d", got)
	}
	groups := GroupByDay(items, loc, "2006-01-02")
	if len(groups) != 1 || groups[0].Label != "2026-10-16" {
		t.Fatalf("IST: expected a single 2026-10-16 group, got %#v", groups)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil, time.UTC, ""); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
