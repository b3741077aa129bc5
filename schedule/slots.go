package schedule

import (
	"os"
	"strings"
	"sync"
	"time"
)

// defaultSlots is the clinic's fixed catalog of bookable hours. The midday
// window is deliberately excluded. The catalog is the same for every doctor
// and every date.
var defaultSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// The catalog is read on first use, not at package init, so a TIME_SLOTS
// value supplied via .env is in the environment by the time it is consulted.
var (
	slotsOnce sync.Once
	slots     []string
)

func catalog() []string {
	slotsOnce.Do(func() {
		slots = loadSlots()
	})
	return slots
}

func loadSlots() []string {
	raw := os.Getenv("TIME_SLOTS")
	if raw == "" {
		return defaultSlots
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultSlots
	}
	return out
}

// Slots returns the ordered slot catalog.
func Slots() []string {
	current := catalog()
	out := make([]string, len(current))
	copy(out, current)
	return out
}

// ValidSlot reports whether t is one of the catalog slots.
func ValidSlot(t string) bool {
	for _, s := range catalog() {
		if s == t {
			return true
		}
	}
	return false
}

// AvailableSlots returns the catalog minus the booked times minus the slots
// that have already passed today, preserving catalog order.
func AvailableSlots(booked []string, date string, now time.Time) []string {
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}
	current := catalog()
	out := make([]string, 0, len(current))
	for _, s := range current {
		if taken[s] || IsSlotPast(date, s, now) {
			continue
		}
		out = append(out, s)
	}
	return out
}
