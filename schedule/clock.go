package schedule

import (
	"time"
)

const dateLayout = "2006-01-02"

func slotTime(date, slot string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout+" 15:04", date+" "+slot, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsSlotPast reports whether the slot has already passed today. Dates other
// than today are never considered past: the booking form does not offer
// earlier dates, so only today's slots need clock filtering. The comparison
// uses now's location for both the "today" check and the slot time.
func IsSlotPast(date, slot string, now time.Time) bool {
	if date == "" || slot == "" {
		return false
	}
	if now.Format(dateLayout) != date {
		return false
	}
	at, ok := slotTime(date, slot, now.Location())
	if !ok {
		return false
	}
	return now.After(at)
}

// IsAppointmentOver reports whether date+slot is strictly before now. Unlike
// IsSlotPast this checks the full datetime regardless of the date, so a
// backdated appointment counts as over. Malformed input is never over.
func IsAppointmentOver(date, slot string, now time.Time) bool {
	if date == "" || slot == "" {
		return false
	}
	at, ok := slotTime(date, slot, now.Location())
	if !ok {
		return false
	}
	return now.After(at)
}
