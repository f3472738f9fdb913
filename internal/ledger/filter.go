package ledger

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const monthLayout = "2006-01"

// Filter narrows a record listing. Zero values disable the predicate; all
// set predicates must hold.
type Filter struct {
	VehicleID *int64
	// Month matches case-insensitively anywhere in the record month.
	Month string
	// ExactMonth matches the record month verbatim.
	ExactMonth string
	// StartMonth and EndMonth bound the month lexicographically, inclusive.
	StartMonth string
	EndMonth   string
	// Newest orders by id descending instead of ascending.
	Newest bool
}

// ParseFilter builds a Filter from raw query values. Malformed values are
// logged and dropped rather than rejected.
func ParseFilter(vehicleID, month, startMonth, endMonth string) Filter {
	var f Filter

	if v := strings.TrimSpace(vehicleID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			slog.Warn("ignoring malformed vehicle_id filter", "vehicle_id", v)
		} else {
			f.VehicleID = &id
		}
	}

	f.Month = strings.TrimSpace(month)
	f.StartMonth = parseMonthBound("start_month", startMonth)
	f.EndMonth = parseMonthBound("end_month", endMonth)

	return f
}

func parseMonthBound(name, raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}

	if !ValidMonth(v) {
		slog.Warn("ignoring malformed month bound", "param", name, "value", v)
		return ""
	}

	return v
}

// ValidMonth reports whether s is a YYYY-MM month.
func ValidMonth(s string) bool {
	if len(s) != len(monthLayout) {
		return false
	}

	_, err := time.Parse(monthLayout, s)

	return err == nil
}
