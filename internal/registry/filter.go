package registry

import "strings"

// Filter selects which gifts the guest view lists.
type Filter int

const (
	FilterAll Filter = iota
	FilterAvailable
	FilterClaimed
)

// Next cycles All -> Available -> Claimed -> All.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterAvailable
	case FilterAvailable:
		return FilterClaimed
	default:
		return FilterAll
	}
}

// String returns the stable name used in preferences.
func (f Filter) String() string {
	switch f {
	case FilterAvailable:
		return "available"
	case FilterClaimed:
		return "claimed"
	default:
		return "all"
	}
}

// ParseFilter maps a preference value back to a Filter. Unknown values give
// FilterAll.
func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return FilterAvailable
	case "claimed":
		return FilterClaimed
	default:
		return FilterAll
	}
}

// Label returns the guest-facing name of the filter.
func (f Filter) Label() string {
	switch f {
	case FilterAvailable:
		return "Libres"
	case FilterClaimed:
		return "Elegidos"
	default:
		return "Todos"
	}
}

// Visible returns the gifts matching the filter whose name contains search
// (case-insensitive). An empty search matches everything.
func (s Snapshot) Visible(filter Filter, search string) []Gift {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]Gift, 0, len(s.Gifts))
	for _, g := range s.Gifts {
		if needle != "" && !strings.Contains(strings.ToLower(g.Name), needle) {
			continue
		}
		switch filter {
		case FilterAvailable:
			if g.IsClaimed {
				continue
			}
		case FilterClaimed:
			if !g.IsClaimed {
				continue
			}
		}
		out = append(out, g)
	}
	return out
}
