package registry

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyList is returned when the organizer tries to save a list with no gifts.
var ErrEmptyList = errors.New("gift list is empty")

// SettingsPatch carries the settings fields to overwrite; nil fields are kept.
type SettingsPatch struct {
	BabyName  *string
	HostPhone *string
}

// NewID returns a fresh gift identifier.
func NewID() string {
	return "gift-" + uuid.NewString()
}

// Claim marks the gift as reserved by guest. A second claim replaces the
// previous guest; unknown ids and blank names leave the snapshot unchanged.
func (s Snapshot) Claim(id, guest string) Snapshot {
	guest = strings.TrimSpace(guest)
	if guest == "" {
		return s.Clone()
	}
	return s.mapGift(id, func(g Gift) Gift {
		g.IsClaimed = true
		g.ClaimedBy = guest
		return g
	})
}

// Release clears any claim on the gift.
func (s Snapshot) Release(id string) Snapshot {
	return s.mapGift(id, func(g Gift) Gift {
		g.IsClaimed = false
		g.ClaimedBy = ""
		return g
	})
}

func (s Snapshot) mapGift(id string, fn func(Gift) Gift) Snapshot {
	out := s.Clone()
	for i := range out.Gifts {
		if out.Gifts[i].ID == id {
			out.Gifts[i] = fn(out.Gifts[i])
		}
	}
	return out
}

// ReplaceList rebuilds the gift list from organizer lines. Lines matching an
// existing gift name (trimmed, case-insensitive) keep that gift's identity and
// claim; other lines become new unclaimed gifts; gifts not named are dropped.
// A nil newID uses NewID.
func (s Snapshot) ReplaceList(lines []string, newID func() string) Snapshot {
	if newID == nil {
		newID = NewID
	}

	existing := make(map[string]int, len(s.Gifts))
	for i, g := range s.Gifts {
		key := matchKey(g.Name)
		if _, ok := existing[key]; !ok {
			existing[key] = i
		}
	}

	used := make(map[int]bool, len(s.Gifts))
	gifts := make([]Gift, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if idx, ok := existing[matchKey(name)]; ok && !used[idx] {
			used[idx] = true
			g := s.Gifts[idx]
			g.Name = name
			if g.Description == "" {
				g.Description = DefaultDescription
			}
			if g.Category == "" {
				g.Category = DefaultCategory
			}
			gifts = append(gifts, g)
			continue
		}
		gifts = append(gifts, Gift{
			ID:          newID(),
			Name:        name,
			Description: DefaultDescription,
			Category:    DefaultCategory,
		})
	}

	return Snapshot{Gifts: gifts, Settings: s.Settings}
}

// UpdateSettings merges the non-nil patch fields into the settings.
func (s Snapshot) UpdateSettings(p SettingsPatch) Snapshot {
	out := s.Clone()
	if p.BabyName != nil {
		out.Settings.BabyName = *p.BabyName
	}
	if p.HostPhone != nil {
		out.Settings.HostPhone = *p.HostPhone
	}
	return out
}

// SplitLines turns the organizer's free text into non-blank lines.
func SplitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ValidateLines rejects a save that would leave the registry without gifts.
func ValidateLines(lines []string) error {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return nil
		}
	}
	return ErrEmptyList
}

// matchKey normalizes a name for identity matching. Composed and decomposed
// accents compare equal, as do case variants such as "PAÑALES" and "pañales".
func matchKey(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}
