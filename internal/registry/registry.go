package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults carried over from the first release of the registry.
const (
	DefaultBabyName    = "¡Nuestra Bendición!"
	DefaultDescription = "Un regalo lleno de amor para el bebé."
	DefaultCategory    = "General"
)

// Gift is a single entry in the registry.
type Gift struct {
	ID          string `json:"id" toml:"id"`
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description"`
	Category    string `json:"category" toml:"category"`
	IsClaimed   bool   `json:"isClaimed" toml:"isClaimed"`
	ClaimedBy   string `json:"claimedBy,omitempty" toml:"claimedBy,omitempty"`
}

// Settings holds event metadata shown in headers and outgoing messages.
type Settings struct {
	BabyName  string `json:"babyName" toml:"babyName"`
	HostPhone string `json:"hostPhone" toml:"hostPhone"`
}

// Snapshot is the complete registry state at one point in time. It is the unit
// encoded into share links and written to storage.
type Snapshot struct {
	Gifts    []Gift   `json:"gifts" toml:"gifts"`
	Settings Settings `json:"settings" toml:"settings"`
}

// DefaultSettings returns the settings used when nothing else is known.
func DefaultSettings() Settings {
	return Settings{BabyName: DefaultBabyName}
}

// Empty returns a snapshot with no gifts and default settings.
func Empty() Snapshot {
	return Snapshot{Gifts: []Gift{}, Settings: DefaultSettings()}
}

// Clone returns a deep copy so callers can hand snapshots across goroutines.
func (s Snapshot) Clone() Snapshot {
	dup := Snapshot{Settings: s.Settings, Gifts: make([]Gift, len(s.Gifts))}
	copy(dup.Gifts, s.Gifts)
	return dup
}

// Find returns the gift with the given id.
func (s Snapshot) Find(id string) (Gift, bool) {
	for _, g := range s.Gifts {
		if g.ID == id {
			return g, true
		}
	}
	return Gift{}, false
}

// Claimed returns the claimed gifts in display order.
func (s Snapshot) Claimed() []Gift {
	var out []Gift
	for _, g := range s.Gifts {
		if g.IsClaimed {
			out = append(out, g)
		}
	}
	return out
}

// Names returns the gift names in display order, one per line as the
// organizer edits them.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Gifts))
	for _, g := range s.Gifts {
		names = append(names, g.Name)
	}
	return names
}

// Validation failures reported by Validate.
var (
	ErrMissingID      = errors.New("gift id is empty")
	ErrDuplicateID    = errors.New("duplicate gift id")
	ErrClaimInvariant = errors.New("claimedBy must be set exactly when the gift is claimed")
)

// Validate checks the structural invariants of a snapshot: ids are present and
// unique, and ClaimedBy is set exactly when IsClaimed is true.
func (s Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(s.Gifts))
	for i, g := range s.Gifts {
		if strings.TrimSpace(g.ID) == "" {
			return fmt.Errorf("gift %d: %w", i, ErrMissingID)
		}
		if _, dup := seen[g.ID]; dup {
			return fmt.Errorf("gift %q: %w", g.ID, ErrDuplicateID)
		}
		seen[g.ID] = struct{}{}
		if g.IsClaimed != (g.ClaimedBy != "") {
			return fmt.Errorf("gift %q: %w", g.ID, ErrClaimInvariant)
		}
	}
	return nil
}
