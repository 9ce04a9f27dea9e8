package registry

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func TestEmpty_UsesDefaults(t *testing.T) {
	s := Empty()
	if len(s.Gifts) != 0 || s.Gifts == nil {
		t.Fatalf("Gifts = %#v, want empty non-nil slice", s.Gifts)
	}
	if s.Settings.BabyName != DefaultBabyName {
		t.Fatalf("BabyName = %q, want %q", s.Settings.BabyName, DefaultBabyName)
	}
	if s.Settings.HostPhone != "" {
		t.Fatalf("HostPhone = %q, want empty", s.Settings.HostPhone)
	}
}

func TestClaim_SetsGuestAndLeavesOriginalUntouched(t *testing.T) {
	s := Empty().ReplaceList([]string{"Cuna"}, seqIDs("g"))
	claimed := s.Claim("g-1", "  Ana ")

	g, ok := claimed.Find("g-1")
	if !ok {
		t.Fatalf("gift g-1 missing after claim")
	}
	if !g.IsClaimed || g.ClaimedBy != "Ana" {
		t.Fatalf("gift = %#v, want claimed by Ana", g)
	}
	if s.Gifts[0].IsClaimed {
		t.Fatalf("Claim mutated the receiver")
	}
}

func TestClaim_SecondClaimOverwrites(t *testing.T) {
	s := Empty().ReplaceList([]string{"Cuna"}, seqIDs("g"))
	s = s.Claim("g-1", "Ana").Claim("g-1", "Luis")
	if g, _ := s.Find("g-1"); g.ClaimedBy != "Luis" {
		t.Fatalf("ClaimedBy = %q, want Luis", g.ClaimedBy)
	}
}

func TestClaim_UnknownIDAndBlankGuestAreNoOps(t *testing.T) {
	s := Empty().ReplaceList([]string{"Cuna"}, seqIDs("g"))
	if got := s.Claim("missing", "Ana"); !reflect.DeepEqual(got, s) {
		t.Fatalf("Claim(unknown) = %#v, want %#v", got, s)
	}
	if got := s.Claim("g-1", "   "); !reflect.DeepEqual(got, s) {
		t.Fatalf("Claim(blank guest) = %#v, want %#v", got, s)
	}
}

func TestRelease_Idempotent(t *testing.T) {
	s := Empty().ReplaceList([]string{"Cuna", "Coche"}, seqIDs("g"))
	once := s.Claim("g-1", "Ana").Release("g-1")
	twice := s.Claim("g-1", "Ana").Release("g-1").Release("g-1")

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("release twice = %#v, want %#v", twice, once)
	}
	g, _ := twice.Find("g-1")
	if g.IsClaimed || g.ClaimedBy != "" {
		t.Fatalf("gift = %#v, want unclaimed with no guest", g)
	}
	if err := twice.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestReplaceList_PreservesIdentityOfMatchedNames(t *testing.T) {
	s := Snapshot{
		Gifts: []Gift{{
			ID:          "g1",
			Name:        "Crib",
			Description: "White wood",
			Category:    DefaultCategory,
			IsClaimed:   true,
			ClaimedBy:   "Ana",
		}},
		Settings: DefaultSettings(),
	}

	got := s.ReplaceList([]string{"  crib ", "Stroller"}, seqIDs("new"))
	if len(got.Gifts) != 2 {
		t.Fatalf("len(Gifts) = %d, want 2", len(got.Gifts))
	}
	crib := got.Gifts[0]
	if crib.ID != "g1" || !crib.IsClaimed || crib.ClaimedBy != "Ana" || crib.Description != "White wood" {
		t.Fatalf("crib = %#v, want identity and claim preserved", crib)
	}
	if crib.Name != "crib" {
		t.Fatalf("crib name = %q, want trimmed line %q", crib.Name, "crib")
	}
	stroller := got.Gifts[1]
	if stroller.ID != "new-1" || stroller.IsClaimed || stroller.ClaimedBy != "" {
		t.Fatalf("stroller = %#v, want new unclaimed gift", stroller)
	}
	if stroller.Description != DefaultDescription || stroller.Category != DefaultCategory {
		t.Fatalf("stroller defaults = %q/%q", stroller.Description, stroller.Category)
	}

	dropped := s.ReplaceList([]string{"Stroller"}, seqIDs("new"))
	if len(dropped.Gifts) != 1 || dropped.Gifts[0].Name != "Stroller" {
		t.Fatalf("gifts = %#v, want only Stroller", dropped.Gifts)
	}
	if len(dropped.Claimed()) != 0 {
		t.Fatalf("claims = %#v, want none after dropping Crib", dropped.Claimed())
	}
}

func TestReplaceList_MatchedGiftKeepsCategory(t *testing.T) {
	s := Snapshot{
		Gifts: []Gift{
			{ID: "g1", Name: "Crib", Description: DefaultDescription, Category: "Muebles"},
			{ID: "g2", Name: "Bottle", Description: DefaultDescription},
		},
		Settings: DefaultSettings(),
	}

	got := s.ReplaceList([]string{"crib", "bottle"}, seqIDs("new"))
	if got.Gifts[0].Category != "Muebles" {
		t.Fatalf("crib category = %q, want %q", got.Gifts[0].Category, "Muebles")
	}
	if got.Gifts[1].Category != DefaultCategory {
		t.Fatalf("bottle category = %q, want %q", got.Gifts[1].Category, DefaultCategory)
	}
}

func TestReplaceList_BlankLinesAndOrder(t *testing.T) {
	got := Empty().ReplaceList([]string{"", "Bañera", "   ", "Pañales"}, seqIDs("g"))
	want := []string{"Bañera", "Pañales"}
	if !reflect.DeepEqual(got.Names(), want) {
		t.Fatalf("names = %v, want %v", got.Names(), want)
	}
}

func TestReplaceList_UnicodeCaseFolding(t *testing.T) {
	// "Pañales" with a precomposed ñ versus n + combining tilde.
	s := Snapshot{Gifts: []Gift{{ID: "g1", Name: "Pañales", IsClaimed: true, ClaimedBy: "María"}}}
	got := s.ReplaceList([]string{"PAN\u0303ALES"}, seqIDs("new"))
	if got.Gifts[0].ID != "g1" {
		t.Fatalf("id = %q, want g1 to survive case and normalization differences", got.Gifts[0].ID)
	}
}

func TestReplaceList_DuplicateLinesKeepIDsUnique(t *testing.T) {
	s := Snapshot{Gifts: []Gift{{ID: "g1", Name: "Cuna"}}}
	got := s.ReplaceList([]string{"Cuna", "cuna"}, seqIDs("new"))
	if got.Gifts[0].ID != "g1" || got.Gifts[1].ID != "new-1" {
		t.Fatalf("ids = %q, %q, want g1, new-1", got.Gifts[0].ID, got.Gifts[1].ID)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestReplaceList_DefaultIDGenerator(t *testing.T) {
	got := Empty().ReplaceList([]string{"a", "b"}, nil)
	if got.Gifts[0].ID == got.Gifts[1].ID {
		t.Fatalf("generated ids collide: %q", got.Gifts[0].ID)
	}
}

func TestUpdateSettings_ShallowMerge(t *testing.T) {
	phone := "573001234567"
	s := Empty().UpdateSettings(SettingsPatch{HostPhone: &phone})
	if s.Settings.HostPhone != phone || s.Settings.BabyName != DefaultBabyName {
		t.Fatalf("settings = %#v", s.Settings)
	}
	name := "Martina"
	s = s.UpdateSettings(SettingsPatch{BabyName: &name})
	if s.Settings.HostPhone != phone || s.Settings.BabyName != name {
		t.Fatalf("settings = %#v", s.Settings)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("Pañales\r\n\r\n  \nBañera 🛁\n")
	want := []string{"Pañales", "Bañera 🛁"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLines = %q, want %q", got, want)
	}
}

func TestValidateLines(t *testing.T) {
	if err := ValidateLines([]string{" ", ""}); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("ValidateLines(blank) = %v, want ErrEmptyList", err)
	}
	if err := ValidateLines(nil); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("ValidateLines(nil) = %v, want ErrEmptyList", err)
	}
	if err := ValidateLines([]string{"Cuna"}); err != nil {
		t.Fatalf("ValidateLines = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
		want error
	}{
		{"empty", Empty(), nil},
		{"missing id", Snapshot{Gifts: []Gift{{Name: "x"}}}, ErrMissingID},
		{"duplicate id", Snapshot{Gifts: []Gift{{ID: "a"}, {ID: "a"}}}, ErrDuplicateID},
		{"claimed without guest", Snapshot{Gifts: []Gift{{ID: "a", IsClaimed: true}}}, ErrClaimInvariant},
		{"guest without claim", Snapshot{Gifts: []Gift{{ID: "a", ClaimedBy: "Ana"}}}, ErrClaimInvariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVisible_FilterAndSearch(t *testing.T) {
	s := Empty().ReplaceList([]string{"Pañales", "Bañera", "Pañalera"}, seqIDs("g")).Claim("g-2", "Ana")

	tests := []struct {
		name   string
		filter Filter
		search string
		want   []string
	}{
		{"all", FilterAll, "", []string{"Pañales", "Bañera", "Pañalera"}},
		{"available", FilterAvailable, "", []string{"Pañales", "Pañalera"}},
		{"claimed", FilterClaimed, "", []string{"Bañera"}},
		{"search", FilterAll, "PAÑAL", []string{"Pañales", "Pañalera"}},
		{"search claimed", FilterClaimed, "pañal", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, g := range s.Visible(tt.filter, tt.search) {
				got = append(got, g.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_NextCycles(t *testing.T) {
	f := FilterAll
	seen := []string{}
	for i := 0; i < 4; i++ {
		seen = append(seen, f.Label())
		f = f.Next()
	}
	want := []string{"Todos", "Libres", "Elegidos", "Todos"}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("labels = %v, want %v", seen, want)
	}
}

func TestParseFilter(t *testing.T) {
	for _, f := range []Filter{FilterAll, FilterAvailable, FilterClaimed} {
		if got := ParseFilter(f.String()); got != f {
			t.Fatalf("ParseFilter(%q) = %v, want %v", f.String(), got, f)
		}
	}
	if got := ParseFilter(" Claimed "); got != FilterClaimed {
		t.Fatalf("ParseFilter(\" Claimed \") = %v, want FilterClaimed", got)
	}
	if got := ParseFilter("bogus"); got != FilterAll {
		t.Fatalf("ParseFilter(bogus) = %v, want FilterAll", got)
	}
}
