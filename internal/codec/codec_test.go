package codec

import (
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/babyregalo/internal/registry"
)

func sampleSnapshot() registry.Snapshot {
	return registry.Snapshot{
		Gifts: []registry.Gift{
			{ID: "g1", Name: "Pañales Etapa 1", Description: registry.DefaultDescription, Category: registry.DefaultCategory, IsClaimed: true, ClaimedBy: "María José"},
			{ID: "g2", Name: "Bañera 🛁", Description: "", Category: registry.DefaultCategory},
			{ID: "g3", Name: "Café para papá 👨‍👩‍👧", Description: "Con cariño", Category: "General"},
		},
		Settings: registry.Settings{BabyName: "Martina 🍼", HostPhone: "573001234567"},
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		snap registry.Snapshot
	}{
		{"empty registry", registry.Empty()},
		{"empty phone", registry.Snapshot{Gifts: []registry.Gift{{ID: "a", Name: "Cuna"}}, Settings: registry.Settings{BabyName: "Leo"}}},
		{"unicode and emoji", sampleSnapshot()},
		{"empty settings", registry.Snapshot{Gifts: []registry.Gift{}, Settings: registry.Settings{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Encode(tt.snap)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(token)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, tt.snap) {
				t.Fatalf("round trip = %#v, want %#v", got, tt.snap)
			}
		})
	}
}

func TestEncode_IsURLSafe(t *testing.T) {
	token, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.ContainsAny(token, "+/ ?&#") {
		t.Fatalf("token %q contains characters that need escaping in a query", token)
	}
}

func TestEncode_NilGiftsBecomeEmptyList(t *testing.T) {
	token, err := Encode(registry.Snapshot{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw, _ := base64.URLEncoding.DecodeString(token)
	if !strings.Contains(string(raw), `"gifts":[]`) {
		t.Fatalf("payload = %s, want gifts as empty array", raw)
	}
}

func TestDecode_AcceptsStandardAlphabetTokens(t *testing.T) {
	// The first web release used btoa, which emits the standard alphabet.
	payload := `{"gifts":[{"id":"gift-1","name":"¿Qué? ÿÿÿ","description":"d","category":"General","isClaimed":false}],"settings":{"babyName":"Bebé","hostPhone":""}}`
	std := base64.StdEncoding.EncodeToString([]byte(payload))
	if !strings.ContainsAny(std, "+/") {
		t.Fatalf("fixture %q should exercise the standard alphabet", std)
	}

	got, err := Decode(std)
	if err != nil {
		t.Fatalf("Decode(std) error: %v", err)
	}
	if got.Gifts[0].Name != "¿Qué? ÿÿÿ" {
		t.Fatalf("name = %q", got.Gifts[0].Name)
	}

	// A query parser turns '+' into ' '.
	spaced := strings.ReplaceAll(std, "+", " ")
	if _, err := Decode(spaced); err != nil {
		t.Fatalf("Decode(spaced) error: %v", err)
	}
}

func TestDecode_InvalidAlphabet(t *testing.T) {
	good, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"foreign characters", "ab$cd!"},
		{"truncated padding", strings.TrimRight(good, "=")[:len(strings.TrimRight(good, "="))-1]},
		{"bad padding", "YQ="},
		{"not utf8", base64.URLEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			if !IsInvalidAlphabet(err) {
				t.Fatalf("Decode(%q) = %v, want InvalidAlphabet", tt.token, err)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("error %T is not *DecodeError", err)
			}
		})
	}
}

func TestDecode_InvalidStructure(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "hola"},
		{"array", `[]`},
		{"null", `null`},
		{"missing gifts", `{"settings":{"babyName":"x","hostPhone":""}}`},
		{"missing settings", `{"gifts":[]}`},
		{"gifts wrong type", `{"gifts":"Cuna","settings":{}}`},
		{"gift without id", `{"gifts":[{"name":"Cuna"}],"settings":{}}`},
		{"duplicate ids", `{"gifts":[{"id":"a","name":"x"},{"id":"a","name":"y"}],"settings":{}}`},
		{"claimed without guest", `{"gifts":[{"id":"a","name":"x","isClaimed":true}],"settings":{}}`},
		{"trailing data", `{"gifts":[],"settings":{}} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := base64.URLEncoding.EncodeToString([]byte(tt.payload))
			_, err := Decode(token)
			if !IsInvalidStructure(err) {
				t.Fatalf("Decode(%s) = %v, want InvalidStructure", tt.payload, err)
			}
		})
	}
}

func TestEndToEnd_ListClaimShare(t *testing.T) {
	s := registry.Empty().ReplaceList([]string{"Pañales", "Bañera"}, nil)
	s = s.Claim(s.Gifts[0].ID, "María")

	token, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(got.Gifts) != 2 {
		t.Fatalf("len(Gifts) = %d, want 2", len(got.Gifts))
	}
	if g := got.Gifts[0]; g.Name != "Pañales" || !g.IsClaimed || g.ClaimedBy != "María" {
		t.Fatalf("first gift = %#v, want Pañales claimed by María", g)
	}
	if g := got.Gifts[1]; g.Name != "Bañera" || g.IsClaimed || g.ClaimedBy != "" {
		t.Fatalf("second gift = %#v, want Bañera unclaimed", g)
	}
	if got.Settings != registry.DefaultSettings() {
		t.Fatalf("settings = %#v, want defaults", got.Settings)
	}
}

func TestKind_String(t *testing.T) {
	if InvalidAlphabet.String() != "invalid alphabet" || InvalidStructure.String() != "invalid structure" {
		t.Fatalf("unexpected kind names %q, %q", InvalidAlphabet, InvalidStructure)
	}
	if IsInvalidAlphabet(errors.New("x")) {
		t.Fatalf("plain error classified as DecodeError")
	}
}
