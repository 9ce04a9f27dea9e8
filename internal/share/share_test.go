package share

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/babyregalo/internal/codec"
	"github.com/five82/babyregalo/internal/registry"
)

func sharedSnapshot() registry.Snapshot {
	s := registry.Empty().ReplaceList([]string{"Pañales", "Bañera"}, nil)
	return s.Claim(s.Gifts[0].ID, "María")
}

func TestLink_EmptyRegistryRejected(t *testing.T) {
	_, err := Link("https://example.com/", registry.Empty())
	if !errors.Is(err, ErrEmptyRegistry) {
		t.Fatalf("Link(empty) = %v, want ErrEmptyRegistry", err)
	}
}

func TestLink_BuildsDecodableURL(t *testing.T) {
	snap := sharedSnapshot()
	link, err := Link("https://example.com/registro/?old=1#top", snap)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if !strings.HasPrefix(link, "https://example.com/registro/?d=") {
		t.Fatalf("link = %q, want origin+path+?d=", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	got, err := codec.Decode(u.Query().Get("d"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("decoded = %#v, want %#v", got, snap)
	}
}

func TestLink_BaseWithoutPath(t *testing.T) {
	link, err := Link("http://localhost:8080", sharedSnapshot())
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if !strings.HasPrefix(link, "http://localhost:8080/?d=") {
		t.Fatalf("link = %q", link)
	}
}

func TestLink_InvalidBase(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative/only"} {
		if _, err := Link(base, sharedSnapshot()); err == nil {
			t.Fatalf("Link(%q) returned nil error", base)
		}
	}
}

func TestTokenFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  abc123==  ", "abc123=="},
		{"https://example.com/?d=abc123==", "abc123=="},
		{"https://example.com/path?x=1&d=abc#frag", "abc"},
		{"https://example.com/?d=ab+cd", "ab cd"},
		{"?d=xyz", "xyz"},
		{"https://example.com/", ""},
		{"https://example.com/?other=1", ""},
	}
	for _, tt := range tests {
		if got := TokenFrom(tt.in); got != tt.want {
			t.Fatalf("TokenFrom(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenFrom_LinkRoundTrip(t *testing.T) {
	snap := sharedSnapshot()
	link, err := Link("https://example.com/", snap)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	got, err := codec.Decode(TokenFrom(link))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("decoded = %#v, want %#v", got, snap)
	}
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL(" 573001234567 ", "María", "Bañera")
	if !strings.HasPrefix(got, "https://wa.me/573001234567?text=") {
		t.Fatalf("url = %q", got)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	want := ClaimMessage("María", "Bañera")
	if text := u.Query().Get("text"); text != want {
		t.Fatalf("text = %q, want %q", text, want)
	}
	if !strings.Contains(want, `"Bañera"`) || !strings.Contains(want, "Soy María") {
		t.Fatalf("message = %q", want)
	}
}

func TestWhatsAppURL_EscapesLikeBrowsers(t *testing.T) {
	got := WhatsAppURL("573001234567", "Ana María", "Cuna (blanca)")
	want := "https://wa.me/573001234567?text=" +
		"%C2%A1Hola!%20Soy%20Ana%20Mar%C3%ADa%2C%20acabo%20de%20reservar%20el%20regalo%20" +
		"%22Cuna%20(blanca)%22%20para%20el%20Baby%20Shower.%20%C2%A1Cuenta%20con%20ello!%20%F0%9F%8D%BC"
	if got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestEscapeComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a%20b"},
		{"1+1", "1%2B1"},
		{"!'()*~", "!'()*~"},
		{"a&b=c", "a%26b%3Dc"},
	}
	for _, tt := range tests {
		if got := escapeComponent(tt.in); got != tt.want {
			t.Fatalf("escapeComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWhatsAppURL_EmptyPhoneStillBuilds(t *testing.T) {
	got := WhatsAppURL("", "Ana", "Cuna")
	if !strings.HasPrefix(got, "https://wa.me/?text=") {
		t.Fatalf("url = %q", got)
	}
}
