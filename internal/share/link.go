// Package share builds the outward-facing artifacts of a registry: share links,
// the WhatsApp notice a guest sends after claiming, and clipboard copies.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/five82/babyregalo/internal/codec"
	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/state"
)

// ErrEmptyRegistry is returned when asked to share a registry with no gifts.
var ErrEmptyRegistry = errors.New("add and save at least one gift before sharing")

// Link builds origin + path + "?d=" + token for s. Any query or fragment on
// base is dropped.
func Link(base string, s registry.Snapshot) (string, error) {
	if len(s.Gifts) == 0 {
		return "", ErrEmptyRegistry
	}
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse share base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("share base url %q needs a scheme and host", base)
	}
	token, err := codec.Encode(s)
	if err != nil {
		return "", err
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return u.Scheme + "://" + u.Host + path + "?" + state.TokenParam + "=" + token, nil
}

// TokenFrom extracts the token from a share link. A bare token is returned
// unchanged; a URL without the parameter yields "".
func TokenFrom(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return ""
	}
	if !strings.Contains(arg, "://") && !strings.HasPrefix(arg, "?") {
		return arg
	}
	i := strings.Index(arg, "?")
	if i < 0 {
		return ""
	}
	query := arg[i+1:]
	if j := strings.Index(query, "#"); j >= 0 {
		query = query[:j]
	}
	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(query)
	return values.Get(state.TokenParam)
}
