// Package codec turns a registry snapshot into a URL-safe token and back.
//
// The snapshot is serialized as JSON, the JSON text is taken as UTF-8 bytes,
// and those bytes are base64 encoded with the URL-safe alphabet. Only bytes
// are transformed, so names with accents, ñ or emoji survive unchanged.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/five82/babyregalo/internal/registry"
)

// Encode serializes s into a token suitable for a query parameter.
func Encode(s registry.Snapshot) (string, error) {
	if s.Gifts == nil {
		s.Gifts = []registry.Gift{}
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return base64.URLEncoding.EncodeToString(payload), nil
}

// Decode is the inverse of Encode. Failures are always *DecodeError.
//
// Tokens written by the first web release used the standard base64 alphabet;
// those are accepted too, including '+' that a query parser turned into ' '.
func Decode(token string) (registry.Snapshot, error) {
	payload, err := decodeBytes(token)
	if err != nil {
		return registry.Snapshot{}, &DecodeError{Kind: InvalidAlphabet, Err: err}
	}
	if !utf8.Valid(payload) {
		return registry.Snapshot{}, &DecodeError{Kind: InvalidAlphabet, Err: errors.New("payload is not UTF-8 text")}
	}
	snap, err := parseSnapshot(payload)
	if err != nil {
		return registry.Snapshot{}, &DecodeError{Kind: InvalidStructure, Err: err}
	}
	return snap, nil
}

func decodeBytes(token string) ([]byte, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("token is empty")
	}
	enc := base64.URLEncoding
	if strings.ContainsAny(token, "+/ ") {
		token = strings.ReplaceAll(token, " ", "+")
		enc = base64.StdEncoding
	}
	return enc.Strict().DecodeString(token)
}

// wireGift mirrors registry.Gift with pointers so missing fields can be told
// apart from zero values.
type wireGift struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsClaimed   *bool   `json:"isClaimed"`
	ClaimedBy   *string `json:"claimedBy"`
}

type wireSnapshot struct {
	Gifts    *[]wireGift `json:"gifts"`
	Settings *struct {
		BabyName  *string `json:"babyName"`
		HostPhone *string `json:"hostPhone"`
	} `json:"settings"`
}

func parseSnapshot(payload []byte) (registry.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	var wire wireSnapshot
	if err := dec.Decode(&wire); err != nil {
		return registry.Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return registry.Snapshot{}, errors.New("parse snapshot: trailing data after snapshot")
	}
	if wire.Gifts == nil {
		return registry.Snapshot{}, errors.New("snapshot has no gifts field")
	}
	if wire.Settings == nil {
		return registry.Snapshot{}, errors.New("snapshot has no settings field")
	}

	snap := registry.Snapshot{Gifts: make([]registry.Gift, 0, len(*wire.Gifts))}
	for i, wg := range *wire.Gifts {
		if wg.ID == nil || wg.Name == nil {
			return registry.Snapshot{}, fmt.Errorf("gift %d: id and name are required", i)
		}
		snap.Gifts = append(snap.Gifts, registry.Gift{
			ID:          *wg.ID,
			Name:        *wg.Name,
			Description: deref(wg.Description),
			Category:    deref(wg.Category),
			IsClaimed:   wg.IsClaimed != nil && *wg.IsClaimed,
			ClaimedBy:   deref(wg.ClaimedBy),
		})
	}
	snap.Settings = registry.Settings{
		BabyName:  deref(wire.Settings.BabyName),
		HostPhone: deref(wire.Settings.HostPhone),
	}

	if err := snap.Validate(); err != nil {
		return registry.Snapshot{}, err
	}
	return snap, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
