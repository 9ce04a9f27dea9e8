package codec

import (
	"errors"
	"fmt"
)

// Kind classifies why a token could not be decoded.
type Kind int

const (
	// InvalidAlphabet means the token is not valid base64 text: foreign
	// characters, bad or truncated padding, or a payload that is not UTF-8.
	InvalidAlphabet Kind = iota + 1
	// InvalidStructure means the payload decoded but is not a snapshot.
	InvalidStructure
)

func (k Kind) String() string {
	switch k {
	case InvalidAlphabet:
		return "invalid alphabet"
	case InvalidStructure:
		return "invalid structure"
	default:
		return "unknown"
	}
}

// DecodeError reports a token that carries no usable snapshot. Callers treat
// it as "no token" and move on to the next state source.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode token: %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsInvalidAlphabet reports whether err is a DecodeError of kind InvalidAlphabet.
func IsInvalidAlphabet(err error) bool {
	return kindOf(err) == InvalidAlphabet
}

// IsInvalidStructure reports whether err is a DecodeError of kind InvalidStructure.
func IsInvalidStructure(err error) bool {
	return kindOf(err) == InvalidStructure
}

func kindOf(err error) Kind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
