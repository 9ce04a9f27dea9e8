package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// CopiedFor is how long the "link copied" notice stays up.
const CopiedFor = 3 * time.Second

const whatsAppBase = "https://wa.me/"

// componentEscaper turns query escaping into the component escaping browsers
// use: spaces become %20 and !'()* stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ClaimMessage is the text a guest sends the host after reserving a gift.
func ClaimMessage(guest, gift string) string {
	return fmt.Sprintf("¡Hola! Soy %s, acabo de reservar el regalo \"%s\" para el Baby Shower. ¡Cuenta con ello! 🍼", guest, gift)
}

// WhatsAppURL builds the deep link that opens a chat with phone prefilled
// with ClaimMessage. An empty phone still yields a link; it simply has no
// recipient.
func WhatsAppURL(phone, guest, gift string) string {
	return whatsAppBase + strings.TrimSpace(phone) + "?text=" + escapeComponent(ClaimMessage(guest, gift))
}

func escapeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

// Clipboard receives text for the user to paste elsewhere.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("copy to clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
