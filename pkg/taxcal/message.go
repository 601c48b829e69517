package taxcal

import (
	"fmt"
	"net/url"
	"strings"
)

// countryCode prefixes wa.me links; all stored numbers are Colombian mobiles.
const countryCode = "57"

// ReminderMessage composes the templated reminder text for a taxpayer. Only the
// first name is used to keep the message personal but short.
func ReminderMessage(fullName, dueDate string) string {
	first := fullName
	if i := strings.IndexByte(fullName, ' '); i > 0 {
		first = fullName[:i]
	}
	return fmt.Sprintf("Hola %s, te recordamos que tu declaración de renta vence el %s. ¡No olvides presentarla a tiempo!", first, dueDate)
}

// WhatsAppLink builds a wa.me deep link that opens the recipient's chat with
// the message pre-filled. Delivery happens in the operator's messaging client;
// this system only composes the link.
func WhatsAppLink(phone, message string) string {
	return "https://wa.me/" + countryCode + phone + "?text=" + url.QueryEscape(message)
}
