package taxcal

import (
	"strings"
	"testing"
)

func TestReminderMessageUsesFirstName(t *testing.T) {
	msg := ReminderMessage("LUIS HERNANDO PORTILLO RIASCOS", "26-8-2025")
	if !strings.HasPrefix(msg, "Hola LUIS,") {
		t.Fatalf("message should greet by first name: %s", msg)
	}
	if !strings.Contains(msg, "26-8-2025") {
		t.Fatalf("message should embed the due date: %s", msg)
	}
}

func TestReminderMessageSingleName(t *testing.T) {
	msg := ReminderMessage("CAROLINA", "17-9-2025")
	if !strings.HasPrefix(msg, "Hola CAROLINA,") {
		t.Fatalf("single-word name mishandled: %s", msg)
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("3167945111", "hola mundo")
	if !strings.HasPrefix(link, "https://wa.me/573167945111?text=") {
		t.Fatalf("link should target the 57-prefixed number: %s", link)
	}
	if strings.Contains(link, " ") {
		t.Fatalf("message must be URL-escaped: %s", link)
	}
}
