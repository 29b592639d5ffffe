// Package mail renders review reminders and delivers them over a single
// authenticated SMTP session per batch.
package mail

import (
	"fmt"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// senderName is the display name on every reminder.
const senderName = "System alert"

// Subject returns the reminder subject line for a material name.
func Subject(name string) string {
	return fmt.Sprintf("Raw material %s needs review", name)
}

// Body returns the reminder body. Field values are substituted verbatim.
func Body(name, stock, lastReview string) string {
	return fmt.Sprintf(
		"Reminder!\n Raw material %s has %s kg stock and was reviewed last time on %s",
		name, stock, lastReview,
	)
}

// Render returns the full fixed-shape reminder: sender line, subject line,
// body. Pure and deterministic.
func Render(name, stock, lastReview string) string {
	return fmt.Sprintf("From: %s\nSubject: %s\n%s",
		senderName, Subject(name), Body(name, stock, lastReview))
}

// Reminder renders the subject and body for one material record.
func Reminder(m types.Material) (subject, body string) {
	name := m.SKUDescription
	stock := m.CurrentStockKg.String()
	lastReview := m.LastReview.Format(types.DateLayout)
	return Subject(name), Body(name, stock, lastReview)
}
