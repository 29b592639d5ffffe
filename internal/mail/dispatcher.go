package mail

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// SendReminders delivers one reminder per due material on the given session:
// a single Login for the whole batch, one Send per record to its responsible
// employee, and exactly one Close on every exit path.
//
// A failed Login aborts the batch and surfaces as ErrAuthentication with no
// messages sent. A failed individual Send is logged and the batch continues;
// the returned count is the number of messages actually delivered.
func SendReminders(session Session, password string, due []types.Material) (sent int, err error) {
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing mail session")
		}
	}()

	if err := session.Login(password); err != nil {
		return 0, fmt.Errorf("reminder batch: %w", err)
	}

	for _, m := range due {
		subject, body := Reminder(m)
		if err := session.Send(m.ResponsibleEmployee, subject, body); err != nil {
			log.Warn().
				Err(err).
				Int64("sku", m.SKUID).
				Str("to", m.ResponsibleEmployee).
				Msg("reminder not sent")
			continue
		}
		sent++
	}
	return sent, nil
}
