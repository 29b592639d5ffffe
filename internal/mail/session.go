package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// Session is one connection to the mail endpoint: log in once, send many,
// close exactly once. The dispatcher owns the acquire/release discipline.
type Session interface {
	// Login authenticates the configured account. A rejected credential is
	// reported as ErrAuthentication.
	Login(password string) error

	// Send delivers one message to the given address.
	Send(to, subject, body string) error

	// Close tears the session down. Safe to call after a failed Login.
	Close() error
}

// SMTPSession implements Session over an implicit-TLS SMTP connection, the
// scheme used by providers listening on port 465.
type SMTPSession struct {
	host   string
	from   string
	client *smtp.Client
}

// DialSMTP opens a TLS connection to host:port and greets the server. The
// from address is both the authenticated account and the envelope sender.
func DialSMTP(host string, port int, from string) (*SMTPSession, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake with %s: %w", host, err)
	}

	return &SMTPSession{host: host, from: from, client: client}, nil
}

// Login authenticates with PLAIN auth. The password is supplied by the caller
// at send time and never stored.
func (s *SMTPSession) Login(password string) error {
	auth := smtp.PlainAuth("", s.from, password, s.host)
	if err := s.client.Auth(auth); err != nil {
		return fmt.Errorf("login as %s: %v: %w", s.from, err, types.ErrAuthentication)
	}
	return nil
}

// Send builds the MIME message and delivers it on the open session.
func (s *SMTPSession) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", senderName, s.from)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	e.Headers.Set("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host))

	raw, err := e.Bytes()
	if err != nil {
		return fmt.Errorf("build message for %s: %w", to, err)
	}

	if err := s.client.Mail(s.from); err != nil {
		return fmt.Errorf("mail from %s: %w", s.from, err)
	}
	if err := s.client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to %s: %w", to, err)
	}
	w, err := s.client.Data()
	if err != nil {
		return fmt.Errorf("data for %s: %w", to, err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return fmt.Errorf("write message for %s: %w", to, err)
	}
	return w.Close()
}

// Close ends the session with QUIT, falling back to dropping the connection
// when the server no longer answers.
func (s *SMTPSession) Close() error {
	if err := s.client.Quit(); err != nil {
		return s.client.Close()
	}
	return nil
}
