package services

import (
	"context"
	"errors"
	"time"
)

// DefaultMailDelay is how long the simulated transport takes to "deliver"
const DefaultMailDelay = 1500 * time.Millisecond

// ErrMailCredentials means the SMTP username or password is not configured
var ErrMailCredentials = errors.New("smtp credentials missing")

// MailRequest is everything a mail transport needs to attempt delivery
type MailRequest struct {
	Host     string
	Port     string
	Username string
	Password string
	To       string
	Subject  string
	Body     string
}

// MailResult reports the outcome of a delivery attempt
type MailResult struct {
	To     string
	Host   string
	SentAt time.Time
	Err    error
}

// OK reports whether delivery succeeded
func (r MailResult) OK() bool {
	return r.Err == nil
}

// Mailer delivers outbound mail
type Mailer interface {
	Send(ctx context.Context, req MailRequest) MailResult
}

// SimulatedMailer pretends to deliver after a fixed delay. Nothing leaves the
// process.
type SimulatedMailer struct {
	Delay time.Duration
	Now   func() time.Time
}

// NewSimulatedMailer returns a SimulatedMailer with the given delay
func NewSimulatedMailer(delay time.Duration) *SimulatedMailer {
	return &SimulatedMailer{Delay: delay, Now: time.Now}
}

// Send waits for the delay or for ctx to end, whichever comes first
func (m *SimulatedMailer) Send(ctx context.Context, req MailRequest) MailResult {
	res := MailResult{To: req.To, Host: req.Host}

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			res.Err = ctx.Err()
			return res
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	res.SentAt = now()
	return res
}
