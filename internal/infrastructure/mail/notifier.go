package mail

import "context"

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Text    string
}

//go:generate mockgen -destination=../../mocks/mock_notifier.go -package=mocks github.com/umeshkhanal/rumooz/internal/infrastructure/mail Notifier

// Notifier delivers outbound email.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
