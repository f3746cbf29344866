package lead

import "time"

// QuotationRequest is a prospective customer's request for a quote. Immutable once stored.
type QuotationRequest struct {
	ID        uint
	Name      string
	Email     string
	Country   string
	City      string
	Service   string
	Phone     string
	Message   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        uint
	Name      string
	Email     string
	Phone     string
	WhatsApp  *string
	Message   string
	CreatedAt time.Time
}

// Kind distinguishes the lead event topics.
type Kind string

const (
	KindQuotation Kind = "requests"
	KindContact   Kind = "contacts"
)

// Event is published for every captured lead.
type Event struct {
	Kind       Kind      `json:"kind"`
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Service    string    `json:"service,omitempty"`
	Country    string    `json:"country,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
