package mail

import (
	"fmt"
	"strings"
	"time"
)

const brand = "Rumooz Smart Solutions"

// VerificationCode builds the email carrying a one-time code.
func VerificationCode(to, name, code string, ttl time.Duration) Message {
	if name == "" {
		name = "Admin"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	b.WriteString("To complete your action, please verify your email address using the code below:\n\n")
	fmt.Fprintf(&b, "    %s\n\n", code)
	fmt.Fprintf(&b, "This code will expire in %d minutes. If you didn't request this verification, you can safely ignore this email.\n\n", int(ttl.Minutes()))
	fmt.Fprintf(&b, "- %s", brand)

	return Message{
		To:      to,
		Subject: "Your verification code",
		Text:    b.String(),
	}
}

// QuotationAcknowledgement thanks the client for a quotation request.
func QuotationAcknowledgement(to, name string) Message {
	return Message{
		To:      to,
		Subject: "We received your request at Rumooz",
		Text: fmt.Sprintf("Hello %s,\n\nWe have received your request. Our team will contact you shortly.\n\n- %s",
			name, brand),
	}
}

// QuotationFields is what the owner sees about a new request.
type QuotationFields struct {
	Name    string
	Email   string
	Phone   string
	Country string
	City    string
	Service string
	Message string
}

func QuotationNotification(to string, f QuotationFields) Message {
	message := f.Message
	if message == "" {
		message = "N/A"
	}

	var b strings.Builder
	b.WriteString("A new request has been submitted via the website. Here are the details:\n\n")
	writeField(&b, "Name", f.Name)
	writeField(&b, "Email", f.Email)
	writeField(&b, "Phone", f.Phone)
	writeField(&b, "Country", f.Country)
	writeField(&b, "City", f.City)
	writeField(&b, "Service", f.Service)
	writeField(&b, "Message", message)
	b.WriteString("\nPlease follow up with the client as soon as possible.")

	return Message{
		To:      to,
		Subject: "New Request Received",
		Text:    b.String(),
	}
}

// ContactFields is what the owner sees about a contact-form submission.
type ContactFields struct {
	Name     string
	Email    string
	Phone    string
	WhatsApp string
	Message  string
}

func ContactNotification(to string, f ContactFields) Message {
	var b strings.Builder
	b.WriteString("New contact form submission:\n\n")
	writeField(&b, "Name", f.Name)
	writeField(&b, "Email", f.Email)
	writeField(&b, "Phone", f.Phone)
	if f.WhatsApp != "" {
		writeField(&b, "WhatsApp", f.WhatsApp)
	}
	writeField(&b, "Message", f.Message)
	b.WriteString("\nThis is an automated notification from the Rumooz website.")

	return Message{
		To:      to,
		Subject: "New Contact Form Submission",
		Text:    b.String(),
	}
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-9s %s\n", label+":", value)
}
