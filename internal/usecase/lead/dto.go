package lead

import (
	"time"

	domainLead "github.com/umeshkhanal/rumooz/internal/domain/lead"
)

type CreateRequestRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Country string  `json:"country" validate:"required,max=255"`
	City    string  `json:"city" validate:"required,max=255"`
	Service string  `json:"service" validate:"required,max=255"`
	Phone   string  `json:"phone" validate:"required,phone"`
	Message *string `json:"message" validate:"omitempty,max=5000"`
}

type RequestResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Service   string    `json:"service"`
	Phone     string    `json:"phone"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Phone    string  `json:"phone" validate:"omitempty,phone"`
	WhatsApp *string `json:"whatsapp" validate:"omitempty,phone"`
	Message  string  `json:"message" validate:"required,max=5000"`
}

type ContactResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	WhatsApp  *string   `json:"whatsapp"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToRequestResponse(r *domainLead.QuotationRequest) *RequestResponse {
	return &RequestResponse{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Country:   r.Country,
		City:      r.City,
		Service:   r.Service,
		Phone:     r.Phone,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToContactResponse(m *domainLead.ContactMessage) *ContactResponse {
	return &ContactResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		WhatsApp:  m.WhatsApp,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
