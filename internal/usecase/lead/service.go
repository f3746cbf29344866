package lead

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainAdmin "github.com/umeshkhanal/rumooz/internal/domain/admin"
	domainLead "github.com/umeshkhanal/rumooz/internal/domain/lead"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/events"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/mail"
	"github.com/umeshkhanal/rumooz/internal/logger"
	appErrors "github.com/umeshkhanal/rumooz/pkg/errors"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"go.uber.org/zap"
)

// Service captures quotation requests and contact-form messages and notifies the site owner.
type Service struct {
	requests  domainLead.RequestRepository
	contacts  domainLead.ContactRepository
	admins    domainAdmin.Repository
	ownerID   uint
	notifier  mail.Notifier
	publisher events.Publisher

	publishTimeout time.Duration
	inflight       sync.WaitGroup
}

// defaultPublishTimeout bounds a single lead event publish.
const defaultPublishTimeout = 5 * time.Second

// NewService creates a lead service. ownerID is the admin account whose contact_mail
// receives the notifications.
func NewService(
	requests domainLead.RequestRepository,
	contacts domainLead.ContactRepository,
	admins domainAdmin.Repository,
	ownerID uint,
	notifier mail.Notifier,
	publisher events.Publisher,
) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	return &Service{
		requests:  requests,
		contacts:  contacts,
		admins:    admins,
		ownerID:   ownerID,
		notifier:  notifier,
		publisher: publisher,

		publishTimeout: defaultPublishTimeout,
	}
}

// CreateRequest stores the request, then acknowledges it to the client and notifies the owner.
// The row stays persisted when an email fails; the error is still returned.
func (s *Service) CreateRequest(ctx context.Context, req *CreateRequestRequest) (*RequestResponse, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Email = utils.SanitizeEmail(req.Email)
	req.Country = utils.SanitizeString(req.Country)
	req.City = utils.SanitizeString(req.City)
	req.Service = utils.SanitizeString(req.Service)
	req.Phone = utils.NormalizePhone(req.Phone)
	if req.Message != nil {
		message := utils.SanitizeText(*req.Message)
		req.Message = &message
		if message == "" {
			req.Message = nil
		}
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	request := &domainLead.QuotationRequest{
		Name:    req.Name,
		Email:   req.Email,
		Country: req.Country,
		City:    req.City,
		Service: req.Service,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Quotation request received",
		zap.Uint("request_id", request.ID),
		zap.String("service", request.Service),
		zap.String("event", "quotation_request_created"),
	)

	s.publish(ctx, domainLead.Event{
		Kind:       domainLead.KindQuotation,
		ID:         request.ID,
		Name:       request.Name,
		Email:      request.Email,
		Phone:      request.Phone,
		Service:    request.Service,
		Country:    request.Country,
		ReceivedAt: request.CreatedAt,
	})

	ownerMail, err := s.ownerContact(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.send(ctx, mail.QuotationAcknowledgement(request.Email, request.Name)); err != nil {
		return nil, err
	}

	message := ""
	if request.Message != nil {
		message = *request.Message
	}
	notification := mail.QuotationNotification(ownerMail, mail.QuotationFields{
		Name:    request.Name,
		Email:   request.Email,
		Phone:   request.Phone,
		Country: request.Country,
		City:    request.City,
		Service: request.Service,
		Message: message,
	})
	if err := s.send(ctx, notification); err != nil {
		return nil, err
	}

	return ToRequestResponse(request), nil
}

func (s *Service) ListRequests(ctx context.Context) ([]*RequestResponse, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = ToRequestResponse(r)
	}
	return responses, nil
}

// SubmitContact stores a contact-form message and forwards it to the owner.
func (s *Service) SubmitContact(ctx context.Context, req *ContactRequest) (*ContactResponse, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Email = utils.SanitizeEmail(req.Email)
	req.Phone = utils.NormalizePhone(req.Phone)
	req.Message = utils.SanitizeText(req.Message)
	if req.WhatsApp != nil {
		whatsApp := utils.NormalizePhone(*req.WhatsApp)
		req.WhatsApp = &whatsApp
		if whatsApp == "" {
			req.WhatsApp = nil
		}
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	message := &domainLead.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		WhatsApp: req.WhatsApp,
		Message:  req.Message,
	}
	if err := s.contacts.Create(ctx, message); err != nil {
		return nil, err
	}

	logger.Info("Contact message received",
		zap.Uint("contact_id", message.ID),
		zap.String("event", "contact_message_created"),
	)

	s.publish(ctx, domainLead.Event{
		Kind:       domainLead.KindContact,
		ID:         message.ID,
		Name:       message.Name,
		Email:      message.Email,
		Phone:      message.Phone,
		ReceivedAt: message.CreatedAt,
	})

	ownerMail, err := s.ownerContact(ctx)
	if err != nil {
		return nil, err
	}

	whatsApp := ""
	if message.WhatsApp != nil {
		whatsApp = *message.WhatsApp
	}
	notification := mail.ContactNotification(ownerMail, mail.ContactFields{
		Name:     message.Name,
		Email:    message.Email,
		Phone:    message.Phone,
		WhatsApp: whatsApp,
		Message:  message.Message,
	})
	if err := s.send(ctx, notification); err != nil {
		return nil, err
	}

	return ToContactResponse(message), nil
}

func (s *Service) ListContacts(ctx context.Context) ([]*ContactResponse, error) {
	messages, err := s.contacts.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*ContactResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToContactResponse(m)
	}
	return responses, nil
}

func (s *Service) ownerContact(ctx context.Context) (string, error) {
	owner, err := s.admins.GetByID(ctx, s.ownerID)
	if err != nil {
		if errors.Is(err, domainAdmin.ErrAccountNotFound) {
			return "", appErrors.ErrContactMailMissing
		}
		return "", fmt.Errorf("failed to get owner account: %w", err)
	}

	address := owner.ContactAddress()
	if address == "" {
		return "", appErrors.ErrContactMailMissing
	}
	return address, nil
}

func (s *Service) send(ctx context.Context, msg mail.Message) error {
	if err := s.notifier.Send(ctx, msg); err != nil {
		logger.Error("Failed to send lead email",
			zap.String("subject", msg.Subject),
			zap.String("event", "lead_email_failed"),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", appErrors.ErrNotificationFailed, err)
	}
	return nil
}

// publish hands the event to the publisher in the background so a slow broker never delays
// the submission. Failures are only logged, the submission itself already succeeded.
func (s *Service) publish(ctx context.Context, event domainLead.Event) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
		defer cancel()

		if err := s.publisher.PublishLead(publishCtx, event); err != nil {
			logger.Warn("Failed to publish lead event",
				zap.String("kind", string(event.Kind)),
				zap.Uint("id", event.ID),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every in-flight event publish has returned.
func (s *Service) Wait() {
	s.inflight.Wait()
}
