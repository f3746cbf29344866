package lead

import "context"

type RequestRepository interface {
	Create(ctx context.Context, request *QuotationRequest) error
	// List returns every request, newest first.
	List(ctx context.Context) ([]*QuotationRequest, error)
}

type ContactRepository interface {
	Create(ctx context.Context, message *ContactMessage) error
	List(ctx context.Context) ([]*ContactMessage, error)
}
