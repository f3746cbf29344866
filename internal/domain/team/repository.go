package team

import "context"

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	// List returns every member ordered by ID ascending.
	List(ctx context.Context) ([]*Member, error)
	Update(ctx context.Context, member *Member) error
}
