package reports

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists report metadata rows. Reads are always scoped to an
// owner; a lookup for another owner's report yields ErrNotFound.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*Report, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Report, int, error)
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id uuid.UUID) error
}
