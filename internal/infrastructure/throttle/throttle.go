package throttle

import "context"

//go:generate mockgen -destination=../../mocks/mock_limiter.go -package=mocks github.com/umeshkhanal/rumooz/internal/infrastructure/throttle Limiter

// Limiter admits or refuses an action for a key, e.g. sending a code to one account.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
