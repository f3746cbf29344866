package team

import "time"

// Member is a partner/client shown in the public directory.
type Member struct {
	ID        uint
	Name      string
	Business  string
	Location  *string
	Photo     *string // public path under the uploads prefix
	CreatedAt time.Time
	UpdatedAt time.Time
}
