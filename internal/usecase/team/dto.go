package team

import (
	"io"
	"time"

	domainTeam "github.com/umeshkhanal/rumooz/internal/domain/team"
)

type CreateMemberRequest struct {
	Name     string  `form:"name" validate:"required,max=255"`
	Business string  `form:"business" validate:"required,max=255"`
	Location *string `form:"location" validate:"omitempty,max=255"`
}

// UpdateMemberRequest replaces the fields that are present; nil fields keep their value.
type UpdateMemberRequest struct {
	Name     *string `form:"name" validate:"omitempty,min=1,max=255"`
	Business *string `form:"business" validate:"omitempty,min=1,max=255"`
	Location *string `form:"location" validate:"omitempty,max=255"`
}

// Photo is an uploaded image file.
type Photo struct {
	Filename string
	Content  io.Reader
}

type MemberResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Business  string    `json:"business"`
	Location  *string   `json:"location"`
	Photo     *string   `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToMemberResponse(m *domainTeam.Member) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Business:  m.Business,
		Location:  m.Location,
		Photo:     m.Photo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
