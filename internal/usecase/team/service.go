package team

import (
	"context"
	"errors"
	"fmt"
	"io"

	domainTeam "github.com/umeshkhanal/rumooz/internal/domain/team"
	"github.com/umeshkhanal/rumooz/internal/logger"
	appErrors "github.com/umeshkhanal/rumooz/pkg/errors"
	"github.com/umeshkhanal/rumooz/pkg/utils"

	"go.uber.org/zap"
)

// PhotoStorage is implemented by storage.PhotoStore.
type PhotoStorage interface {
	Save(originalName string, r io.Reader) (string, error)
	Remove(publicPath string) error
}

// Service manages the partner directory
type Service struct {
	repo   domainTeam.Repository
	photos PhotoStorage
}

func NewService(repo domainTeam.Repository, photos PhotoStorage) *Service {
	return &Service{repo: repo, photos: photos}
}

func (s *Service) CreateMember(ctx context.Context, req *CreateMemberRequest, photo *Photo) (*MemberResponse, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Business = utils.SanitizeString(req.Business)
	req.Location = sanitizeOptional(req.Location)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	member := &domainTeam.Member{
		Name:     req.Name,
		Business: req.Business,
		Location: req.Location,
	}

	if photo != nil {
		path, err := s.photos.Save(photo.Filename, photo.Content)
		if err != nil {
			return nil, err
		}
		member.Photo = &path
	}

	if err := s.repo.Create(ctx, member); err != nil {
		s.discardPhoto(member.Photo)
		return nil, err
	}

	logger.Info("Team member created",
		zap.Uint("member_id", member.ID),
		zap.String("event", "team_member_created"),
	)

	return ToMemberResponse(member), nil
}

func (s *Service) ListMembers(ctx context.Context) ([]*MemberResponse, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*MemberResponse, len(members))
	for i, m := range members {
		responses[i] = ToMemberResponse(m)
	}
	return responses, nil
}

// UpdateMember applies the present fields. A new photo replaces the stored one and the old
// file is deleted afterwards.
func (s *Service) UpdateMember(ctx context.Context, id uint, req *UpdateMemberRequest, photo *Photo) (*MemberResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainTeam.ErrMemberNotFound) {
			return nil, appErrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	req.Name = sanitizeOptional(req.Name)
	req.Business = sanitizeOptional(req.Business)
	req.Location = sanitizeOptional(req.Location)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Business != nil {
		member.Business = *req.Business
	}
	if req.Location != nil {
		member.Location = req.Location
	}

	oldPhoto := member.Photo
	if photo != nil {
		path, err := s.photos.Save(photo.Filename, photo.Content)
		if err != nil {
			return nil, err
		}
		member.Photo = &path
	}

	if err := s.repo.Update(ctx, member); err != nil {
		if photo != nil {
			s.discardPhoto(member.Photo)
		}
		if errors.Is(err, domainTeam.ErrMemberNotFound) {
			return nil, appErrors.ErrMemberNotFound
		}
		return nil, err
	}

	if photo != nil && oldPhoto != nil {
		s.discardPhoto(oldPhoto)
	}

	logger.Info("Team member updated",
		zap.Uint("member_id", member.ID),
		zap.Bool("photo_replaced", photo != nil),
		zap.String("event", "team_member_updated"),
	)

	return ToMemberResponse(member), nil
}

func (s *Service) discardPhoto(path *string) {
	if path == nil {
		return
	}
	if err := s.photos.Remove(*path); err != nil {
		logger.Warn("Failed to delete photo",
			zap.String("photo", *path),
			zap.Error(err),
		)
	}
}

// sanitizeOptional trims an optional field; a blank value counts as absent.
func sanitizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	cleaned := utils.SanitizeString(*v)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
