package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/entity"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/pkg/apperror"
)

// TeamService manages the shop's team member roster
type TeamService struct {
	userRepo repository.UserRepository
}

// NewTeamService creates a new team service
func NewTeamService(userRepo repository.UserRepository) *TeamService {
	return &TeamService{userRepo: userRepo}
}

// AddMemberInput represents the add team member input
type AddMemberInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      enum.UserRole
}

// AddMember adds a team member to the shop
func (s *TeamService) AddMember(ctx context.Context, input *AddMemberInput) (*entity.User, error) {
	shopID, ok := infraRepo.GetShopID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Shop context required")
	}

	role := input.Role
	if role == "" {
		role = enum.RoleAdvisor
	}
	if !role.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "role", Message: "must be admin, advisor, or technician"},
		})
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A team member with that email already exists")
	}

	user := &entity.User{
		ShopID:    shopID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Role:      role,
		Active:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetMember retrieves a team member by ID
func (s *TeamService) GetMember(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("Team member")
	}
	return user, nil
}

// ListMembers lists the shop's team
func (s *TeamService) ListMembers(ctx context.Context, includeInactive bool) ([]entity.User, error) {
	return s.userRepo.List(ctx, includeInactive)
}

// UpdateMemberInput represents the update team member input
type UpdateMemberInput struct {
	ID        uuid.UUID
	FirstName *string
	LastName  *string
	Role      *enum.UserRole
	Active    *bool
}

// UpdateMember updates a team member's profile
func (s *TeamService) UpdateMember(ctx context.Context, input *UpdateMemberInput) (*entity.User, error) {
	user, err := s.GetMember(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "role", Message: "must be admin, advisor, or technician"},
			})
		}
		user.Role = *input.Role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RemoveMember soft-deletes a team member
func (s *TeamService) RemoveMember(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMember(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
