package service

import (
	"context"
	"fmt"

	"newsdesk/internal/app/policy"
	"newsdesk/internal/common"
	"newsdesk/internal/common/security"
	"newsdesk/internal/domain/model"
	"newsdesk/internal/domain/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateUserRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	Role           *string `json:"role,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Length(3, 150)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Role, validation.In(model.RoleAdmin, model.RoleContributor)),
	)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 128)),
	)
}

func (s *UserService) GetByID(ctx context.Context, actor policy.Actor, id string) (*model.User, error) {
	if !policy.CanReadUser(actor) {
		return nil, common.ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// Me resolves the acting identity's own profile.
func (s *UserService) Me(ctx context.Context, actor policy.Actor) (*model.User, error) {
	if !actor.Authenticated {
		return nil, common.ErrUnauthorized
	}
	return s.GetByID(ctx, actor, actor.ID)
}

func (s *UserService) List(ctx context.Context, actor policy.Actor, page, pageSize int) ([]model.User, int, error) {
	if !policy.CanReadUser(actor) {
		return nil, 0, common.ErrForbidden
	}
	users, total, err := s.userRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, total, nil
}

func (s *UserService) Update(ctx context.Context, actor policy.Actor, id string, req UpdateUserRequest) (*model.User, error) {
	if !policy.CanWriteUser(actor) {
		return nil, common.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if !policy.CanWriteUser(actor) {
		return common.ErrForbidden
	}
	return s.userRepo.Delete(ctx, id)
}

// ChangePassword swaps the target record's credential after verifying the
// supplied current password against that record. A wrong old password is a
// validation failure and leaves the stored credential unchanged.
func (s *UserService) ChangePassword(ctx context.Context, actor policy.Actor, id string, req ChangePasswordRequest) error {
	if !policy.CanWriteUser(actor) {
		return common.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !security.CheckPasswordHash(req.OldPassword, user.HashedPassword) {
		return fmt.Errorf("invalid old password: %w", common.ErrValidation)
	}

	hashed, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, id, hashed)
}
