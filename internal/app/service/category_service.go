package service

import (
	"context"
	"fmt"

	"newsdesk/internal/app/policy"
	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"
	"newsdesk/internal/domain/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (s *CategoryService) Create(ctx context.Context, actor policy.Actor, req CreateCategoryRequest) (*model.Category, error) {
	if !policy.CanWriteCategory(actor) {
		return nil, common.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*model.Category, error) {
	return s.categoryRepo.FindBySlug(ctx, categorySlug)
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Update changes name and description. The slug stays fixed after creation;
// it is the external lookup key.
func (s *CategoryService) Update(ctx context.Context, actor policy.Actor, categorySlug string, req UpdateCategoryRequest) (*model.Category, error) {
	if !policy.CanWriteCategory(actor) {
		return nil, common.ErrForbidden
	}

	category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be blank: %w", common.ErrValidation)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor policy.Actor, categorySlug string) error {
	if !policy.CanWriteCategory(actor) {
		return common.ErrForbidden
	}
	category, err := s.categoryRepo.FindBySlug(ctx, categorySlug)
	if err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, category.ID)
}
