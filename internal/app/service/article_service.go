package service

import (
	"context"
	"fmt"
	"time"

	"newsdesk/internal/app/policy"
	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"
	"newsdesk/internal/domain/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type ArticleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
}

func NewArticleService(articleRepo repository.ArticleRepository, categoryRepo repository.CategoryRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo, categoryRepo: categoryRepo}
}

type CreateArticleRequest struct {
	Title         string              `json:"title"`
	Content       string              `json:"content"`
	Summary       string              `json:"summary"`
	FeaturedImage *string             `json:"featured_image,omitempty"`
	CategorySlug  *string             `json:"category,omitempty"`
	Status        model.ArticleStatus `json:"status,omitempty"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Status, validation.In(model.StatusDraft, model.StatusPublished, model.StatusArchived)),
	)
}

type UpdateArticleRequest struct {
	Title         *string              `json:"title,omitempty"`
	Content       *string              `json:"content,omitempty"`
	Summary       *string              `json:"summary,omitempty"`
	FeaturedImage *string              `json:"featured_image,omitempty"`
	CategorySlug  *string              `json:"category,omitempty"`
	Status        *model.ArticleStatus `json:"status,omitempty"`
}

func (s *ArticleService) resolveCategory(ctx context.Context, categorySlug *string) (*string, error) {
	if categorySlug == nil || *categorySlug == "" {
		return nil, nil
	}
	category, err := s.categoryRepo.FindBySlug(ctx, *categorySlug)
	if err != nil {
		return nil, fmt.Errorf("unknown category %q: %w", *categorySlug, err)
	}
	return &category.ID, nil
}

// Create inserts a new article. The author is always the acting identity;
// any author supplied in the payload is ignored.
func (s *ArticleService) Create(ctx context.Context, actor policy.Actor, req CreateArticleRequest) (*model.Article, error) {
	if !policy.CanCreateArticle(actor) {
		return nil, common.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	categoryID, err := s.resolveCategory(ctx, req.CategorySlug)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusDraft
	}

	article := &model.Article{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Slug:          slug.Make(req.Title),
		Content:       req.Content,
		Summary:       req.Summary,
		FeaturedImage: req.FeaturedImage,
		AuthorID:      actor.ID,
		CategoryID:    categoryID,
		Status:        status,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// GetBySlug returns a single article subject to the actor's visibility.
// Reads of published articles bump the view counter.
func (s *ArticleService) GetBySlug(ctx context.Context, actor policy.Actor, articleSlug string) (*model.Article, error) {
	article, err := s.articleRepo.FindBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	if !policy.CanReadArticle(actor, article) {
		// Hidden articles are indistinguishable from absent ones.
		return nil, common.ErrNotFound
	}
	if article.Status == model.StatusPublished {
		if err := s.articleRepo.IncrementViews(ctx, article.ID); err != nil {
			zap.L().Warn("failed to increment article views", zap.String("article_id", article.ID), zap.Error(err))
		} else {
			article.ViewsCount++
		}
	}
	return article, nil
}

func (s *ArticleService) List(ctx context.Context, actor policy.Actor, page, pageSize int) ([]model.Article, int, error) {
	filter := repository.ArticleFilter{Statuses: policy.VisibleStatuses(actor)}
	return s.articleRepo.List(ctx, pageSize, (page-1)*pageSize, filter)
}

func (s *ArticleService) Update(ctx context.Context, actor policy.Actor, articleSlug string, req UpdateArticleRequest) (*model.Article, error) {
	article, err := s.articleRepo.FindBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	if !policy.CanWriteArticle(actor, article) {
		return nil, common.ErrUnauthorized
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("title cannot be blank: %w", common.ErrValidation)
		}
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Summary != nil {
		article.Summary = *req.Summary
	}
	if req.FeaturedImage != nil {
		article.FeaturedImage = req.FeaturedImage
	}
	if req.CategorySlug != nil {
		categoryID, err := s.resolveCategory(ctx, req.CategorySlug)
		if err != nil {
			return nil, err
		}
		article.CategoryID = categoryID
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("invalid status %q: %w", *req.Status, common.ErrValidation)
		}
		article.Status = *req.Status
	}

	// Slug, author and published_at are never touched by a generic update.
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, actor policy.Actor, articleSlug string) error {
	article, err := s.articleRepo.FindBySlug(ctx, articleSlug)
	if err != nil {
		return err
	}
	if !policy.CanWriteArticle(actor, article) {
		return common.ErrUnauthorized
	}
	return s.articleRepo.Delete(ctx, article.ID)
}

// Publish transitions an article to published and stamps the publish time.
// Allowed to the author and to admins; anyone else gets a forbidden error and
// no state change. Republishing refreshes the timestamp.
func (s *ArticleService) Publish(ctx context.Context, actor policy.Actor, articleSlug string) (*model.Article, error) {
	article, err := s.articleRepo.FindBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	if !policy.CanPublish(actor, article) {
		return nil, fmt.Errorf("you do not have permission to publish this article: %w", common.ErrForbidden)
	}

	now := time.Now().UTC()
	if err := s.articleRepo.SetPublished(ctx, article.ID, now); err != nil {
		return nil, err
	}
	article.Status = model.StatusPublished
	article.PublishedAt = &now
	return article, nil
}

// MyArticles lists the actor's own articles regardless of status.
func (s *ArticleService) MyArticles(ctx context.Context, actor policy.Actor, page, pageSize int) ([]model.Article, int, error) {
	if !policy.CanListOwnArticles(actor) {
		return nil, 0, common.ErrUnauthorized
	}
	filter := repository.ArticleFilter{AuthorID: actor.ID}
	return s.articleRepo.List(ctx, pageSize, (page-1)*pageSize, filter)
}

// ByCategory lists the actor's visible-status subset for one category. The
// category parameter is mandatory; its absence is a client error checked
// before any query runs.
func (s *ArticleService) ByCategory(ctx context.Context, actor policy.Actor, categorySlug string, page, pageSize int) ([]model.Article, int, error) {
	if categorySlug == "" {
		return nil, 0, fmt.Errorf("category parameter is required: %w", common.ErrBadRequest)
	}
	filter := repository.ArticleFilter{
		Statuses:     policy.VisibleStatuses(actor),
		CategorySlug: categorySlug,
	}
	return s.articleRepo.List(ctx, pageSize, (page-1)*pageSize, filter)
}
