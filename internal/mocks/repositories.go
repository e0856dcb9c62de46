// Package mocks provides in-memory repository and store implementations for
// tests.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"
	"newsdesk/internal/domain/repository"
)

type MemUserRepository struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewMemUserRepository() *MemUserRepository {
	return &MemUserRepository{users: map[string]model.User{}}
}

func (r *MemUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *MemUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	user.HashedPassword = stored.HashedPassword
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	user.HashedPassword = hashedPassword
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func (r *MemUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *MemUserRepository) List(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []model.User
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	total := len(users)
	if offset >= len(users) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], total, nil
}

type MemCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]model.Category
}

func NewMemCategoryRepository() *MemCategoryRepository {
	return &MemCategoryRepository{categories: map[string]model.Category{}}
}

func (r *MemCategoryRepository) Create(ctx context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == c.Name || existing.Slug == c.Slug {
			return fmt.Errorf("category with this name or slug already exists: %w", common.ErrConflict)
		}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.categories[c.ID] = *c
	return nil
}

func (r *MemCategoryRepository) Update(ctx context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return common.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.categories[c.ID] = *c
	return nil
}

func (r *MemCategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *MemCategoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			out := c
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var categories []model.Category
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

type MemArticleRepository struct {
	mu       sync.Mutex
	articles map[string]model.Article
	catRepo  *MemCategoryRepository
}

func NewMemArticleRepository(catRepo *MemCategoryRepository) *MemArticleRepository {
	return &MemArticleRepository{articles: map[string]model.Article{}, catRepo: catRepo}
}

func (r *MemArticleRepository) Create(ctx context.Context, a *model.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.articles {
		if existing.Slug == a.Slug {
			return fmt.Errorf("article with this slug already exists: %w", common.ErrConflict)
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.articles[a.ID] = *a
	return nil
}

func (r *MemArticleRepository) Update(ctx context.Context, a *model.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.articles[a.ID]
	if !ok {
		return common.ErrNotFound
	}
	// Mirrors SQL column list: slug, author, views and published_at stay.
	stored.Title = a.Title
	stored.Content = a.Content
	stored.Summary = a.Summary
	stored.FeaturedImage = a.FeaturedImage
	stored.CategoryID = a.CategoryID
	stored.Status = a.Status
	stored.UpdatedAt = time.Now()
	r.articles[a.ID] = stored
	return nil
}

func (r *MemArticleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *MemArticleRepository) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.Slug == slug {
			out := a
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemArticleRepository) categorySlugOf(a model.Article) string {
	if a.CategoryID == nil || r.catRepo == nil {
		return ""
	}
	for _, c := range r.catRepo.categories {
		if c.ID == *a.CategoryID {
			return c.Slug
		}
	}
	return ""
}

func (r *MemArticleRepository) List(ctx context.Context, limit, offset int, filter repository.ArticleFilter) ([]model.Article, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []model.Article
	for _, a := range r.articles {
		if len(filter.Statuses) > 0 {
			found := false
			for _, s := range filter.Statuses {
				if a.Status == s {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.AuthorID != "" && a.AuthorID != filter.AuthorID {
			continue
		}
		if filter.CategorySlug != "" && r.categorySlugOf(a) != filter.CategorySlug {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *MemArticleRepository) SetPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return common.ErrNotFound
	}
	a.Status = model.StatusPublished
	a.PublishedAt = &publishedAt
	a.UpdatedAt = time.Now()
	r.articles[id] = a
	return nil
}

func (r *MemArticleRepository) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return common.ErrNotFound
	}
	a.ViewsCount++
	r.articles[id] = a
	return nil
}

type MemRefreshStore struct {
	mu   sync.Mutex
	jtis map[string]string
}

func NewMemRefreshStore() *MemRefreshStore {
	return &MemRefreshStore{jtis: map[string]string{}}
}

func (s *MemRefreshStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jtis[jti] = userID
	return nil
}

func (s *MemRefreshStore) Exists(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jtis[jti]
	return ok, nil
}

func (s *MemRefreshStore) Revoke(ctx context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jtis, jti)
	return nil
}
