package service_test

import (
	"context"
	"testing"
	"time"

	"newsdesk/internal/app/policy"
	"newsdesk/internal/app/service"
	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"
	"newsdesk/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticleService() (*service.ArticleService, *mocks.MemArticleRepository, *mocks.MemCategoryRepository) {
	catRepo := mocks.NewMemCategoryRepository()
	articleRepo := mocks.NewMemArticleRepository(catRepo)
	return service.NewArticleService(articleRepo, catRepo), articleRepo, catRepo
}

var (
	alice = policy.Actor{ID: "alice-id", Role: model.RoleContributor, Authenticated: true}
	bob   = policy.Actor{ID: "bob-id", Role: model.RoleContributor, Authenticated: true}
	staff = policy.Actor{ID: "staff-id", Role: model.RoleAdmin, Authenticated: true}
)

func TestCreateArticle_AuthorForcedToActor(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	article, err := svc.Create(ctx, alice, service.CreateArticleRequest{
		Title:   "Hello",
		Content: "body",
	})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, article.AuthorID)
	assert.Equal(t, model.StatusDraft, article.Status)
	assert.Equal(t, "hello", article.Slug)
	assert.Nil(t, article.PublishedAt)
}

func TestCreateArticle_RequiresAuthentication(t *testing.T) {
	svc, _, _ := newArticleService()

	_, err := svc.Create(context.Background(), policy.Anonymous(), service.CreateArticleRequest{
		Title:   "Hello",
		Content: "body",
	})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestCreateArticle_Validation(t *testing.T) {
	svc, _, _ := newArticleService()

	_, err := svc.Create(context.Background(), alice, service.CreateArticleRequest{Title: ""})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestListArticles_Visibility(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Draft one", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Live one", Content: "x", Status: model.StatusPublished})
	require.NoError(t, err)

	anonList, total, err := svc.List(ctx, policy.Anonymous(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, anonList, 1)
	assert.Equal(t, model.StatusPublished, anonList[0].Status)

	// An authenticated contributor gets the same restricted view.
	contribList, _, err := svc.List(ctx, bob, 1, 20)
	require.NoError(t, err)
	require.Len(t, contribList, 1)
	assert.Equal(t, model.StatusPublished, contribList[0].Status)

	adminList, total, err := svc.List(ctx, staff, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, adminList, 2)
}

func TestGetBySlug_HiddenDraftLooksAbsent(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Secret", Content: "x"})
	require.NoError(t, err)

	_, err = svc.GetBySlug(ctx, policy.Anonymous(), "secret")
	assert.ErrorIs(t, err, common.ErrNotFound)

	article, err := svc.GetBySlug(ctx, staff, "secret")
	require.NoError(t, err)
	assert.Equal(t, "Secret", article.Title)
}

func TestGetBySlug_IncrementsViewsOnPublished(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Popular", Content: "x", Status: model.StatusPublished})
	require.NoError(t, err)

	first, err := svc.GetBySlug(ctx, policy.Anonymous(), "popular")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ViewsCount)

	second, err := svc.GetBySlug(ctx, policy.Anonymous(), "popular")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ViewsCount)
}

func TestPublish_DeniedForNonOwnerNonStaff(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Mine", Content: "x"})
	require.NoError(t, err)

	_, err = svc.Publish(ctx, bob, "mine")
	assert.ErrorIs(t, err, common.ErrForbidden)

	// No state change: still invisible to anonymous readers.
	_, err = svc.GetBySlug(ctx, policy.Anonymous(), "mine")
	assert.ErrorIs(t, err, common.ErrNotFound)

	article, err := svc.GetBySlug(ctx, staff, "mine")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, article.Status)
	assert.Nil(t, article.PublishedAt)
}

func TestPublish_ByOwnerSetsTimestamp(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Mine", Content: "x"})
	require.NoError(t, err)

	before := time.Now().UTC()
	article, err := svc.Publish(ctx, alice, "mine")
	require.NoError(t, err)

	assert.Equal(t, model.StatusPublished, article.Status)
	require.NotNil(t, article.PublishedAt)
	assert.False(t, article.PublishedAt.Before(before.Truncate(time.Second)))

	// Now visible anonymously.
	visible, err := svc.GetBySlug(ctx, policy.Anonymous(), "mine")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, visible.Status)
}

func TestPublish_RepublishRefreshesTimestamp(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Mine", Content: "x"})
	require.NoError(t, err)

	first, err := svc.Publish(ctx, alice, "mine")
	require.NoError(t, err)
	second, err := svc.Publish(ctx, staff, "mine")
	require.NoError(t, err)

	assert.Equal(t, model.StatusPublished, second.Status)
	assert.False(t, second.PublishedAt.Before(*first.PublishedAt))
}

func TestUpdate_NeverTouchesAuthorSlugOrPublishTime(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Original", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, alice, "original")
	require.NoError(t, err)

	newTitle := "Renamed"
	updated, err := svc.Update(ctx, bob, "original", service.UpdateArticleRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original", updated.Slug)
	assert.Equal(t, alice.ID, updated.AuthorID)

	got, err := svc.GetBySlug(ctx, staff, "original")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.AuthorID)
	assert.NotNil(t, got.PublishedAt)
}

func TestMyArticles_AllStatusesOwnOnly(t *testing.T) {
	svc, _, _ := newArticleService()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Alice draft", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Alice live", Content: "x", Status: model.StatusPublished})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, service.CreateArticleRequest{Title: "Bob live", Content: "x", Status: model.StatusPublished})
	require.NoError(t, err)

	mine, total, err := svc.MyArticles(ctx, alice, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, a := range mine {
		assert.Equal(t, alice.ID, a.AuthorID)
	}

	_, _, err = svc.MyArticles(ctx, policy.Anonymous(), 1, 20)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestByCategory(t *testing.T) {
	svc, _, catRepo := newArticleService()
	ctx := context.Background()

	catSvc := service.NewCategoryService(catRepo)
	_, err := catSvc.Create(ctx, alice, service.CreateCategoryRequest{Name: "Tech"})
	require.NoError(t, err)

	tech := "tech"
	_, err = svc.Create(ctx, alice, service.CreateArticleRequest{Title: "In tech", Content: "x", CategorySlug: &tech, Status: model.StatusPublished})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, service.CreateArticleRequest{Title: "Tech draft", Content: "x", CategorySlug: &tech})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, service.CreateArticleRequest{Title: "No category", Content: "x", Status: model.StatusPublished})
	require.NoError(t, err)

	// Missing parameter is a client error, checked before any query.
	_, _, err = svc.ByCategory(ctx, policy.Anonymous(), "", 1, 20)
	assert.ErrorIs(t, err, common.ErrBadRequest)

	articles, total, err := svc.ByCategory(ctx, policy.Anonymous(), "tech", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, "In tech", articles[0].Title)

	// Admin sees the draft in the category too.
	_, total, err = svc.ByCategory(ctx, staff, "tech", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestCreateArticle_UnknownCategory(t *testing.T) {
	svc, _, _ := newArticleService()

	missing := "nope"
	_, err := svc.Create(context.Background(), alice, service.CreateArticleRequest{
		Title: "Hello", Content: "x", CategorySlug: &missing,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
