package policy_test

import (
	"testing"

	"newsdesk/internal/app/policy"
	"newsdesk/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

var (
	anon        = policy.Anonymous()
	contributor = policy.Actor{ID: "u1", Role: model.RoleContributor, Authenticated: true}
	other       = policy.Actor{ID: "u2", Role: model.RoleContributor, Authenticated: true}
	admin       = policy.Actor{ID: "u3", Role: model.RoleAdmin, Authenticated: true}
)

func TestVisibleStatuses(t *testing.T) {
	tests := []struct {
		name  string
		actor policy.Actor
		want  []model.ArticleStatus
	}{
		{"anonymous sees published only", anon, []model.ArticleStatus{model.StatusPublished}},
		{"contributor sees published only", contributor, []model.ArticleStatus{model.StatusPublished}},
		{"admin sees everything", admin, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.VisibleStatuses(tt.actor))
		})
	}
}

func TestCanReadArticle(t *testing.T) {
	draft := &model.Article{AuthorID: "u1", Status: model.StatusDraft}
	published := &model.Article{AuthorID: "u1", Status: model.StatusPublished}

	tests := []struct {
		name    string
		actor   policy.Actor
		article *model.Article
		want    bool
	}{
		{"anonymous cannot read draft", anon, draft, false},
		{"author cannot read own draft through detail", contributor, draft, false},
		{"admin reads draft", admin, draft, true},
		{"anonymous reads published", anon, published, true},
		{"contributor reads published", other, published, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanReadArticle(tt.actor, tt.article))
		})
	}
}

func TestCanPublish(t *testing.T) {
	article := &model.Article{AuthorID: "u1", Status: model.StatusDraft}

	tests := []struct {
		name  string
		actor policy.Actor
		want  bool
	}{
		{"anonymous denied", anon, false},
		{"author allowed", contributor, true},
		{"other contributor denied", other, false},
		{"admin allowed", admin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanPublish(tt.actor, article))
		})
	}
}

func TestWriteCapabilities(t *testing.T) {
	article := &model.Article{AuthorID: "u1"}

	// Generic writes require authentication only; ownership is not checked.
	assert.False(t, policy.CanWriteArticle(anon, article))
	assert.True(t, policy.CanWriteArticle(other, article))

	assert.False(t, policy.CanWriteCategory(anon))
	assert.True(t, policy.CanWriteCategory(contributor))

	assert.False(t, policy.CanWriteUser(anon))
	assert.True(t, policy.CanWriteUser(contributor))

	assert.True(t, policy.CanCreateArticle(contributor))
	assert.False(t, policy.CanCreateArticle(anon))

	assert.True(t, policy.CanListOwnArticles(contributor))
	assert.False(t, policy.CanListOwnArticles(anon))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, admin.IsAdmin())
	assert.False(t, contributor.IsAdmin())
	// An unauthenticated actor claiming the admin role carries no capability.
	assert.False(t, policy.Actor{Role: model.RoleAdmin}.IsAdmin())
}
