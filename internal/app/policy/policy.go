// Package policy holds the authorization rules for every resource kind as
// pure decision functions. Handlers and services consult these instead of
// branching on roles inline, so the permission table lives in one place.
package policy

import (
	"newsdesk/internal/domain/model"
)

// Actor is the identity resolved from a request's credentials, or anonymous.
type Actor struct {
	ID            string
	Role          string
	Authenticated bool
}

// Anonymous is the actor for requests carrying no (valid) credentials.
func Anonymous() Actor {
	return Actor{}
}

// IsAdmin reports whether the actor carries the elevated staff capability:
// cross-ownership visibility and mutation of otherwise restricted resources.
func (a Actor) IsAdmin() bool {
	return a.Authenticated && a.Role == model.RoleAdmin
}

// VisibleStatuses returns the article statuses the actor may read.
// A nil result means no restriction. Admins see every status; everyone
// else, including authenticated contributors, sees published articles only.
func VisibleStatuses(actor Actor) []model.ArticleStatus {
	if actor.IsAdmin() {
		return nil
	}
	return []model.ArticleStatus{model.StatusPublished}
}

// CanReadArticle applies the same visibility rule to a single article.
// Authors do not get special read access here; they reach their own drafts
// through the my-articles listing.
func CanReadArticle(actor Actor, article *model.Article) bool {
	if actor.IsAdmin() {
		return true
	}
	return article.Status == model.StatusPublished
}

// CanCreateArticle: any authenticated actor may create; the author is forced
// to the actor by the service regardless of request payload.
func CanCreateArticle(actor Actor) bool {
	return actor.Authenticated
}

// CanWriteArticle covers generic update/delete. Ownership is deliberately not
// checked here; only the publish transition is ownership-gated. Tightening
// this would diverge from the documented behavior.
func CanWriteArticle(actor Actor, article *model.Article) bool {
	return actor.Authenticated
}

// CanPublish: the publish transition is allowed to the article's author and
// to admins only.
func CanPublish(actor Actor, article *model.Article) bool {
	if !actor.Authenticated {
		return false
	}
	return actor.ID == article.AuthorID || actor.IsAdmin()
}

// CanListOwnArticles gates the my-articles listing.
func CanListOwnArticles(actor Actor) bool {
	return actor.Authenticated
}

// CanWriteCategory: any authenticated actor, no ownership concept.
func CanWriteCategory(actor Actor) bool {
	return actor.Authenticated
}

// CanReadUser and CanWriteUser require authentication only; cross-identity
// writes are not further restricted.
func CanReadUser(actor Actor) bool {
	return actor.Authenticated
}

func CanWriteUser(actor Actor) bool {
	return actor.Authenticated
}
