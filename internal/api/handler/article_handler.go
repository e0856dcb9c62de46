package handler

import (
	"encoding/json"
	"net/http"

	"newsdesk/internal/api/middleware"
	"newsdesk/internal/app/service"
	"newsdesk/internal/common"
	"newsdesk/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(as *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: as}
}

func (h *ArticleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listArticles)            // GET /api/v1/articles
	r.Get("/by_category", h.byCategory)   // GET /api/v1/articles/by_category?category=tech
	r.Get("/{articleSlug}", h.getArticle) // GET /api/v1/articles/hello-world

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/my_articles", h.myArticles)
		authed.Post("/", h.createArticle)
		authed.Put("/{articleSlug}", h.updateArticle)
		authed.Delete("/{articleSlug}", h.deleteArticle)
		authed.Post("/{articleSlug}/publish", h.publishArticle)
	})
}

type PaginatedArticlesResponse struct {
	Articles []model.Article `json:"articles"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func (h *ArticleHandler) listArticles(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	page, pageSize := parsePagination(r)

	articles, total, err := h.articleService.List(r.Context(), actor, page, pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedArticlesResponse{
		Articles: articles,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *ArticleHandler) getArticle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	article, err := h.articleService.GetBySlug(r.Context(), actor, chi.URLParam(r, "articleSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) createArticle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req service.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	article, err := h.articleService.Create(r.Context(), actor, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) updateArticle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req service.UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	article, err := h.articleService.Update(r.Context(), actor, chi.URLParam(r, "articleSlug"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) deleteArticle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.articleService.Delete(r.Context(), actor, chi.URLParam(r, "articleSlug")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ArticleHandler) publishArticle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	article, err := h.articleService.Publish(r.Context(), actor, chi.URLParam(r, "articleSlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) myArticles(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	page, pageSize := parsePagination(r)

	articles, total, err := h.articleService.MyArticles(r.Context(), actor, page, pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedArticlesResponse{
		Articles: articles,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *ArticleHandler) byCategory(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	page, pageSize := parsePagination(r)
	categorySlug := r.URL.Query().Get("category")

	articles, total, err := h.articleService.ByCategory(r.Context(), actor, categorySlug, page, pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedArticlesResponse{
		Articles: articles,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
