package handler

import (
	"encoding/json"
	"net/http"

	"newsdesk/internal/api/middleware"
	"newsdesk/internal/app/service"
	"newsdesk/internal/common"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(cs *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCategories)            // GET /api/v1/categories
	r.Get("/{categorySlug}", h.getCategory) // GET /api/v1/categories/tech

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/", h.createCategory)
		authed.Put("/{categorySlug}", h.updateCategory)
		authed.Delete("/{categorySlug}", h.deleteCategory)
	})
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.GetBySlug(r.Context(), chi.URLParam(r, "categorySlug"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req service.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	category, err := h.categoryService.Create(r.Context(), actor, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req service.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	category, err := h.categoryService.Update(r.Context(), actor, chi.URLParam(r, "categorySlug"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.categoryService.Delete(r.Context(), actor, chi.URLParam(r, "categorySlug")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
