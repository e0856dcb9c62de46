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

type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.login) // POST /api/v1/users/login

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/", h.listUsers)
		authed.Post("/", h.createUser)
		authed.Get("/me", h.me)
		authed.Get("/{userID}", h.getUser)
		authed.Put("/{userID}", h.updateUser)
		authed.Delete("/{userID}", h.deleteUser)
		authed.Put("/{userID}/change_password", h.changePassword)
	})
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	user, err := h.userService.Me(r.Context(), actor)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	page, pageSize := parsePagination(r)

	users, total, err := h.userService.List(r.Context(), actor, page, pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedUsersResponse struct {
		Users    []model.User `json:"users"`
		Total    int          `json:"total"`
		Page     int          `json:"page"`
		PageSize int          `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedUsersResponse{
		Users:    users,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// createUser lets an authenticated caller (typically an admin) provision a
// user directly; it shares the register flow.
func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	user, err := h.userService.GetByID(r.Context(), actor, chi.URLParam(r, "userID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	user, err := h.userService.Update(r.Context(), actor, chi.URLParam(r, "userID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.userService.Delete(r.Context(), actor, chi.URLParam(r, "userID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req service.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.userService.ChangePassword(r.Context(), actor, chi.URLParam(r, "userID"), req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Password changed successfully"})
}
