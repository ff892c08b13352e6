package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/penshort/userlinks/internal/handler/dto"
	"github.com/penshort/userlinks/internal/service"
)

// User API messages.
const (
	MsgUserNotFound       = "User not found"
	MsgEmailExists        = "User with this email already exists"
	MsgEmailTaken         = "Email already taken by another user"
	MsgInvalidCredentials = "Invalid email or password"
	MsgUpdateFailed       = "Failed to update user"
	MsgDeleteFailed       = "Failed to delete user"
	MsgUserDeleted        = "User deleted successfully"
	MsgLoginSuccessful    = "Login successful"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, "list_users", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// Get handles GET /user/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusNotFound, MsgUserNotFound)
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, "get_user", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), toUserInput(req))
	if err != nil {
		h.handleServiceError(w, "create_user", err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, dto.Success(dto.ToUserResponse(user)))
}

// Update handles PUT /user/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusNotFound, MsgUserNotFound)
		return
	}

	var req dto.UserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Update(r.Context(), id, toUserInput(req))
	if err != nil {
		h.handleServiceError(w, "update_user", err)
		return
	}

	h.logger.Info("user_updated", "user_id", id)
	writeJSON(w, http.StatusOK, dto.Success(dto.ToUserResponse(user)))
}

// Delete handles DELETE /user/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusNotFound, MsgUserNotFound)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, "delete_user", err)
		return
	}

	h.logger.Info("user_deleted", "user_id", id)
	writeJSON(w, http.StatusOK, dto.Success(dto.MessageData{Message: MsgUserDeleted}))
}

// Search handles GET /search?name=.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.handleServiceError(w, "search_users", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToUserListResponse(users))
}

// Login handles POST /login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Info("login_failed")
		}
		h.handleServiceError(w, "login", err)
		return
	}

	h.logger.Info("login_success", "user_id", id)
	writeJSON(w, http.StatusOK, dto.Success(dto.LoginData{
		UserID:  id,
		Message: MsgLoginSuccessful,
	}))
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, op string, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, MsgEmailExists)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, MsgEmailTaken)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, service.ErrUpdateFailed):
		writeError(w, http.StatusInternalServerError, MsgUpdateFailed)
	case errors.Is(err, service.ErrDeleteFailed):
		writeError(w, http.StatusInternalServerError, MsgDeleteFailed)
	default:
		h.logger.Error("internal_error", "operation", op, "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternalError)
	}
}

// userID parses the {id} path parameter. Values that overflow int64 are
// treated as unknown users.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func toUserInput(req dto.UserRequest) service.UserInput {
	return service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
}
