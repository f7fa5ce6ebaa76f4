package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/xknRiya/cats-api/internal/auth"
	"github.com/xknRiya/cats-api/internal/http/respond"
	"github.com/xknRiya/cats-api/internal/models/dto"
	"github.com/xknRiya/cats-api/internal/service"
)

// AuthHandler serves /auth/register, /auth/login and /auth/me.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		internalError(w, r, h.logger, "register failed", err)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.ProfileResponse{Email: created.Email, Role: created.Role})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		internalError(w, r, h.logger, "login failed", err)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.LoginResponse{AccessToken: token})
}

// HandleMe expects Authenticate (and usually RequireRoles) in front of it.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}
	me := h.svc.Me(principal)
	respond.JSON(w, http.StatusOK, dto.ProfileResponse{Email: me.Email, Role: me.Role})
}
