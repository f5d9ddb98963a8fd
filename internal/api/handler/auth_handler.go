package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/metrics"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/middleware"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/ports"
)

// AuthHandler serves registration, both login modes, logout, the current-user
// projection and token refresh.
type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	audit       ports.AuditSink
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, audit ports.AuditSink) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, audit: audit}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the identity projection returned by every auth endpoint.
// The token field is present only on token-issuing endpoints; the password
// hash is excluded by the domain type's json tags.
type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *domain.Identity `json:"user,omitempty"`
}

// Register creates a new member account.
//
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	h.recordAudit(c, identity.ID, domain.AuditActionRegister, "", identity.Email)
	return c.JSON(http.StatusCreated, authResponse{User: identity})
}

// Login authenticates with email and password and opens a server-side
// session. A fresh bearer token is also returned so the client may switch to
// stateless auth for subsequent calls.
//
// @Summary      Session login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, true)
}

// TokenLogin authenticates with email and password and returns a bearer
// token without opening a session.
//
// @Summary      Token login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) TokenLogin(c echo.Context) error {
	return h.login(c, false)
}

func (h *AuthHandler) login(c echo.Context, withSession bool) error {
	mode := metrics.ResolutionToken
	if withSession {
		mode = metrics.ResolutionSession
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, signed, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues(mode, "invalid_credentials").Inc()
		}
		return err
	}

	if withSession {
		if err := h.sessions.SetIdentity(c.Request().Context(), identity.ID); err != nil {
			return err
		}
		metrics.TokensIssuedTotal.WithLabelValues("session_login").Inc()
	} else {
		metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	}
	metrics.LoginAttemptsTotal.WithLabelValues(mode, "ok").Inc()

	h.recordAudit(c, identity.ID, domain.AuditActionLogin, "", mode)
	return c.JSON(http.StatusOK, authResponse{Token: signed, User: identity})
}

// Logout invalidates the server-side session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Invalidate(c.Request().Context()); err != nil {
		return err
	}

	h.recordAudit(c, identity.ID, domain.AuditActionLogout, "", "")
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Me returns the resolved identity for the current request: live for session
// auth, issuance-time snapshot for bearer auth.
//
// @Summary      Current member
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /user [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: identity})
}

// Refresh reissues a bearer token from the identity's current stored state.
//
// @Summary      Refresh bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	resolved, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	identity, signed, err := h.authService.Refresh(c.Request().Context(), resolved.ID)
	if err != nil {
		// The subject no longer exists (or storage misbehaved); answer with
		// the uniform token rejection rather than leaking the cause.
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	h.recordAudit(c, identity.ID, domain.AuditActionRefresh, "", "")
	return c.JSON(http.StatusOK, authResponse{Token: signed, User: identity})
}

func (h *AuthHandler) recordAudit(c echo.Context, userID, action, oldValue, newValue string) {
	h.audit.Record(c.Request().Context(), domain.AuditEntry{
		UserID:      userID,
		Action:      action,
		EntityType:  "identity",
		EntityID:    userID,
		OldValue:    oldValue,
		NewValue:    newValue,
		ClientIP:    c.RealIP(),
		ClientAgent: c.Request().UserAgent(),
		At:          time.Now().UTC(),
	})
}
