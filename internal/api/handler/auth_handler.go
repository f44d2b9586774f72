package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retainsure/retention-console/internal/api/middleware"
	"github.com/retainsure/retention-console/internal/core/domain"
	"github.com/retainsure/retention-console/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	FullName      string `json:"fullName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	ContactNumber string `json:"contactNumber" validate:"required"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type sessionResponse struct {
	Session    *domain.Session `json:"session"`
	RedirectTo string          `json:"redirectTo,omitempty"`
}

// Login authenticates against the retention backend and establishes a
// console session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.sessions.Login(backendCtx(c), middleware.SessionID(c), req.Email, req.Password)
	if err != nil {
		return err
	}

	redirect := sess.Role.HomePath()
	if returnURL := c.QueryParam("returnUrl"); localPath(returnURL) {
		redirect = returnURL
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: sess, RedirectTo: redirect})
}

// Register forwards an account registration to the backend. No session is
// created; the new user still has to log in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.sessions.Register(backendCtx(c), ports.RegisterInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "registered"})
}

// Logout clears the console session. Calling it while already logged out
// succeeds all the same.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(backendCtx(c), middleware.SessionID(c))
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

// Session returns the current session snapshot, or a null session when
// logged out. The shell reads this on startup to rehydrate its navbar.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{Session: middleware.CurrentSession(c)})
}

// UpdateProfile applies a profile change through the backend and returns the
// merged session.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /users/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	if _, err := ctxSession(c); err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.sessions.UpdateProfile(backendCtx(c), middleware.SessionID(c), domain.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: sess})
}
