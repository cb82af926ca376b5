package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/api/middleware"
	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new admin account. Exactly one of the role flags must
// be true; the check runs before the service is called. Anonymous callers
// may only create demo accounts once the first account exists.
//
// @Summary      Register a new admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Admin registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	role, err := domain.RoleFromFlags(domain.RoleFlags{
		IsAdmin:      req.IsAdmin,
		IsSuperAdmin: req.IsSuperAdmin,
		IsDemo:       req.IsDemo,
	})
	if err != nil {
		return err
	}

	admin, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		Role:       role,
		CallerRole: middleware.RoleFrom(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "Admin registered successfully",
		Admin:   toAdminResponse(admin),
	})
}

// Login authenticates an admin and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, admin, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		Admin:   toAdminResponse(admin),
	})
}
