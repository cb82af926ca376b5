package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/core/ports"
)

// AdminHandler handles HTTP requests for admin account management.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// List handles GET /api/admins.
//
// @Summary      List admins
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  adminListResponse
// @Failure      401    {object}  ErrorResponse
// @Router       /api/admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	page, err := h.service.ListAdmins(c.Request().Context(), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminListResponse{
		Admins:     mapAll(page.Items, toAdminResponse),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /api/admins/:id.
//
// @Summary      Get an admin
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Admin ID"
// @Success      200  {object}  adminResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/admins/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "admin")
	if err != nil {
		return err
	}
	admin, err := h.service.GetAdmin(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminResponse(admin))
}

// Update handles PUT /api/admins/:id. Only username and email change.
//
// @Summary      Update an admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Admin ID"
// @Param        body  body      updateAdminRequest  true  "New username and email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/admins/{id} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id", "admin")
	if err != nil {
		return err
	}
	var req updateAdminRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err = h.service.UpdateAdmin(c.Request().Context(), ports.UpdateAdminInput{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin updated successfully"})
}

// Delete handles DELETE /api/admins/:id.
//
// @Summary      Delete an admin
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Admin ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/admins/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id", "admin")
	if err != nil {
		return err
	}
	if err := h.service.DeleteAdmin(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin deleted successfully"})
}
