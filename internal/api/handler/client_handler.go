package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/core/ports"
)

// ClientHandler handles HTTP requests for client records.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /api/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  clientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	page, err := h.service.ListClients(c.Request().Context(), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientListResponse{
		Clients:    mapAll(page.Items, toClientResponse),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// Get handles GET /api/clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "client")
	if err != nil {
		return err
	}
	client, err := h.service.GetClient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Create handles POST /api/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  createClientResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	client, err := h.service.CreateClient(c.Request().Context(), toClientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createClientResponse{
		Message: "Client added successfully",
		Client:  toClientResponse(client),
	})
}

// Update handles PUT /api/clients/:id as a full replace.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Client ID"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id", "client")
	if err != nil {
		return err
	}
	var req clientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateClient(c.Request().Context(), id, toClientInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Client updated successfully"})
}

// Delete handles DELETE /api/clients/:id.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id", "client")
	if err != nil {
		return err
	}
	if err := h.service.DeleteClient(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Client deleted successfully"})
}

func toClientInput(req clientRequest) ports.ClientInput {
	return ports.ClientInput{
		Name:     req.ClientName,
		Email:    req.Email,
		IsActive: *req.IsActive,
	}
}
