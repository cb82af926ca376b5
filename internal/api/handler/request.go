package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

// parsePage reads ?page= and ?limit=. Missing, non-numeric and
// non-positive values fall back to the defaults.
func parsePage(c echo.Context) ports.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.NewPageRequest(page, limit)
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid " + label + " id")
	}
	return id, nil
}

// bind decodes the body and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
