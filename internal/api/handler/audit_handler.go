package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dealerdesk/identity-service/internal/core/ports"
)

const defaultAuditLimit = 100

// AuditHandler exposes the authentication audit trail to operators.
type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns the most recent auth events, newest first. Admin only.
//
// @Summary      List recent auth events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query    int  false  "Maximum number of events (default 100)"
// @Success      200    {array}  domain.AuthEvent
// @Failure      403    {object}  map[string]interface{}
// @Router       /audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if err != nil || limit <= 0 || limit > 1000 {
		limit = defaultAuditLimit
	}

	events, err := h.audit.FindRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
