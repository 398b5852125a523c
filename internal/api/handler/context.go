package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/dealerdesk/identity-service/internal/api/middleware"
	"github.com/dealerdesk/identity-service/pkg/logger"
)

// requestContext returns the request context enriched with the correlation id
// so services can stamp it on their structured auth events. The id comes from
// X-Correlation-Id, then X-Request-Id, then the id assigned by the RequestID
// middleware.
func requestContext(c echo.Context) context.Context {
	id := c.Request().Header.Get("X-Correlation-Id")
	if id == "" {
		id = c.Request().Header.Get("X-Request-Id")
	}
	if id == "" {
		id = c.Response().Header().Get(echo.HeaderXRequestID)
	}
	return logger.WithCorrelationID(c.Request().Context(), id)
}

// actorID returns the authenticated user's id injected by the Auth
// middleware; "" when the route is unauthenticated.
func actorID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextUserID).(string)
	return id
}
