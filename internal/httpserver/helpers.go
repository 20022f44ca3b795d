package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/events"
	"storefront/internal/logging"
	mwauth "storefront/internal/middleware/auth"
)

func getUserID(c echo.Context) (uuid.UUID, error) {
	v := c.Get(mwauth.CtxUserID)
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return userID, nil
}

// publish is best-effort: event delivery never fails a request.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("event_publish_failed", "topic", topic, "error", err)
	}
}
