package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/session"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// SessionEventsHandler streams session changes to the browser over SSE so an
// open tab learns immediately when its session is cleared elsewhere.
type SessionEventsHandler struct {
	store   *session.Store
	session config.SessionConfig
}

// NewSessionEventsHandler constructs handler.
func NewSessionEventsHandler(store *session.Store, sessionCfg config.SessionConfig) *SessionEventsHandler {
	return &SessionEventsHandler{store: store, session: sessionCfg}
}

// Stream GET /auth/session/events.
//
// The first event replays the current session state, then each commit or
// clear of the caller's token produces another. A cleared session is sent as
// a session_invalidated event and ends the stream.
func (h *SessionEventsHandler) Stream(c *fiber.Ctx) error {
	token := c.Cookies(h.session.CookieName)
	if token == "" {
		return apperrors.NewUnauthorized("session cookie required")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// The request ctx outlives this handler and is cancelled when the
	// client disconnects, which tears down the watcher.
	ctx := c.Context()
	updates := h.store.Watch(ctx, token)

	ctx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for sess := range updates {
			if sess == nil {
				fmt.Fprint(w, "event: session_invalidated\ndata: {}\n\n")
				_ = w.Flush()
				return
			}
			payload, err := json.Marshal(dto.NewSessionResponse(sess))
			if err != nil {
				return
			}
			fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
