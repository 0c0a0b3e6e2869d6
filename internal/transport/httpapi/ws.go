package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/flight-insight/flightinsight/internal/domain"
	"github.com/flight-insight/flightinsight/internal/logger"
)

// Stream framing markers. Clients accumulate text frames until one of these
// arrives; the error marker is always preceded by a human-readable apology.
const (
	endOfResponseMarker      = "[END_OF_RESPONSE]"
	endOfErrorResponseMarker = "[END_OF_ERROR_RESPONSE]"
	errorApologyText         = "Something went wrong please try again."
)

// ServeWS handles GET /ws. Each text frame received is treated as a query;
// the answer streams back as text frames terminated by a marker. The
// connection serves queries until the client disconnects or an answer
// fails.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	log := logger.FromContext(ctx)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		query := string(msg)
		log.Info("received query", zap.String("query", query))

		err = s.answer.Answer(ctx, query, func(text string) error {
			return conn.WriteMessage(websocket.TextMessage, []byte(text))
		})
		if err != nil {
			if !errors.Is(err, domain.ErrGenerationProviderError) {
				// Write error: the peer is gone, nothing left to tell it.
				log.Warn("answer stream aborted", zap.Error(err))
				return
			}
			log.Error("answer generation failed", zap.Error(err))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(errorApologyText))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(endOfErrorResponseMarker))
			return
		}

		if err := conn.WriteMessage(websocket.TextMessage, []byte(endOfResponseMarker)); err != nil {
			return
		}
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.allowedOrigins["*"] {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Non-browser clients (CLI, tests) send no Origin header.
		return true
	}
	return s.allowedOrigins[origin]
}
