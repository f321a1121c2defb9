// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/storefront/middleware"
	"github.com/danielhkuo/storefront/models"
	"github.com/danielhkuo/storefront/notify"
)

type ContactHandler struct {
	notifier notify.Notifier
}

func NewContactHandler(notifier notify.Notifier) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

// ChatNotify handles POST /chat-notify
// Unlike order notifications this one is synchronous: the caller is told
// whether the message reached the shop.
func (h *ContactHandler) ChatNotify(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Message required")
		return
	}

	err := h.notifier.SiteMessage(r.Context(), text)
	if errors.Is(err, notify.ErrNotConfigured) {
		slog.Warn("site message dropped, no channel configured")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Notifications not configured")
		return
	}
	if err != nil {
		slog.Error("failed to deliver site message", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to deliver message")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
