// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions for the
order backend.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /orders-list", middleware.WithLogging(handler))

Logs method, path, status, client IP and duration_ms once the handler
returns.

# Panic Recovery and CORS

The router wraps the whole mux:

	handler := middleware.Recover(middleware.CORS(mux))

CORS reflects the request origin and answers OPTIONS preflights itself,
matching what the browser storefront expects from the hosted functions.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Order number required")

	var req models.CreateOrderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Errors are written as {"error": <status text>, "message": <detail>}.
*/
package middleware
