// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package orderclient is the typed HTTP client for the order backend.

	c, err := orderclient.New("http://localhost:3318", nil)
	number, err := c.CreateOrder(ctx, req)

Each operation maps to one endpoint of Endpoints. Paths are resolved
against the base URL; an absolute URL may be given instead.

A 404 satisfies errors.Is(err, ErrNotFound). Every other non-2xx answer
is an *APIError with the backend's message. Transport failures are
returned wrapped as-is.

The client sets no timeout of its own. Callers bound requests with the
context or by passing an *http.Client with a Timeout.
*/
package orderclient
