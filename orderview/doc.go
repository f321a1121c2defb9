// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package orderview holds the state behind the order pages: the per-order
chat, order tracking, and the shop's order list.

Each view keeps its own state, refreshed by polling the order API:

	ChatView    every 5s   loading -> found | not-found
	TrackView   every 5s   while watching
	OrdersView  every 10s

A successful poll replaces the view's data wholesale. A failed one keeps
what is on screen and sets Err to a generic message; the next poll tries
again. Start runs the poll loop and Stop ends it. All fetches of a view,
including the one right after a send or a status change, go through its
single poll loop, so responses are applied in request order.

Render functions print a view's state as plain text.
*/
package orderview
