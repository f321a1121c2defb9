// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command storefront is the shop's client: catalog, cart and wishlist,
checkout, order tracking and chat, plus the shop-side order list.

Cart, wishlist and catalog are kept in a local SQLite file (-data,
STOREFRONT_DATA, default storefront-data.db). Orders go to the order API
(-api, STOREFRONT_API, default http://localhost:3318).

	storefront catalog seed
	storefront cart add 1
	storefront checkout -name Alice -phone +15551234567 1
	storefront chat ORD-1A2B3C4D5E6F

Requests have no timeout unless -timeout or STOREFRONT_TIMEOUT is set.
*/
package main
