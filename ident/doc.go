// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates identifiers for orders and chat messages.

# Order Numbers

Order numbers are the only handle a customer has on an order. They are
random, upper-case and short enough to read over the phone:

	number, err := ident.GenerateOrderNumber() // "ORD-3F9A0C11B2E4"

Tracking input is normalized before lookup:

	n, err := ident.NormalizeOrderNumber("  ord-3f9a0c11b2e4 ")

# Row IDs

Database rows use UUIDs:

	id := ident.NewRowID()

GenerateID is the underlying random hex generator.
*/
package ident
