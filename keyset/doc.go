// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package keyset is the persistent cart and wishlist.

Each set holds product ids with set semantics: adding a present id or
removing an absent one is a no-op, never an error. Ids need not refer to
an existing product; readers skip the ones that do not resolve.

Both sets are stored together under the "cart-storage" key as

	{"cart":[1,5],"wishlist":[3]}

and reloaded by Open. Every mutation saves before it commits, so a
failed save returns its error and the in-memory sets stay as they were.

Listeners registered with Subscribe run after each committed change and
receive a copy of both sets.
*/
package keyset
