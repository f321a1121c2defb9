// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog holds the product list and the catalog page logic.

# Provider

Provider owns the products and persists them under "products-storage":

	{"products":[{"id":1,"name":"...","price":8990,"category":"Audio","image":"...","inStock":true}]}

New products get id = max(now in unix millis, last id + 1). Update and
delete of an unknown id do nothing. Deleting a product does not touch the
cart or wishlist.

# View

View combines a Provider with the cart/wishlist store:

	v := catalog.NewView(provider, keys)
	cards := v.Cards(catalog.Query{Search: "speaker", Sort: catalog.SortPriceAsc})

Search is a case-insensitive substring match on the name. Category is an
exact match; "" and "all" disable it. Sorts are stable.

CartItems and WishlistItems skip ids that no longer resolve to a product.
*/
package catalog
