// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package checkout turns one product and a contact form into an order.

The product is copied into a ProductSnapshot when checkout starts, so
edits to the catalog afterwards do not change what is ordered.

	flow := checkout.NewFlow(checkout.Snapshot(p), client)
	flow.SetForm(form)
	number, err := flow.Submit(ctx)

Name and phone are required. Delivery adds DeliverySurcharge to the
total and requires an address. Payment method is only recorded.

A failed submission moves the flow to StatusError and leaves the form as
it was. A successful one moves to StatusSuccess; ChatLink gives the
order's chat page.
*/
package checkout
