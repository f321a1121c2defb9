// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

// Default categories, in filter-bar order
const (
	CategoryAudio       = "Audio"
	CategoryWearables   = "Wearables"
	CategoryComputers   = "Computers"
	CategoryAccessories = "Accessories"
)

// DefaultProducts is the demo catalog loaded by Seed
func DefaultProducts() []Product {
	return []Product{
		{
			ID:       1,
			Name:     "ProSound X9 Wireless Headphones",
			Price:    8990,
			Category: CategoryAudio,
			Image:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
			InStock:  true,
		},
		{
			ID:       2,
			Name:     "FitTrack Ultra Smartwatch",
			Price:    12490,
			Category: CategoryWearables,
			Image:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
			InStock:  true,
		},
		{
			ID:       3,
			Name:     "BoomBox Pro Portable Speaker",
			Price:    6990,
			Category: CategoryAudio,
			Image:    "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500",
			InStock:  true,
		},
		{
			ID:       4,
			Name:     "RazerStrike RGB Gaming Mouse",
			Price:    4990,
			Category: CategoryComputers,
			Image:    "https://images.unsplash.com/photo-1527814050087-3793815479db?w=500",
			InStock:  true,
		},
		{
			ID:       5,
			Name:     "KeyMaster Mechanical Keyboard",
			Price:    7990,
			Category: CategoryComputers,
			Image:    "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500",
			InStock:  false,
		},
		{
			ID:       6,
			Name:     "UltraCharge 20000mAh Power Bank",
			Price:    3490,
			Category: CategoryAccessories,
			Image:    "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=500",
			InStock:  true,
		},
	}
}
