package product

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
)

// Seed loads the built-in catalog. Existing products win, so a snapshot
// restored before seeding is not overwritten.
func Seed(ctx context.Context, repo Repository) {
	samples := []Product{
		{ID: "PROD001", Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 10,
			Category: "electronics", Description: "15-inch laptop, 16GB RAM", Image: "./images/PROD001.png"},
		{ID: "PROD002", Name: "Smartphone", Price: decimal.RequireFromString("599.99"), Stock: 25,
			Category: "electronics", Description: "Dual-SIM smartphone, 128GB", Image: "./images/PROD002.png"},
		{ID: "PROD003", Name: "Headphones", Price: decimal.RequireFromString("149.99"), Stock: 50,
			Category: "audio", Description: "Wireless over-ear headphones", Image: "./images/PROD003.png"},
		{ID: "PROD004", Name: "Tablet", Price: decimal.RequireFromString("399.99"), Stock: 15,
			Category: "electronics", Description: "10-inch tablet, 64GB", Image: "./images/PROD004.png"},
		{ID: "PROD005", Name: "Smartwatch", Price: decimal.RequireFromString("199.99"), Stock: 30,
			Category: "wearables", Description: "Fitness smartwatch, GPS", Image: "./images/PROD005.png"},
	}
	seeded := 0
	for i := range samples {
		if _, err := repo.GetByID(ctx, samples[i].ID); err == nil {
			continue
		}
		_ = repo.Put(ctx, &samples[i])
		seeded++
	}
	log.Printf("[seed] %d products seeded", seeded)
}
