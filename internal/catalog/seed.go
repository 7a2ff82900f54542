package catalog

import (
	"github.com/cartwheel-io/storefront/internal/domain"
	"github.com/cartwheel-io/storefront/pkg/slug"
)

// seedProducts returns the demo product set. Prices are in cents.
func seedProducts() []domain.Product {
	products := []domain.Product{
		{
			ID:          "prod-001",
			Name:        "Walnut Desk Organizer",
			Description: "Five-compartment organizer milled from solid walnut, with a felt-lined pen tray.",
			Category:    "Workspace",
			UnitPrice:   2499,
			ImageURL:    "/img/products/walnut-desk-organizer.jpg",
			Rating:      4.6,
			RatingCount: 182,
		},
		{
			ID:          "prod-002",
			Name:        "Ceramic Pour-Over Set",
			Description: "Hand-glazed dripper and carafe for a slow, even extraction. Holds 600 ml.",
			Category:    "Kitchen",
			UnitPrice:   3950,
			ImageURL:    "/img/products/ceramic-pour-over-set.jpg",
			Rating:      4.8,
			RatingCount: 341,
		},
		{
			ID:          "prod-003",
			Name:        "Linen Throw Pillow",
			Description: "Stonewashed linen cover with a duck-feather insert, 45 by 45 centimeters.",
			Category:    "Home",
			UnitPrice:   3499,
			ImageURL:    "/img/products/linen-throw-pillow.jpg",
			Rating:      4.3,
			RatingCount: 97,
		},
		{
			ID:          "prod-004",
			Name:        "Cast Iron Skillet 26cm",
			Description: "Pre-seasoned cast iron with pour spouts on both sides. Oven safe to 260°C.",
			Category:    "Kitchen",
			UnitPrice:   4599,
			ImageURL:    "/img/products/cast-iron-skillet.jpg",
			Rating:      4.9,
			RatingCount: 1204,
		},
		{
			ID:          "prod-005",
			Name:        "Mechanical Keyboard TKL",
			Description: "Tenkeyless board with hot-swappable switches, PBT keycaps and USB-C.",
			Category:    "Electronics",
			UnitPrice:   11900,
			ImageURL:    "/img/products/mechanical-keyboard-tkl.jpg",
			Rating:      4.5,
			RatingCount: 566,
		},
		{
			ID:          "prod-006",
			Name:        "Bamboo Cutting Board",
			Description: "End-grain bamboo board with a juice groove, 38 by 25 centimeters.",
			Category:    "Kitchen",
			UnitPrice:   2199,
			ImageURL:    "/img/products/bamboo-cutting-board.jpg",
			Rating:      4.4,
			RatingCount: 268,
		},
		{
			ID:          "prod-007",
			Name:        "Wool Area Rug 120x180",
			Description: "Flat-woven wool rug in a muted geometric pattern, cotton backing.",
			Category:    "Home",
			UnitPrice:   15900,
			ImageURL:    "/img/products/wool-area-rug.jpg",
			Rating:      4.2,
			RatingCount: 64,
		},
		{
			ID:          "prod-008",
			Name:        "USB-C Charging Hub",
			Description: "Six-port GaN charger delivering 100 W total, with a braided two-meter cable.",
			Category:    "Electronics",
			UnitPrice:   5499,
			ImageURL:    "/img/products/usb-c-charging-hub.jpg",
			Rating:      4.1,
			RatingCount: 423,
		},
		{
			ID:          "prod-009",
			Name:        "Brass Desk Lamp",
			Description: "Adjustable arm lamp in brushed brass with a warm-dimmable LED bulb included.",
			Category:    "Workspace",
			UnitPrice:   7800,
			ImageURL:    "/img/products/brass-desk-lamp.jpg",
			Rating:      4.7,
			RatingCount: 155,
		},
		{
			ID:          "prod-010",
			Name:        "Stoneware Dinner Plates, Set of 4",
			Description: "Reactive-glaze stoneware, dishwasher and microwave safe.",
			Category:    "Kitchen",
			UnitPrice:   6200,
			ImageURL:    "/img/products/stoneware-dinner-plates.jpg",
			Rating:      4.6,
			RatingCount: 312,
		},
		{
			ID:          "prod-011",
			Name:        "Noise-Isolating Earbuds",
			Description: "Wired earbuds with a flat tangle-resistant cable and three tip sizes.",
			Category:    "Electronics",
			UnitPrice:   2950,
			ImageURL:    "/img/products/noise-isolating-earbuds.jpg",
			Rating:      3.9,
			RatingCount: 781,
		},
		{
			ID:          "prod-012",
			Name:        "Oak Bookshelf Bracket Pair",
			Description: "Solid oak brackets for floating shelves up to 30 centimeters deep.",
			Category:    "Home",
			UnitPrice:   1899,
			ImageURL:    "/img/products/oak-bookshelf-brackets.jpg",
			Rating:      4.0,
			RatingCount: 48,
		},
		{
			ID:          "prod-013",
			Name:        "Felt Laptop Sleeve 14\"",
			Description: "Merino wool felt sleeve with a leather snap closure and inner pocket.",
			Category:    "Workspace",
			UnitPrice:   3250,
			ImageURL:    "/img/products/felt-laptop-sleeve.jpg",
			Rating:      4.4,
			RatingCount: 209,
		},
		{
			ID:          "prod-014",
			Name:        "Copper French Press",
			Description: "Double-walled press with a copper finish, keeps coffee hot for an hour. 1 l.",
			Category:    "Kitchen",
			UnitPrice:   5850,
			ImageURL:    "/img/products/copper-french-press.jpg",
			Rating:      4.5,
			RatingCount: 176,
		},
	}

	for i := range products {
		products[i].Slug = slug.Generate(products[i].Name)
	}
	return products
}
