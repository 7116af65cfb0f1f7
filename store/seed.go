package store

import "brewbliss/models"

// SeedMenu is the starter catalog loaded by Initialize.
func SeedMenu() []models.MenuItem {
	return []models.MenuItem{
		{
			ID:          "1",
			Name:        "Ethiopian Yirgacheffe",
			Category:    models.CategoryCoffee,
			Price:       6.50,
			Description: "A bright, floral roast with distinct notes of jasmine and lemon zest.",
			Image:       "https://picsum.photos/600/800?random=1",
			Featured:    true,
		},
		{
			ID:          "2",
			Name:        "Matcha Croissant",
			Category:    models.CategoryBakery,
			Price:       5.00,
			Description: "Buttery, flaky layers infused with premium ceremonial grade matcha dust.",
			Image:       "https://picsum.photos/600/800?random=2",
			Featured:    true,
		},
		{
			ID:          "3",
			Name:        "Velvet Cold Brew",
			Category:    models.CategoryCoffee,
			Price:       5.50,
			Description: "Steeped for 24 hours, nitrogen-infused for a creamy, cascading texture.",
			Image:       "https://picsum.photos/600/800?random=3",
		},
		{
			ID:          "4",
			Name:        "Avocado Toast Royale",
			Category:    models.CategorySpecials,
			Price:       12.00,
			Description: "Sourdough topped with smashed avocado, poached egg, and chili flakes.",
			Image:       "https://picsum.photos/600/800?random=4",
			Featured:    true,
		},
	}
}
