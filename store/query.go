package store

import "brewbliss/models"

// FeaturedLimit is how many featured items the home page highlights.
const FeaturedLimit = 3

// FilterByCategory keeps the items matching filter, preserving order.
// FilterAll keeps everything; an unknown filter returns ok == false.
func FilterByCategory(items []models.MenuItem, filter string) (out []models.MenuItem, ok bool) {
	if filter == "" || filter == models.FilterAll {
		return items, true
	}
	category, ok := models.ParseCategory(filter)
	if !ok {
		return nil, false
	}
	out = make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out, true
}

// Featured returns up to n featured items in catalog order.
func Featured(items []models.MenuItem, n int) []models.MenuItem {
	out := make([]models.MenuItem, 0, n)
	for _, item := range items {
		if len(out) == n {
			break
		}
		if item.Featured {
			out = append(out, item)
		}
	}
	return out
}
