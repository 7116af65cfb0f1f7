package models

import (
	"fmt"
	"strings"
)

// Category is the closed set of menu sections.
type Category string

const (
	CategoryCoffee   Category = "coffee"
	CategoryBakery   Category = "bakery"
	CategorySpecials Category = "specials"
)

// FilterAll is the menu filter that selects every category.
const FilterAll = "all"

// Categories returns the menu sections in display order.
func Categories() []Category {
	return []Category{CategoryCoffee, CategoryBakery, CategorySpecials}
}

// ParseCategory matches s against the known categories, ignoring case and surrounding space.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryCoffee, CategoryBakery, CategorySpecials:
		return c, true
	}
	return "", false
}

// Label is the capitalised name shown on filter pills and the printed menu.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// MenuItem is a catalog entry. Items are never edited in place.
type MenuItem struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Price       float64  `json:"price" bson:"price"`
	Category    Category `json:"category" bson:"category"`
	Image       string   `json:"image,omitempty" bson:"image,omitempty"`
	Featured    bool     `json:"featured,omitempty" bson:"featured,omitempty"`
}

// DisplayPrice renders the price in dollars with two decimals.
func (m MenuItem) DisplayPrice() string {
	return fmt.Sprintf("$%.2f", m.Price)
}
