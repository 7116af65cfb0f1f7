package menu

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"brewbliss/models"
)

const maxNameLength = 100

var (
	ErrMissingFields   = errors.New("name, price, category and description are required")
	ErrInvalidPrice    = errors.New("invalid price value. Must be a non-negative number")
	ErrInvalidCategory = errors.New("category must be one of coffee, bakery or specials")
	ErrNameTooLong     = errors.New("name must be between 1 and 100 characters")
)

// ItemInput is an admin's draft of a new menu item.
type ItemInput struct {
	Name        string
	Price       float64
	Category    string
	Description string
	Image       string
	Featured    bool
}

// ParsePrice accepts a decimal dollar amount. NaN, infinities and negatives are rejected.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingFields
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if err := checkPrice(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkPrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Item validates the draft and assigns id.
func (in ItemInput) Item(id string) (models.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	desc := strings.TrimSpace(in.Description)
	if name == "" || desc == "" || strings.TrimSpace(in.Category) == "" {
		return models.MenuItem{}, ErrMissingFields
	}
	if len(name) > maxNameLength {
		return models.MenuItem{}, ErrNameTooLong
	}
	if err := checkPrice(in.Price); err != nil {
		return models.MenuItem{}, err
	}
	cat, ok := models.ParseCategory(in.Category)
	if !ok {
		return models.MenuItem{}, ErrInvalidCategory
	}
	return models.MenuItem{
		ID:          id,
		Name:        name,
		Description: desc,
		Price:       in.Price,
		Category:    cat,
		Image:       strings.TrimSpace(in.Image),
		Featured:    in.Featured,
	}, nil
}
