package filemgr

import (
	"bytes"
	"fmt"
	"image/color"
	"net/http"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"

	"brewbliss/models"
)

const (
	placeholderWidth  = 400
	placeholderHeight = 300
)

var placeholderColors = map[models.Category]color.NRGBA{
	models.CategoryCoffee:   {R: 0x6f, G: 0x4e, B: 0x37, A: 0xff},
	models.CategoryBakery:   {R: 0xd9, G: 0xa4, B: 0x65, A: 0xff},
	models.CategorySpecials: {R: 0x7a, G: 0x8b, B: 0x5c, A: 0xff},
}

var neutralColor = color.NRGBA{R: 0xe7, G: 0xe0, B: 0xd6, A: 0xff}

var (
	placeholderMu    sync.Mutex
	placeholderCache = map[models.Category][]byte{}
)

// Placeholder renders a solid PNG tile for items that have no photo.
func Placeholder(cat models.Category) ([]byte, error) {
	placeholderMu.Lock()
	defer placeholderMu.Unlock()
	if data, ok := placeholderCache[cat]; ok {
		return data, nil
	}

	fill, ok := placeholderColors[cat]
	if !ok {
		fill = neutralColor
	}
	img := imaging.New(placeholderWidth, placeholderHeight, fill)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	placeholderCache[cat] = buf.Bytes()
	return buf.Bytes(), nil
}

// PlaceholderHandler serves /media/placeholder/:category.
func PlaceholderHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cat, ok := models.ParseCategory(ps.ByName("category"))
	if !ok {
		http.Error(w, "Unknown category", http.StatusNotFound)
		return
	}
	data, err := Placeholder(cat)
	if err != nil {
		http.Error(w, "Failed to render placeholder", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

// PlaceholderURL is the tile used when an item has no image.
func PlaceholderURL(cat models.Category) string {
	return "/media/placeholder/" + string(cat)
}
