package home

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"brewbliss/app"
	"brewbliss/models"
	"brewbliss/utils"
)

// Visit is the café's public contact card.
type Visit struct {
	Address []string `json:"address"`
	Hours   []string `json:"hours"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
}

var CafeVisit = Visit{
	Address: []string{"123 Artisan Avenue", "New York, NY 10012"},
	Hours:   []string{"Mon - Fri: 7am - 7pm", "Sat - Sun: 8am - 8pm"},
	Email:   "hello@brewandbliss.com",
	Phone:   "+1 (555) 123-4567",
}

// Status is the public loading indicator plus collection sizes.
type Status struct {
	Loading  bool `json:"loading"`
	Items    int  `json:"items"`
	Messages int  `json:"messages"`
}

func CurrentStatus(a *app.App) Status {
	items, messages := a.Store.Counts()
	return Status{Loading: a.Store.IsLoading(), Items: items, Messages: messages}
}

func GetStatus(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Cache-Control", "no-store")
		utils.RespondWithJSON(w, http.StatusOK, CurrentStatus(a))
	}
}

var routeHandlers = map[string]func() (any, error){
	"visit":      wrap(getVisit),
	"categories": wrap(getCategories),
}

func wrap[T any](fn func() (T, error)) func() (any, error) {
	return func() (any, error) {
		return fn()
	}
}

func getVisit() (Visit, error) {
	return CafeVisit, nil
}

type categoryInfo struct {
	Slug  models.Category `json:"slug"`
	Label string          `json:"label"`
}

func getCategories() ([]categoryInfo, error) {
	var out []categoryInfo
	for _, c := range models.Categories() {
		out = append(out, categoryInfo{Slug: c, Label: c.Label()})
	}
	return out, nil
}

// GetHomeContent serves the static sections of the home page by name.
func GetHomeContent(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		section := strings.ToLower(ps.ByName("section"))

		handler, ok := routeHandlers[section]
		if !ok {
			utils.RespondWithError(w, http.StatusNotFound, "Invalid API route")
			return
		}

		data, err := handler()
		if err != nil {
			a.Logger.Printf("Error fetching %s: %v", section, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=60")
		utils.RespondWithJSON(w, http.StatusOK, data)
	}
}
