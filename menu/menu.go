package menu

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"brewbliss/app"
	"brewbliss/middleware"
	"brewbliss/models"
	"brewbliss/store"
	"brewbliss/utils"
)

// GetMenu lists the catalog, optionally filtered by ?category=.
func GetMenu(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if a.Store.IsLoading() {
			w.Header().Set("Retry-After", "1")
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Menu is still brewing")
			return
		}

		filter := r.URL.Query().Get("category")
		if filter == "" {
			filter = models.FilterAll
		}
		items, ok := store.FilterByCategory(a.Store.ListMenuItems(), filter)
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, ErrInvalidCategory.Error())
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		utils.RespondWithJSON(w, http.StatusOK, items)
	}
}

// GetFeatured returns up to three featured items for the home page.
func GetFeatured(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if a.Store.IsLoading() {
			w.Header().Set("Retry-After", "1")
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Menu is still brewing")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, store.Featured(a.Store.ListMenuItems(), store.FeaturedLimit))
	}
}

// AdminListMenu returns the full catalog, loading or not.
func AdminListMenu(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, a.Store.ListMenuItems())
	}
}

type createRequest struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
}

func CreateMenu(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var body createRequest
		if err := utils.DecodeJSON(r, &body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		if body.Price == nil {
			utils.RespondWithError(w, http.StatusBadRequest, ErrMissingFields.Error())
			return
		}

		item, err := ItemInput{
			Name:        body.Name,
			Price:       *body.Price,
			Category:    body.Category,
			Description: body.Description,
			Image:       body.Image,
			Featured:    body.Featured,
		}.Item(utils.NewID())
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		user, _ := middleware.UserFromContext(r.Context())
		a.AddMenuItem(user.Email, item)
		utils.RespondWithJSON(w, http.StatusCreated, item)
	}
}

// DeleteMenu removes the item. Unknown ids succeed too.
func DeleteMenu(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id := strings.TrimSpace(ps.ByName("id"))
		user, _ := middleware.UserFromContext(r.Context())
		a.DeleteMenuItem(user.Email, id)
		w.WriteHeader(http.StatusNoContent)
	}
}
