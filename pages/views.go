package pages

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"brewbliss/home"
	"brewbliss/middleware"
	"brewbliss/models"
	"brewbliss/store"
)

type homeData struct {
	Featured []models.MenuItem
	Visit    home.Visit
}

func (p *Pages) Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	data := homeData{
		Featured: store.Featured(p.app.Store.ListMenuItems(), store.FeaturedLimit),
		Visit:    home.CafeVisit,
	}
	p.render(w, r, http.StatusOK, "home", "Home", data)
}

type menuData struct {
	Filter  string
	Filters []string
	Items   []models.MenuItem
}

func menuFilters() []string {
	out := []string{models.FilterAll}
	for _, c := range models.Categories() {
		out = append(out, string(c))
	}
	return out
}

// Menu shows the catalogue. An unrecognised ?category= shows everything.
func (p *Pages) Menu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all := p.app.Store.ListMenuItems()
	filter := r.URL.Query().Get("category")
	items, ok := store.FilterByCategory(all, filter)
	if !ok || filter == "" {
		filter, items = models.FilterAll, all
	}
	p.render(w, r, http.StatusOK, "menu", "Menu", menuData{
		Filter:  filter,
		Filters: menuFilters(),
		Items:   items,
	})
}

func (p *Pages) About(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	p.render(w, r, http.StatusOK, "about", "Our Story", nil)
}

type contactData struct {
	Visit   home.Visit
	Sent    bool
	Error   string
	Name    string
	Email   string
	Message string
}

func (p *Pages) Contact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	p.render(w, r, http.StatusOK, "contact", "Contact", contactData{
		Visit: home.CafeVisit,
		Sent:  r.URL.Query().Get("sent") == "1",
	})
}

const (
	tabMenu     = "menu"
	tabMessages = "messages"
)

// itemForm keeps what the admin typed so a failed submit can be corrected.
type itemForm struct {
	Name        string
	Price       string
	Category    string
	Ingredients string
	Description string
	Featured    bool
}

type adminData struct {
	Tab        string
	Categories []models.Category
	Items      []models.MenuItem
	Messages   []models.ContactMessage
	Form       itemForm
	Error      string
}

func (p *Pages) adminData(tab string, form itemForm, errMsg string) adminData {
	if tab != tabMessages {
		tab = tabMenu
	}
	if form.Category == "" {
		form.Category = string(models.CategoryCoffee)
	}
	return adminData{
		Tab:        tab,
		Categories: models.Categories(),
		Items:      p.app.Store.ListMenuItems(),
		Messages:   p.app.Store.ListMessages(),
		Form:       form,
		Error:      errMsg,
	}
}

// Admin is the dashboard. Visitors without the current admin session get
// a bare refusal.
func (p *Pages) Admin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !p.requireAdmin(w, r) {
		return
	}
	p.render(w, r, http.StatusOK, "admin", "Admin", p.adminData(r.URL.Query().Get("tab"), itemForm{}, ""))
}

func (p *Pages) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		return true
	}
	p.render(w, r, http.StatusForbidden, "denied", "Access Denied", nil)
	return false
}
