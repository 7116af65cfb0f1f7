package pages

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"brewbliss/admin"
	"brewbliss/auth"
	"brewbliss/contact"
	"brewbliss/filemgr"
	"brewbliss/home"
	"brewbliss/menu"
	"brewbliss/middleware"
	"brewbliss/utils"
)

const maxUploadBody = filemgr.MaxPhotoSize + 1<<20

func (p *Pages) SubmitContact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	name, email, message := r.PostFormValue("name"), r.PostFormValue("email"), r.PostFormValue("message")

	msg, err := contact.NewMessage(name, email, message, p.now())
	if err != nil {
		p.render(w, r, http.StatusBadRequest, "contact", "Contact", contactData{
			Visit:   home.CafeVisit,
			Error:   err.Error(),
			Name:    name,
			Email:   email,
			Message: message,
		})
		return
	}

	p.app.ReceiveMessage(msg)
	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

func (p *Pages) formOf(r *http.Request) itemForm {
	return itemForm{
		Name:        r.PostFormValue("name"),
		Price:       r.PostFormValue("price"),
		Category:    r.PostFormValue("category"),
		Ingredients: r.PostFormValue("ingredients"),
		Description: r.PostFormValue("description"),
		Featured:    r.PostFormValue("featured") != "",
	}
}

// parseItemForm accepts both multipart (with a photo) and urlencoded posts.
func parseItemForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	err := r.ParseMultipartForm(maxUploadBody)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// AddMenuItem handles the dashboard's add form. The photo is optional;
// without one the item shows its category placeholder.
func (p *Pages) AddMenuItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !p.requireAdmin(w, r) {
		return
	}
	if err := parseItemForm(w, r); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	form := p.formOf(r)
	fail := func(err error) {
		p.render(w, r, http.StatusBadRequest, "admin", "Admin", p.adminData(tabMenu, form, err.Error()))
	}

	price, err := menu.ParsePrice(form.Price)
	if err != nil {
		fail(err)
		return
	}
	input := menu.ItemInput{
		Name:        form.Name,
		Price:       price,
		Category:    form.Category,
		Description: form.Description,
		Featured:    form.Featured,
	}
	// Validate before touching the disk so a bad draft leaves no orphan photo.
	if _, err := input.Item(""); err != nil {
		fail(err)
		return
	}

	image, err := p.app.Photos.SaveFormFile(r.MultipartForm, "photo")
	if err != nil {
		p.app.Logger.Printf("admin: photo upload: %v", err)
		fail(err)
		return
	}
	input.Image = image

	item, err := input.Item(utils.NewID())
	if err != nil {
		fail(err)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	p.app.AddMenuItem(user.Email, item)
	http.Redirect(w, r, "/admin?tab=menu", http.StatusSeeOther)
}

func (p *Pages) DeleteMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !p.requireAdmin(w, r) {
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	p.app.DeleteMenuItem(user.Email, ps.ByName("id"))
	http.Redirect(w, r, "/admin?tab=menu", http.StatusSeeOther)
}

// Describe fills the add form's description from name and ingredients,
// keeping everything else the admin had typed.
func (p *Pages) Describe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !p.requireAdmin(w, r) {
		return
	}
	if err := parseItemForm(w, r); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	form := p.formOf(r)
	req := admin.DescribeRequest{Name: form.Name, Ingredients: form.Ingredients}
	if err := req.Validate(); err != nil {
		p.render(w, r, http.StatusBadRequest, "admin", "Admin", p.adminData(tabMenu, form, err.Error()))
		return
	}

	form.Description = admin.GenerateDescription(r.Context(), p.app, req)
	p.render(w, r, http.StatusOK, "admin", "Admin", p.adminData(tabMenu, form, ""))
}

// Login is the overlay's simulated sign-in.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	_, token, exp, err := p.app.Login(auth.EmailOrDefault(r.PostFormValue("email")))
	if err != nil {
		p.app.Logger.Printf("login: %v", err)
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}
	p.app.Sessions.SetCookie(w, token, exp)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout ends the session only for the admin holding it.
func (p *Pages) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, ok := middleware.UserFromContext(r.Context()); ok {
		p.app.Logout()
	}
	p.app.Sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
