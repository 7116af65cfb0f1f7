// Package auth is the simulated admin login. Any email signs in as admin;
// the token it hands out is only honoured while that login is current.
package auth

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"brewbliss/app"
	"brewbliss/utils"
)

const DefaultAdminEmail = "admin@brew.com"

// EmailOrDefault trims email and falls back to the demo admin address.
func EmailOrDefault(email string) string {
	if e := strings.TrimSpace(email); e != "" {
		return e
	}
	return DefaultAdminEmail
}

func Login(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var input struct {
			Email string `json:"email"`
		}
		if r.ContentLength != 0 {
			if err := utils.DecodeJSON(r, &input); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
				return
			}
		}

		user, token, exp, err := a.Login(EmailOrDefault(input.Email))
		if err != nil {
			a.Logger.Printf("login: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to start session")
			return
		}
		a.Sessions.SetCookie(w, token, exp)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"token":     token,
			"user":      user,
			"expiresAt": exp,
		})
	}
}

// Logout ends the session when the request carries it. Anyone else just
// gets their cookie cleared, so a stranger cannot sign the admin out.
func Logout(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if _, ok := a.Sessions.Current(r); ok {
			a.Logout()
		}
		a.Sessions.ClearCookie(w)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out successfully"})
	}
}
