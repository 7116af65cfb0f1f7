package contact

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"brewbliss/app"
	"brewbliss/models"
	"brewbliss/utils"
)

const maxMessageLength = 5000

var (
	ErrMissingFields  = errors.New("name, email and message are required")
	ErrMessageTooLong = errors.New("message is too long")
)

// NewMessage validates a submission and stamps it with an id and date.
func NewMessage(name, email, message string, now time.Time) (models.ContactMessage, error) {
	name, email, message = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(message)
	if utils.Blank(name, email, message) {
		return models.ContactMessage{}, ErrMissingFields
	}
	if len(message) > maxMessageLength {
		return models.ContactMessage{}, ErrMessageTooLong
	}
	return models.ContactMessage{
		ID:      utils.NewID(),
		Name:    name,
		Email:   email,
		Message: message,
		Date:    models.FormatTime(now),
	}, nil
}

// Submit accepts a message for the inbox. Its analysis is attached later.
func Submit(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var input struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Message string `json:"message"`
		}
		if err := utils.DecodeJSON(r, &input); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		msg, err := NewMessage(input.Name, input.Email, input.Message, time.Now())
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		a.ReceiveMessage(msg)
		utils.RespondWithJSON(w, http.StatusAccepted, utils.M{"id": msg.ID, "date": msg.Date})
	}
}

// AdminMessages lists the inbox, newest first.
func AdminMessages(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, a.Store.ListMessages())
	}
}
