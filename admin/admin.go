package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"brewbliss/app"
	"brewbliss/utils"
)

var ErrDescribeInput = errors.New("Please enter a name and ingredients/notes to generate a description.")

// DescribeRequest carries the inputs for a generated menu description.
type DescribeRequest struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

func (d DescribeRequest) Validate() error {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Ingredients) == "" {
		return ErrDescribeInput
	}
	return nil
}

// GenerateDescription asks the text generator for a draft. The call is
// bounded by the configured Gemini timeout and always yields text.
func GenerateDescription(ctx context.Context, a *app.App, req DescribeRequest) string {
	timeout := a.Config.Gemini.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return a.Describe(ctx, strings.TrimSpace(req.Name), strings.TrimSpace(req.Ingredients))
}

// Describe handles POST /api/admin/describe.
//
// Request:  {"name": "...", "ingredients": "..."}
// Response: 200 OK {"description": "..."}
func Describe(a *app.App) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req DescribeRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}
		if err := req.Validate(); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"description": GenerateDescription(r.Context(), a, req)})
	}
}
