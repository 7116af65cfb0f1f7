package routes

import (
	"fmt"

	"github.com/julienschmidt/httprouter"

	"brewbliss/app"
	"brewbliss/pages"
)

func RoutesWrapper(router *httprouter.Router, a *app.App) error {
	p, err := pages.New(a)
	if err != nil {
		return fmt.Errorf("pages: %w", err)
	}

	AddPageRoutes(router, a, p)
	AddHomeRoutes(router, a)
	AddMenuRoutes(router, a)
	AddContactRoutes(router, a)
	AddAuthRoutes(router, a)
	AddAdminRoutes(router, a)
	AddLiveRoutes(router, a)
	AddStaticRoutes(router, a)
	return nil
}
