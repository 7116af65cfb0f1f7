package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"brewbliss/admin"
	"brewbliss/app"
	"brewbliss/auth"
	"brewbliss/contact"
	"brewbliss/filemgr"
	"brewbliss/home"
	"brewbliss/live"
	"brewbliss/menu"
	"brewbliss/pages"
)

func AddStaticRoutes(router *httprouter.Router, a *app.App) {
	router.ServeFiles("/static/menupic/*filepath", http.Dir(filemgr.ResolvePath(a.Config.UploadDir, filemgr.PicPhoto)))
	router.GET("/media/placeholder/:category", filemgr.PlaceholderHandler)
}

func AddPageRoutes(router *httprouter.Router, a *app.App, p *pages.Pages) {
	withUser := a.Sessions.OptionalAuth
	router.GET("/", withUser(p.Home))
	router.GET("/menu", withUser(p.Menu))
	router.GET("/about", withUser(p.About))
	router.GET("/contact", withUser(p.Contact))
	router.POST("/contact", a.ContactLimiter.Limit(withUser(p.SubmitContact)))

	router.GET("/admin", withUser(p.Admin))
	router.POST("/admin/menu", withUser(p.AddMenuItem))
	router.POST("/admin/menu/:id/delete", withUser(p.DeleteMenuItem))
	router.POST("/admin/describe", a.DescribeLimiter.Limit(withUser(p.Describe)))

	router.POST("/login", withUser(p.Login))
	router.POST("/logout", withUser(p.Logout))
}

func AddHomeRoutes(router *httprouter.Router, a *app.App) {
	router.GET("/api/status", home.GetStatus(a))
	router.GET("/api/home/:section", home.GetHomeContent(a))
}

func AddMenuRoutes(router *httprouter.Router, a *app.App) {
	router.GET("/api/menu", menu.GetMenu(a))
	router.GET("/api/menu/featured", menu.GetFeatured(a))

	menuURL := a.Config.MenuURL()
	router.GET("/menu.pdf", menu.PrintMenu(a.Store.ListMenuItems, menuURL))
	router.GET("/qr/menu.png", menu.ServeQR(menuURL))
}

func AddContactRoutes(router *httprouter.Router, a *app.App) {
	router.POST("/api/contact", a.ContactLimiter.Limit(contact.Submit(a)))
}

func AddAuthRoutes(router *httprouter.Router, a *app.App) {
	router.POST("/api/auth/login", auth.Login(a))
	router.POST("/api/auth/logout", auth.Logout(a))
}

func AddAdminRoutes(router *httprouter.Router, a *app.App) {
	requireAdmin := a.Sessions.RequireAdmin
	router.GET("/api/admin/menu", requireAdmin(menu.AdminListMenu(a)))
	router.POST("/api/admin/menu", requireAdmin(menu.CreateMenu(a)))
	router.DELETE("/api/admin/menu/:id", requireAdmin(menu.DeleteMenu(a)))
	router.GET("/api/admin/messages", requireAdmin(contact.AdminMessages(a)))
	router.POST("/api/admin/describe", requireAdmin(a.DescribeLimiter.Limit(admin.Describe(a))))
}

func AddLiveRoutes(router *httprouter.Router, a *app.App) {
	router.GET("/api/admin/live", a.Sessions.RequireAdmin(live.Handler(a.Hub)))
}
