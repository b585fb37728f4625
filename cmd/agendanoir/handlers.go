package main

import (
	"strconv"

	client "github.com/agendanoir/go-client"
	"github.com/agendanoir/go-client/api"
	"github.com/goliatone/go-router"
)

func (a *App) registerRoutes() {
	r := a.srv.Router()

	guard := client.RouteGuard(a.session, a.cfg, a.GetLogger("guard"))
	readUsers := client.RequireAuthority(a.session, "READ_USER")
	readRoles := client.RequireAuthority(a.session, "READ_ROLE")

	r.Get("/", func(ctx router.Context) error {
		return ctx.Redirect(a.cfg.RejectedRouteDefault, router.StatusFound)
	})

	r.Get(a.cfg.LoginRoute, a.LoginShow)
	r.Post(a.cfg.LoginRoute, a.LoginPost)
	r.Get("/logout", a.Logout)

	r.Get("/profile", a.ProfileShow, guard)
	r.Get("/projects", a.ProjectsIndex, guard)
	r.Get("/projects/:uuid/tickets", a.TicketsIndex, guard)
	r.Get("/users", a.UsersIndex, guard, readUsers)
	r.Get("/roles", a.RolesIndex, guard, readRoles)
}

func (a *App) viewContext(data router.ViewContext) router.ViewContext {
	if data == nil {
		data = router.ViewContext{}
	}
	data["authenticated"] = a.session.IsAuthenticated()
	data["username"] = a.session.Username()
	data["authorities"] = a.session.Authorities()
	return data
}

func (a *App) LoginShow(ctx router.Context) error {
	if a.session.IsAuthenticated() {
		return ctx.Redirect(a.cfg.RejectedRouteDefault, router.StatusFound)
	}

	return ctx.Render("login", a.viewContext(router.ViewContext{
		"errors": nil,
		"record": nil,
	}))
}

func (a *App) LoginPost(ctx router.Context) error {
	payload := new(client.Credentials)

	if err := ctx.Bind(payload); err != nil {
		a.GetLogger("auth").Error("Login payload bind failed", "error", err)
		return ctx.Render("login", a.viewContext(router.ViewContext{
			"errors": map[string]string{"authentication": "Invalid login request."},
		}))
	}

	if err := a.session.Login(ctx.Context(), *payload); err != nil {
		return ctx.Render("login", a.viewContext(router.ViewContext{
			"errors": map[string]string{"authentication": api.ErrorMessage(err)},
			"record": payload,
		}))
	}

	redirect := client.GetRedirect(ctx, a.cfg)
	return ctx.Redirect(redirect, router.StatusSeeOther)
}

func (a *App) Logout(ctx router.Context) error {
	a.session.Logout()
	return ctx.Redirect(a.cfg.LoginRoute, router.StatusSeeOther)
}

func (a *App) ProfileShow(ctx router.Context) error {
	user, err := a.api.GetUser(ctx.Context(), a.session.UserUUID())
	if err != nil {
		a.GetLogger("profile").Error("User fetch failed", "error", err)
		return ctx.Render("errors/500", a.viewContext(router.ViewContext{
			"error": api.ErrorMessage(err),
		}))
	}

	return ctx.Render("profile", a.viewContext(router.ViewContext{
		"user": user,
	}))
}

func (a *App) ProjectsIndex(ctx router.Context) error {
	page := queryPage(ctx)

	projects, err := a.api.ListProjectsPaginated(ctx.Context(), a.session.UserUUID(), page, a.cfg.PageSize)
	if err != nil {
		a.GetLogger("projects").Error("Project list failed", "error", err)
		return ctx.Render("errors/500", a.viewContext(router.ViewContext{
			"error": api.ErrorMessage(err),
		}))
	}

	return ctx.Render("projects", a.viewContext(router.ViewContext{
		"projects":   projects.Data,
		"page":       projects.CurrentPage + 1,
		"totalPages": projects.TotalPages,
		"canCreate":  a.session.HasAuthority("CREATE_PROJECT"),
		"canDelete":  a.session.HasAuthority("DELETE_PROJECT"),
	}))
}

func (a *App) TicketsIndex(ctx router.Context) error {
	projectUUID := ctx.Param("uuid")
	page := queryPage(ctx)

	tickets, err := a.api.ListTicketsPaginated(ctx.Context(), a.session.UserUUID(), projectUUID, page, a.cfg.PageSize)
	if err != nil {
		a.GetLogger("tickets").Error("Ticket list failed", "error", err)
		return ctx.Render("errors/500", a.viewContext(router.ViewContext{
			"error": api.ErrorMessage(err),
		}))
	}

	return ctx.Render("tickets", a.viewContext(router.ViewContext{
		"projectUuid": projectUUID,
		"tickets":     tickets.Data,
		"page":        tickets.CurrentPage + 1,
		"totalPages":  tickets.TotalPages,
		"canCreate":   a.session.HasAuthority("CREATE_TICKET"),
		"canUpdate":   a.session.HasAuthority("UPDATE_TICKET"),
	}))
}

func (a *App) UsersIndex(ctx router.Context) error {
	page := queryPage(ctx)

	users, err := a.api.ListUsers(ctx.Context(), page, a.cfg.PageSize)
	if err != nil {
		a.GetLogger("users").Error("User list failed", "error", err)
		return ctx.Render("errors/500", a.viewContext(router.ViewContext{
			"error": api.ErrorMessage(err),
		}))
	}

	return ctx.Render("users", a.viewContext(router.ViewContext{
		"users":      users.Data,
		"page":       users.CurrentPage + 1,
		"totalPages": users.TotalPages,
		"canCreate":  a.session.HasAuthority("CREATE_USER"),
		"canUpdate":  a.session.HasAuthority("UPDATE_USER"),
	}))
}

func (a *App) RolesIndex(ctx router.Context) error {
	roles, err := a.api.ListRoles(ctx.Context())
	if err != nil {
		a.GetLogger("roles").Error("Role list failed", "error", err)
		return ctx.Render("errors/500", a.viewContext(router.ViewContext{
			"error": api.ErrorMessage(err),
		}))
	}

	return ctx.Render("roles", a.viewContext(router.ViewContext{
		"roles":     roles,
		"canCreate": a.session.HasAuthority("CREATE_ROLE"),
		"canUpdate": a.session.HasAuthority("UPDATE_ROLE"),
	}))
}

func queryPage(ctx router.Context) int {
	page, err := strconv.Atoi(ctx.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
