package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"console/internal/http/handlers"
	"console/internal/infra"
	"console/internal/middleware"
)

// Options carries the router settings taken from configuration.
type Options struct {
	AllowedOrigins []string
	LoginPerMinute int
	DefaultLocale  string
}

func NewRouter(app *handlers.App, logger infra.Logger, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale),
	)

	r.Get("/healthz", app.Health)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	})

	r.Get("/login", app.LoginPage)
	r.With(middleware.RateLimit(opts.LoginPerMinute, time.Minute)).Post("/login", app.Login)
	r.Post("/logout", app.Logout)

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.RequireSession(app.Sessions))
		r.Get("/", app.Dashboard)
		r.Get("/export", app.ExportAll)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", app.Profile)
			r.Put("/", app.UpdateProfile)
			r.Put("/password", app.ChangePassword)
			r.Get("/activity", app.MyActivity)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", app.Users)
			r.Post("/", app.CreateUser)
			r.Get("/export", app.ExportUsers)
			r.Get("/{id}", app.User)
			r.Put("/{id}", app.UpdateUser)
			r.Delete("/{id}", app.DeleteUser)
		})

		r.Route("/pricing", func(r chi.Router) {
			r.Get("/", app.Pricing)
			r.Post("/", app.CreatePlan)
			r.Get("/export", app.ExportPlans)
			r.Put("/{id}", app.UpdatePlan)
			r.Post("/{id}/toggle", app.TogglePlan)
			r.Delete("/{id}", app.DeletePlan)
		})

		r.Route("/white-label", func(r chi.Router) {
			r.Get("/", app.Brands)
			r.Post("/", app.CreateBrand)
			r.Get("/export", app.ExportBrands)
			r.Put("/{id}", app.UpdateBrand)
			r.Delete("/{id}", app.DeleteBrand)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", app.Logs)
			r.Get("/export", app.ExportLogs)
		})
	})

	return r
}
