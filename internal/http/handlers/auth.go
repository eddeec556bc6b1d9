package handlers

import (
	"errors"
	"net/http"
	"strings"

	"console/internal/backend"
	"console/internal/domain"
	"console/internal/forms"
	"console/internal/listing"
	"console/internal/middleware"
	"console/internal/present"
)

const dashboardPath = "/dashboard"

type loginView struct {
	Title  string `json:"title"`
	Action string `json:"action"`
}

// LoginPage serves the sign-in form, or sends operators with a session to the dashboard.
func (a *App) LoginPage(w http.ResponseWriter, r *http.Request) {
	if a.Sessions.Token(r) != "" {
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	}
	a.json(w, http.StatusOK, loginView{Title: "Admin Login", Action: middleware.LoginPath})
}

// Login exchanges credentials for a backend token and stores it in the session cookie.
// Accepts a JSON body or a urlencoded form.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var form forms.LoginForm
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !a.decode(w, r, &form) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
			return
		}
		form.Email = r.PostForm.Get("email")
		form.Password = r.PostForm.Get("password")
	}
	if err := form.Normalize(); err != nil {
		a.fail(w, r, err, "Invalid credentials")
		return
	}

	res, err := a.Backend(nil).Login(r.Context(), form.Email, form.Password)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			a.error(w, http.StatusUnauthorized, "invalid_credentials", apiErr.Detail)
			return
		}
		a.fail(w, r, err, "Login failed")
		return
	}
	a.Sessions.Save(w, res.AccessToken)
	a.log(r).Info().Str("email", form.Email).Msg("operator signed in")
	if wantsJSON(r) {
		a.json(w, http.StatusOK, map[string]string{"redirect": dashboardPath})
		return
	}
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

// Logout drops the session cookie. The backend keeps no server-side session.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	a.Sessions.Clear(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

type profileView struct {
	User   domain.UserWithSubscription `json:"user"`
	Name   string                      `json:"name"`
	Role   present.Badge               `json:"role"`
	Trial  *domain.TrialStatus         `json:"trial,omitempty"`
	IsSelf bool                        `json:"is_self"`
}

func (a *App) Profile(w http.ResponseWriter, r *http.Request) {
	api := a.client(w, r)
	me, err := api.Profile(r.Context())
	if err != nil {
		a.fail(w, r, err, "Failed to fetch profile")
		return
	}
	view := profileView{User: *me, Name: me.FullName(), Role: present.RoleBadge(me.Role), IsSelf: true}
	if trial, err := api.TrialStatus(r.Context()); err == nil {
		view.Trial = trial
	} else if errors.Is(err, domain.ErrUnauthorized) {
		a.fail(w, r, err, "Failed to fetch profile")
		return
	} else {
		a.log(r).Debug().Err(err).Msg("trial status unavailable")
	}
	a.json(w, http.StatusOK, view)
}

func (a *App) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var form forms.ProfileForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to update profile")
		return
	}
	me, err := a.client(w, r).UpdateProfile(r.Context(), in)
	if err != nil {
		a.fail(w, r, err, "Failed to update profile")
		return
	}
	a.json(w, http.StatusOK, profileView{User: *me, Name: me.FullName(), Role: present.RoleBadge(me.Role), IsSelf: true})
}

func (a *App) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var form forms.PasswordForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to change password")
		return
	}
	if err := a.client(w, r).ChangePassword(r.Context(), in.CurrentPassword, in.NewPassword); err != nil {
		a.fail(w, r, err, "Failed to change password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type activityRow struct {
	domain.ActivityLog
	Badge    present.Badge `json:"badge"`
	Relative string        `json:"relative_time"`
	Country  string        `json:"country,omitempty"`
}

type activityListView struct {
	Items      []activityRow  `json:"items"`
	Pagination listing.Window `json:"pagination"`
}

// MyActivity lists the signed-in operator's own audit trail.
func (a *App) MyActivity(w http.ResponseWriter, r *http.Request) {
	page := a.page(r)
	logs, err := a.client(w, r).MyActivities(r.Context(), domain.ActivityQuery{
		Skip:         intPtr(page.Skip()),
		Limit:        intPtr(page.Limit),
		ActivityType: activityFilter(r.URL.Query().Get("type")),
	})
	if err != nil {
		a.fail(w, r, err, "Failed to fetch activity")
		return
	}
	a.json(w, http.StatusOK, activityListView{
		Items:      a.activityRows(r, logs),
		Pagination: page.Window(len(logs)),
	})
}
