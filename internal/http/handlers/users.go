package handlers

import (
	"net/http"

	"console/internal/domain"
	"console/internal/export"
	"console/internal/forms"
	"console/internal/listing"
	"console/internal/present"
)

type userRow struct {
	domain.UserWithSubscription
	Name      string        `json:"name"`
	Role      present.Badge `json:"role_badge"`
	Deletable bool          `json:"deletable"`
}

type usersView struct {
	Items      []userRow      `json:"items"`
	Query      string         `json:"q"`
	Pagination listing.Window `json:"pagination"`
}

type mutationView struct {
	Item any `json:"item,omitempty"`
	List any `json:"list"`
}

func (a *App) loadUsers(w http.ResponseWriter, r *http.Request) (usersView, error) {
	page := a.page(r)
	users, err := a.client(w, r).ListUsers(r.Context(), domain.UserQuery{
		Skip:  intPtr(page.Skip()),
		Limit: intPtr(page.Limit),
	})
	if err != nil {
		return usersView{}, err
	}
	q := r.URL.Query().Get("q")
	shown := listing.Filter(users, q,
		func(u domain.UserWithSubscription) string { return u.FullName() },
		func(u domain.UserWithSubscription) string { return u.Email },
	)
	rows := make([]userRow, 0, len(shown))
	for _, u := range shown {
		rows = append(rows, userRow{
			UserWithSubscription: u,
			Name:                 u.FullName(),
			Role:                 present.RoleBadge(u.Role),
			Deletable:            !u.IsAdmin(),
		})
	}
	return usersView{Items: rows, Query: q, Pagination: page.Window(len(users))}, nil
}

func (a *App) Users(w http.ResponseWriter, r *http.Request) {
	view, err := a.loadUsers(w, r)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch users")
		return
	}
	a.json(w, http.StatusOK, view)
}

func (a *App) User(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	u, err := a.client(w, r).UserByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch user")
		return
	}
	a.json(w, http.StatusOK, userRow{UserWithSubscription: *u, Name: u.FullName(), Role: present.RoleBadge(u.Role), Deletable: !u.IsAdmin()})
}

// CreateUser adds an account and answers with the re-fetched list.
func (a *App) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form forms.UserCreateForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to create user")
		return
	}
	created, err := a.client(w, r).CreateUser(r.Context(), in)
	if err != nil {
		a.fail(w, r, err, "Failed to create user")
		return
	}
	a.log(r).Info().Int64("user_id", created.ID).Msg("user created")
	a.respondUsers(w, r, http.StatusCreated, created)
}

func (a *App) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	var form forms.UserUpdateForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to update user")
		return
	}
	updated, err := a.client(w, r).UpdateUser(r.Context(), id, in)
	if err != nil {
		a.fail(w, r, err, "Failed to update user")
		return
	}
	a.respondUsers(w, r, http.StatusOK, updated)
}

// DeleteUser removes a non-admin account and answers with the re-fetched list.
func (a *App) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	api := a.client(w, r)
	target, err := api.UserByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err, "Failed to delete user")
		return
	}
	if target.IsAdmin() {
		a.error(w, http.StatusConflict, "conflict", "Admin accounts cannot be deleted")
		return
	}
	if err := api.DeleteUser(r.Context(), id); err != nil {
		a.fail(w, r, err, "Failed to delete user")
		return
	}
	a.log(r).Info().Int64("user_id", id).Msg("user deleted")
	a.respondUsers(w, r, http.StatusOK, nil)
}

func (a *App) respondUsers(w http.ResponseWriter, r *http.Request, status int, item any) {
	view, err := a.loadUsers(w, r)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch users")
		return
	}
	a.json(w, status, mutationView{Item: item, List: view})
}

func (a *App) ExportUsers(w http.ResponseWriter, r *http.Request) {
	view, err := a.loadUsers(w, r)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch users")
		return
	}
	users := make([]domain.UserWithSubscription, 0, len(view.Items))
	for _, row := range view.Items {
		users = append(users, row.UserWithSubscription)
	}
	data, err := export.Users(users)
	if err != nil {
		a.log(r).Error().Err(err).Msg("render users csv")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to export users")
		return
	}
	a.download(w, "text/csv", export.Filename("users", a.now()), data)
}
