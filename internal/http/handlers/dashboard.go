package handlers

import (
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"console/internal/domain"
	"console/internal/middleware"
	"console/internal/present"
)

// NavItem is a sidebar entry.
type NavItem struct {
	Name   string `json:"name"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

var navigation = []NavItem{
	{Name: "Dashboard", Href: "/dashboard"},
	{Name: "User Management", Href: "/dashboard/users"},
	{Name: "White Label", Href: "/dashboard/white-label"},
	{Name: "Price Plans", Href: "/dashboard/pricing"},
	{Name: "Activity Logs", Href: "/dashboard/logs"},
}

// Navigation marks the entry matching path as active.
func Navigation(path string) []NavItem {
	out := make([]NavItem, len(navigation))
	for i, n := range navigation {
		n.Active = n.Href == path
		out[i] = n
	}
	return out
}

type statCard struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type dashboardView struct {
	Operator   operatorView  `json:"operator"`
	Navigation []NavItem     `json:"navigation"`
	Stats      []statCard    `json:"stats"`
	Recent     []activityRow `json:"recent_activity"`
	Status     systemStatus  `json:"system_status"`
}

type operatorView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

const recentActivityLimit = 3

// systemStatus is the status panel, filled once every dashboard call
// has succeeded.
type systemStatus struct {
	Database string `json:"database"`
	API      string `json:"api"`
	Jobs     string `json:"jobs"`
	Storage  string `json:"storage"`
}

// storageStatus reports the operator's storage use, or "Unknown" when the
// backend omits usage or the limit.
func storageStatus(me *domain.UserWithSubscription) string {
	if me.StorageUsedBytes == nil || me.StorageLimitBytes <= 0 {
		return "Unknown"
	}
	pct := *me.StorageUsedBytes * 100 / me.StorageLimitBytes
	return strconv.FormatInt(pct, 10) + "% Used"
}

// Dashboard fetches the counters and recent activity concurrently. Any failed
// call fails the page.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	api := a.client(w, r)
	var (
		me     *domain.UserWithSubscription
		users  []domain.UserWithSubscription
		plans  []domain.PricePlan
		recent []domain.ActivityLog
		brands int
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		me, err = api.Profile(ctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = api.ListUsers(ctx, domain.UserQuery{})
		return err
	})
	g.Go(func() (err error) {
		plans, err = api.ListPlans(ctx, true)
		return err
	})
	g.Go(func() (err error) {
		recent, err = api.RecentActivities(ctx, domain.ActivityQuery{Limit: intPtr(recentActivityLimit)})
		return err
	})
	g.Go(func() (err error) {
		brands, err = api.BrandCount(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.fail(w, r, err, "An error occurred while fetching dashboard data")
		return
	}

	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, dashboardView{
		Operator:   operatorView{Name: me.FullName(), Email: me.Email, Role: string(me.Role)},
		Navigation: Navigation(dashboardPath),
		Stats: []statCard{
			{Title: "Total Users", Value: present.Count(locale, len(users)), Description: "Active users in the system"},
			{Title: "White Label Brands", Value: present.Count(locale, brands), Description: "Active brand configurations"},
			{Title: "Price Plans", Value: present.Count(locale, len(plans)), Description: "Available pricing tiers"},
			{Title: "Daily Actions", Value: present.Count(locale, len(recent)), Description: "User actions logged today"},
		},
		Recent: a.activityRows(r, recent),
		Status: systemStatus{Database: "Healthy", API: "Online", Jobs: "Running", Storage: storageStatus(me)},
	})
}
