package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"console/internal/domain"
	"console/internal/export"
)

// ExportAll bundles the user, plan, brand and recent activity exports into one zip.
func (a *App) ExportAll(w http.ResponseWriter, r *http.Request) {
	api := a.client(w, r)
	page := a.page(r)
	var (
		users  []domain.UserWithSubscription
		plans  []domain.PricePlan
		brands []domain.BrandSettings
		logs   []domain.ActivityLog
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		users, err = api.ListUsers(ctx, domain.UserQuery{Skip: intPtr(page.Skip()), Limit: intPtr(page.Limit)})
		return err
	})
	g.Go(func() (err error) {
		plans, err = api.ListPlans(ctx, false)
		return err
	})
	g.Go(func() (err error) {
		brands, err = api.ListBrands(ctx)
		return err
	})
	g.Go(func() (err error) {
		logs, err = api.RecentActivities(ctx, domain.ActivityQuery{Skip: intPtr(page.Skip()), Limit: intPtr(page.Limit)})
		return err
	})
	if err := g.Wait(); err != nil {
		a.fail(w, r, err, "Failed to export data")
		return
	}

	now := a.now()
	files, err := export.Bundle(now, users, plans, brands, logs)
	if err != nil {
		a.log(r).Error().Err(err).Msg("render export bundle")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to export data")
		return
	}
	a.download(w, "application/zip", "console-export-"+now.UTC().Format("2006-01-02")+".zip", files)
}
