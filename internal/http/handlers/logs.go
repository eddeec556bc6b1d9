package handlers

import (
	"net"
	"net/http"
	"strings"

	"console/internal/domain"
	"console/internal/export"
	"console/internal/listing"
	"console/internal/middleware"
	"console/internal/present"
)

// ActivityTypes are the options of the log type filter.
var ActivityTypes = []string{"all", domain.ActivityLogin, domain.ActivityCreate, domain.ActivityUpdate, domain.ActivityDelete}

type logsView struct {
	Items      []activityRow  `json:"items"`
	Types      []string       `json:"types"`
	Type       string         `json:"type"`
	Query      string         `json:"q"`
	Pagination listing.Window `json:"pagination"`
}

// activityFilter maps the "all" option to no filter.
func activityFilter(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "all") {
		return ""
	}
	return strings.ToUpper(v)
}

func searchLogs(logs []domain.ActivityLog, q string) []domain.ActivityLog {
	return listing.Filter(logs, q,
		func(l domain.ActivityLog) string { return l.Description },
		func(l domain.ActivityLog) string { return l.ActivityType },
		func(l domain.ActivityLog) string { return l.IPAddress },
	)
}

// fetchLogs loads one page of recent activity. The returned count is the
// unfiltered page size, which drives the pager.
func (a *App) fetchLogs(w http.ResponseWriter, r *http.Request, page listing.Page) ([]domain.ActivityLog, int, error) {
	logs, err := a.client(w, r).RecentActivities(r.Context(), domain.ActivityQuery{
		Skip:         intPtr(page.Skip()),
		Limit:        intPtr(page.Limit),
		ActivityType: activityFilter(r.URL.Query().Get("type")),
	})
	if err != nil {
		return nil, 0, err
	}
	return searchLogs(logs, r.URL.Query().Get("q")), len(logs), nil
}

func (a *App) Logs(w http.ResponseWriter, r *http.Request) {
	page := a.page(r)
	logs, fetched, err := a.fetchLogs(w, r, page)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch activity logs")
		return
	}
	typ := activityFilter(r.URL.Query().Get("type"))
	if typ == "" {
		typ = "all"
	}
	a.json(w, http.StatusOK, logsView{
		Items:      a.activityRows(r, logs),
		Types:      ActivityTypes,
		Type:       typ,
		Query:      r.URL.Query().Get("q"),
		Pagination: page.Window(fetched),
	})
}

// ExportLogs downloads the rows currently shown by the logs page as CSV.
func (a *App) ExportLogs(w http.ResponseWriter, r *http.Request) {
	logs, _, err := a.fetchLogs(w, r, a.page(r))
	if err != nil {
		a.fail(w, r, err, "Failed to fetch activity logs")
		return
	}
	data, err := export.Activities(logs)
	if err != nil {
		a.log(r).Error().Err(err).Msg("render activity csv")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to export activity logs")
		return
	}
	a.download(w, "text/csv", export.ActivityFilename(a.now()), data)
}

func (a *App) activityRows(r *http.Request, logs []domain.ActivityLog) []activityRow {
	now := a.now()
	locale := middleware.LocaleFromContext(r.Context())
	rows := make([]activityRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, activityRow{
			ActivityLog: l,
			Badge:       present.ActivityBadge(l.ActivityType),
			Relative:    present.RelativeTimestamp(l.CreatedAt, now),
			Country:     a.country(l.IPAddress, locale),
		})
	}
	return rows
}

func (a *App) country(ip, locale string) string {
	if a.Geo == nil || net.ParseIP(ip) == nil {
		return ""
	}
	c, err := a.Geo.Locate(ip, locale)
	if err != nil {
		return ""
	}
	return c.Name
}
