package handlers

import (
	"net/http"
	"strconv"

	"console/internal/domain"
	"console/internal/export"
	"console/internal/forms"
	"console/internal/present"
)

type planRow struct {
	domain.PricePlan
	Status present.Badge `json:"status"`
}

type pricingView struct {
	Interval string                   `json:"interval"`
	Toggle   []present.IntervalOption `json:"interval_options"`
	Cards    []present.PlanCard       `json:"cards"`
	Plans    []planRow                `json:"plans"`
}

// activeOnly reads the active_only flag. The console lists inactive plans by default.
func activeOnly(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("active_only"))
	return err == nil && v
}

func (a *App) buildPricing(r *http.Request, plans []domain.PricePlan) pricingView {
	interval := present.ParseInterval(r.URL.Query().Get("interval"))
	rows := make([]planRow, 0, len(plans))
	for _, p := range present.TableOrder(plans) {
		rows = append(rows, planRow{PricePlan: p, Status: present.StatusBadge(p.IsActive)})
	}
	return pricingView{
		Interval: interval,
		Toggle:   present.IntervalToggle(interval),
		Cards:    present.PlanCards(plans, interval),
		Plans:    rows,
	}
}

func (a *App) Pricing(w http.ResponseWriter, r *http.Request) {
	plans, err := a.client(w, r).ListPlans(r.Context(), activeOnly(r))
	if err != nil {
		a.fail(w, r, err, "Failed to fetch price plans")
		return
	}
	a.json(w, http.StatusOK, a.buildPricing(r, plans))
}

func (a *App) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var form forms.PlanCreateForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to create price plan")
		return
	}
	api := a.client(w, r)
	created, err := api.CreatePlan(r.Context(), in)
	if err != nil {
		a.fail(w, r, err, "Failed to create price plan")
		return
	}
	a.log(r).Info().Int64("plan_id", created.ID).Msg("price plan created")
	a.respondPlans(w, r, api, http.StatusCreated, created)
}

func (a *App) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	var form forms.PlanUpdateForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to update price plan")
		return
	}
	api := a.client(w, r)
	updated, err := api.UpdatePlan(r.Context(), id, in)
	if err != nil {
		a.fail(w, r, err, "Failed to update price plan")
		return
	}
	a.respondPlans(w, r, api, http.StatusOK, updated)
}

// TogglePlan flips is_active on the current backend copy of the plan.
func (a *App) TogglePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	api := a.client(w, r)
	current, err := api.PlanByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err, "Failed to update plan status")
		return
	}
	updated, err := api.UpdatePlan(r.Context(), id, forms.ToggleActive(*current))
	if err != nil {
		a.fail(w, r, err, "Failed to update plan status")
		return
	}
	a.log(r).Info().Int64("plan_id", id).Bool("is_active", updated.IsActive).Msg("price plan toggled")
	a.respondPlans(w, r, api, http.StatusOK, updated)
}

func (a *App) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	api := a.client(w, r)
	if err := api.DeletePlan(r.Context(), id); err != nil {
		a.fail(w, r, err, "Failed to delete price plan")
		return
	}
	plans, err := api.ListPlans(r.Context(), activeOnly(r))
	if err != nil {
		a.fail(w, r, err, "Failed to fetch price plans")
		return
	}
	a.json(w, http.StatusOK, mutationView{List: a.buildPricing(r, withoutPlan(plans, id))})
}

// respondPlans re-lists plans and patches the mutated plan in, so the response
// reflects the write even when the listing lags behind it.
func (a *App) respondPlans(w http.ResponseWriter, r *http.Request, api domain.Backend, status int, changed *domain.PricePlan) {
	plans, err := api.ListPlans(r.Context(), activeOnly(r))
	if err != nil {
		a.fail(w, r, err, "Failed to fetch price plans")
		return
	}
	a.json(w, status, mutationView{Item: changed, List: a.buildPricing(r, patchPlan(plans, *changed, activeOnly(r)))})
}

func patchPlan(plans []domain.PricePlan, changed domain.PricePlan, onlyActive bool) []domain.PricePlan {
	out := make([]domain.PricePlan, 0, len(plans)+1)
	found := false
	for _, p := range plans {
		if p.ID == changed.ID {
			found = true
			if onlyActive && !changed.IsActive {
				continue
			}
			out = append(out, changed)
			continue
		}
		out = append(out, p)
	}
	if !found && (!onlyActive || changed.IsActive) {
		out = append(out, changed)
	}
	return out
}

func withoutPlan(plans []domain.PricePlan, id int64) []domain.PricePlan {
	out := make([]domain.PricePlan, 0, len(plans))
	for _, p := range plans {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func (a *App) ExportPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := a.client(w, r).ListPlans(r.Context(), activeOnly(r))
	if err != nil {
		a.fail(w, r, err, "Failed to fetch price plans")
		return
	}
	data, err := export.Plans(plans)
	if err != nil {
		a.log(r).Error().Err(err).Msg("render plans csv")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to export price plans")
		return
	}
	a.download(w, "text/csv", export.Filename("price-plans", a.now()), data)
}
