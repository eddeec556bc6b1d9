// Package export renders console listings as CSV files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"console/internal/domain"
)

// Headers of each export.
var (
	ActivityHeader = []string{"Timestamp", "Activity Type", "Description", "IP Address", "User Agent", "Metadata"}
	UserHeader     = []string{"ID", "Email", "First Name", "Last Name", "Role", "Storage Limit (bytes)", "Max Users", "Plan", "Created"}
	PlanHeader     = []string{"ID", "Name", "Monthly Price", "Annual Price", "Included Seats", "Additional Seat Price", "Features", "Active", "Best Value", "Created"}
	BrandHeader    = []string{"ID", "Brand Name", "Domain", "Primary Color", "Secondary Color", "Active", "Storage Limit (GB)", "Max Accounts", "Subscription Interval", "Price", "Created"}
)

// Filename builds "<kind>-YYYY-MM-DD.csv" for the UTC date of now.
func Filename(kind string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", kind, now.UTC().Format("2006-01-02"))
}

// ActivityFilename is the download name of the activity log export.
func ActivityFilename(now time.Time) string {
	return Filename("activity-logs", now)
}

// Activities renders the given rows, which should already be filtered.
func Activities(logs []domain.ActivityLog) ([]byte, error) {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		meta, err := metadata(l.Metadata)
		if err != nil {
			return nil, fmt.Errorf("export: activity %d metadata: %w", l.ID, err)
		}
		rows = append(rows, []string{l.CreatedAt, l.ActivityType, l.Description, l.IPAddress, l.UserAgent, meta})
	}
	return write(ActivityHeader, rows)
}

func Users(users []domain.UserWithSubscription) ([]byte, error) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		plan := ""
		if u.Subscription != nil {
			plan = u.Subscription.PlanType
		}
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Email,
			u.FirstName,
			u.LastName,
			string(u.Role),
			strconv.FormatInt(u.StorageLimitBytes, 10),
			strconv.Itoa(u.MaxUsers),
			plan,
			u.CreatedAt,
		})
	}
	return write(UserHeader, rows)
}

func Plans(plans []domain.PricePlan) ([]byte, error) {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		features := make([]string, 0, len(p.Features))
		for _, f := range p.Features {
			features = append(features, f.Description)
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.MonthlyPrice,
			p.AnnualPrice,
			strconv.Itoa(p.IncludedSeats),
			p.AdditionalSeatPrice,
			strings.Join(features, "; "),
			strconv.FormatBool(p.IsActive),
			strconv.FormatBool(p.IsBestValue),
			p.CreatedAt,
		})
	}
	return write(PlanHeader, rows)
}

func Brands(brands []domain.BrandSettings) ([]byte, error) {
	rows := make([][]string, 0, len(brands))
	for _, b := range brands {
		price := ""
		if b.PriceAmount != nil {
			price = strconv.FormatFloat(*b.PriceAmount, 'f', 2, 64)
		}
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			b.BrandName,
			b.Domain,
			b.PrimaryColor,
			b.SecondaryColor,
			strconv.FormatBool(b.IsActive),
			strconv.FormatFloat(b.StorageLimitGB, 'f', -1, 64),
			strconv.Itoa(b.MaxAccounts),
			b.SubscriptionInterval,
			price,
			b.CreatedAt,
		})
	}
	return write(BrandHeader, rows)
}

func metadata(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func write(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("export: write rows: %w", err)
	}
	return buf.Bytes(), nil
}
