package export

import (
	"time"

	"console/internal/domain"
	"console/pkg/zip"
)

// Bundle renders the four CSV exports and zips them.
func Bundle(now time.Time, users []domain.UserWithSubscription, plans []domain.PricePlan, brands []domain.BrandSettings, logs []domain.ActivityLog) ([]byte, error) {
	type render struct {
		name string
		fn   func() ([]byte, error)
	}
	renders := []render{
		{Filename("users", now), func() ([]byte, error) { return Users(users) }},
		{Filename("price-plans", now), func() ([]byte, error) { return Plans(plans) }},
		{Filename("brands", now), func() ([]byte, error) { return Brands(brands) }},
		{ActivityFilename(now), func() ([]byte, error) { return Activities(logs) }},
	}
	files := make([]zip.File, 0, len(renders))
	for _, rd := range renders {
		data, err := rd.fn()
		if err != nil {
			return nil, err
		}
		files = append(files, zip.File{Name: rd.name, Data: data, Modified: now})
	}
	return zip.Archive(files)
}
