package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when the resolver is not initialized.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// Country is the location attached to an activity-log IP address.
type Country struct {
	ISOCode string `json:"iso_code"`
	Name    string `json:"name"`
}

// Locator resolves countries for IP addresses recorded in activity logs.
type Locator interface {
	Locate(ip, locale string) (Country, error)
}

// Resolver provides country lookups backed by a MaxMind GeoIP2 database.
type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the GeoIP database at the given path. An empty path
// disables lookups and returns a nil Resolver.
func NewResolver(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// Locate returns the country for ip with its name in locale, falling back to
// English. Private, loopback and unspecified addresses resolve to the zero Country.
func (r *Resolver) Locate(ip, locale string) (Country, error) {
	if r == nil || r.reader == nil {
		return Country{}, ErrUnavailable
	}
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return Country{}, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	if !Routable(parsed) {
		return Country{}, nil
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return Country{}, fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil || record.Country.IsoCode == "" {
		return Country{}, nil
	}
	name := record.Country.Names[locale]
	if name == "" {
		name = record.Country.Names["en"]
	}
	return Country{ISOCode: record.Country.IsoCode, Name: name}, nil
}

// Routable reports whether ip can carry a public geolocation.
func Routable(ip net.IP) bool {
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast())
}

// Close closes the underlying database reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
