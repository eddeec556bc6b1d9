package geoip

import (
	"errors"
	"net"
	"testing"
)

func TestNewResolverEmptyPathDisablesLookups(t *testing.T) {
	r, err := NewResolver("  ")
	if err != nil {
		t.Fatalf("NewResolver() unexpected error: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil resolver for empty path")
	}
	if _, err := r.Locate("203.0.113.1", "en"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Locate() on nil resolver = %v, want ErrUnavailable", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() on nil resolver: %v", err)
	}
}

func TestNewResolverMissingFile(t *testing.T) {
	if _, err := NewResolver("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatalf("expected error opening missing database")
	}
}

func TestRoutable(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", false},
		{"10.1.2.3", false},
		{"192.168.0.10", false},
		{"0.0.0.0", false},
		{"fe80::1", false},
		{"::1", false},
		{"8.8.8.8", true},
		{"2001:4860:4860::8888", true},
	}
	for _, tc := range tests {
		t.Run(tc.ip, func(t *testing.T) {
			if got := Routable(net.ParseIP(tc.ip)); got != tc.want {
				t.Fatalf("Routable(%s) = %v, want %v", tc.ip, got, tc.want)
			}
		})
	}
}
