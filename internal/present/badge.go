package present

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"console/internal/domain"
)

// Badge variants understood by the console front end.
const (
	BadgeDefault     = "default"
	BadgeSecondary   = "secondary"
	BadgeDestructive = "destructive"
)

// Badge is a labelled pill.
type Badge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

// RoleBadge styles a user role. Unknown roles use the default variant.
func RoleBadge(role domain.UserRole) Badge {
	variant := BadgeDefault
	switch role {
	case domain.UserRoleAdmin:
		variant = BadgeDestructive
	case domain.UserRoleModerator:
		variant = BadgeSecondary
	}
	return Badge{Label: string(role), Variant: variant}
}

var activityVariants = []struct {
	key     string
	variant string
}{
	{domain.ActivityLogin, BadgeDefault},
	{domain.ActivityCreate, BadgeDefault},
	{domain.ActivityUpdate, BadgeSecondary},
	{domain.ActivityDelete, BadgeDestructive},
}

// ActivityBadge styles an activity type by the first known keyword it contains,
// so USER_DELETE is destructive.
func ActivityBadge(activityType string) Badge {
	for _, v := range activityVariants {
		if strings.Contains(activityType, v.key) {
			return Badge{Label: activityType, Variant: v.variant}
		}
	}
	return Badge{Label: activityType, Variant: BadgeDefault}
}

// StatusBadge labels an active flag.
func StatusBadge(active bool) Badge {
	if active {
		return Badge{Label: "Active", Variant: BadgeDefault}
	}
	return Badge{Label: "Inactive", Variant: BadgeSecondary}
}

// Title capitalises a plan name or activity type for display. A Caser holds
// state, so each call builds its own.
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
