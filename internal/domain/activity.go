package domain

// Activity types offered by the log filter. The backend may emit others.
const (
	ActivityLogin  = "LOGIN"
	ActivityCreate = "CREATE"
	ActivityUpdate = "UPDATE"
	ActivityDelete = "DELETE"
)

// ActivityLog is an append-only audit record owned by the backend.
type ActivityLog struct {
	ID           int64          `json:"id"`
	UserID       *int64         `json:"user_id,omitempty"`
	ActivityType string         `json:"activity_type"`
	Description  string         `json:"description"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    string         `json:"created_at"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
}

// ActivityQuery filters and paginates activity listings. Zero values are not sent.
type ActivityQuery struct {
	Skip         *int
	Limit        *int
	ActivityType string
}
