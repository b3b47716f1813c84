package model

import "time"

// DefaultStatusOptions is used when STATUS_OPTIONS is not configured
var DefaultStatusOptions = []string{"Working", "Working Remotely", "On Vacation", "Business Trip"}

// StatusEntry is one row of a user's status history
type StatusEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RosterEntry is a user together with their latest status.
// Status and UpdatedAt are nil when the user never set a status.
type RosterEntry struct {
	Username  string     `json:"username"`
	Status    *string    `json:"status"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// SetStatusRequest is the body of PUT /status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// StatusOptions is the server-defined set of allowed statuses.
// It is built once at startup and never modified afterwards.
type StatusOptions struct {
	values []string
	index  map[string]struct{}
}

// NewStatusOptions builds the option set, dropping blanks and duplicates while
// keeping the first-seen order.
func NewStatusOptions(values []string) StatusOptions {
	opts := StatusOptions{index: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := opts.index[v]; seen {
			continue
		}
		opts.index[v] = struct{}{}
		opts.values = append(opts.values, v)
	}
	return opts
}

// Values returns a copy of the options in configured order
func (o StatusOptions) Values() []string {
	out := make([]string, len(o.values))
	copy(out, o.values)
	return out
}

// Contains reports whether status is one of the allowed values (case-sensitive)
func (o StatusOptions) Contains(status string) bool {
	_, ok := o.index[status]
	return ok
}

// Len returns the number of allowed values
func (o StatusOptions) Len() int {
	return len(o.values)
}
