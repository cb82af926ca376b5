package domain

import "time"

// Client owns transactions. (Name, Email) is unique.
type Client struct {
	ID        int64
	Name      string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}

// StatusLabel is the display form of IsActive.
func (c Client) StatusLabel() string {
	if c.IsActive {
		return "Active"
	}
	return "Inactive"
}
