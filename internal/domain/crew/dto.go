package crew

import (
	"strconv"
	"strings"
)

// OptionResponse is one entry of the crew picker on the shoot form
type OptionResponse struct {
	ID     int64   `json:"id"`
	Value  string  `json:"value"`
	Name   string  `json:"name"`
	Role   *string `json:"role"`
	Status string  `json:"status"`
	Label  string  `json:"label"`
}

// OptionFromEntity maps a roster entry to a picker option
func OptionFromEntity(c *Crew) *OptionResponse {
	opt := &OptionResponse{
		ID:     c.ID,
		Value:  strconv.FormatInt(c.ID, 10),
		Name:   displayName(c),
		Status: c.Status,
	}
	if c.Role.Valid && c.Role.String != "" {
		role := c.Role.String
		opt.Role = &role
	}
	opt.Label = Label(opt.Name, c.Role.String, c.Status)
	return opt
}

// Label renders "name (role) [status]"; role and status parts are omitted
// when role is empty or the crew member is available.
func Label(name, role, status string) string {
	var b strings.Builder
	b.WriteString(name)
	if role != "" {
		b.WriteString(" (")
		b.WriteString(role)
		b.WriteString(")")
	}
	if status != "" && status != StatusAvailable {
		b.WriteString(" [")
		b.WriteString(status)
		b.WriteString("]")
	}
	return b.String()
}

func displayName(c *Crew) string {
	if c.Name.Valid && strings.TrimSpace(c.Name.String) != "" {
		return c.Name.String
	}
	return "Crew #" + strconv.FormatInt(c.ID, 10)
}
