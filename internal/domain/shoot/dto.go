package shoot

import (
	"github.com/shootdesk/shootdesk-api/internal/pkg/validator"
)

// CreateShootRequest is the shoot form submission
type CreateShootRequest struct {
	BookingID   validator.IntString `json:"bookingId" validate:"gte=1"`
	Title       string              `json:"title" validate:"notblank,max=200"`
	CrewMembers []string            `json:"crewMembers,omitempty" validate:"omitempty,dive,id"`
	Date        string              `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string              `json:"time" validate:"required,datetime=15:04"`
	Location    string              `json:"location,omitempty" validate:"max=500"`
	Notes       string              `json:"notes,omitempty" validate:"max=2000"`
}

// CreatedResponse is returned after a shoot is scheduled
type CreatedResponse struct {
	ShootID int64 `json:"shootId"`
}
