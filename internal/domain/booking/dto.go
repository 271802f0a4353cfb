package booking

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"math"
	"time"

	"github.com/shootdesk/shootdesk-api/internal/pkg/validator"
)

// CreateBookingRequest is the booking form submission. Optional sections are
// nil when absent; the write path only touches sections with entries.
type CreateBookingRequest struct {
	BookingName       string                  `json:"bookingName" validate:"notblank,max=200"`
	BookingType       string                  `json:"bookingType" validate:"notblank,max=100"`
	PackageType       string                  `json:"packageType" validate:"notblank,max=100"`
	PackageCost       float64                 `json:"packageCost" validate:"gte=0"`
	Note              string                  `json:"note,omitempty" validate:"max=5000"`
	Participants      []ParticipantInput      `json:"participants" validate:"required,min=1,dive"`
	Shoots            []ShootInput            `json:"shoots,omitempty" validate:"omitempty,dive"`
	Deliverables      []DeliverableInput      `json:"deliverables,omitempty" validate:"omitempty,dive"`
	Payments          []PaymentInput          `json:"payments,omitempty" validate:"omitempty,dive"`
	ScheduledPayments []ScheduledPaymentInput `json:"scheduledPayments,omitempty" validate:"omitempty,dive"`
}

// ParticipantInput becomes a client row plus its role on the booking
type ParticipantInput struct {
	Name     string          `json:"name" validate:"notblank,max=200"`
	Phone    string          `json:"phone,omitempty" validate:"max=50"`
	Email    string          `json:"email,omitempty" validate:"omitempty,email"`
	Address  string          `json:"address,omitempty" validate:"max=500"`
	Role     string          `json:"role" validate:"notblank,max=100"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type ShootInput struct {
	Title    string   `json:"title" validate:"notblank,max=200"`
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string   `json:"time" validate:"required,datetime=15:04"`
	Location string   `json:"location,omitempty" validate:"max=500"`
	Crews    []string `json:"crews,omitempty" validate:"omitempty,dive,id"`
}

type DeliverableInput struct {
	Title    string              `json:"title" validate:"notblank,max=200"`
	Cost     float64             `json:"cost" validate:"gte=0"`
	Quantity validator.IntString `json:"quantity" validate:"gte=1"`
	DueDate  string              `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type PaymentInput struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description,omitempty" validate:"max=500"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

type ScheduledPaymentInput struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description,omitempty" validate:"max=500"`
	DueDate     string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

// crewGroups returns the crew id lists of all shoots, in shoot order
func (r *CreateBookingRequest) crewGroups() [][]string {
	groups := make([][]string, len(r.Shoots))
	for i, s := range r.Shoots {
		groups[i] = s.Crews
	}
	return groups
}

// metadataValue returns the participant metadata for a jsonb column
func (p *ParticipantInput) metadataValue() sql.NullString {
	raw := bytes.TrimSpace(p.Metadata)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

// CreatedResponse is returned after a booking is created
type CreatedResponse struct {
	BookingID int64 `json:"bookingId"`
}

// BookingResponse is one row of the booking list
type BookingResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	BookingType string    `json:"bookingType"`
	PackageType string    `json:"packageType"`
	PackageCost float64   `json:"packageCost"`
	Note        *string   `json:"note"`
	Status      string    `json:"status"`
	ClientName  *string   `json:"clientName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingResponseFromEntity maps a row to its JSON shape
func BookingResponseFromEntity(b *Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		BookingType: b.BookingType,
		PackageType: b.PackageType,
		PackageCost: b.PackageCost,
		Note:        nullable(b.Note),
		Status:      b.Status,
		ClientName:  nullable(b.ClientName),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ListResponse is the body of GET /api/bookings
type ListResponse struct {
	Data      []*BookingResponse `json:"data"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"perPage"`
	PageCount int                `json:"pageCount"`
	Stats     *Stats             `json:"stats"`
}

// ExportResponse points at a generated spreadsheet
type ExportResponse struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Rows int    `json:"rows"`
}

func pageCount(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(perPage)))
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
