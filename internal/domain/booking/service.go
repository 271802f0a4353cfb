package booking

import (
	"context"
	"errors"
	"time"

	"github.com/shootdesk/shootdesk-api/internal/domain/crew"
	"github.com/shootdesk/shootdesk-api/internal/pkg/metrics"
	"github.com/shootdesk/shootdesk-api/internal/pkg/storage"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

const (
	minimalLimit = 500
	exportLimit  = 5000
)

// Service handles booking business logic
type Service struct {
	repo    Repository
	storage storage.Storage
	paging  Paging
	now     func() time.Time
}

// NewService creates booking service. store receives spreadsheet exports.
func NewService(repo Repository, store storage.Storage, paging Paging) *Service {
	return &Service{
		repo:    repo,
		storage: store,
		paging:  paging,
		now:     time.Now,
	}
}

// Paging returns the page size defaults used for list requests
func (s *Service) Paging() Paging {
	return s.paging
}

// Create writes the booking graph and returns the new booking id
func (s *Service) Create(ctx context.Context, scope tenant.Scope, req *CreateBookingRequest) (int64, error) {
	id, err := s.repo.CreateGraph(ctx, scope, req, s.now().UTC())
	if err != nil {
		var invalidCrew *crew.InvalidIDsError
		if errors.As(err, &invalidCrew) {
			metrics.IncBookingCreation(metrics.ResultInvalidCrews)
		} else {
			metrics.IncBookingCreation(metrics.ResultFailed)
		}
		return 0, err
	}

	metrics.IncBookingCreation(metrics.ResultCreated)
	return id, nil
}

// List returns one page of bookings plus organization-wide stats.
// The two reads are independent and may observe different snapshots.
func (s *Service) List(ctx context.Context, scope tenant.Scope, params ListParams) (*ListResponse, error) {
	rows, total, err := s.repo.List(ctx, scope.OrganizationID, params)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.Stats(ctx, scope.OrganizationID, s.now())
	if err != nil {
		return nil, err
	}

	data := make([]*BookingResponse, len(rows))
	for i, b := range rows {
		data[i] = BookingResponseFromEntity(b)
	}

	return &ListResponse{
		Data:      data,
		Total:     total,
		Page:      params.Page,
		PerPage:   params.PerPage,
		PageCount: pageCount(total, params.PerPage),
		Stats:     stats,
	}, nil
}

// Recent returns the newest bookings of the organization
func (s *Service) Recent(ctx context.Context, scope tenant.Scope, limit int) ([]*Booking, error) {
	return s.repo.Recent(ctx, scope.OrganizationID, limit)
}

// Minimal returns id and name pairs for booking pickers
func (s *Service) Minimal(ctx context.Context, scope tenant.Scope) ([]*Summary, error) {
	return s.repo.Minimal(ctx, scope.OrganizationID, minimalLimit)
}
