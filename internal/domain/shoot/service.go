package shoot

import (
	"context"
	"time"

	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

// Service handles shoot scheduling
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates shoot service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create schedules a shoot under an existing booking of the scope's organization
func (s *Service) Create(ctx context.Context, scope tenant.Scope, req *CreateShootRequest) (int64, error) {
	shoot := &Shoot{
		BookingID:      req.BookingID.Int64(),
		OrganizationID: scope.OrganizationID,
		Title:          req.Title,
		Date:           req.Date,
		Time:           req.Time,
		Location:       req.Location,
		Notes:          req.Notes,
		CreatedAt:      s.now().UTC(),
	}
	return s.repo.Create(ctx, shoot, ParseCrewIDs(req.CrewMembers))
}
