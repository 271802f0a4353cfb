package booking

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/shootdesk/shootdesk-api/internal/pkg/logger"
	"github.com/shootdesk/shootdesk-api/internal/pkg/metrics"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

const (
	exportSheet       = "Bookings"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeaders = []string{"ID", "Name", "Client", "Booking type", "Package type", "Package cost", "Status", "Created at"}

// Export writes the filtered booking list to a spreadsheet in storage
func (s *Service) Export(ctx context.Context, scope tenant.Scope, sort []SortOption, filters Filters) (*ExportResponse, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("export storage not configured")
	}

	rows, err := s.repo.ListAll(ctx, scope.OrganizationID, sort, filters, exportLimit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNothingToExport
	}

	now := s.now().UTC()
	buf, err := buildWorkbook(rows, now)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/%s/bookings-%s-%s.xlsx",
		scope.OrganizationID, now.Format("20060102-150405"), uuid.New().String()[:8])
	if err := s.storage.Put(ctx, key, buf, exportContentType); err != nil {
		return nil, err
	}

	metrics.IncExport()
	logger.FromContext(ctx).Info().Str("key", key).Int("rows", len(rows)).Msg("Booking export written")

	return &ExportResponse{URL: s.storage.GetURL(key), Key: key, Rows: len(rows)}, nil
}

// buildWorkbook renders bookings as a single-sheet workbook
func buildWorkbook(rows []*Booking, generatedAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	_ = f.SetCellValue(exportSheet, "A1", "Bookings exported "+generatedAt.Format("Jan 2, 2006 15:04 UTC"))
	_ = f.MergeCell(exportSheet, "A1", "H1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	_ = f.SetCellStyle(exportSheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(exportSheet, cell, h)
	}
	_ = f.SetCellStyle(exportSheet, "A2", "H2", headerStyle)

	for i, b := range rows {
		row := i + 3
		client := ""
		if b.ClientName.Valid {
			client = b.ClientName.String
		}
		values := []interface{}{
			b.ID, b.Name, client, b.BookingType, b.PackageType, b.PackageCost, b.Status,
			b.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 8)
	_ = f.SetColWidth(exportSheet, "B", "C", 30)
	_ = f.SetColWidth(exportSheet, "D", "H", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf, nil
}
