package booking

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shootdesk/shootdesk-api/internal/pkg/logger"
)

// sortColumns is the allow-list of sortable fields and the columns they map to
var sortColumns = map[string]string{
	"name":        "b.name",
	"createdAt":   "b.created_at",
	"updatedAt":   "b.updated_at",
	"packageCost": "b.package_cost",
	"bookingType": "b.booking_type",
	"status":      "b.status",
}

// SortOption is one {id, desc} entry of the sort query parameter
type SortOption struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

// Filters narrow the booking list
type Filters struct {
	PackageTypes []string
	Name         string
	// CreatedFrom is inclusive, CreatedTo exclusive; either may be nil
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ListParams are the parsed listing query parameters
type ListParams struct {
	Page    int
	PerPage int
	Sort    []SortOption
	Filters Filters
}

// maxPage bounds the page number so the offset stays representable
const maxPage = math.MaxInt32

// Offset of the first row of the page; saturates instead of overflowing
func (p ListParams) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// Paging holds the page size defaults
type Paging struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ParseListParams reads page, perPage, sort, packageType, createdAt and name.
// Bad values fall back to defaults; nothing here fails the request.
func ParseListParams(ctx context.Context, q url.Values, paging Paging) ListParams {
	params := ListParams{
		Page:    positiveInt(q.Get("page"), 1),
		PerPage: positiveInt(q.Get("perPage"), paging.DefaultPerPage),
		Sort:    ParseSort(ctx, q.Get("sort")),
	}
	if paging.MaxPerPage > 0 && params.PerPage > paging.MaxPerPage {
		params.PerPage = paging.MaxPerPage
	}
	if params.Page > maxPage {
		params.Page = maxPage
	}

	params.Filters.Name = strings.TrimSpace(q.Get("name"))
	params.Filters.PackageTypes = splitList(q.Get("packageType"))

	if raw := strings.TrimSpace(q.Get("createdAt")); raw != "" {
		from, to, ok := parseCreatedAt(raw)
		if ok {
			params.Filters.CreatedFrom, params.Filters.CreatedTo = from, to
		} else {
			logger.FromContext(ctx).Warn().Str("createdAt", raw).Msg("Ignoring unparseable createdAt filter")
		}
	}

	return params
}

// ParseSort decodes the JSON sort parameter and keeps allow-listed fields.
// A malformed array yields no sort; malformed entries and unknown fields are
// dropped one by one.
func ParseSort(ctx context.Context, raw string) []SortOption {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("sort", raw).Msg("Error parsing sort parameter")
		return nil
	}

	valid := make([]SortOption, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		var opt SortOption
		if err := json.Unmarshal(entry, &opt); err != nil {
			logger.FromContext(ctx).Warn().Err(err).RawJSON("entry", entry).Msg("Skipping malformed sort entry")
			continue
		}
		if _, ok := sortColumns[opt.ID]; !ok {
			logger.FromContext(ctx).Warn().Str("field", opt.ID).Msg("Invalid sort field")
			continue
		}
		if seen[opt.ID] {
			continue
		}
		seen[opt.ID] = true
		valid = append(valid, opt)
	}
	if len(valid) == 0 {
		return nil
	}
	return valid
}

// orderBy renders the ORDER BY clause; id DESC always breaks ties
func orderBy(options []SortOption) string {
	if len(options) == 0 {
		return "b.created_at DESC, b.id DESC"
	}
	parts := make([]string, 0, len(options)+1)
	for _, opt := range options {
		dir := "ASC"
		if opt.Desc {
			dir = "DESC"
		}
		parts = append(parts, sortColumns[opt.ID]+" "+dir)
	}
	parts = append(parts, "b.id DESC")
	return strings.Join(parts, ", ")
}

// parseCreatedAt accepts a day (YYYY-MM-DD), or a "from,to" pair whose parts
// are days or epoch milliseconds. Each bound names the start of a selected
// day and covers 24 hours from there; an empty side leaves the range open.
func parseCreatedAt(raw string) (from, to *time.Time, ok bool) {
	if !strings.Contains(raw, ",") {
		start, ok := parseInstant(raw)
		if !ok {
			return nil, nil, false
		}
		end := start.Add(24 * time.Hour)
		return &start, &end, true
	}

	parts := strings.SplitN(raw, ",", 2)
	fromRaw, toRaw := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if fromRaw == "" && toRaw == "" {
		return nil, nil, false
	}

	if fromRaw != "" {
		t, ok := parseInstant(fromRaw)
		if !ok {
			return nil, nil, false
		}
		from = &t
	}
	if toRaw != "" {
		t, ok := parseInstant(toRaw)
		if !ok {
			return nil, nil, false
		}
		end := t.Add(24 * time.Hour)
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, false
	}
	return from, to, true
}

func parseInstant(s string) (time.Time, bool) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.UTC(), true
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms >= 0 {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// likePattern builds a case-insensitive substring pattern with LIKE wildcards escaped
func likePattern(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
