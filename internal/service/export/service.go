// Package export renders the caseload as an xlsx workbook.
package export

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/i18n"
	"refugee-portal/internal/repository"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	householdColumns = []string{"id", "address", "accommodation_type", "local_authority", "status", "caseworker", "head", "members", "created_at"}
	requestColumns   = []string{"id", "requester", "type", "urgency", "status", "description", "created_at"}
)

type Service interface {
	Caseload(ctx context.Context, actor domain.Actor, locale string) ([]byte, error)
}

type service struct {
	householdRepo repository.HouseholdRepository
	requestRepo   repository.RequestRepository
	profileRepo   repository.ProfileRepository
	log           *zap.Logger
}

func NewService(
	householdRepo repository.HouseholdRepository,
	requestRepo repository.RequestRepository,
	profileRepo repository.ProfileRepository,
	log *zap.Logger,
) Service {
	return &service{
		householdRepo: householdRepo,
		requestRepo:   requestRepo,
		profileRepo:   profileRepo,
		log:           log,
	}
}

// Caseload builds a workbook with one sheet of households and one of
// requests. Unknown locales fall back to English labels.
func (s *service) Caseload(ctx context.Context, actor domain.Actor, locale string) ([]byte, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if !i18n.Supported(locale) {
		locale = i18n.DefaultLocale
	}

	households, err := collect(func(p domain.PaginationParams) ([]domain.Household, int64, error) {
		return s.householdRepo.List(ctx, domain.HouseholdFilter{}, p)
	})
	if err != nil {
		return nil, err
	}
	requests, err := collect(func(p domain.PaginationParams) ([]domain.Request, int64, error) {
		return s.requestRepo.List(ctx, domain.RequestFilter{}, p)
	})
	if err != nil {
		return nil, err
	}

	names := newNameCache(s.profileRepo)

	f := excelize.NewFile()
	defer f.Close()

	w := &workbook{file: f, locale: locale}
	if err := w.writeHeader("households", householdColumns); err != nil {
		return nil, err
	}
	for i, h := range households {
		members, err := s.profileRepo.ListByHousehold(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		row := []any{
			h.ID.String(),
			deref(h.Address),
			deref(h.AccommodationType),
			deref(h.LocalAuthority),
			i18n.Label(locale, "household_status", string(h.Status)),
			names.lookup(ctx, h.CaseworkerID),
			names.lookup(ctx, h.HeadOfHouseholdID),
			len(members),
			h.CreatedAt.Format("2006-01-02"),
		}
		if err := w.writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	if err := w.writeHeader("requests", requestColumns); err != nil {
		return nil, err
	}
	for i, r := range requests {
		row := []any{
			r.ID.String(),
			names.lookup(ctx, &r.UserID),
			i18n.Label(locale, "request_type", r.Type),
			i18n.Label(locale, "urgency", r.Urgency),
			i18n.Label(locale, "request_status", string(r.Status)),
			r.Description,
			r.CreatedAt.Format("2006-01-02"),
		}
		if err := w.writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	if idx, err := f.GetSheetIndex(w.sheet(0)); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.log.Info("caseload exported",
		zap.String("actor_id", actor.ProfileID.String()),
		zap.Int("households", len(households)),
		zap.Int("requests", len(requests)),
	)
	return buf.Bytes(), nil
}

type workbook struct {
	file    *excelize.File
	locale  string
	sheets  []string
	current string
	bold    int
}

func (w *workbook) sheet(i int) string {
	if i < len(w.sheets) {
		return w.sheets[i]
	}
	return ""
}

func (w *workbook) writeHeader(name string, columns []string) error {
	title := i18n.Translate(w.locale, "sheet."+name)
	if _, err := w.file.NewSheet(title); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	w.sheets = append(w.sheets, title)
	w.current = title

	if w.bold == 0 {
		style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		w.bold = style
	}

	for col, key := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(title, cell, i18n.Translate(w.locale, "column."+key)); err != nil {
			return err
		}
		if err := w.file.SetCellStyle(title, cell, cell, w.bold); err != nil {
			return err
		}
	}
	return w.file.SetPanes(title, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (w *workbook) writeRow(row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.file.SetSheetRow(w.current, cell, &values)
}

// collect pages through a list query until every row is read.
func collect[T any](list func(domain.PaginationParams) ([]T, int64, error)) ([]T, error) {
	params := domain.PaginationParams{Page: 1, PageSize: domain.MaxPageSize}
	var out []T
	for {
		items, total, err := list(params)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || int64(len(out)) >= total {
			return out, nil
		}
		params.Page++
	}
}

type nameCache struct {
	repo  repository.ProfileRepository
	names map[uuid.UUID]string
}

func newNameCache(repo repository.ProfileRepository) *nameCache {
	return &nameCache{repo: repo, names: make(map[uuid.UUID]string)}
}

func (c *nameCache) lookup(ctx context.Context, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if name, ok := c.names[*id]; ok {
		return name
	}
	var name string
	if p, err := c.repo.GetByID(ctx, *id); err == nil && p != nil {
		name = p.FullName
	}
	c.names[*id] = name
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
