package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"rental-tracker-backend/internal/domain"
	"rental-tracker-backend/internal/export"
	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/utils"
)

type reportService struct {
	rentals  RentalService
	calendar *utils.Calendar
}

func NewReportService(rentals RentalService, calendar *utils.Calendar) ReportService {
	return &reportService{rentals: rentals, calendar: calendar}
}

func (s *reportService) ProjectReport(ctx context.Context, filter utils.RentalFilter) (*domain.CostReport, error) {
	records, err := s.rentals.FindRentals(ctx, filter)
	if err != nil {
		return nil, err
	}
	today := s.calendar.Today()
	report := utils.AggregateByProject(records, today)
	report.Suppliers = utils.AggregateBySupplier(records, today)
	return &report, nil
}

func (s *reportService) Export(ctx context.Context, filter utils.RentalFilter, format export.Format) (*domain.ExportFile, error) {
	logger.EnterMethod("reportService.Export", "format", format, "supplier", filter.Supplier)

	gen, err := export.NewGenerator(format)
	if err != nil {
		return nil, validationError("%v", err)
	}

	records, err := s.rentals.FindRentals(ctx, filter)
	if err != nil {
		logger.ExitMethodWithError("reportService.Export", err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, validationError("no rentals to export")
	}

	today := s.calendar.Today()
	doc := export.Document{
		Title:       exportTitle(filter),
		GeneratedOn: today,
		Rentals:     utils.PriceRentals(records, today),
		Report:      utils.AggregateByProject(records, today),
	}
	content, err := gen.Generate(doc)
	if err != nil {
		logger.ExitMethodWithError("reportService.Export", err)
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}

	file := &domain.ExportFile{
		Filename:    exportFilename(filter, today, format),
		ContentType: format.ContentType(),
		Content:     content,
		Rows:        len(records),
	}
	logger.ExitMethod("reportService.Export", "file", file.Filename, "rows", len(records), "bytes", len(content))
	return file, nil
}

func exportTitle(filter utils.RentalFilter) string {
	if !utils.IsWildcard(filter.Supplier) {
		return "Rentals - " + filter.Supplier
	}
	return "Rentals"
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func exportFilename(filter utils.RentalFilter, today domain.Date, format export.Format) string {
	name := "rentals"
	if !utils.IsWildcard(filter.Supplier) {
		if slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(filter.Supplier), "-"), "-"); slug != "" {
			name += "-" + slug
		}
	}
	return fmt.Sprintf("%s-%s.%s", name, today.String(), format)
}
