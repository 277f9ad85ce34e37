package export

import (
	"errors"
	"fmt"
	"strings"

	"rental-tracker-backend/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Columns is the fixed header shared by every export format.
var Columns = []string{
	"Supplier",
	"Item",
	"Sector",
	"Project",
	"Requester",
	"Usage",
	"Rental Date",
	"Return Date",
	"Status",
	"Rate Option",
	"Daily Rate",
	"Weekly Rate",
	"Monthly Rate",
	"Total Cost",
	"Observations",
}

// Document is everything a generator needs to render one export.
type Document struct {
	Title       string
	GeneratedOn domain.Date
	Rentals     []domain.PricedRental
	Report      domain.CostReport
}

type Generator interface {
	Generate(doc Document) ([]byte, error)
}

// NewGenerator returns the generator for format.
func NewGenerator(format Format) (Generator, error) {
	switch format {
	case FormatCSV:
		return &CSVGenerator{}, nil
	case FormatXLSX:
		return &XLSXGenerator{}, nil
	case FormatPDF:
		return &PDFGenerator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// rowValues renders one record in column order.
func rowValues(r domain.PricedRental) []string {
	returnDate := ""
	if r.ReturnDate != nil {
		returnDate = r.ReturnDate.String()
	}
	return []string{
		r.Supplier,
		r.Description,
		r.Sector,
		r.Project,
		r.Requester,
		string(r.UsageType),
		r.RentalDate.String(),
		returnDate,
		string(r.Status()),
		string(r.RateOption),
		formatMoney(r.DailyRate),
		formatMoney(r.WeeklyRate),
		formatMoney(r.MonthlyRate),
		formatMoney(r.Cost),
		r.Observations,
	}
}
