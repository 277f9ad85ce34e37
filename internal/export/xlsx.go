package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	rentalsSheet  = "Rentals"
	projectsSheet = "Projects"
)

type XLSXGenerator struct{}

func (g *XLSXGenerator) Generate(doc Document) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", rentalsSheet); err != nil {
		return nil, err
	}
	if err := g.writeRentals(file, doc); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(projectsSheet); err != nil {
		return nil, err
	}
	if err := g.writeProjects(file, doc); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *XLSXGenerator) writeRentals(file *excelize.File, doc Document) error {
	for i, header := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(rentalsSheet, cell, header); err != nil {
			return err
		}
	}

	for i, r := range doc.Rentals {
		row := i + 2
		values := rowValues(r)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			var value interface{} = v
			// rates and cost stay numeric so the sheet can sum them
			switch col {
			case 10:
				value = r.DailyRate
			case 11:
				value = r.WeeklyRate
			case 12:
				value = r.MonthlyRate
			case 13:
				value = r.Cost
			}
			if err := file.SetCellValue(rentalsSheet, cell, value); err != nil {
				return err
			}
		}
	}

	_ = file.SetColWidth(rentalsSheet, "A", "B", 28)
	_ = file.SetColWidth(rentalsSheet, "C", "F", 18)
	_ = file.SetColWidth(rentalsSheet, "G", "J", 13)
	_ = file.SetColWidth(rentalsSheet, "K", "N", 14)
	_ = file.SetColWidth(rentalsSheet, "O", "O", 40)
	return nil
}

func (g *XLSXGenerator) writeProjects(file *excelize.File, doc Document) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(projectsSheet, cell, value)
	}

	set("A1", "Project")
	set("B1", "Total Cost")
	for i, p := range doc.Report.Projects {
		row := i + 2
		set(fmt.Sprintf("A%d", row), p.Project)
		set(fmt.Sprintf("B%d", row), p.Total)
	}
	totalRow := len(doc.Report.Projects) + 2
	set(fmt.Sprintf("A%d", totalRow), "Grand Total")
	set(fmt.Sprintf("B%d", totalRow), doc.Report.GrandTotal)

	_ = file.SetColWidth(projectsSheet, "A", "A", 40)
	_ = file.SetColWidth(projectsSheet, "B", "B", 16)
	return nil
}
