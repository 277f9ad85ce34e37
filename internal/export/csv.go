package export

import (
	"bytes"
	"encoding/csv"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

type CSVGenerator struct{}

func (g *CSVGenerator) Generate(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ','
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, r := range doc.Rentals {
		if err := w.Write(rowValues(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
