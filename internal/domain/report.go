package domain

type ProjectTotal struct {
	Project string  `json:"project"`
	Total   float64 `json:"total"`
}

type SupplierTotal struct {
	Supplier string  `json:"supplier"`
	Total    float64 `json:"total"`
}

// CostReport summarizes the cost of a set of rentals.
type CostReport struct {
	Projects   []ProjectTotal  `json:"projects"`
	Suppliers  []SupplierTotal `json:"suppliers,omitempty"`
	GrandTotal float64         `json:"grand_total"`
}

// ExportFile is a rendered export ready to be written to a response.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
}

// RentalOptions lists the distinct values offered by the list filters.
type RentalOptions struct {
	Suppliers []string `json:"suppliers"`
	Projects  []string `json:"projects"`
}
