package domain

import (
	"io"
	"time"
)

type RateOption string

const (
	RateOptionDaily   RateOption = "daily"
	RateOptionWeekly  RateOption = "weekly"
	RateOptionMonthly RateOption = "monthly"
)

func (o RateOption) Valid() bool {
	switch o {
	case RateOptionDaily, RateOptionWeekly, RateOptionMonthly:
		return true
	}
	return false
}

type UsageType string

const (
	UsageTypeInternal   UsageType = "internal"
	UsageTypeThirdParty UsageType = "third-party"
)

func (u UsageType) Valid() bool {
	return u == UsageTypeInternal || u == UsageTypeThirdParty
}

type RentalStatus string

const (
	RentalStatusRented   RentalStatus = "rented"
	RentalStatusReturned RentalStatus = "returned"
)

func (s RentalStatus) Valid() bool {
	return s == RentalStatusRented || s == RentalStatusReturned
}

// Attachment points at a receipt kept in attachment storage.
type Attachment struct {
	Name string `json:"name"`
	Key  string `json:"-"`
	URL  string `json:"url,omitempty"`
}

// AttachmentUpload carries a file received alongside a save request.
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// RentalRecord is one rented piece of equipment. ReturnDate is the only
// stored signal of whether the item is back; Status is derived from it.
type RentalRecord struct {
	ID           string      `json:"id"`
	Supplier     string      `json:"supplier"`
	Description  string      `json:"description"`
	Sector       string      `json:"sector"`
	DailyRate    float64     `json:"daily_rate"`
	WeeklyRate   float64     `json:"weekly_rate"`
	MonthlyRate  float64     `json:"monthly_rate"`
	RateOption   RateOption  `json:"rate_option"`
	RentalDate   Date        `json:"rental_date"`
	ReturnDate   *Date       `json:"return_date,omitempty"`
	Project      string      `json:"project"`
	Requester    string      `json:"requester"`
	UsageType    UsageType   `json:"usage_type"`
	Observations string      `json:"observations,omitempty"`
	Attachment   *Attachment `json:"attachment,omitempty"`
	CreatedOn    time.Time   `json:"created_on"`
	UpdatedOn    time.Time   `json:"updated_on"`
}

func (r RentalRecord) Status() RentalStatus {
	if r.ReturnDate == nil {
		return RentalStatusRented
	}
	return RentalStatusReturned
}

// PricedRental is a record together with its cost as of a given day.
type PricedRental struct {
	RentalRecord
	Cost float64 `json:"cost"`
}
