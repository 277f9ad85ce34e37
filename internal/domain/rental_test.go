package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalRecord_Status(t *testing.T) {
	r := RentalRecord{RentalDate: NewDate(2024, time.July, 1)}
	assert.Equal(t, RentalStatusRented, r.Status())

	returned := NewDate(2024, time.July, 3)
	r.ReturnDate = &returned
	assert.Equal(t, RentalStatusReturned, r.Status())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, RateOptionWeekly.Valid())
	assert.False(t, RateOption("hourly").Valid())
	assert.True(t, UsageTypeThirdParty.Valid())
	assert.False(t, UsageType("external").Valid())
	assert.True(t, RentalStatusReturned.Valid())
	assert.False(t, RentalStatus("lost").Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}
