package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAppointmentStatus(t *testing.T) {
	cases := map[string]AppointmentStatus{
		"Pending":           AppointmentPending,
		"pending":           AppointmentPending,
		"In Progress":       AppointmentInProgress,
		"in_progress":       AppointmentInProgress,
		"IN-PROGRESS":       AppointmentInProgress,
		"inprogress":        AppointmentInProgress,
		"SENT_TO_MANAGER":   AppointmentSentToManager,
		"Quotation Created": AppointmentQuotationCreated,
		"QUOTATION_CREATED": AppointmentQuotationCreated,
		"canceled":          AppointmentCancelled,
		"Cancelled":         AppointmentCancelled,
		" completed ":       AppointmentCompleted,
	}
	for raw, want := range cases {
		got, ok := ParseAppointmentStatus(raw)
		assert.True(t, ok, "raw %q", raw)
		assert.Equal(t, want, got, "raw %q", raw)
	}

	_, ok := ParseAppointmentStatus("On Hold")
	assert.False(t, ok)
	_, ok = ParseAppointmentStatus("")
	assert.False(t, ok)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, AppointmentCompleted.IsTerminal())
	assert.True(t, AppointmentCancelled.IsTerminal())
	for _, s := range []AppointmentStatus{
		AppointmentPending, AppointmentConfirmed, AppointmentInProgress,
		AppointmentQuotationCreated, AppointmentSentToManager,
	} {
		assert.False(t, s.IsTerminal(), "status %s", s)
	}
}
