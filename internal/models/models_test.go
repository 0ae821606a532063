package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByTenant(t *testing.T) {
	seven, eight := int64(7), int64(8)
	records := []Transfer{
		{PKID: 1, TenantID: &seven},
		{PKID: 2, TenantID: &eight},
		{PKID: 3, TenantID: nil},
	}

	got := FilterByTenant(records, 7)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].PKID)
	assert.Equal(t, int64(3), got[1].PKID, "records without a tenant apply to everyone")
}

func TestTransferOnTime(t *testing.T) {
	expected := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	before := expected.AddDate(0, 0, -1)
	after := expected.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		received *time.Time
		now      time.Time
		want     bool
	}{
		{"arrived early", &before, after, true},
		{"arrived exactly on the expected date", &expected, after, true},
		{"arrived late", &after, after, false},
		{"pending before the expected date", nil, before, true},
		{"pending past the expected date", nil, after, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transfer{ExpectedArrivalDate: expected, ReceivedDate: tt.received}
			assert.Equal(t, tt.want, tr.OnTime(tt.now))
		})
	}
}
