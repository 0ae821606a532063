package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

func TestFromReceives(t *testing.T) {
	day := at(2024, time.April, 2)
	receives := []models.Receive{
		{
			PKID:         1,
			ReceivedDate: day,
			Details: []models.ReceiveDetail{
				{AcceptedQuantity: 100, RejectedQuantity: 5},
				{AcceptedQuantity: 40, RejectedQuantity: 0},
			},
		},
		{PKID: 2, ReceivedDate: at(2024, time.April, 9)},
	}

	obs := FromReceives(receives)
	require.Len(t, obs, 3, "detail rows fan out; empty receives keep one zero observation")
	assert.Equal(t, 100.0, obs[0].Conform)
	assert.Equal(t, 5.0, obs[0].Nonconform)
	assert.Zero(t, obs[2].Conform)
	assert.Zero(t, obs[2].Nonconform)

	series := AggregateYearly(obs)
	require.Len(t, series, 1)
	assert.Equal(t, models.TrendPoint{Period: "2024", Conform: 140, Nonconform: 5}, series[0])
}

func TestFromTransfers(t *testing.T) {
	now := at(2024, time.June, 15)
	early := at(2024, time.June, 1)
	late := at(2024, time.June, 20)

	transfers := []models.Transfer{
		{ExpectedArrivalDate: early, ReceivedDate: &early},        // on time
		{ExpectedArrivalDate: early, ReceivedDate: &late},         // arrived late
		{ExpectedArrivalDate: early},                              // overdue, never arrived
		{ExpectedArrivalDate: at(2024, time.July, 1)},             // still in transit, not due
	}

	obs := FromTransfers(transfers, now)
	require.Len(t, obs, 4)
	assert.Equal(t, 1.0, obs[0].Conform)
	assert.Equal(t, 1.0, obs[1].Nonconform)
	assert.Equal(t, 1.0, obs[2].Nonconform)
	assert.Equal(t, 1.0, obs[3].Conform, "pending transfers before their due date are not late yet")
}

func TestFromProductionRequests(t *testing.T) {
	day := at(2024, time.March, 3)
	obs := FromProductionRequests([]models.ProductionRequest{
		{RequestedDate: day, QuantityRequested: 100, QuantityProduced: 100},
		{RequestedDate: day, QuantityRequested: 100, QuantityProduced: 120},
		{RequestedDate: day, QuantityRequested: 100, QuantityProduced: 99},
	})

	require.Len(t, obs, 3)
	assert.Equal(t, 1.0, obs[0].Conform, "exactly meeting the target conforms")
	assert.Equal(t, 1.0, obs[1].Conform)
	assert.Equal(t, 1.0, obs[2].Nonconform)
}

func TestFromRFQs(t *testing.T) {
	now := at(2024, time.June, 15)
	deadline := at(2024, time.June, 10)
	onTime := at(2024, time.June, 9)
	tooLate := at(2024, time.June, 12)

	obs := FromRFQs([]models.RFQ{
		{TargetDeadlineDate: deadline, ClosedDate: &onTime},
		{TargetDeadlineDate: deadline, ClosedDate: &tooLate},
		{TargetDeadlineDate: deadline},                          // open past deadline
		{TargetDeadlineDate: at(2024, time.July, 1)},            // open, deadline ahead
	}, now)

	require.Len(t, obs, 4)
	assert.Equal(t, 1.0, obs[0].Conform)
	assert.Equal(t, 1.0, obs[1].Nonconform)
	assert.Equal(t, 1.0, obs[2].Nonconform)
	assert.Equal(t, 1.0, obs[3].Conform)
}

func TestFromShipmentGroups(t *testing.T) {
	now := at(2024, time.August, 1)
	target := at(2024, time.May, 10)
	delivered := at(2024, time.May, 9)

	groups := []models.ShipmentYearGroup{
		{
			Year: "2024",
			HistoryShipments: []models.HistoryShipment{
				{ShipmentDate: at(2024, time.May, 1), TargetDeliveryDate: target, DeliveredDate: &delivered,
					TargetQuantity: 100, DeliveredQuantity: 100},
				{ShipmentDate: at(2024, time.May, 2), TargetDeliveryDate: target,
					TargetQuantity: 100, DeliveredQuantity: 80},
			},
		},
	}

	punctuality := FromShipmentPunctuality(groups, now)
	require.Len(t, punctuality, 2)
	assert.Equal(t, 1.0, punctuality[0].Conform)
	assert.Equal(t, 1.0, punctuality[1].Nonconform, "undelivered past target is late")

	quantities := FromShipmentQuantities(groups)
	require.Len(t, quantities, 2)
	assert.Equal(t, 1.0, quantities[0].Conform)
	assert.Equal(t, 1.0, quantities[1].Nonconform)
}

func TestFromRequisitions(t *testing.T) {
	now := at(2024, time.June, 15)
	target := at(2024, time.June, 10)
	onTime := at(2024, time.June, 10)

	obs := FromRequisitions([]models.Requisition{
		{TargetDeliveryDate: target, DeliveredDate: &onTime},
		{TargetDeliveryDate: target},
	}, now)

	require.Len(t, obs, 2)
	assert.Equal(t, 1.0, obs[0].Conform, "delivery on the target date itself is on time")
	assert.Equal(t, 1.0, obs[1].Nonconform)
}
