package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func seedTripRefs(t *testing.T, stores store.Stores) (models.Driver, models.Client, models.Company) {
	t.Helper()
	driver, err := stores.Drivers.Create(models.DriverInput{Name: "Alex"})
	require.NoError(t, err)
	client, err := stores.Clients.Create(models.ClientInput{Name: "Dana"})
	require.NoError(t, err)
	company, err := stores.Companies.Create(models.CompanyInput{Name: "Acme Limo"})
	require.NoError(t, err)
	return driver, client, company
}

func TestTripCreateDefaults(t *testing.T) {
	stores := New().Stores()
	driver, client, company := seedTripRefs(t, stores)

	trip, err := stores.Trips.Create(models.TripInput{
		DriverID:  driver.ID,
		ClientID:  &client.ID,
		CompanyID: company.ID,
		StartAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Origin:    "JFK",
		Destination: "Manhattan",
	}, "u_owner")
	require.NoError(t, err)
	require.Equal(t, "u_owner", trip.CreatedByUserID)
	require.False(t, trip.Received)
	require.Empty(t, trip.MeetGreet)
	require.Empty(t, trip.ClientPhone)
	require.Nil(t, trip.VehicleType)
}

func TestTripSparseUpdate(t *testing.T) {
	stores := New().Stores()
	driver, client, company := seedTripRefs(t, stores)

	trip, err := stores.Trips.Create(models.TripInput{
		DriverID:    driver.ID,
		ClientID:    &client.ID,
		CompanyID:   company.ID,
		MeetGreet:   strPtr("Sign: SMITH"),
		ClientPhone: strPtr("555-1234"),
		Origin:      "JFK",
		Destination: "Manhattan",
		Notes:       "keep",
	}, "u_owner")
	require.NoError(t, err)

	// nil sparse fields leave stored values untouched; everything else
	// overwrites.
	updated, err := stores.Trips.Update(trip.ID, models.TripInput{
		DriverID:    driver.ID,
		ClientID:    &client.ID,
		CompanyID:   company.ID,
		Origin:      "LGA",
		Destination: "Brooklyn",
	})
	require.NoError(t, err)
	require.Equal(t, "Sign: SMITH", updated.MeetGreet)
	require.Equal(t, "555-1234", updated.ClientPhone)
	require.Equal(t, "LGA", updated.Origin)
	require.Equal(t, "Brooklyn", updated.Destination)
	require.Empty(t, updated.Notes)

	// explicit values overwrite
	updated, err = stores.Trips.Update(trip.ID, models.TripInput{
		DriverID:    driver.ID,
		ClientID:    &client.ID,
		CompanyID:   company.ID,
		MeetGreet:   strPtr(""),
		ClientPhone: strPtr("555-9999"),
		Received:    boolPtr(true),
		Origin:      "LGA",
		Destination: "Brooklyn",
	})
	require.NoError(t, err)
	require.Empty(t, updated.MeetGreet)
	require.Equal(t, "555-9999", updated.ClientPhone)
	require.True(t, updated.Received)
}

func TestTripReceivedDeleteGuard(t *testing.T) {
	stores := New().Stores()
	driver, client, company := seedTripRefs(t, stores)

	trip, err := stores.Trips.Create(models.TripInput{
		DriverID:  driver.ID,
		ClientID:  &client.ID,
		CompanyID: company.ID,
	}, "u_owner")
	require.NoError(t, err)

	_, err = stores.Trips.SetReceived(trip.ID, true)
	require.NoError(t, err)

	_, err = stores.Trips.Delete(trip.ID)
	require.True(t, domain.IsConflict(err))

	// Unsetting the flag makes the trip deletable again.
	_, err = stores.Trips.SetReceived(trip.ID, false)
	require.NoError(t, err)
	_, err = stores.Trips.Delete(trip.ID)
	require.NoError(t, err)

	_, err = stores.Trips.Get(trip.ID)
	require.True(t, domain.IsNotFound(err))
}

func TestTripListFilters(t *testing.T) {
	stores := New().Stores()
	driver, client, company := seedTripRefs(t, stores)
	other, err := stores.Drivers.Create(models.DriverInput{Name: "Sam"})
	require.NoError(t, err)

	mk := func(input models.TripInput, owner string) models.Trip {
		t.Helper()
		input.ClientID = &client.ID
		input.CompanyID = company.ID
		trip, err := stores.Trips.Create(input, owner)
		require.NoError(t, err)
		return trip
	}

	withGreet := mk(models.TripInput{DriverID: driver.ID, MeetGreet: strPtr("Sign: SMITH"), Cnf: "ABC123"}, "u_a")
	plain := mk(models.TripInput{DriverID: driver.ID, FlightNumber: "DL100"}, "u_a")
	otherDriver := mk(models.TripInput{DriverID: other.ID}, "u_b")

	byDriver, err := stores.Trips.List(models.TripFilter{DriverID: other.ID})
	require.NoError(t, err)
	require.Len(t, byDriver, 1)
	require.Equal(t, otherDriver.ID, byDriver[0].ID)

	byOwner, err := stores.Trips.List(models.TripFilter{CreatedByUserID: "u_a"})
	require.NoError(t, err)
	require.Len(t, byOwner, 2)

	present, err := stores.Trips.List(models.TripFilter{MeetGreetPresent: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, present, 1)
	require.Equal(t, withGreet.ID, present[0].ID)

	absent, err := stores.Trips.List(models.TripFilter{MeetGreetPresent: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, absent, 2)

	match, err := stores.Trips.List(models.TripFilter{MeetGreetMatch: "smith"})
	require.NoError(t, err)
	require.Len(t, match, 1)

	byCnf, err := stores.Trips.List(models.TripFilter{Cnf: "abc"})
	require.NoError(t, err)
	require.Len(t, byCnf, 1)

	byFlight, err := stores.Trips.List(models.TripFilter{FlightNumber: "dl1"})
	require.NoError(t, err)
	require.Len(t, byFlight, 1)
	require.Equal(t, plain.ID, byFlight[0].ID)
}

func TestTripListOrderedByStartDesc(t *testing.T) {
	stores := New().Stores()
	driver, client, company := seedTripRefs(t, stores)

	early, err := stores.Trips.Create(models.TripInput{
		DriverID: driver.ID, ClientID: &client.ID, CompanyID: company.ID,
		StartAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}, "u_a")
	require.NoError(t, err)
	late, err := stores.Trips.Create(models.TripInput{
		DriverID: driver.ID, ClientID: &client.ID, CompanyID: company.ID,
		StartAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}, "u_a")
	require.NoError(t, err)

	list, err := stores.Trips.List(models.TripFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, late.ID, list[0].ID)
	require.Equal(t, early.ID, list[1].ID)
}

func TestDashboardSummary(t *testing.T) {
	stores := New().Stores()
	driver, client, company := seedTripRefs(t, stores)

	empty, err := stores.Dashboard.Summary("")
	require.NoError(t, err)
	require.Equal(t, models.Summary{}, empty)

	_, err = stores.Trips.Create(models.TripInput{
		DriverID: driver.ID, ClientID: &client.ID, CompanyID: company.ID,
		Price: 99.5, Miles: 10, DurationMinutes: 20,
	}, "u_a")
	require.NoError(t, err)

	s, err := stores.Dashboard.Summary("")
	require.NoError(t, err)
	require.Equal(t, 1, s.TotalTrips)
	require.Equal(t, 99.5, s.TotalRevenue)
	require.Equal(t, 10.0, s.TotalMiles)
	require.Equal(t, 20.0, s.AvgDurationMinutes)

	_, err = stores.Trips.Create(models.TripInput{
		DriverID: driver.ID, ClientID: &client.ID, CompanyID: company.ID,
		Price: 0.5, Miles: 5, DurationMinutes: 25,
	}, "u_b")
	require.NoError(t, err)

	all, err := stores.Dashboard.Summary("")
	require.NoError(t, err)
	require.Equal(t, 2, all.TotalTrips)
	require.Equal(t, 100.0, all.TotalRevenue)
	require.Equal(t, 22.5, all.AvgDurationMinutes)

	scoped, err := stores.Dashboard.Summary("u_b")
	require.NoError(t, err)
	require.Equal(t, 1, scoped.TotalTrips)
	require.Equal(t, 0.5, scoped.TotalRevenue)
	require.Equal(t, 25.0, scoped.AvgDurationMinutes)
}
