package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"limocontrol/internal/domain/models"
	"limocontrol/internal/http/middleware"
	"limocontrol/internal/store"
	"limocontrol/internal/store/memory"
)

func newTestHandler(t *testing.T) (Handler, store.Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	stores := memory.New().Stores()
	return New(stores, []byte("test-secret")), stores
}

func tripRouter(h Handler, userID string, role models.Role) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { middleware.SetIdentity(c, userID, role) })
	r.GET("/trips", h.ListTrips)
	r.POST("/trips", h.CreateTrip)
	r.PUT("/trips/:id", h.UpdateTrip)
	r.PATCH("/trips/:id/received", h.SetTripReceived)
	r.DELETE("/trips/:id", h.DeleteTrip)
	r.GET("/trips/:id/sheet", h.TripSheet)
	r.GET("/dashboard", h.DashboardSummary)
	return r
}

func seedRefs(t *testing.T, stores store.Stores) (models.Driver, models.Client, models.Company) {
	t.Helper()
	driver, err := stores.Drivers.Create(models.DriverInput{Name: "Alex"})
	require.NoError(t, err)
	client, err := stores.Clients.Create(models.ClientInput{Name: "Dana"})
	require.NoError(t, err)
	company, err := stores.Companies.Create(models.CompanyInput{Name: "Acme Limo"})
	require.NoError(t, err)
	return driver, client, company
}

func seedTrip(t *testing.T, stores store.Stores, owner string) models.Trip {
	t.Helper()
	driver, client, company := seedRefs(t, stores)
	trip, err := stores.Trips.Create(models.TripInput{
		DriverID:  driver.ID,
		ClientID:  &client.ID,
		CompanyID: company.ID,
	}, owner)
	require.NoError(t, err)
	return trip
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDeleteTripNotFoundBeforeForbidden(t *testing.T) {
	h, stores := newTestHandler(t)
	trip := seedTrip(t, stores, "u_owner")
	r := tripRouter(h, "u_other", models.RoleUser)

	// Missing trip reports 404 even though the caller owns nothing.
	w := doJSON(r, http.MethodDelete, "/trips/t_missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Existing trip owned by someone else reports 403.
	w = doJSON(r, http.MethodDelete, "/trips/"+trip.ID, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Still there.
	_, err := stores.Trips.Get(trip.ID)
	require.NoError(t, err)
}

func TestDeleteTripAsOwner(t *testing.T) {
	h, stores := newTestHandler(t)
	trip := seedTrip(t, stores, "u_owner")
	r := tripRouter(h, "u_owner", models.RoleUser)

	w := doJSON(r, http.MethodDelete, "/trips/"+trip.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteReceivedTripConflict(t *testing.T) {
	h, stores := newTestHandler(t)
	trip := seedTrip(t, stores, "u_owner")
	_, err := stores.Trips.SetReceived(trip.ID, true)
	require.NoError(t, err)
	r := tripRouter(h, "", models.RoleAdmin)

	w := doJSON(r, http.MethodDelete, "/trips/"+trip.ID, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestListTripsOwnerScoped(t *testing.T) {
	h, stores := newTestHandler(t)
	driver, client, company := seedRefs(t, stores)
	for _, owner := range []string{"u_a", "u_b"} {
		_, err := stores.Trips.Create(models.TripInput{
			DriverID: driver.ID, ClientID: &client.ID, CompanyID: company.ID,
		}, owner)
		require.NoError(t, err)
	}

	w := doJSON(tripRouter(h, "u_a", models.RoleUser), http.MethodGet, "/trips", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, "u_a", mine[0].CreatedByUserID)

	w = doJSON(tripRouter(h, "u_admin", models.RoleAdmin), http.MethodGet, "/trips", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)
}

func TestCreateTripValidation(t *testing.T) {
	h, _ := newTestHandler(t)
	r := tripRouter(h, "u_a", models.RoleUser)

	w := doJSON(r, http.MethodPost, "/trips", gin.H{"origin": "JFK"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTripUnknownDriver(t *testing.T) {
	h, stores := newTestHandler(t)
	_, _, company := seedRefs(t, stores)
	r := tripRouter(h, "u_a", models.RoleUser)

	w := doJSON(r, http.MethodPost, "/trips", gin.H{
		"driverId":    "d_missing",
		"companyId":   company.ID,
		"startAt":     "2026-03-01T09:00:00Z",
		"endAt":       "2026-03-01T10:00:00Z",
		"origin":      "JFK",
		"destination": "Manhattan",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTripRecordsCaller(t *testing.T) {
	h, stores := newTestHandler(t)
	driver, _, company := seedRefs(t, stores)
	r := tripRouter(h, "u_a", models.RoleUser)

	w := doJSON(r, http.MethodPost, "/trips", gin.H{
		"driverId":    driver.ID,
		"companyId":   company.ID,
		"clientName":  "Walk In",
		"vehicleType": "SUV",
		"startAt":     "2026-03-01T09:00:00Z",
		"endAt":       "2026-03-01T10:00:00Z",
		"origin":      "JFK",
		"destination": "Manhattan",
		"price":       99.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var trip models.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trip))
	require.Equal(t, "u_a", trip.CreatedByUserID)
	require.NotNil(t, trip.ClientID)
	require.NotNil(t, trip.VehicleType)
	require.Equal(t, "SUV", *trip.VehicleType)
}

func TestSetTripReceivedRequiresBody(t *testing.T) {
	h, stores := newTestHandler(t)
	trip := seedTrip(t, stores, "u_owner")
	r := tripRouter(h, "", models.RoleAdmin)

	w := doJSON(r, http.MethodPatch, "/trips/"+trip.ID+"/received", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPatch, "/trips/"+trip.ID+"/received", gin.H{"received": true})
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Trip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.True(t, got.Received)
}

func TestTripSheetReturnsPDF(t *testing.T) {
	h, stores := newTestHandler(t)
	trip := seedTrip(t, stores, "u_owner")
	r := tripRouter(h, "", models.RoleAdmin)

	w := doJSON(r, http.MethodGet, "/trips/"+trip.ID+"/sheet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), trip.ID)
	require.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestDashboardScopedForNonAdmin(t *testing.T) {
	h, stores := newTestHandler(t)
	driver, client, company := seedRefs(t, stores)
	_, err := stores.Trips.Create(models.TripInput{
		DriverID: driver.ID, ClientID: &client.ID, CompanyID: company.ID, Price: 50,
	}, "u_a")
	require.NoError(t, err)
	_, err = stores.Trips.Create(models.TripInput{
		DriverID: driver.ID, ClientID: &client.ID, CompanyID: company.ID, Price: 25,
	}, "u_b")
	require.NoError(t, err)

	w := doJSON(tripRouter(h, "u_a", models.RoleUser), http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Equal(t, 1, mine.TotalTrips)
	require.Equal(t, 50.0, mine.TotalRevenue)

	w = doJSON(tripRouter(h, "u_admin", models.RoleAdmin), http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Equal(t, 2, all.TotalTrips)
	require.Equal(t, 75.0, all.TotalRevenue)
}
