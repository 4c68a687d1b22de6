package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"limocontrol/internal/auth"
	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/http/middleware"
)

type tripRequest struct {
	DriverID        string    `json:"driverId" binding:"required"`
	ClientID        string    `json:"clientId"`
	ClientName      string    `json:"clientName"`
	ClientPhone     *string   `json:"clientPhone"`
	CompanyID       string    `json:"companyId" binding:"required"`
	VehicleType     *string   `json:"vehicleType" binding:"omitempty,oneof=SUV Sedan Economy"`
	Cnf             string    `json:"cnf"`
	FlightNumber    string    `json:"flightNumber"`
	MeetGreet       *string   `json:"meetGreet"`
	StartAt         time.Time `json:"startAt" binding:"required"`
	EndAt           time.Time `json:"endAt" binding:"required"`
	Origin          string    `json:"origin" binding:"required"`
	Destination     string    `json:"destination" binding:"required"`
	Stop            string    `json:"stop"`
	Miles           float64   `json:"miles" binding:"gte=0"`
	DurationMinutes float64   `json:"durationMinutes" binding:"gte=0"`
	Price           float64   `json:"price" binding:"gte=0"`
	Received        *bool     `json:"received"`
	Notes           string    `json:"notes"`
}

func (r tripRequest) toInput() models.TripInput {
	input := models.TripInput{
		DriverID:        r.DriverID,
		CompanyID:       r.CompanyID,
		VehicleType:     r.VehicleType,
		Cnf:             r.Cnf,
		FlightNumber:    r.FlightNumber,
		MeetGreet:       r.MeetGreet,
		ClientPhone:     r.ClientPhone,
		StartAt:         r.StartAt,
		EndAt:           r.EndAt,
		Origin:          r.Origin,
		Destination:     r.Destination,
		Stop:            r.Stop,
		Miles:           r.Miles,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Received:        r.Received,
		Notes:           r.Notes,
	}
	if r.ClientID != "" {
		id := r.ClientID
		input.ClientID = &id
	}
	return input
}

type receivedRequest struct {
	Received *bool `json:"received" binding:"required"`
}

// GET /trips
func (h Handler) ListTrips(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	filter := models.TripFilter{
		DriverID:     c.Query("driverId"),
		ClientID:     c.Query("clientId"),
		CompanyID:    c.Query("companyId"),
		Cnf:          c.Query("cnf"),
		FlightNumber: c.Query("flightNumber"),
	}
	// Non-admins only ever see their own trips.
	if !ident.IsAdmin() {
		filter.CreatedByUserID = ident.UserID
	}
	// meetGreet=true/false filters by presence, any other value by
	// substring.
	switch mg := c.Query("meetGreet"); mg {
	case "":
	case "true":
		v := true
		filter.MeetGreetPresent = &v
	case "false":
		v := false
		filter.MeetGreetPresent = &v
	default:
		filter.MeetGreetMatch = mg
	}

	trips, err := h.Stores.Trips.List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// POST /trips
func (h Handler) CreateTrip(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	trip, err := h.Trips.Create(req.toInput(), req.ClientName, ident.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// PUT /trips/:id
func (h Handler) UpdateTrip(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !h.authorizeTripWrite(c, ident, c.Param("id")) {
		return
	}
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	trip, err := h.Trips.Update(c.Param("id"), req.toInput(), req.ClientName)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PATCH /trips/:id/received
func (h Handler) SetTripReceived(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !h.authorizeTripWrite(c, ident, c.Param("id")) {
		return
	}
	var req receivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	trip, err := h.Stores.Trips.SetReceived(c.Param("id"), *req.Received)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /trips/:id
func (h Handler) DeleteTrip(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !h.authorizeTripWrite(c, ident, c.Param("id")) {
		return
	}
	trip, err := h.Stores.Trips.Delete(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /trips/:id/sheet
func (h Handler) TripSheet(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	if !h.authorizeTripWrite(c, ident, c.Param("id")) {
		return
	}
	pdf, filename, err := h.Docs.TripSheet(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// authorizeTripWrite enforces owner-scoped access for non-admins.
// Existence is checked before ownership, so a missing trip reports
// NotFound rather than Forbidden.
func (h Handler) authorizeTripWrite(c *gin.Context, ident auth.Identity, id string) bool {
	if ident.IsAdmin() {
		return true
	}
	trip, err := h.Stores.Trips.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if trip.CreatedByUserID != ident.UserID {
		RespondDomainError(c, domain.ForbiddenError{Msg: "forbidden"})
		return false
	}
	return true
}
