package memory

import (
	"math"
	"sort"
	"strings"
	"time"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

type tripsRepo struct{ d *DB }

func matchesFilter(t models.Trip, f models.TripFilter) bool {
	if f.CreatedByUserID != "" && t.CreatedByUserID != f.CreatedByUserID {
		return false
	}
	if f.DriverID != "" && t.DriverID != f.DriverID {
		return false
	}
	if f.ClientID != "" && (t.ClientID == nil || *t.ClientID != f.ClientID) {
		return false
	}
	if f.CompanyID != "" && t.CompanyID != f.CompanyID {
		return false
	}
	if f.Cnf != "" && !strings.Contains(strings.ToLower(t.Cnf), strings.ToLower(f.Cnf)) {
		return false
	}
	if f.FlightNumber != "" && !strings.Contains(strings.ToLower(t.FlightNumber), strings.ToLower(f.FlightNumber)) {
		return false
	}
	if f.MeetGreetPresent != nil {
		present := strings.TrimSpace(t.MeetGreet) != ""
		if present != *f.MeetGreetPresent {
			return false
		}
	} else if needle := strings.TrimSpace(f.MeetGreetMatch); needle != "" {
		if !strings.Contains(strings.ToLower(t.MeetGreet), strings.ToLower(needle)) {
			return false
		}
	}
	return true
}

func (r tripsRepo) List(filter models.TripFilter) ([]models.Trip, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []models.Trip{}
	for i := len(r.d.trips) - 1; i >= 0; i-- {
		if matchesFilter(r.d.trips[i], filter) {
			out = append(out, cloneTrip(r.d.trips[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartAt.After(out[j].StartAt)
	})
	return out, nil
}

func (r tripsRepo) Get(id string) (models.Trip, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, t := range r.d.trips {
		if t.ID == id {
			return cloneTrip(t), nil
		}
	}
	return models.Trip{}, domain.NotFoundError{Resource: "trip"}
}

func (r tripsRepo) Create(input models.TripInput, createdByUserID string) (models.Trip, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	t := models.Trip{
		ID:              store.NewID("t"),
		CreatedByUserID: createdByUserID,
		DriverID:        input.DriverID,
		ClientID:        cloneStringPtr(input.ClientID),
		CompanyID:       input.CompanyID,
		VehicleType:     cloneStringPtr(input.VehicleType),
		Cnf:             input.Cnf,
		FlightNumber:    input.FlightNumber,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		Origin:          input.Origin,
		Destination:     input.Destination,
		Stop:            input.Stop,
		Miles:           input.Miles,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		Notes:           input.Notes,
		CreatedAt:       time.Now().UTC(),
	}
	if input.MeetGreet != nil {
		t.MeetGreet = *input.MeetGreet
	}
	if input.ClientPhone != nil {
		t.ClientPhone = *input.ClientPhone
	}
	if input.Received != nil {
		t.Received = *input.Received
	}
	r.d.trips = append(r.d.trips, t)
	return cloneTrip(t), nil
}

func (r tripsRepo) Update(id string, input models.TripInput) (models.Trip, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.trips {
		if r.d.trips[i].ID != id {
			continue
		}
		t := &r.d.trips[i]
		t.DriverID = input.DriverID
		t.ClientID = cloneStringPtr(input.ClientID)
		t.CompanyID = input.CompanyID
		t.VehicleType = cloneStringPtr(input.VehicleType)
		t.Cnf = input.Cnf
		t.FlightNumber = input.FlightNumber
		t.StartAt = input.StartAt
		t.EndAt = input.EndAt
		t.Origin = input.Origin
		t.Destination = input.Destination
		t.Stop = input.Stop
		t.Miles = input.Miles
		t.DurationMinutes = input.DurationMinutes
		t.Price = input.Price
		t.Notes = input.Notes
		// sparse fields: nil leaves the stored value alone
		if input.MeetGreet != nil {
			t.MeetGreet = *input.MeetGreet
		}
		if input.ClientPhone != nil {
			t.ClientPhone = *input.ClientPhone
		}
		if input.Received != nil {
			t.Received = *input.Received
		}
		return cloneTrip(*t), nil
	}
	return models.Trip{}, domain.NotFoundError{Resource: "trip"}
}

func (r tripsRepo) SetReceived(id string, received bool) (models.Trip, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.trips {
		if r.d.trips[i].ID == id {
			r.d.trips[i].Received = received
			return cloneTrip(r.d.trips[i]), nil
		}
	}
	return models.Trip{}, domain.NotFoundError{Resource: "trip"}
}

func (r tripsRepo) Delete(id string) (models.Trip, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	idx := -1
	for i := range r.d.trips {
		if r.d.trips[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if r.d.trips[idx].Received {
		return models.Trip{}, domain.ConflictError{Resource: "trip", Msg: "cannot delete a received trip"}
	}
	removed := r.d.trips[idx]
	r.d.trips = append(r.d.trips[:idx], r.d.trips[idx+1:]...)
	return cloneTrip(removed), nil
}

type dashboardRepo struct{ d *DB }

func (r dashboardRepo) Summary(createdByUserID string) (models.Summary, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var s models.Summary
	var totalDuration float64
	for _, t := range r.d.trips {
		if createdByUserID != "" && t.CreatedByUserID != createdByUserID {
			continue
		}
		s.TotalTrips++
		s.TotalRevenue += t.Price
		s.TotalMiles += t.Miles
		totalDuration += t.DurationMinutes
	}
	if s.TotalTrips > 0 {
		s.AvgDurationMinutes = math.Round(totalDuration/float64(s.TotalTrips)*100) / 100
	}
	return s, nil
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneTrip deep-copies pointer fields so callers cannot reach into
// stored state.
func cloneTrip(t models.Trip) models.Trip {
	t.ClientID = cloneStringPtr(t.ClientID)
	t.VehicleType = cloneStringPtr(t.VehicleType)
	return t
}
