package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

type TripsRepo struct {
	DB *sql.DB
}

const tripCols = `id, created_by_user_id, driver_id, client_id, company_id, vehicle_type, cnf,
	flight_number, meet_greet, client_phone, start_at, end_at, origin, destination, stop,
	miles, duration_minutes, price, received, notes, created_at`

func scanTrip(s interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	var clientID, vehicleType, cnf, flightNumber, clientPhone, stop, notes sql.NullString
	err := s.Scan(
		&t.ID, &t.CreatedByUserID, &t.DriverID, &clientID, &t.CompanyID, &vehicleType, &cnf,
		&flightNumber, &t.MeetGreet, &clientPhone, &t.StartAt, &t.EndAt, &t.Origin, &t.Destination, &stop,
		&t.Miles, &t.DurationMinutes, &t.Price, &t.Received, &notes, &t.CreatedAt,
	)
	if clientID.Valid {
		t.ClientID = &clientID.String
	}
	if vehicleType.Valid {
		t.VehicleType = &vehicleType.String
	}
	t.Cnf = fromNull(cnf)
	t.FlightNumber = fromNull(flightNumber)
	t.ClientPhone = fromNull(clientPhone)
	t.Stop = fromNull(stop)
	t.Notes = fromNull(notes)
	return t, err
}

func (r TripsRepo) List(filter models.TripFilter) ([]models.Trip, error) {
	where := []string{}
	args := []any{}
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.CreatedByUserID != "" {
		add("created_by_user_id=$%d", filter.CreatedByUserID)
	}
	if filter.DriverID != "" {
		add("driver_id=$%d", filter.DriverID)
	}
	if filter.ClientID != "" {
		add("client_id=$%d", filter.ClientID)
	}
	if filter.CompanyID != "" {
		add("company_id=$%d", filter.CompanyID)
	}
	if filter.Cnf != "" {
		add("cnf ilike $%d", "%"+filter.Cnf+"%")
	}
	if filter.FlightNumber != "" {
		add("flight_number ilike $%d", "%"+filter.FlightNumber+"%")
	}
	if filter.MeetGreetPresent != nil {
		add("(nullif(meet_greet,'') is not null) = $%d", *filter.MeetGreetPresent)
	} else if needle := strings.TrimSpace(filter.MeetGreetMatch); needle != "" {
		add("meet_greet ilike $%d", "%"+needle+"%")
	}

	query := `select ` + tripCols + ` from trips`
	if len(where) > 0 {
		query += ` where ` + strings.Join(where, " and ")
	}
	query += ` order by start_at desc`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripsRepo) Get(id string) (models.Trip, error) {
	t, err := scanTrip(r.DB.QueryRow(`select `+tripCols+` from trips where id=$1 limit 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

func (r TripsRepo) Create(input models.TripInput, createdByUserID string) (models.Trip, error) {
	meetGreet := ""
	if input.MeetGreet != nil {
		meetGreet = *input.MeetGreet
	}
	received := false
	if input.Received != nil {
		received = *input.Received
	}
	row := r.DB.QueryRow(
		`insert into trips (id, created_by_user_id, driver_id, client_id, company_id, vehicle_type, cnf,
			flight_number, meet_greet, client_phone, start_at, end_at, origin, destination, stop,
			miles, duration_minutes, price, received, notes)
		 values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		 returning `+tripCols,
		store.NewID("t"), createdByUserID, input.DriverID, input.ClientID, input.CompanyID,
		input.VehicleType, nullable(input.Cnf), nullable(input.FlightNumber), meetGreet,
		input.ClientPhone, input.StartAt, input.EndAt, input.Origin, input.Destination,
		nullable(input.Stop), input.Miles, input.DurationMinutes, input.Price, received,
		nullable(input.Notes),
	)
	return scanTrip(row)
}

func (r TripsRepo) Update(id string, input models.TripInput) (models.Trip, error) {
	// client_phone, meet_greet and received coalesce: a nil input field
	// keeps the stored value. Everything else overwrites.
	row := r.DB.QueryRow(
		`update trips set
			driver_id=$2, client_id=$3, company_id=$4, vehicle_type=$5, cnf=$6, flight_number=$7,
			client_phone=coalesce($8, client_phone), meet_greet=coalesce($9, meet_greet),
			start_at=$10, end_at=$11, origin=$12, destination=$13, stop=$14,
			miles=$15, duration_minutes=$16, price=$17, received=coalesce($18, received), notes=$19
		 where id=$1
		 returning `+tripCols,
		id, input.DriverID, input.ClientID, input.CompanyID, input.VehicleType,
		nullable(input.Cnf), nullable(input.FlightNumber), input.ClientPhone, input.MeetGreet,
		input.StartAt, input.EndAt, input.Origin, input.Destination, nullable(input.Stop),
		input.Miles, input.DurationMinutes, input.Price, input.Received, nullable(input.Notes),
	)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

func (r TripsRepo) SetReceived(id string, received bool) (models.Trip, error) {
	row := r.DB.QueryRow(
		`update trips set received=$2 where id=$1 returning `+tripCols,
		id, received,
	)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

func (r TripsRepo) Delete(id string) (models.Trip, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return models.Trip{}, err
	}
	defer tx.Rollback()

	var received bool
	err = tx.QueryRow(`select received from trips where id=$1`, id).Scan(&received)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, err
	}
	if received {
		return models.Trip{}, domain.ConflictError{Resource: "trip", Msg: "cannot delete a received trip"}
	}

	t, err := scanTrip(tx.QueryRow(`delete from trips where id=$1 returning `+tripCols, id))
	if err != nil {
		return models.Trip{}, err
	}
	return t, tx.Commit()
}

type DashboardRepo struct {
	DB *sql.DB
}

func (r DashboardRepo) Summary(createdByUserID string) (models.Summary, error) {
	query := `select count(*),
		coalesce(sum(price),0),
		coalesce(sum(miles),0),
		coalesce(avg(duration_minutes),0)
	 from trips`
	args := []any{}
	if createdByUserID != "" {
		query += ` where created_by_user_id=$1`
		args = append(args, createdByUserID)
	}

	var s models.Summary
	var avg float64
	if err := r.DB.QueryRow(query, args...).Scan(&s.TotalTrips, &s.TotalRevenue, &s.TotalMiles, &avg); err != nil {
		return models.Summary{}, err
	}
	s.AvgDurationMinutes = math.Round(avg*100) / 100
	return s, nil
}
