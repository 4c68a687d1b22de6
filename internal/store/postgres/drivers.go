package postgres

import (
	"database/sql"
	"errors"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

type DriversRepo struct {
	DB *sql.DB
}

const driverCols = `id, name, phone, license, active, created_at`

func scanDriver(s interface{ Scan(...any) error }) (models.Driver, error) {
	var d models.Driver
	var phone, license sql.NullString
	err := s.Scan(&d.ID, &d.Name, &phone, &license, &d.Active, &d.CreatedAt)
	d.Phone = fromNull(phone)
	d.License = fromNull(license)
	return d, err
}

func (r DriversRepo) List() ([]models.Driver, error) {
	rows, err := r.DB.Query(`select ` + driverCols + ` from drivers order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r DriversRepo) Get(id string) (models.Driver, error) {
	d, err := scanDriver(r.DB.QueryRow(`select `+driverCols+` from drivers where id=$1 limit 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	return d, err
}

func (r DriversRepo) Exists(id string) (bool, error) {
	var one int
	err := r.DB.QueryRow(`select 1 from drivers where id=$1 limit 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r DriversRepo) Create(input models.DriverInput) (models.Driver, error) {
	row := r.DB.QueryRow(
		`insert into drivers (id, name, phone, license, active) values ($1,$2,$3,$4,true)
		 returning `+driverCols,
		store.NewID("d"), input.Name, nullable(input.Phone), nullable(input.License),
	)
	return scanDriver(row)
}

func (r DriversRepo) Update(id string, input models.DriverInput) (models.Driver, error) {
	row := r.DB.QueryRow(
		`update drivers set name=$2, phone=$3, license=$4 where id=$1 returning `+driverCols,
		id, input.Name, nullable(input.Phone), nullable(input.License),
	)
	d, err := scanDriver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	return d, err
}

func (r DriversRepo) SetActive(id string, active bool) (models.Driver, error) {
	row := r.DB.QueryRow(
		`update drivers set active=$2 where id=$1 returning `+driverCols,
		id, active,
	)
	d, err := scanDriver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	return d, err
}

func (r DriversRepo) Delete(id string) (models.Driver, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return models.Driver{}, err
	}
	defer tx.Rollback()

	var ref int
	err = tx.QueryRow(`select 1 from trips where driver_id=$1 limit 1`, id).Scan(&ref)
	if err == nil {
		return models.Driver{}, domain.ConflictError{Resource: "driver", Msg: "driver has trips"}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, err
	}

	d, err := scanDriver(tx.QueryRow(`delete from drivers where id=$1 returning `+driverCols, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	if err != nil {
		return models.Driver{}, err
	}
	return d, tx.Commit()
}
