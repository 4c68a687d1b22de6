package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

type ClientsRepo struct {
	DB *sql.DB
}

const clientCols = `id, name, phone, address, active, created_at`

func scanClient(s interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	var phone, address sql.NullString
	err := s.Scan(&c.ID, &c.Name, &phone, &address, &c.Active, &c.CreatedAt)
	c.Phone = fromNull(phone)
	c.Address = fromNull(address)
	return c, err
}

func (r ClientsRepo) List() ([]models.Client, error) {
	rows, err := r.DB.Query(`select ` + clientCols + ` from clients order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ClientsRepo) Get(id string) (models.Client, error) {
	c, err := scanClient(r.DB.QueryRow(`select `+clientCols+` from clients where id=$1 limit 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	return c, err
}

func (r ClientsRepo) Exists(id string) (bool, error) {
	var one int
	err := r.DB.QueryRow(`select 1 from clients where id=$1 limit 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r ClientsRepo) EnsureByName(name string) (models.Client, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return models.Client{}, domain.ValidationError{Field: "clientName", Msg: "client name is required"}
	}

	c, err := scanClient(r.DB.QueryRow(
		`select `+clientCols+` from clients where lower(name)=lower($1) limit 1`, normalized,
	))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, err
	}

	row := r.DB.QueryRow(
		`insert into clients (id, name, active) values ($1,$2,true) returning `+clientCols,
		store.NewID("c"), normalized,
	)
	return scanClient(row)
}

func (r ClientsRepo) Create(input models.ClientInput) (models.Client, error) {
	row := r.DB.QueryRow(
		`insert into clients (id, name, phone, address, active) values ($1,$2,$3,$4,true)
		 returning `+clientCols,
		store.NewID("c"), input.Name, nullable(input.Phone), nullable(input.Address),
	)
	return scanClient(row)
}

func (r ClientsRepo) Update(id string, input models.ClientInput) (models.Client, error) {
	row := r.DB.QueryRow(
		`update clients set name=$2, phone=$3, address=$4 where id=$1 returning `+clientCols,
		id, input.Name, nullable(input.Phone), nullable(input.Address),
	)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	return c, err
}

func (r ClientsRepo) SetActive(id string, active bool) (models.Client, error) {
	row := r.DB.QueryRow(
		`update clients set active=$2 where id=$1 returning `+clientCols,
		id, active,
	)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	return c, err
}

func (r ClientsRepo) Delete(id string) (models.Client, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return models.Client{}, err
	}
	defer tx.Rollback()

	var ref int
	err = tx.QueryRow(`select 1 from trips where client_id=$1 limit 1`, id).Scan(&ref)
	if err == nil {
		return models.Client{}, domain.ConflictError{Resource: "client", Msg: "client has trips"}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, err
	}

	c, err := scanClient(tx.QueryRow(`delete from clients where id=$1 returning `+clientCols, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	if err != nil {
		return models.Client{}, err
	}
	return c, tx.Commit()
}
