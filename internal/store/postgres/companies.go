package postgres

import (
	"database/sql"
	"errors"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

type CompaniesRepo struct {
	DB *sql.DB
}

const companyCols = `id, name, phone, active, created_at`

func scanCompany(s interface{ Scan(...any) error }) (models.Company, error) {
	var c models.Company
	var phone sql.NullString
	err := s.Scan(&c.ID, &c.Name, &phone, &c.Active, &c.CreatedAt)
	c.Phone = fromNull(phone)
	return c, err
}

func (r CompaniesRepo) List() ([]models.Company, error) {
	rows, err := r.DB.Query(`select ` + companyCols + ` from companies order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CompaniesRepo) Get(id string) (models.Company, error) {
	c, err := scanCompany(r.DB.QueryRow(`select `+companyCols+` from companies where id=$1 limit 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Company{}, domain.NotFoundError{Resource: "company"}
	}
	return c, err
}

func (r CompaniesRepo) Exists(id string) (bool, error) {
	var one int
	err := r.DB.QueryRow(`select 1 from companies where id=$1 limit 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r CompaniesRepo) Create(input models.CompanyInput) (models.Company, error) {
	row := r.DB.QueryRow(
		`insert into companies (id, name, phone, active) values ($1,$2,$3,true) returning `+companyCols,
		store.NewID("co"), input.Name, nullable(input.Phone),
	)
	return scanCompany(row)
}

func (r CompaniesRepo) Update(id string, input models.CompanyInput) (models.Company, error) {
	row := r.DB.QueryRow(
		`update companies set name=$2, phone=$3 where id=$1 returning `+companyCols,
		id, input.Name, nullable(input.Phone),
	)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Company{}, domain.NotFoundError{Resource: "company"}
	}
	return c, err
}

func (r CompaniesRepo) SetActive(id string, active bool) (models.Company, error) {
	row := r.DB.QueryRow(
		`update companies set active=$2 where id=$1 returning `+companyCols,
		id, active,
	)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Company{}, domain.NotFoundError{Resource: "company"}
	}
	return c, err
}

func (r CompaniesRepo) Delete(id string) (models.Company, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return models.Company{}, err
	}
	defer tx.Rollback()

	var ref int
	err = tx.QueryRow(`select 1 from trips where company_id=$1 limit 1`, id).Scan(&ref)
	if err == nil {
		return models.Company{}, domain.ConflictError{Resource: "company", Msg: "company has trips"}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Company{}, err
	}

	c, err := scanCompany(tx.QueryRow(`delete from companies where id=$1 returning `+companyCols, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Company{}, domain.NotFoundError{Resource: "company"}
	}
	if err != nil {
		return models.Company{}, err
	}
	return c, tx.Commit()
}
