package postgres

import (
	"database/sql"
	"errors"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

type UsersRepo struct {
	DB *sql.DB
}

const safeUserCols = `id, name, email, role, created_at`

func scanSafeUser(row *sql.Row) (models.SafeUser, error) {
	var u models.SafeUser
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	return u, err
}

func (r UsersRepo) FindByEmail(email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(
		`select id, name, email, password_hash, role, created_at from users where lower(email)=lower($1) limit 1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r UsersRepo) ListSafe() ([]models.SafeUser, error) {
	rows, err := r.DB.Query(`select ` + safeUserCols + ` from users order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SafeUser{}
	for rows.Next() {
		var u models.SafeUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UsersRepo) Create(input models.UserCreate, passwordHash string) (models.SafeUser, error) {
	var exists int
	err := r.DB.QueryRow(`select 1 from users where lower(email)=lower($1) limit 1`, input.Email).Scan(&exists)
	if err == nil {
		return models.SafeUser{}, domain.ConflictError{Resource: "user", Msg: "email already exists"}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.SafeUser{}, err
	}

	row := r.DB.QueryRow(
		`insert into users (id, name, email, password_hash, role) values ($1,$2,lower($3),$4,$5)
		 returning `+safeUserCols,
		store.NewID("u"), input.Name, input.Email, passwordHash, input.Role,
	)
	return scanSafeUser(row)
}

func (r UsersRepo) Update(id string, input models.UserUpdate) (models.SafeUser, error) {
	row := r.DB.QueryRow(
		`update users set name=coalesce($2, name), role=coalesce($3, role) where id=$1
		 returning `+safeUserCols,
		id, input.Name, (*string)(input.Role),
	)
	u, err := scanSafeUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SafeUser{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UsersRepo) SetPasswordHash(id, passwordHash string) error {
	res, err := r.DB.Exec(`update users set password_hash=$2 where id=$1`, id, passwordHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UsersRepo) Delete(id string) (models.SafeUser, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return models.SafeUser{}, err
	}
	defer tx.Rollback()

	var ref int
	err = tx.QueryRow(`select 1 from trips where created_by_user_id=$1 limit 1`, id).Scan(&ref)
	if err == nil {
		return models.SafeUser{}, domain.ConflictError{Resource: "user", Msg: "user has trips"}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.SafeUser{}, err
	}

	row := tx.QueryRow(`delete from users where id=$1 returning `+safeUserCols, id)
	u, err := scanSafeUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SafeUser{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.SafeUser{}, err
	}
	return u, tx.Commit()
}
