// Package postgres is the durable backing, written against
// database/sql with lib/pq. Queries mirror the store contract
// one-to-one; guarded deletes run the reference check and the delete
// inside a single transaction.
package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"limocontrol/internal/store"
)

// Open connects and verifies the database. The pool is kept small;
// this is a single-instance service.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewStores returns the repository bundle over db.
func NewStores(db *sql.DB) store.Stores {
	return store.Stores{
		Users:     UsersRepo{DB: db},
		Drivers:   DriversRepo{DB: db},
		Clients:   ClientsRepo{DB: db},
		Companies: CompaniesRepo{DB: db},
		Trips:     TripsRepo{DB: db},
		Dashboard: DashboardRepo{DB: db},
	}
}

var schema = []string{
	`create table if not exists users (
		id text primary key,
		name text not null,
		email text not null unique,
		password_hash text not null,
		role text not null,
		created_at timestamptz not null default now()
	)`,
	`create table if not exists drivers (
		id text primary key,
		name text not null,
		phone text,
		license text,
		active boolean not null default true,
		created_at timestamptz not null default now()
	)`,
	`create table if not exists clients (
		id text primary key,
		name text not null,
		phone text,
		address text,
		active boolean not null default true,
		created_at timestamptz not null default now()
	)`,
	`create table if not exists companies (
		id text primary key,
		name text not null,
		phone text,
		active boolean not null default true,
		created_at timestamptz not null default now()
	)`,
	`create table if not exists trips (
		id text primary key,
		created_by_user_id text not null references users(id) on delete restrict,
		driver_id text not null references drivers(id) on delete restrict,
		client_id text references clients(id) on delete restrict,
		company_id text not null references companies(id) on delete restrict,
		vehicle_type text,
		cnf text,
		flight_number text,
		meet_greet text not null default '',
		client_phone text,
		start_at timestamptz not null,
		end_at timestamptz not null,
		origin text not null,
		destination text not null,
		stop text,
		miles double precision not null,
		duration_minutes double precision not null,
		price double precision not null,
		received boolean not null default false,
		notes text,
		created_at timestamptz not null default now()
	)`,
	`alter table trips add column if not exists stop text`,
	`alter table trips add column if not exists client_phone text`,
	`alter table clients add column if not exists address text`,
	`create index if not exists idx_trips_driver_id on trips(driver_id)`,
	`create index if not exists idx_trips_client_id on trips(client_id)`,
	`create index if not exists idx_trips_company_id on trips(company_id)`,
	`create index if not exists idx_trips_created_by_user_id on trips(created_by_user_id)`,
	`create index if not exists idx_trips_start_at on trips(start_at)`,
	`create index if not exists idx_trips_cnf on trips(cnf)`,
	`create index if not exists idx_trips_flight_number on trips(flight_number)`,
}

// InitSchema creates missing tables and indexes. Safe to run on every
// startup.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin inserts an admin user when the users table is empty.
func SeedAdmin(db *sql.DB, name, email, passwordHash string) error {
	var count int
	if err := db.QueryRow(`select count(*) from users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := db.Exec(
		`insert into users (id, name, email, password_hash, role) values ($1,$2,$3,$4,$5)`,
		store.NewID("u"), name, strings.ToLower(email), passwordHash, "admin",
	)
	if err == nil {
		logrus.WithField("email", strings.ToLower(email)).Info("seeded admin user")
	}
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func fromNull(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}
