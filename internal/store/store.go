// Package store defines the persistence contract shared by the
// ephemeral in-memory backing and the Postgres backing. Both
// implementations must be behaviorally indistinguishable to callers:
// same ordering, same defaulting, same referential-integrity guards,
// same error kinds.
package store

import "limocontrol/internal/domain/models"

type UserStore interface {
	// FindByEmail matches case-insensitively.
	FindByEmail(email string) (models.User, error)
	ListSafe() ([]models.SafeUser, error)
	// Create rejects duplicate emails (case-insensitive) with a
	// ConflictError. The password arrives already hashed.
	Create(input models.UserCreate, passwordHash string) (models.SafeUser, error)
	Update(id string, input models.UserUpdate) (models.SafeUser, error)
	SetPasswordHash(id, passwordHash string) error
	// Delete fails with a ConflictError while the user owns trips.
	Delete(id string) (models.SafeUser, error)
}

type DriverStore interface {
	// List returns drivers newest first.
	List() ([]models.Driver, error)
	Get(id string) (models.Driver, error)
	Exists(id string) (bool, error)
	Create(input models.DriverInput) (models.Driver, error)
	Update(id string, input models.DriverInput) (models.Driver, error)
	SetActive(id string, active bool) (models.Driver, error)
	// Delete fails with a ConflictError while trips reference the driver.
	Delete(id string) (models.Driver, error)
}

type ClientStore interface {
	List() ([]models.Client, error)
	Get(id string) (models.Client, error)
	Exists(id string) (bool, error)
	// EnsureByName trims the name, matches existing clients
	// case-insensitively and creates an active client with only the
	// name populated on a miss. Idempotent under sequential calls.
	EnsureByName(name string) (models.Client, error)
	Create(input models.ClientInput) (models.Client, error)
	Update(id string, input models.ClientInput) (models.Client, error)
	SetActive(id string, active bool) (models.Client, error)
	Delete(id string) (models.Client, error)
}

type CompanyStore interface {
	List() ([]models.Company, error)
	Get(id string) (models.Company, error)
	Exists(id string) (bool, error)
	Create(input models.CompanyInput) (models.Company, error)
	Update(id string, input models.CompanyInput) (models.Company, error)
	SetActive(id string, active bool) (models.Company, error)
	Delete(id string) (models.Company, error)
}

type TripStore interface {
	// List applies all set filter fields (ANDed) and orders by startAt
	// descending.
	List(filter models.TripFilter) ([]models.Trip, error)
	Get(id string) (models.Trip, error)
	// Create defaults received to false when input.Received is nil.
	Create(input models.TripInput, createdByUserID string) (models.Trip, error)
	Update(id string, input models.TripInput) (models.Trip, error)
	SetReceived(id string, received bool) (models.Trip, error)
	// Delete fails with a ConflictError when the trip is received.
	Delete(id string) (models.Trip, error)
}

type DashboardStore interface {
	// Summary aggregates over all trips, or over one owner's trips when
	// createdByUserID is non-empty. All aggregates are zero on an empty
	// set.
	Summary(createdByUserID string) (models.Summary, error)
}

// Stores bundles one backing's repositories. Selected at startup by
// configuration (DATABASE_URL present selects Postgres).
type Stores struct {
	Users     UserStore
	Drivers   DriverStore
	Clients   ClientStore
	Companies CompanyStore
	Trips     TripStore
	Dashboard DashboardStore
}
