// Package memory is the ephemeral backing: plain slices owned by a DB
// value and guarded by a single RWMutex. Nothing survives a restart.
// All mutation goes through the repository methods; the slices are
// never handed out.
package memory

import (
	"strings"
	"sync"
	"time"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

type DB struct {
	mu        sync.RWMutex
	users     []models.User
	drivers   []models.Driver
	clients   []models.Client
	companies []models.Company
	trips     []models.Trip
}

func New() *DB {
	return &DB{}
}

// Stores exposes the repository bundle over this DB.
func (d *DB) Stores() store.Stores {
	return store.Stores{
		Users:     usersRepo{d},
		Drivers:   driversRepo{d},
		Clients:   clientsRepo{d},
		Companies: companiesRepo{d},
		Trips:     tripsRepo{d},
		Dashboard: dashboardRepo{d},
	}
}

// SeedAdmin inserts an admin user unless the email is already taken.
// Used at startup so the ephemeral mode has a way in.
func (d *DB) SeedAdmin(name, email, passwordHash string) models.SafeUser {
	d.mu.Lock()
	defer d.mu.Unlock()
	lowered := strings.ToLower(email)
	for _, u := range d.users {
		if strings.ToLower(u.Email) == lowered {
			return u.Safe()
		}
	}
	u := models.User{
		ID:           store.NewID("u"),
		Name:         name,
		Email:        lowered,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	d.users = append(d.users, u)
	return u.Safe()
}

type usersRepo struct{ d *DB }

func (r usersRepo) FindByEmail(email string) (models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	lowered := strings.ToLower(email)
	for _, u := range r.d.users {
		if strings.ToLower(u.Email) == lowered {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (r usersRepo) ListSafe() ([]models.SafeUser, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := make([]models.SafeUser, 0, len(r.d.users))
	for i := len(r.d.users) - 1; i >= 0; i-- {
		out = append(out, r.d.users[i].Safe())
	}
	return out, nil
}

func (r usersRepo) Create(input models.UserCreate, passwordHash string) (models.SafeUser, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	lowered := strings.ToLower(input.Email)
	for _, u := range r.d.users {
		if strings.ToLower(u.Email) == lowered {
			return models.SafeUser{}, domain.ConflictError{Resource: "user", Msg: "email already exists"}
		}
	}
	u := models.User{
		ID:           store.NewID("u"),
		Name:         input.Name,
		Email:        lowered,
		PasswordHash: passwordHash,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}
	r.d.users = append(r.d.users, u)
	return u.Safe(), nil
}

func (r usersRepo) Update(id string, input models.UserUpdate) (models.SafeUser, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.users {
		if r.d.users[i].ID != id {
			continue
		}
		if input.Name != nil {
			r.d.users[i].Name = *input.Name
		}
		if input.Role != nil {
			r.d.users[i].Role = *input.Role
		}
		return r.d.users[i].Safe(), nil
	}
	return models.SafeUser{}, domain.NotFoundError{Resource: "user"}
}

func (r usersRepo) SetPasswordHash(id, passwordHash string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.users {
		if r.d.users[i].ID == id {
			r.d.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return domain.NotFoundError{Resource: "user"}
}

func (r usersRepo) Delete(id string) (models.SafeUser, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	idx := -1
	for i := range r.d.users {
		if r.d.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.SafeUser{}, domain.NotFoundError{Resource: "user"}
	}
	for _, t := range r.d.trips {
		if t.CreatedByUserID == id {
			return models.SafeUser{}, domain.ConflictError{Resource: "user", Msg: "user has trips"}
		}
	}
	removed := r.d.users[idx]
	r.d.users = append(r.d.users[:idx], r.d.users[idx+1:]...)
	return removed.Safe(), nil
}

type driversRepo struct{ d *DB }

func (r driversRepo) List() ([]models.Driver, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := make([]models.Driver, 0, len(r.d.drivers))
	for i := len(r.d.drivers) - 1; i >= 0; i-- {
		out = append(out, r.d.drivers[i])
	}
	return out, nil
}

func (r driversRepo) Get(id string) (models.Driver, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, d := range r.d.drivers {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Driver{}, domain.NotFoundError{Resource: "driver"}
}

func (r driversRepo) Exists(id string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, d := range r.d.drivers {
		if d.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r driversRepo) Create(input models.DriverInput) (models.Driver, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	d := models.Driver{
		ID:        store.NewID("d"),
		Name:      input.Name,
		Phone:     input.Phone,
		License:   input.License,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	r.d.drivers = append(r.d.drivers, d)
	return d, nil
}

func (r driversRepo) Update(id string, input models.DriverInput) (models.Driver, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.drivers {
		if r.d.drivers[i].ID != id {
			continue
		}
		r.d.drivers[i].Name = input.Name
		r.d.drivers[i].Phone = input.Phone
		r.d.drivers[i].License = input.License
		return r.d.drivers[i], nil
	}
	return models.Driver{}, domain.NotFoundError{Resource: "driver"}
}

func (r driversRepo) SetActive(id string, active bool) (models.Driver, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.drivers {
		if r.d.drivers[i].ID == id {
			r.d.drivers[i].Active = active
			return r.d.drivers[i], nil
		}
	}
	return models.Driver{}, domain.NotFoundError{Resource: "driver"}
}

func (r driversRepo) Delete(id string) (models.Driver, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	idx := -1
	for i := range r.d.drivers {
		if r.d.drivers[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Driver{}, domain.NotFoundError{Resource: "driver"}
	}
	for _, t := range r.d.trips {
		if t.DriverID == id {
			return models.Driver{}, domain.ConflictError{Resource: "driver", Msg: "driver has trips"}
		}
	}
	removed := r.d.drivers[idx]
	r.d.drivers = append(r.d.drivers[:idx], r.d.drivers[idx+1:]...)
	return removed, nil
}

type clientsRepo struct{ d *DB }

func (r clientsRepo) List() ([]models.Client, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := make([]models.Client, 0, len(r.d.clients))
	for i := len(r.d.clients) - 1; i >= 0; i-- {
		out = append(out, r.d.clients[i])
	}
	return out, nil
}

func (r clientsRepo) Get(id string) (models.Client, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, c := range r.d.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Client{}, domain.NotFoundError{Resource: "client"}
}

func (r clientsRepo) Exists(id string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, c := range r.d.clients {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r clientsRepo) EnsureByName(name string) (models.Client, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return models.Client{}, domain.ValidationError{Field: "clientName", Msg: "client name is required"}
	}
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, c := range r.d.clients {
		if strings.EqualFold(strings.TrimSpace(c.Name), normalized) {
			return c, nil
		}
	}
	c := models.Client{
		ID:        store.NewID("c"),
		Name:      normalized,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	r.d.clients = append(r.d.clients, c)
	return c, nil
}

func (r clientsRepo) Create(input models.ClientInput) (models.Client, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c := models.Client{
		ID:        store.NewID("c"),
		Name:      input.Name,
		Phone:     input.Phone,
		Address:   input.Address,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	r.d.clients = append(r.d.clients, c)
	return c, nil
}

func (r clientsRepo) Update(id string, input models.ClientInput) (models.Client, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.clients {
		if r.d.clients[i].ID != id {
			continue
		}
		r.d.clients[i].Name = input.Name
		r.d.clients[i].Phone = input.Phone
		r.d.clients[i].Address = input.Address
		return r.d.clients[i], nil
	}
	return models.Client{}, domain.NotFoundError{Resource: "client"}
}

func (r clientsRepo) SetActive(id string, active bool) (models.Client, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.clients {
		if r.d.clients[i].ID == id {
			r.d.clients[i].Active = active
			return r.d.clients[i], nil
		}
	}
	return models.Client{}, domain.NotFoundError{Resource: "client"}
}

func (r clientsRepo) Delete(id string) (models.Client, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	idx := -1
	for i := range r.d.clients {
		if r.d.clients[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Client{}, domain.NotFoundError{Resource: "client"}
	}
	for _, t := range r.d.trips {
		if t.ClientID != nil && *t.ClientID == id {
			return models.Client{}, domain.ConflictError{Resource: "client", Msg: "client has trips"}
		}
	}
	removed := r.d.clients[idx]
	r.d.clients = append(r.d.clients[:idx], r.d.clients[idx+1:]...)
	return removed, nil
}

type companiesRepo struct{ d *DB }

func (r companiesRepo) List() ([]models.Company, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := make([]models.Company, 0, len(r.d.companies))
	for i := len(r.d.companies) - 1; i >= 0; i-- {
		out = append(out, r.d.companies[i])
	}
	return out, nil
}

func (r companiesRepo) Get(id string) (models.Company, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, c := range r.d.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Company{}, domain.NotFoundError{Resource: "company"}
}

func (r companiesRepo) Exists(id string) (bool, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, c := range r.d.companies {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r companiesRepo) Create(input models.CompanyInput) (models.Company, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c := models.Company{
		ID:        store.NewID("co"),
		Name:      input.Name,
		Phone:     input.Phone,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	r.d.companies = append(r.d.companies, c)
	return c, nil
}

func (r companiesRepo) Update(id string, input models.CompanyInput) (models.Company, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.companies {
		if r.d.companies[i].ID != id {
			continue
		}
		r.d.companies[i].Name = input.Name
		r.d.companies[i].Phone = input.Phone
		return r.d.companies[i], nil
	}
	return models.Company{}, domain.NotFoundError{Resource: "company"}
}

func (r companiesRepo) SetActive(id string, active bool) (models.Company, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for i := range r.d.companies {
		if r.d.companies[i].ID == id {
			r.d.companies[i].Active = active
			return r.d.companies[i], nil
		}
	}
	return models.Company{}, domain.NotFoundError{Resource: "company"}
}

func (r companiesRepo) Delete(id string) (models.Company, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	idx := -1
	for i := range r.d.companies {
		if r.d.companies[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Company{}, domain.NotFoundError{Resource: "company"}
	}
	for _, t := range r.d.trips {
		if t.CompanyID == id {
			return models.Company{}, domain.ConflictError{Resource: "company", Msg: "company has trips"}
		}
	}
	removed := r.d.companies[idx]
	r.d.companies = append(r.d.companies[:idx], r.d.companies[idx+1:]...)
	return removed, nil
}
