package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User carries the stored credential; it must never be serialized as-is.
// Handlers respond with SafeUser instead.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SafeUser is the projection of User exposed over the API.
type SafeUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Safe() SafeUser {
	return SafeUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type Driver struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	License   string    `json:"license,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vehicle types accepted on trips. Empty/nil means unspecified.
const (
	VehicleSUV     = "SUV"
	VehicleSedan   = "Sedan"
	VehicleEconomy = "Economy"
)

type Trip struct {
	ID              string    `json:"id"`
	CreatedByUserID string    `json:"createdByUserId"`
	DriverID        string    `json:"driverId"`
	ClientID        *string   `json:"clientId"`
	CompanyID       string    `json:"companyId"`
	VehicleType     *string   `json:"vehicleType"`
	Cnf             string    `json:"cnf,omitempty"`
	FlightNumber    string    `json:"flightNumber,omitempty"`
	MeetGreet       string    `json:"meetGreet,omitempty"`
	ClientPhone     string    `json:"clientPhone,omitempty"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Stop            string    `json:"stop,omitempty"`
	Miles           float64   `json:"miles"`
	DurationMinutes float64   `json:"durationMinutes"`
	Price           float64   `json:"price"`
	Received        bool      `json:"received"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type UserCreate struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// UserUpdate is sparse: nil fields are left unchanged.
type UserUpdate struct {
	Name *string
	Role *Role
}

type DriverInput struct {
	Name    string
	Phone   string
	License string
}

type ClientInput struct {
	Name    string
	Phone   string
	Address string
}

type CompanyInput struct {
	Name  string
	Phone string
}

// TripInput drives both create and update. Most fields always overwrite
// the stored value; ClientPhone, MeetGreet and Received are sparse:
// nil means "leave unchanged" on update (Received defaults to false on
// create).
type TripInput struct {
	DriverID        string
	ClientID        *string
	CompanyID       string
	VehicleType     *string
	Cnf             string
	FlightNumber    string
	MeetGreet       *string
	ClientPhone     *string
	StartAt         time.Time
	EndAt           time.Time
	Origin          string
	Destination     string
	Stop            string
	Miles           float64
	DurationMinutes float64
	Price           float64
	Received        *bool
	Notes           string
}

// TripFilter fields are ANDed; zero values mean "no constraint".
// MeetGreetPresent filters on whether the field is a non-empty string;
// MeetGreetMatch is a case-insensitive substring match. At most one of
// the two is set.
type TripFilter struct {
	DriverID         string
	ClientID         string
	CompanyID        string
	CreatedByUserID  string
	Cnf              string
	FlightNumber     string
	MeetGreetPresent *bool
	MeetGreetMatch   string
}

// Summary is the dashboard aggregate over an (optionally owner-scoped)
// trip set. AvgDurationMinutes is rounded to 2 decimal places.
type Summary struct {
	TotalTrips         int     `json:"totalTrips"`
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalMiles         float64 `json:"totalMiles"`
	AvgDurationMinutes float64 `json:"avgDurationMinutes"`
}
