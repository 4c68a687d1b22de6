package services

import (
	"strings"

	"limocontrol/internal/domain"
	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

// TripService applies the cross-entity rules around trip writes:
// driver and company must resolve, and the client reference is either
// an explicit id (which must exist) or a free-text name resolved via
// find-or-create.
type TripService struct {
	Stores store.Stores
}

// ResolveReferences validates foreign keys on input and rewrites
// input.ClientID from the explicit id or the free-text clientName.
// Dangling references are validation errors, not conflicts.
func (s TripService) ResolveReferences(input *models.TripInput, clientName string) error {
	ok, err := s.Stores.Drivers.Exists(input.DriverID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ValidationError{Field: "driverId", Msg: "driver not found"}
	}

	ok, err = s.Stores.Companies.Exists(input.CompanyID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ValidationError{Field: "companyId", Msg: "company not found"}
	}

	if input.ClientID != nil && strings.TrimSpace(*input.ClientID) != "" {
		id := strings.TrimSpace(*input.ClientID)
		ok, err := s.Stores.Clients.Exists(id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ValidationError{Field: "clientId", Msg: "client not found"}
		}
		input.ClientID = &id
		return nil
	}

	if name := strings.TrimSpace(clientName); name != "" {
		client, err := s.Stores.Clients.EnsureByName(name)
		if err != nil {
			return err
		}
		input.ClientID = &client.ID
		return nil
	}

	input.ClientID = nil
	return nil
}

func (s TripService) Create(input models.TripInput, clientName, createdByUserID string) (models.Trip, error) {
	if err := s.ResolveReferences(&input, clientName); err != nil {
		return models.Trip{}, err
	}
	return s.Stores.Trips.Create(input, createdByUserID)
}

func (s TripService) Update(id string, input models.TripInput, clientName string) (models.Trip, error) {
	if err := s.ResolveReferences(&input, clientName); err != nil {
		return models.Trip{}, err
	}
	return s.Stores.Trips.Update(id, input)
}
