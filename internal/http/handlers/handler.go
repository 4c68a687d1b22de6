package handlers

import (
	"limocontrol/internal/services"
	"limocontrol/internal/store"
)

// Handler carries the selected store backing and the services built on
// it. One instance serves all routes.
type Handler struct {
	Stores    store.Stores
	Trips     services.TripService
	Docs      services.DocsService
	JWTSecret []byte
}

func New(stores store.Stores, jwtSecret []byte) Handler {
	return Handler{
		Stores:    stores,
		Trips:     services.TripService{Stores: stores},
		Docs:      services.DocsService{Stores: stores},
		JWTSecret: jwtSecret,
	}
}
