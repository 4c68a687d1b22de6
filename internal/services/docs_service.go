package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"limocontrol/internal/domain/models"
	"limocontrol/internal/store"
)

// DocsService renders printable trip sheets for dispatchers.
type DocsService struct {
	Stores store.Stores
}

// TripSheet returns the PDF bytes and a download filename for a trip.
// Related names are best-effort: a missing lookup leaves a dash rather
// than failing the export.
func (s DocsService) TripSheet(id string) ([]byte, string, error) {
	trip, err := s.Stores.Trips.Get(id)
	if err != nil {
		return nil, "", err
	}

	driverName := "-"
	if d, err := s.Stores.Drivers.Get(trip.DriverID); err == nil {
		driverName = d.Name
	}
	companyName := "-"
	if co, err := s.Stores.Companies.Get(trip.CompanyID); err == nil {
		companyName = co.Name
	}
	clientName := "-"
	if trip.ClientID != nil {
		if cl, err := s.Stores.Clients.Get(*trip.ClientID); err == nil {
			clientName = cl.Name
		}
	}

	pdf, err := buildTripSheetPDF(trip, driverName, clientName, companyName)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("trip-%s.pdf", trip.ID), nil
}

func buildTripSheetPDF(t models.Trip, driverName, clientName, companyName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP SHEET")
	pdf.Ln(12)

	vehicle := "-"
	if t.VehicleType != nil && *t.VehicleType != "" {
		vehicle = *t.VehicleType
	}
	route := fmt.Sprintf("%s -> %s", t.Origin, t.Destination)
	if strings.TrimSpace(t.Stop) != "" {
		route = fmt.Sprintf("%s -> %s -> %s", t.Origin, t.Stop, t.Destination)
	}
	received := "pending"
	if t.Received {
		received = "received"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Trip        : %s", t.ID),
		fmt.Sprintf("Driver      : %s", driverName),
		fmt.Sprintf("Client      : %s", clientName),
		fmt.Sprintf("Company     : %s", companyName),
		fmt.Sprintf("Vehicle     : %s", vehicle),
		fmt.Sprintf("Route       : %s", route),
		fmt.Sprintf("Pickup      : %s", t.StartAt.Format(time.RFC1123)),
		fmt.Sprintf("Dropoff     : %s", t.EndAt.Format(time.RFC1123)),
		fmt.Sprintf("Flight      : %s", dash(t.FlightNumber)),
		fmt.Sprintf("CNF         : %s", dash(t.Cnf)),
		fmt.Sprintf("Meet & Greet: %s", dash(t.MeetGreet)),
		fmt.Sprintf("Contact     : %s", dash(t.ClientPhone)),
		fmt.Sprintf("Miles       : %.1f", t.Miles),
		fmt.Sprintf("Duration    : %.0f min", t.DurationMinutes),
		fmt.Sprintf("Price       : %.2f (%s)", t.Price, received),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if strings.TrimSpace(t.Notes) != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+t.Notes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
