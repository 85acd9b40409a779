// Package reservations turns raw reservation lists into display state and
// drives the reserve/cancel flows.
package reservations

import (
	"context"
	"strings"
	"sync"

	"github.com/smartpark-app/smartpark-client/internal/session"
	"github.com/smartpark-app/smartpark-client/pkg/errors"
	"github.com/smartpark-app/smartpark-client/pkg/smartpark"
)

// placeholder shown when the backend omits slot or plate.
const placeholder = "-"

// CancelState tracks an optimistic cancel until the next authoritative fetch.
type CancelState string

const (
	CancelPending   CancelState = "pending"
	CancelConfirmed CancelState = "confirmed"
	CancelRejected  CancelState = "rejected"
)

// Item is a display-ready reservation row.
type Item struct {
	ID        int
	Slot      string
	Plate     string
	StartTime string
	EndTime   string
	Status    string
	Cancel    CancelState
}

// ReserveInput is the reservation form.
type ReserveInput struct {
	VehicleID int
	StartTime string
	EndTime   string
}

// Model holds the locally cached reservation list plus the cancel overlay.
// The overlay is reconciled away on every Refresh.
type Model struct {
	client   *smartpark.Client
	sessions *session.Store

	mu      sync.Mutex
	list    []smartpark.Reservation
	overlay map[int]CancelState
}

func NewModel(client *smartpark.Client, sessions *session.Store) *Model {
	return &Model{
		client:   client,
		sessions: sessions,
		overlay:  make(map[int]CancelState),
	}
}

// FilterActive keeps exactly the entries with active status, in their
// original order. Applied client-side even though current backends already
// filter.
func FilterActive(in []smartpark.Reservation) []smartpark.Reservation {
	out := make([]smartpark.Reservation, 0, len(in))
	for _, r := range in {
		if r.Status == smartpark.StatusActive {
			out = append(out, r)
		}
	}
	return out
}

// NormalizeTime fixes the common "11.00" typo to "11:00". Only the first dot
// is touched so the date part stays intact.
func NormalizeTime(value string) string {
	return strings.Replace(strings.TrimSpace(value), ".", ":", 1)
}

// Refresh re-fetches the full list and replaces local state. No incremental
// merge; the authoritative fetch also drops the cancel overlay.
func (m *Model) Refresh(ctx context.Context) error {
	email, ok := m.sessions.Email()
	if !ok {
		return errors.New(errors.CodeValidation, "sign in to view reservations")
	}

	fetched, err := m.client.ListReservations(ctx, email)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.list = FilterActive(fetched)
	m.overlay = make(map[int]CancelState)
	m.mu.Unlock()
	return nil
}

// Items returns the display rows. Confirmed cancels are hidden immediately;
// pending and rejected ones stay visible with their state.
func (m *Model) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]Item, 0, len(m.list))
	for _, r := range m.list {
		state := m.overlay[r.ID]
		if state == CancelConfirmed {
			continue
		}
		items = append(items, Item{
			ID:        r.ID,
			Slot:      orPlaceholder(r.Slot),
			Plate:     orPlaceholder(r.Plate),
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Status:    r.Status,
			Cancel:    state,
		})
	}
	return items
}

// Cancel runs the optimistic cancel flow: the row is marked pending, the
// backend is asked, and only a confirmed success hides it locally. A failure
// restores the row and surfaces the error unchanged.
func (m *Model) Cancel(ctx context.Context, reservationID int) error {
	m.mu.Lock()
	found := false
	for _, r := range m.list {
		if r.ID == reservationID {
			found = true
			break
		}
	}
	if !found {
		m.mu.Unlock()
		return errors.New(errors.CodeValidation, "no such reservation in the current list")
	}
	m.overlay[reservationID] = CancelPending
	m.mu.Unlock()

	if _, err := m.client.CancelReservation(ctx, reservationID); err != nil {
		m.mu.Lock()
		m.overlay[reservationID] = CancelRejected
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.overlay[reservationID] = CancelConfirmed
	m.mu.Unlock()
	return nil
}

// Vehicles lists the session user's vehicles for the reserve form.
func (m *Model) Vehicles(ctx context.Context) ([]smartpark.Vehicle, error) {
	email, ok := m.sessions.Email()
	if !ok {
		return nil, errors.New(errors.CodeValidation, "sign in to view vehicles")
	}
	return m.client.ListVehicles(ctx, email)
}

// AddVehicle registers a vehicle under the session identity.
func (m *Model) AddVehicle(ctx context.Context, plate, vehicleType string, lengthM, widthM float64) (string, error) {
	email, ok := m.sessions.Email()
	if !ok {
		return "", errors.New(errors.CodeValidation, "sign in to add a vehicle")
	}
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return "", errors.New(errors.CodeValidation, "plate number is required")
	}
	if lengthM <= 0 || widthM <= 0 {
		return "", errors.New(errors.CodeValidation, "vehicle dimensions must be positive")
	}
	result, err := m.client.AddVehicle(ctx, smartpark.AddVehicleRequest{
		Email:       email,
		PlateNumber: plate,
		VehicleType: strings.TrimSpace(vehicleType),
		LengthM:     lengthM,
		WidthM:      widthM,
	})
	if err != nil {
		return "", err
	}
	return result.Message, nil
}

// Reserve validates the form, normalizes the typed times, and books a slot.
func (m *Model) Reserve(ctx context.Context, input ReserveInput) (smartpark.CreateReservationResult, error) {
	email, ok := m.sessions.Email()
	if !ok {
		return smartpark.CreateReservationResult{}, errors.New(errors.CodeValidation, "sign in to reserve a slot")
	}
	if input.VehicleID <= 0 {
		return smartpark.CreateReservationResult{}, errors.New(errors.CodeValidation, "select a vehicle first")
	}
	start := NormalizeTime(input.StartTime)
	end := NormalizeTime(input.EndTime)
	if start == "" || end == "" {
		return smartpark.CreateReservationResult{}, errors.New(errors.CodeValidation, "enter start and end time")
	}

	return m.client.CreateReservation(ctx, smartpark.CreateReservationRequest{
		Email:     email,
		VehicleID: input.VehicleID,
		StartTime: start,
		EndTime:   end,
	})
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
