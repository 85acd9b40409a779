package smartpark

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/smartpark-app/smartpark-client/pkg/errors"
)

// Signup registers a new account and returns the backend confirmation.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SignupResult, error) {
	var result SignupResult
	if err := c.do(ctx, "signup", http.MethodPost, "/signup", req, &result); err != nil {
		return SignupResult{}, err
	}
	return result, nil
}

// Login authenticates and returns the identity the backend echoes back.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, "login", http.MethodPost, "/login", req, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

func (c *Client) AddVehicle(ctx context.Context, req AddVehicleRequest) (MessageResult, error) {
	var result MessageResult
	if err := c.do(ctx, "add_vehicle", http.MethodPost, "/vehicle/add", req, &result); err != nil {
		return MessageResult{}, err
	}
	return result, nil
}

// ListVehicles returns the vehicles registered under email.
func (c *Client) ListVehicles(ctx context.Context, email string) ([]Vehicle, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, errors.New(errors.CodeValidation, "email is required")
	}
	var vehicles []Vehicle
	path := fmt.Sprintf("/vehicle/list/%s", url.PathEscape(trimmed))
	if err := c.do(ctx, "list_vehicles", http.MethodGet, path, nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *Client) DeleteVehicle(ctx context.Context, req DeleteVehicleRequest) (MessageResult, error) {
	var result MessageResult
	if err := c.do(ctx, "delete_vehicle", http.MethodPost, "/vehicle/delete", req, &result); err != nil {
		return MessageResult{}, err
	}
	return result, nil
}

// CreateReservation books a slot; the backend assigns and returns it.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest) (CreateReservationResult, error) {
	var result CreateReservationResult
	if err := c.do(ctx, "create_reservation", http.MethodPost, "/reservation/create", req, &result); err != nil {
		return CreateReservationResult{}, err
	}
	return result, nil
}

// ListReservations returns every reservation the backend holds for email,
// regardless of status. Callers filter for display.
func (c *Client) ListReservations(ctx context.Context, email string) ([]Reservation, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, errors.New(errors.CodeValidation, "email is required")
	}
	var reservations []Reservation
	path := fmt.Sprintf("/reservation/list/%s", url.PathEscape(trimmed))
	if err := c.do(ctx, "list_reservations", http.MethodGet, path, nil, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// CancelReservation transitions the reservation to cancelled server-side.
func (c *Client) CancelReservation(ctx context.Context, reservationID int) (MessageResult, error) {
	if reservationID <= 0 {
		return MessageResult{}, errors.New(errors.CodeValidation, "reservation id is required")
	}
	body := map[string]int{"reservation_id": reservationID}
	var result MessageResult
	if err := c.do(ctx, "cancel_reservation", http.MethodPost, "/reservation/cancel", body, &result); err != nil {
		return MessageResult{}, err
	}
	return result, nil
}

// DeleteReservation removes the record entirely. No current display flow
// calls this; it exists because the backend exposes it.
func (c *Client) DeleteReservation(ctx context.Context, reservationID int) (MessageResult, error) {
	if reservationID <= 0 {
		return MessageResult{}, errors.New(errors.CodeValidation, "reservation id is required")
	}
	body := map[string]int{"reservation_id": reservationID}
	var result MessageResult
	if err := c.do(ctx, "delete_reservation", http.MethodPost, "/reservation/delete", body, &result); err != nil {
		return MessageResult{}, err
	}
	return result, nil
}

// Guidance fetches the route to a slot. The route is recomputed server-side
// on every call.
func (c *Client) Guidance(ctx context.Context, slotCode string) (GuidanceRoute, error) {
	trimmed := strings.TrimSpace(slotCode)
	if trimmed == "" {
		return GuidanceRoute{}, errors.New(errors.CodeValidation, "slot code is required")
	}
	var route GuidanceRoute
	path := fmt.Sprintf("/guidance/%s", url.PathEscape(trimmed))
	if err := c.do(ctx, "guidance", http.MethodGet, path, nil, &route); err != nil {
		return GuidanceRoute{}, err
	}
	return route, nil
}
