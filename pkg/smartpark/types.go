package smartpark

import "encoding/json"

// Reservation status values the backend reports. Anything other than
// StatusActive is hidden from display.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// User is the identity record returned by login.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	ContactNo string `json:"contact_no"`
}

type SignupResult struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type Vehicle struct {
	ID          int     `json:"id"`
	PlateNumber string  `json:"plate_number"`
	VehicleType string  `json:"vehicle_type"`
	LengthM     float64 `json:"length_m"`
	WidthM      float64 `json:"width_m"`
}

type AddVehicleRequest struct {
	Email       string  `json:"email"`
	PlateNumber string  `json:"plate_number"`
	VehicleType string  `json:"vehicle_type"`
	LengthM     float64 `json:"length_m"`
	WidthM      float64 `json:"width_m"`
}

type DeleteVehicleRequest struct {
	Email     string `json:"email"`
	VehicleID int    `json:"vehicle_id"`
}

type CreateReservationRequest struct {
	Email     string `json:"email"`
	VehicleID int    `json:"vehicle_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CreateReservationResult struct {
	Message       string `json:"message"`
	ReservationID int    `json:"reservation_id"`
	Slot          string `json:"slot"`
	SlotCreated   bool   `json:"slot_created"`
}

// Reservation is a backend-owned record; Slot and Plate are optional display
// fields some backend versions omit.
type Reservation struct {
	ID        int    `json:"id"`
	VehicleID int    `json:"vehicle_id"`
	SlotID    int    `json:"slot_id"`
	Slot      string `json:"slot"`
	Plate     string `json:"plate"`
	Status    string `json:"status"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// UnmarshalJSON tolerates the create endpoint spelling the identifier
// "reservation_id" where the list endpoint spells it "id".
func (r *Reservation) UnmarshalJSON(data []byte) error {
	type alias Reservation
	aux := struct {
		*alias
		AltID *int `json:"reservation_id"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.ID == 0 && aux.AltID != nil {
		r.ID = *aux.AltID
	}
	return nil
}

// MessageResult is the opaque success payload most mutating endpoints return.
type MessageResult struct {
	Message string `json:"message"`
}

// GuidanceRoute is recomputed by the backend on every fetch. Distance is nil
// when the backend omits it; Instructions are the server-rendered strings,
// kept alongside the raw path so callers can render their own numbering.
type GuidanceRoute struct {
	Slot         string   `json:"slot"`
	Path         []string `json:"path"`
	Distance     *float64 `json:"distance"`
	Instructions []string `json:"instructions"`
}
