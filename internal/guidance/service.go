// Package guidance shapes a slot's route response into an ordered, numbered
// step list for display.
package guidance

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/smartpark-app/smartpark-client/pkg/errors"
	"github.com/smartpark-app/smartpark-client/pkg/smartpark"
)

// unknownDistance is shown when the backend omits the distance score.
const unknownDistance = "unknown"

// Route is the display-ready form of a guidance response.
type Route struct {
	Slot     string
	Steps    []string
	Distance string
}

type Service struct {
	client *smartpark.Client
}

func NewService(client *smartpark.Client) *Service {
	return &Service{client: client}
}

// Fetch resolves the route for a slot code. A blank code is a local
// validation failure; no request is issued. Failed fetches are recoverable by
// calling again, there is no automatic retry.
func (s *Service) Fetch(ctx context.Context, slotCode string) (Route, error) {
	trimmed := strings.TrimSpace(slotCode)
	if trimmed == "" {
		return Route{}, errors.New(errors.CodeValidation, "no slot code available, create a reservation first")
	}

	raw, err := s.client.Guidance(ctx, trimmed)
	if err != nil {
		return Route{}, err
	}

	slot := raw.Slot
	if slot == "" {
		slot = strings.ToUpper(trimmed)
	}

	// steps are 1-indexed in exactly the backend's order
	steps := make([]string, 0, len(raw.Path))
	for i, node := range raw.Path {
		steps = append(steps, fmt.Sprintf("%d. Go to %s", i+1, node))
	}

	distance := unknownDistance
	if raw.Distance != nil {
		distance = strconv.FormatFloat(*raw.Distance, 'f', -1, 64)
	}

	return Route{
		Slot:     slot,
		Steps:    steps,
		Distance: distance,
	}, nil
}
