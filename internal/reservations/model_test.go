package reservations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smartpark-app/smartpark-client/internal/session"
	"github.com/smartpark-app/smartpark-client/pkg/errors"
	"github.com/smartpark-app/smartpark-client/pkg/smartpark"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func newModel(t *testing.T, rt roundTripFunc) *Model {
	t.Helper()
	client, err := smartpark.NewClient("http://smartpark.test", smartpark.WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)
	sessions := session.NewStore()
	sessions.Set(smartpark.User{ID: 1, Name: "Ana", Email: "a@b.com"})
	return NewModel(client, sessions)
}

func TestFilterActiveKeepsOrderAndDropsOthers(t *testing.T) {
	in := []smartpark.Reservation{
		{ID: 1, Status: "active"},
		{ID: 2, Status: "cancelled"},
		{ID: 3, Status: "active"},
		{ID: 4, Status: "completed"},
		{ID: 5, Status: ""},
		{ID: 6, Status: "active"},
	}

	out := FilterActive(in)

	require.Len(t, out, 3)
	require.Equal(t, []int{1, 3, 6}, []int{out[0].ID, out[1].ID, out[2].ID})
}

func TestNormalizeTime(t *testing.T) {
	require.Equal(t, "11:00", NormalizeTime("11.00"))
	require.Equal(t, "2026-02-05 11:00", NormalizeTime(" 2026-02-05 11.00 "))
	require.Equal(t, "2026-02-05 12:00", NormalizeTime("2026-02-05 12:00"))
}

func TestRefreshFiltersAndReplacesState(t *testing.T) {
	body := `[
		{"id":7,"slot":"A12","plate":"KA-01","status":"active","start_time":"2026-02-05 11:00","end_time":"2026-02-05 12:00"},
		{"id":8,"slot":"A13","status":"cancelled","start_time":"2026-02-05 11:00","end_time":"2026-02-05 12:00"},
		{"id":9,"status":"active","start_time":"2026-02-06 09:00","end_time":"2026-02-06 10:00"}
	]`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	})

	model := newModel(t, rt)
	require.NoError(t, model.Refresh(context.Background()))

	items := model.Items()
	require.Len(t, items, 2)
	require.Equal(t, 7, items[0].ID)
	require.Equal(t, "A12", items[0].Slot)
	require.Equal(t, "KA-01", items[0].Plate)

	// missing slot/plate fall back to a placeholder instead of failing
	require.Equal(t, 9, items[1].ID)
	require.Equal(t, "-", items[1].Slot)
	require.Equal(t, "-", items[1].Plate)
}

func TestReserveScenario(t *testing.T) {
	// Reservation created against a backend assigning slot A12; the item then
	// shows up in the active list.
	created := false
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/reservation/create":
			var payload map[string]any
			raw, _ := io.ReadAll(req.Body)
			require.NoError(t, json.Unmarshal(raw, &payload))
			require.Equal(t, "a@b.com", payload["email"])
			require.Equal(t, float64(1), payload["vehicle_id"])
			require.Equal(t, "2026-02-05 11:00", payload["start_time"])
			require.Equal(t, "2026-02-05 12:00", payload["end_time"])
			created = true
			return jsonResponse(http.StatusCreated, `{"message":"Reservation created","reservation_id":7,"slot":"A12","slot_created":false}`), nil
		case "/reservation/list/a@b.com":
			if !created {
				return jsonResponse(http.StatusOK, `[]`), nil
			}
			return jsonResponse(http.StatusOK, `[{"id":7,"slot":"A12","status":"active","start_time":"2026-02-05 11:00","end_time":"2026-02-05 12:00"}]`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})

	model := newModel(t, rt)
	result, err := model.Reserve(context.Background(), ReserveInput{
		VehicleID: 1,
		StartTime: "2026-02-05 11.00",
		EndTime:   "2026-02-05 12.00",
	})
	require.NoError(t, err)
	require.Equal(t, "A12", result.Slot)
	require.Equal(t, 7, result.ReservationID)

	require.NoError(t, model.Refresh(context.Background()))
	items := model.Items()
	require.Len(t, items, 1)
	require.Equal(t, "A12", items[0].Slot)
}

func TestCancelRemovesItemWithoutRefetch(t *testing.T) {
	var listCalls, cancelCalls int
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/reservation/list/a@b.com":
			listCalls++
			return jsonResponse(http.StatusOK, `[{"id":7,"slot":"A12","status":"active"},{"id":8,"slot":"A13","status":"active"}]`), nil
		case "/reservation/cancel":
			cancelCalls++
			return jsonResponse(http.StatusOK, `{"message":"Reservation cancelled"}`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})

	model := newModel(t, rt)
	require.NoError(t, model.Refresh(context.Background()))
	require.Len(t, model.Items(), 2)

	require.NoError(t, model.Cancel(context.Background(), 7))

	// hidden immediately, no list re-fetch issued
	items := model.Items()
	require.Len(t, items, 1)
	require.Equal(t, 8, items[0].ID)
	require.Equal(t, 1, listCalls)
	require.Equal(t, 1, cancelCalls)
}

func TestCancelFailureLeavesListUntouched(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/reservation/list/a@b.com":
			return jsonResponse(http.StatusOK, `[{"id":7,"slot":"A12","status":"active"}]`), nil
		case "/reservation/cancel":
			return jsonResponse(http.StatusConflict, `{"error":"Reservation is not active"}`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})

	model := newModel(t, rt)
	require.NoError(t, model.Refresh(context.Background()))

	err := model.Cancel(context.Background(), 7)
	require.Error(t, err)
	require.Equal(t, "Reservation is not active", errors.As(err).Message())

	items := model.Items()
	require.Len(t, items, 1)
	require.Equal(t, CancelRejected, items[0].Cancel)
}

func TestCancelUnknownIDNeverHitsNetwork(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/reservation/list/a@b.com" {
			return jsonResponse(http.StatusOK, `[]`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})

	model := newModel(t, rt)
	require.NoError(t, model.Refresh(context.Background()))

	err := model.Cancel(context.Background(), 99)
	require.True(t, errors.IsCode(err, errors.CodeValidation), "got %v", err)
}

func TestReserveRequiresSessionAndVehicle(t *testing.T) {
	client, err := smartpark.NewClient("http://smartpark.test")
	require.NoError(t, err)

	anonymous := NewModel(client, session.NewStore())
	_, err = anonymous.Reserve(context.Background(), ReserveInput{VehicleID: 1, StartTime: "x", EndTime: "y"})
	require.True(t, errors.IsCode(err, errors.CodeValidation))

	model := newModel(t, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatal("unexpected network call")
		return nil, nil
	}))
	_, err = model.Reserve(context.Background(), ReserveInput{StartTime: "2026-02-05 11:00", EndTime: "2026-02-05 12:00"})
	require.True(t, errors.IsCode(err, errors.CodeValidation))

	_, err = model.Reserve(context.Background(), ReserveInput{VehicleID: 1})
	require.True(t, errors.IsCode(err, errors.CodeValidation))
}
