package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/malumbo/academy/internal/model"
)

func TestCreateEvent_Validation(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"event_date":"2030-05-01"}`},
		{"missing date", `{"title":"Sports Day"}`},
		{"bad date format", `{"title":"Sports Day","event_date":"01/05/2030"}`},
		{"date with time", `{"title":"Sports Day","event_date":"2030-05-01T10:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/admin/events", tt.body, nil)
			w := executeHandler(t, h.CreateEvent, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateEvent(t *testing.T) {
	h, _ := testHandler(t)

	body := `{"title":"Parents Evening","description":"Term review","event_date":"2030-06-15","event_time":"18:00","location":"Main Hall"}`
	req := newJSONRequest(t, http.MethodPost, "/api/admin/events", body, nil)
	w := executeHandler(t, h.CreateEvent, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	event := unmarshalData[model.Event](t, w)
	if event.ID == 0 {
		t.Error("expected assigned id")
	}
	if !event.IsPublished {
		t.Error("expected new event to default to published")
	}
	if got := event.EventDate.Format(model.EventDateLayout); got != "2030-06-15" {
		t.Errorf("event date = %s, want 2030-06-15", got)
	}
}

func TestListUpcomingEvents_FiltersPastAndUnpublished(t *testing.T) {
	h, _ := testHandler(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format(model.EventDateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(model.EventDateLayout)

	for _, body := range []string{
		fmt.Sprintf(`{"title":"Past","event_date":"%s"}`, yesterday),
		fmt.Sprintf(`{"title":"Draft","event_date":"%s","is_published":false}`, tomorrow),
		fmt.Sprintf(`{"title":"Upcoming","event_date":"%s"}`, tomorrow),
	} {
		req := newJSONRequest(t, http.MethodPost, "/api/admin/events", body, nil)
		if w := executeHandler(t, h.CreateEvent, req); w.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d", w.Code)
		}
	}

	w := executeHandler(t, h.ListUpcomingEvents, newGetRequest(t, "/api/events", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	events := unmarshalList[model.Event](t, w)
	if len(events) != 1 {
		t.Fatalf("expected 1 upcoming event, got %d", len(events))
	}
	if events[0].Title != "Upcoming" {
		t.Errorf("wrong event returned: %s", events[0].Title)
	}
}

func TestListUpcomingEvents_IncludesToday(t *testing.T) {
	h, _ := testHandler(t)

	today := time.Now().Format(model.EventDateLayout)
	req := newJSONRequest(t, http.MethodPost, "/api/admin/events",
		fmt.Sprintf(`{"title":"Today","event_date":"%s"}`, today), nil)
	if w := executeHandler(t, h.CreateEvent, req); w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}

	w := executeHandler(t, h.ListUpcomingEvents, newGetRequest(t, "/api/events", nil))
	events := unmarshalList[model.Event](t, w)
	if len(events) != 1 {
		t.Errorf("an event today must count as upcoming, got %d events", len(events))
	}
}

func TestListUpcomingEvents_CappedAtTen(t *testing.T) {
	h, _ := testHandler(t)

	for i := 1; i <= 12; i++ {
		date := time.Now().AddDate(0, 0, i).Format(model.EventDateLayout)
		req := newJSONRequest(t, http.MethodPost, "/api/admin/events",
			fmt.Sprintf(`{"title":"Event %d","event_date":"%s"}`, i, date), nil)
		if w := executeHandler(t, h.CreateEvent, req); w.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i, w.Code)
		}
	}

	w := executeHandler(t, h.ListUpcomingEvents, newGetRequest(t, "/api/events", nil))
	events := unmarshalList[model.Event](t, w)
	if len(events) != 10 {
		t.Fatalf("expected listing capped at 10, got %d", len(events))
	}

	// Ascending by date: the nearest events are kept.
	for i := 1; i < len(events); i++ {
		if events[i].EventDate.Before(events[i-1].EventDate) {
			t.Errorf("events not in ascending date order at index %d", i)
		}
	}
}

func TestUpdateEvent(t *testing.T) {
	h, _ := testHandler(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/events",
		`{"title":"Concert","event_date":"2030-09-01","location":"Auditorium"}`, nil)
	executeHandler(t, h.CreateEvent, req)

	upd := newJSONRequest(t, http.MethodPut, "/api/admin/events/1",
		`{"event_date":"2030-09-02","is_published":false}`, map[string]string{"id": "1"})
	w := executeHandler(t, h.UpdateEvent, upd)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	event := unmarshalData[model.Event](t, w)
	if got := event.EventDate.Format(model.EventDateLayout); got != "2030-09-02" {
		t.Errorf("event date = %s, want 2030-09-02", got)
	}
	if event.IsPublished {
		t.Error("expected event to be unpublished")
	}
	if event.Location != "Auditorium" {
		t.Errorf("untouched field changed: %s", event.Location)
	}
}

func TestDeleteEvent_NotFound(t *testing.T) {
	h, _ := testHandler(t)

	req := newDeleteRequest(t, "/api/admin/events/7", map[string]string{"id": "7"})
	if w := executeHandler(t, h.DeleteEvent, req); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
