package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/malumbo/academy/internal/auth"
	"github.com/malumbo/academy/internal/cache"
	"github.com/malumbo/academy/internal/model"
)

// The handler suite above runs against the memory store; this file
// repeats the core flows against the SQLite backend so both store
// implementations stay interchangeable behind the handlers.

func testHandlerSQLite(t *testing.T) *Handler {
	t.Helper()

	cfg := testConfig(t)
	st := testSQLiteStore(t)
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	return NewHandler(st, c, auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL), cfg)
}

func TestSQLiteSlideLifecycle(t *testing.T) {
	h := testHandlerSQLite(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/slides",
		`{"title":"Library","description":"Quiet study","image_url":"https://example.com/lib.jpg","display_order":2}`, nil)
	w := executeHandler(t, h.CreateSlide, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := unmarshalData[model.Slide](t, w)

	upd := newJSONRequest(t, http.MethodPut, "/api/admin/slides/1",
		`{"is_active":false}`, map[string]string{"id": "1"})
	w = executeHandler(t, h.UpdateSlide, upd)
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := unmarshalData[model.Slide](t, w)
	if updated.IsActive {
		t.Error("expected slide deactivated")
	}
	if updated.Title != created.Title {
		t.Errorf("untouched field changed: %q != %q", updated.Title, created.Title)
	}

	w = executeHandler(t, h.ListActiveSlides, newGetRequest(t, "/api/slides", nil))
	if slides := unmarshalList[model.Slide](t, w); len(slides) != 0 {
		t.Errorf("expected no active slides, got %d", len(slides))
	}

	del := newDeleteRequest(t, "/api/admin/slides/1", map[string]string{"id": "1"})
	if w := executeHandler(t, h.DeleteSlide, del); w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if w := executeHandler(t, h.DeleteSlide, newDeleteRequest(t, "/api/admin/slides/1",
		map[string]string{"id": "1"})); w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}

func TestSQLiteUpcomingEvents(t *testing.T) {
	h := testHandlerSQLite(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format(model.EventDateLayout)
	nextWeek := time.Now().AddDate(0, 0, 7).Format(model.EventDateLayout)

	for _, body := range []string{
		`{"title":"Past","event_date":"` + yesterday + `"}`,
		`{"title":"Soon","event_date":"` + nextWeek + `"}`,
		`{"title":"Hidden","event_date":"` + nextWeek + `","is_published":false}`,
	} {
		req := newJSONRequest(t, http.MethodPost, "/api/admin/events", body, nil)
		if w := executeHandler(t, h.CreateEvent, req); w.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := executeHandler(t, h.ListUpcomingEvents, newGetRequest(t, "/api/events", nil))
	events := unmarshalList[model.Event](t, w)
	if len(events) != 1 || events[0].Title != "Soon" {
		t.Errorf("expected only the published future event, got %+v", events)
	}
}

func TestSQLiteContactAndStats(t *testing.T) {
	h := testHandlerSQLite(t)

	req := newJSONRequest(t, http.MethodPost, "/api/contact",
		`{"name":"Tamara","email":"t@example.com","message":"Fees?"}`, nil)
	w := executeHandler(t, h.CreateContactMessage, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("contact: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = executeHandler(t, h.GetStats, newGetRequest(t, "/api/admin/stats", nil))
	if stats := unmarshalData[model.Stats](t, w); stats.UnreadMessages != 1 {
		t.Errorf("expected 1 unread message, got %d", stats.UnreadMessages)
	}
}
