package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/malumbo/academy/internal/model"
)

func TestCreateContactMessage(t *testing.T) {
	h, _ := testHandler(t)

	body := `{"name":"Chisomo Banda","email":"chisomo@example.com","phone":"+265 999 000111","message":"When does enrollment open?"}`
	req := newJSONRequest(t, http.MethodPost, "/api/contact", body, nil)
	w := executeHandler(t, h.CreateContactMessage, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	msg := unmarshalData[model.ContactMessage](t, w)
	if msg.ID == 0 {
		t.Error("expected assigned id")
	}
	if msg.SubmittedAt.IsZero() {
		t.Error("expected submitted_at to be set")
	}
	if msg.IsRead {
		t.Error("new message must start unread")
	}
	if msg.Name != "Chisomo Banda" || msg.Message != "When does enrollment open?" {
		t.Errorf("echo lost fields: %+v", msg)
	}
}

func TestCreateContactMessage_Validation(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","message":"hi"}`},
		{"missing email", `{"name":"A","message":"hi"}`},
		{"bad email", `{"name":"A","email":"not-an-email","message":"hi"}`},
		{"missing message", `{"name":"A","email":"a@b.com"}`},
		{"whitespace only", `{"name":"  ","email":"a@b.com","message":"hi"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/contact", tt.body, nil)
			if w := executeHandler(t, h.CreateContactMessage, req); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestCreateContactMessage_SanitizesMarkup(t *testing.T) {
	h, _ := testHandler(t)

	body := `{"name":"Eve","email":"eve@example.com","message":"<script>alert(1)</script>Do you offer boarding?"}`
	req := newJSONRequest(t, http.MethodPost, "/api/contact", body, nil)
	w := executeHandler(t, h.CreateContactMessage, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	msg := unmarshalData[model.ContactMessage](t, w)
	if strings.Contains(msg.Message, "<script>") || strings.Contains(msg.Message, "alert(1)") {
		t.Errorf("markup survived sanitization: %q", msg.Message)
	}
	if !strings.Contains(msg.Message, "Do you offer boarding?") {
		t.Errorf("legitimate text removed: %q", msg.Message)
	}
}

func TestListAndMarkMessages(t *testing.T) {
	h, _ := testHandler(t)

	for _, body := range []string{
		`{"name":"First","email":"f@example.com","message":"one"}`,
		`{"name":"Second","email":"s@example.com","message":"two"}`,
	} {
		req := newJSONRequest(t, http.MethodPost, "/api/contact", body, nil)
		if w := executeHandler(t, h.CreateContactMessage, req); w.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d", w.Code)
		}
	}

	w := executeHandler(t, h.ListContactMessages, newGetRequest(t, "/api/admin/messages", nil))
	messages := unmarshalList[model.ContactMessage](t, w)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	// Newest first.
	if messages[0].Name != "Second" {
		t.Errorf("expected newest message first, got %s", messages[0].Name)
	}

	req := newJSONRequest(t, http.MethodPut, "/api/admin/messages/1/read", "", map[string]string{"id": "1"})
	w = executeHandler(t, h.MarkMessageRead, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if msg := unmarshalData[model.ContactMessage](t, w); !msg.IsRead {
		t.Error("expected message to be marked read")
	}

	missing := newJSONRequest(t, http.MethodPut, "/api/admin/messages/9/read", "", map[string]string{"id": "9"})
	if w := executeHandler(t, h.MarkMessageRead, missing); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
