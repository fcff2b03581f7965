package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/malumbo/academy/internal/auth"
	"github.com/malumbo/academy/internal/config"
	"github.com/malumbo/academy/internal/store"
)

// seedAdmin creates the admin user the way startup seeding does.
func seedAdmin(t *testing.T, st store.Store, username, password string) {
	t.Helper()
	if err := store.Seed(context.Background(), st, username, password); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestLogin_TokenMode(t *testing.T) {
	h, st := testHandler(t)
	seedAdmin(t, st, "admin", "swordfish-42")

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"username":"admin","password":"swordfish-42"}`, nil)
	w := executeHandler(t, h.Login, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := unmarshalData[LoginResponse](t, w)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Username != "admin" {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}

	// The issued token must verify with the same secret.
	claims, err := auth.NewTokenManager(testTokenSecret, h.tokens.TTL()).Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("claims username = %q, want admin", claims.Username)
	}
}

func TestLogin_FailureRevealsNothing(t *testing.T) {
	h, st := testHandler(t)
	seedAdmin(t, st, "admin", "swordfish-42")

	wrongPassword := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"username":"admin","password":"wrong"}`, nil)
	w1 := executeHandler(t, h.Login, wrongPassword)

	unknownUser := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"username":"nobody","password":"wrong"}`, nil)
	w2 := executeHandler(t, h.Login, unknownUser)

	for name, w := range map[string]int{"wrong password": w1.Code, "unknown user": w2.Code} {
		if w != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w)
		}
	}

	// Identical error bodies for both failure modes.
	if w1.Body.String() != w2.Body.String() {
		t.Errorf("login failures differ:\n%s\n%s", w1.Body.String(), w2.Body.String())
	}
}

func TestLogin_Validation(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing username", `{"password":"x"}`},
		{"missing password", `{"username":"admin"}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/admin/login", tt.body, nil)
			if w := executeHandler(t, h.Login, req); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestLogin_CredentialsMode(t *testing.T) {
	h, _ := testHandler(t)
	h.cfg.AuthMode = config.AuthModeCredentials

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"username":"admin","password":"admin123"}`, nil)
	w := executeHandler(t, h.Login, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := unmarshalData[CredentialsLoginResponse](t, w); !resp.Success {
		t.Error("expected success indicator")
	}

	bad := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"username":"admin","password":"nope"}`, nil)
	if w := executeHandler(t, h.Login, bad); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLogin_RecordsLastLogin(t *testing.T) {
	h, st := testHandler(t)
	seedAdmin(t, st, "admin", "swordfish-42")

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"username":"admin","password":"swordfish-42"}`, nil)
	if w := executeHandler(t, h.Login, req); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	user, err := st.GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !user.LastLoginAt.Valid {
		t.Error("expected last_login_at to be recorded")
	}
}
