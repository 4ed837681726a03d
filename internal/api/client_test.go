package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil), srv
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotAccept string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	})
	client.SetToken("tok-123")

	if _, err := client.ListUsers(context.Background(), model.NewListQuery(20)); err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization: got %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID: got empty, want a correlation id")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept: got %q, want application/json", gotAccept)
	}
}

func TestUnauthorizedMapsToAuthError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListUsers(context.Background(), model.NewListQuery(20))
	if !IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestStatusErrorCarriesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"phone already exists"}`))
	})

	_, err := client.CreateUser(context.Background(), model.UserInput{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := UserMessage(err); got != MsgPhoneExists {
		t.Errorf("UserMessage: got %q, want %q", got, MsgPhoneExists)
	}
}

func TestLoginInstallsToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("path: got %q, want /api/v1/auth/login", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["phone"] != "+250788111222" || body["pin"] != "1234" {
			t.Errorf("credentials: got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "session-abc",
			"user":  map[string]string{"id": "u1", "firstName": "Ada"},
		})
	})

	session, err := client.Login(context.Background(), "+250788111222", "1234")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token != "session-abc" {
		t.Errorf("Token: got %q, want session-abc", session.Token)
	}
	if client.Token() != "session-abc" {
		t.Errorf("client token: got %q, want session-abc", client.Token())
	}
}

func TestLogoutClearsTokenEvenOnFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client.SetToken("stale")

	if err := client.Logout(context.Background()); err == nil {
		t.Fatal("expected error from failed logout")
	}
	if client.Token() != "" {
		t.Errorf("token after logout: got %q, want empty", client.Token())
	}
}

func TestMarkNotificationReadWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method: got %q, want PATCH", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	updated, err := client.MarkNotificationRead(context.Background(), "n1")
	if err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if updated != nil {
		t.Errorf("updated: got %+v, want nil for empty response", updated)
	}
}

func TestUpdateUserStatusPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/u7/status" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		var body map[string]bool
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["isActive"] != false {
			t.Errorf("isActive: got %v, want false", body["isActive"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "u7", "isActive": false})
	})

	updated, err := client.UpdateUserStatus(context.Background(), "u7", false)
	if err != nil {
		t.Fatalf("UpdateUserStatus failed: %v", err)
	}
	if updated.IsActive {
		t.Error("IsActive: got true, want false")
	}
}

func TestNetworkFailureSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(srv.URL, nil)

	_, err := client.ListUsers(context.Background(), model.NewListQuery(20))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	want := "Unable to reach the server. Check your connection and retry."
	if got := UserMessage(err); got != want {
		t.Errorf("UserMessage: got %q, want %q", got, want)
	}
}
