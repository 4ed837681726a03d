package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

func TestRegistrationWizardTwoSteps(t *testing.T) {
	var adminPath string
	var adminBody model.AdminInput

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/organizations":
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "coop-42", "name": "Umoja"})
		case "/api/v1/organizations/coop-42/admins":
			adminPath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&adminBody); err != nil {
				t.Fatalf("decoding admin body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "u9"})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	org, err := client.CreateOrganization(context.Background(), model.OrganizationInput{Name: "Umoja"})
	if err != nil {
		t.Fatalf("CreateOrganization failed: %v", err)
	}
	if org.ID != "coop-42" {
		t.Fatalf("org id: got %q, want coop-42", org.ID)
	}

	// The admin step binds the id the first step returned.
	_, err = client.CreateOrganizationAdmin(context.Background(), model.AdminInput{
		FirstName:     "Grace",
		LastName:      "Uwase",
		Phone:         "+250788000001",
		PIN:           "1234",
		CooperativeID: org.ID,
	})
	if err != nil {
		t.Fatalf("CreateOrganizationAdmin failed: %v", err)
	}

	if adminPath != "/api/v1/organizations/coop-42/admins" {
		t.Errorf("admin path: got %q", adminPath)
	}
	if adminBody.CooperativeID != "coop-42" {
		t.Errorf("cooperativeId: got %q, want coop-42", adminBody.CooperativeID)
	}
}

func TestAdminConflictCopy(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"User with this email already registered"}`))
	})

	_, err := client.CreateOrganizationAdmin(context.Background(), model.AdminInput{CooperativeID: "coop-1"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := UserMessage(err); got != MsgEmailExists {
		t.Errorf("UserMessage: got %q, want %q", got, MsgEmailExists)
	}
}
