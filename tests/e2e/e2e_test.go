//go:build e2e

// Package e2e contains smoke tests against a running server instance.
// Run with:
//
//	go run ./cmd/api &
//	USERSVC_BASE_URL=http://localhost:8000 go test -tags e2e ./tests/e2e
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

type userResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func baseURL() string {
	if v := os.Getenv("USERSVC_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8000"
}

func TestE2ESmoke(t *testing.T) {
	base := baseURL()
	client := &http.Client{Timeout: 5 * time.Second}

	// Health
	resp := mustGet(t, client, base+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}
	var health map[string]any
	decodeBody(t, resp, &health)
	if health["status"] != "healthy" {
		t.Fatalf("health status = %v", health["status"])
	}

	// Create a user with a unique email so reruns don't collide.
	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	created := createUser(t, client, base, "E2E User", email)
	if created.Email != email {
		t.Fatalf("created email = %s, want %s", created.Email, email)
	}

	// Duplicate email is rejected.
	resp = postUser(t, client, base, "Other User", email)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate create: expected 400, got %d", resp.StatusCode)
	}
	var dup errorResponse
	decodeBody(t, resp, &dup)
	if dup.Detail != "Email already registered" {
		t.Fatalf("duplicate detail = %q", dup.Detail)
	}

	// Update name only.
	body, _ := json.Marshal(map[string]string{"name": "Renamed E2E User"})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/users/%d", base, created.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	var updated userResponse
	decodeBody(t, resp, &updated)
	if updated.Name != "Renamed E2E User" || updated.Email != email {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// Delete, then verify it is gone.
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/users/%d", base, created.ID), nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}

	resp = mustGet(t, client, fmt.Sprintf("%s/users/%d", base, created.ID))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.StatusCode)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func mustGet(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func postUser(t *testing.T, client *http.Client, base, name, email string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name, "email": email})
	resp, err := client.Post(base+"/users", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /users: %v", err)
	}
	return resp
}

func createUser(t *testing.T, client *http.Client, base, name, email string) userResponse {
	t.Helper()
	resp := postUser(t, client, base, name, email)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	var user userResponse
	decodeBody(t, resp, &user)
	return user
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
