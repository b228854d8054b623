package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-care-tracker/internal/adapters/auth/jwtauth"
	"pet-care-tracker/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	manager := jwtauth.NewManager("test-secret", time.Hour)
	srv := httptest.NewServer(router.New(router.Options{
		Verifier: manager,
		Issuer:   manager,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func doJSONList(t *testing.T, srv *httptest.Server, path, token string) (*http.Response, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	var out []map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func registerUser(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %v", email, resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("register %s: sin token en la respuesta", email)
	}
	return token
}

func createPet(t *testing.T, srv *httptest.Server, token, name string) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/api/pets", token, map[string]any{
		"name": name, "type": "dog",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create pet %s: status %d, body %v", name, resp.StatusCode, body)
	}
	return body["id"].(string)
}

func createTask(t *testing.T, srv *httptest.Server, token, petID string) string {
	t.Helper()
	resp, body := doJSON(t, srv, http.MethodPost, "/api/tasks", token, map[string]any{
		"petId": petID, "title": "Desayuno", "type": "feeding",
		"scheduledTime": time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task: status %d, body %v", resp.StatusCode, body)
	}
	return body["id"].(string)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "Ana", "ana@example.com")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ana@example.com", "password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d, body %v", resp.StatusCode, body)
	}
	if body["message"] != "Login successful" {
		t.Errorf("mensaje de login: %v", body["message"])
	}

	token := body["token"].(string)
	resp, profile := doJSON(t, srv, http.MethodGet, "/api/user/profile", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile: status %d", resp.StatusCode)
	}
	if profile["email"] != "ana@example.com" {
		t.Errorf("profile email: %v", profile["email"])
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "Ana", "ana@example.com")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Otra", "email": "ana@example.com", "password": "secret123",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status: esperaba 400, vino %d", resp.StatusCode)
	}
	if body["error"] != "User already exists" {
		t.Errorf("mensaje: %v", body["error"])
	}
}

func TestLogin_WrongPasswordIsGeneric(t *testing.T) {
	srv := newTestServer(t)
	registerUser(t, srv, "Ana", "ana@example.com")

	for _, creds := range []map[string]any{
		{"email": "ana@example.com", "password": "equivocada"},
		{"email": "nadie@example.com", "password": "secret123"},
	} {
		resp, body := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", creds)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status: esperaba 401, vino %d", resp.StatusCode)
		}
		if body["error"] != "Invalid credentials" {
			t.Errorf("mensaje: %v", body["error"])
		}
	}
}

func TestAuthMiddleware_Statuses(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, srv, http.MethodGet, "/api/pets", "", nil)
	if resp.StatusCode != http.StatusUnauthorized || body["error"] != "Access token required" {
		t.Errorf("sin token: status %d, body %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, srv, http.MethodGet, "/api/pets", "token-basura", nil)
	if resp.StatusCode != http.StatusForbidden || body["error"] != "Invalid token" {
		t.Errorf("token inválido: status %d, body %v", resp.StatusCode, body)
	}
}

func TestPets_OwnerIsolation(t *testing.T) {
	srv := newTestServer(t)
	anaToken := registerUser(t, srv, "Ana", "ana@example.com")
	benToken := registerUser(t, srv, "Ben", "ben@example.com")

	petID := createPet(t, srv, anaToken, "Rocky")

	resp, list := doJSONList(t, srv, "/api/pets", benToken)
	if resp.StatusCode != http.StatusOK || len(list) != 0 {
		t.Errorf("listado ajeno: status %d, %d mascotas", resp.StatusCode, len(list))
	}

	resp, body := doJSON(t, srv, http.MethodGet, "/api/pets/"+petID, benToken, nil)
	if resp.StatusCode != http.StatusNotFound || body["error"] != "Pet not found" {
		t.Errorf("mascota ajena: status %d, body %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/pets/"+petID, benToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("delete ajeno: esperaba 404, vino %d", resp.StatusCode)
	}
}

func TestTasks_CreateOnForeignPetIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	anaToken := registerUser(t, srv, "Ana", "ana@example.com")
	benToken := registerUser(t, srv, "Ben", "ben@example.com")
	petID := createPet(t, srv, anaToken, "Rocky")

	resp, body := doJSON(t, srv, http.MethodPost, "/api/tasks", benToken, map[string]any{
		"petId": petID, "title": "Paseo", "type": "walk",
		"scheduledTime": time.Now().UTC().Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusNotFound || body["error"] != "Pet not found" {
		t.Errorf("status %d, body %v", resp.StatusCode, body)
	}
}

func TestTasks_CompleteIsOneWay(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Ana", "ana@example.com")
	petID := createPet(t, srv, token, "Rocky")
	taskID := createTask(t, srv, token, petID)

	resp, body := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%s/complete", taskID), token, map[string]any{
		"mood": "good", "notes": "comió todo",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: status %d, body %v", resp.StatusCode, body)
	}
	if body["completedAt"] == nil {
		t.Error("completedAt tendría que venir seteado")
	}

	resp, body = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%s/complete", taskID), token, nil)
	if resp.StatusCode != http.StatusConflict || body["error"] != "Task is already completed" {
		t.Errorf("segunda completion: status %d, body %v", resp.StatusCode, body)
	}

	resp, logs := doJSONList(t, srv, "/api/task-logs", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("task-logs: status %d", resp.StatusCode)
	}
	if len(logs) != 1 {
		t.Fatalf("esperaba exactamente 1 log, vino %d", len(logs))
	}
	if logs[0]["mood"] != "good" || logs[0]["petName"] != "Rocky" {
		t.Errorf("log: %v", logs[0])
	}
}

func TestPets_DeleteCascadesTasksAndLogs(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Ana", "ana@example.com")
	petID := createPet(t, srv, token, "Rocky")
	taskID := createTask(t, srv, token, petID)

	if resp, _ := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%s/complete", taskID), token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: status %d", resp.StatusCode)
	}

	resp, body := doJSON(t, srv, http.MethodDelete, "/api/pets/"+petID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete pet: status %d, body %v", resp.StatusCode, body)
	}

	if _, tasks := doJSONList(t, srv, "/api/tasks", token); len(tasks) != 0 {
		t.Errorf("quedaron %d tasks tras el cascade", len(tasks))
	}
	if _, logs := doJSONList(t, srv, "/api/task-logs", token); len(logs) != 0 {
		t.Errorf("quedaron %d logs tras el cascade", len(logs))
	}
}

func TestSharedAccess_CaregiverCanCompleteViewerCannot(t *testing.T) {
	srv := newTestServer(t)
	anaToken := registerUser(t, srv, "Ana", "ana@example.com")
	benToken := registerUser(t, srv, "Ben", "ben@example.com")
	evaToken := registerUser(t, srv, "Eva", "eva@example.com")

	_, benProfile := doJSON(t, srv, http.MethodGet, "/api/user/profile", benToken, nil)
	_, evaProfile := doJSON(t, srv, http.MethodGet, "/api/user/profile", evaToken, nil)

	petID := createPet(t, srv, anaToken, "Rocky")
	taskID := createTask(t, srv, anaToken, petID)

	resp, body := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%s/shared", petID), anaToken, map[string]any{
		"userId": benProfile["id"], "role": "caregiver",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("grant caregiver: status %d, body %v", resp.StatusCode, body)
	}
	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%s/shared", petID), anaToken, map[string]any{
		"userId": evaProfile["id"], "role": "viewer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("grant viewer: status %d", resp.StatusCode)
	}

	// La viewer lee la mascota pero no completa tasks.
	resp, _ = doJSON(t, srv, http.MethodGet, "/api/pets/"+petID, evaToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("viewer no pudo leer la mascota: status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%s/complete", taskID), evaToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("viewer completando: esperaba 404, vino %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%s/complete", taskID), benToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("caregiver completando: esperaba 200, vino %d", resp.StatusCode)
	}
}

func TestAnalytics_Rates(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Ana", "ana@example.com")
	petID := createPet(t, srv, token, "Rocky")

	t1 := createTask(t, srv, token, petID)
	createTask(t, srv, token, petID)

	if resp, _ := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%s/complete", t1), token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: status %d", resp.StatusCode)
	}

	resp, byType := doJSONList(t, srv, "/api/analytics/tasks", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analytics/tasks: status %d", resp.StatusCode)
	}
	if len(byType) != 1 {
		t.Fatalf("esperaba 1 tipo, vino %d", len(byType))
	}
	if byType[0]["completionRate"] != float64(50) {
		t.Errorf("completionRate: esperaba 50, vino %v", byType[0]["completionRate"])
	}

	// Sin tasks no hay división por cero: rate 0.
	petSinTasks := createPet(t, srv, token, "Luna")
	resp, byPet := doJSONList(t, srv, "/api/analytics/pets?petId="+petSinTasks, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analytics/pets: status %d", resp.StatusCode)
	}
	if len(byPet) != 1 || byPet[0]["completionRate"] != float64(0) {
		t.Errorf("mascota sin tasks: %v", byPet)
	}
}

func TestPreferences_DefaultsAndUpdate(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Ana", "ana@example.com")

	resp, prefs := doJSON(t, srv, http.MethodGet, "/api/user/preferences", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("preferences: status %d", resp.StatusCode)
	}
	if prefs["theme"] != "system" || prefs["weekStartsOn"] != "monday" {
		t.Errorf("defaults: %v", prefs)
	}

	resp, updated := doJSON(t, srv, http.MethodPut, "/api/user/preferences", token, map[string]any{
		"theme": "dark", "reminderLeadMinutes": 60,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update preferences: status %d, body %v", resp.StatusCode, updated)
	}
	if updated["theme"] != "dark" || updated["reminderLeadMinutes"] != float64(60) {
		t.Errorf("update: %v", updated)
	}

	resp, _ = doJSON(t, srv, http.MethodPut, "/api/user/preferences", token, map[string]any{
		"reminderLeadMinutes": 5000,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("lead fuera de rango: esperaba 400, vino %d", resp.StatusCode)
	}
}

func TestPetRecords_AccessLevels(t *testing.T) {
	srv := newTestServer(t)
	anaToken := registerUser(t, srv, "Ana", "ana@example.com")
	evaToken := registerUser(t, srv, "Eva", "eva@example.com")
	_, evaProfile := doJSON(t, srv, http.MethodGet, "/api/user/profile", evaToken, nil)

	petID := createPet(t, srv, anaToken, "Rocky")
	resp, _ := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%s/shared", petID), anaToken, map[string]any{
		"userId": evaProfile["id"], "role": "viewer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("grant: status %d", resp.StatusCode)
	}

	resp, body := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%s/weight", petID), anaToken, map[string]any{
		"weight": 12.5, "notes": "control mensual",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add weight: status %d, body %v", resp.StatusCode, body)
	}

	// Viewer lee pero no escribe.
	resp, list := doJSONList(t, srv, fmt.Sprintf("/api/pets/%s/weight", petID), evaToken)
	if resp.StatusCode != http.StatusOK || len(list) != 1 {
		t.Errorf("viewer leyendo pesos: status %d, %d entradas", resp.StatusCode, len(list))
	}
	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%s/weight", petID), evaToken, map[string]any{
		"weight": 13.0,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("viewer escribiendo: esperaba 404, vino %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/pets/%s/mood", petID), anaToken, map[string]any{
		"mood": "furioso",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("mood inválido: esperaba 400, vino %d", resp.StatusCode)
	}
}

func TestNotifications_Flow(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Ana", "ana@example.com")
	otherToken := registerUser(t, srv, "Ben", "ben@example.com")

	resp, created := doJSON(t, srv, http.MethodPost, "/api/notifications", token, map[string]any{
		"type": "reminder", "title": "Vacuna pendiente", "message": "Rocky tiene turno mañana",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d, body %v", resp.StatusCode, created)
	}
	id := created["id"].(string)

	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/notifications/%s/read", id), otherToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("marcar ajena: esperaba 404, vino %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/notifications/%s/read", id), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("marcar propia: status %d", resp.StatusCode)
	}

	_, list := doJSONList(t, srv, "/api/notifications", token)
	if len(list) != 1 || list[0]["read"] != true {
		t.Errorf("listado: %v", list)
	}
}
