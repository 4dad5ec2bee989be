package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/resource"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository/memory"
	employeeService "github.com/cmlabs-hris/employee-wizard-go/internal/service/employee"
	lookupService "github.com/cmlabs-hris/employee-wizard-go/internal/service/lookup"
	wizardService "github.com/cmlabs-hris/employee-wizard-go/internal/service/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhoto = "data:image/png;base64,aGVsbG8="

// upstream is a tiny json-server stand-in holding raw records per collection.
type upstream struct {
	mu          sync.Mutex
	collections map[string][]json.RawMessage
	failPost    map[string]bool
}

func newUpstream() *upstream {
	return &upstream{
		collections: map[string][]json.RawMessage{},
		failPost:    map[string]bool{},
	}
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		records := u.collections[r.URL.Path]
		if records == nil {
			records = []json.RawMessage{}
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(len(records)))
		_ = json.NewEncoder(w).Encode(records)
	case http.MethodPost:
		if u.failPost[r.URL.Path] {
			http.Error(w, "upstream down", http.StatusServiceUnavailable)
			return
		}
		var record json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u.collections[r.URL.Path] = append(u.collections[r.URL.Path], record)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(record)
	}
}

func (u *upstream) count(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.collections[path])
}

type testServer struct {
	router   http.Handler
	upstream *upstream
	jwt      jwt.Service
	hub      *sse.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	up := newUpstream()
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client := resource.NewClient(srv.URL, time.Second)
	basicInfo := resource.NewBasicInfoResource(client)
	details := resource.NewDetailResource(client)

	employees := employeeService.NewEmployeeService(basicInfo, details)
	lookups := lookupService.NewLookupService(
		memory.NewCatalog(memory.DefaultDepartments()),
		memory.NewCatalog(memory.DefaultLocations()),
		nil,
	)
	wizards := wizardService.NewWizardService(
		wizardService.NewSubmitter(basicInfo, details, nil, 0),
		memory.NewDraftRepository(),
		"",
		employees,
		lookups,
	)

	hub := sse.NewHub()
	jwtService := jwt.NewJWTService("router-test-secret", time.Hour)
	router := NewRouter(
		RouterConfig{DefaultRole: wizard.RoleTypeAdmin},
		jwtService,
		NewEmployeeHandler(employees),
		NewLookupHandler(lookups),
		NewWizardHandler(wizards, hub, 5*time.Second),
		NewNotificationHandler(hub),
	)
	return &testServer{router: router, upstream: up, jwt: jwtService, hub: hub}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func adminBody() map[string]string {
	return map[string]string{
		"roleType":       "admin",
		"fullName":       "Ada Lovelace",
		"email":          "ada@example.com",
		"department":     "1",
		"departmentName": "Engineering",
		"role":           "engineer",
		"employeeId":     "ENG-001",
		"photo":          testPhoto,
		"employmentType": "full-time",
		"location":       "1",
		"locationName":   "Jakarta",
	}
}

var opsHint = map[string]string{middleware.RoleHintHeader: "ops"}

func TestRouter_Steps(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/wizard/steps", nil, nil)
	require.Equal(t, http.StatusOK, code)
	var admin stepsResponse
	require.NoError(t, json.Unmarshal(env.Data, &admin))
	assert.Equal(t, wizard.RoleTypeAdmin, admin.RoleType)
	assert.Len(t, admin.Steps, 2)

	code, env = s.do(t, http.MethodGet, "/api/v1/wizard/steps", nil, opsHint)
	require.Equal(t, http.StatusOK, code)
	var ops stepsResponse
	require.NoError(t, json.Unmarshal(env.Data, &ops))
	assert.Equal(t, wizard.RoleTypeOps, ops.RoleType)
	assert.Len(t, ops.Steps, 1)
}

func TestRouter_StepsWithToken(t *testing.T) {
	s := newTestServer(t)
	token, _, err := s.jwt.GenerateAccessToken("user-1", wizard.RoleTypeOps)
	require.NoError(t, err)

	code, env := s.do(t, http.MethodGet, "/api/v1/wizard/steps", nil, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, code)
	var steps stepsResponse
	require.NoError(t, json.Unmarshal(env.Data, &steps))
	assert.Equal(t, wizard.RoleTypeOps, steps.RoleType)

	code, _ = s.do(t, http.MethodGet, "/api/v1/wizard/steps", nil, map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_ValidateStep(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/wizard/steps/0/validate", map[string]string{"roleType": "admin"}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "fullName")
	assert.NotContains(t, env.Error.Details, "photo")

	code, _ = s.do(t, http.MethodPost, "/api/v1/wizard/steps/0/validate", adminBody(), nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/wizard/steps/5/validate", adminBody(), nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/wizard/steps/first/validate", adminBody(), nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_RoleMismatch(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/wizard/submit", adminBody(), opsHint)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	assert.Zero(t, s.upstream.count("/details"))
}

func TestRouter_SubmitAdmin(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/v1/wizard/submit", adminBody(), nil)
	require.Equal(t, http.StatusCreated, code, env)

	var result wizard.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "/employees", result.Redirect)
	assert.Equal(t, wizardService.MessageSuccess, result.Progress[len(result.Progress)-1])
	assert.Equal(t, 1, s.upstream.count("/basicInfo"))
	assert.Equal(t, 1, s.upstream.count("/details"))

	code, env = s.do(t, http.MethodGet, "/api/v1/employees?page=1&limit=10", nil, nil)
	require.Equal(t, http.StatusOK, code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada Lovelace", rows[0]["fullName"])
	assert.Equal(t, "Engineering", rows[0]["department"])
	assert.Equal(t, "Jakarta", rows[0]["location"])
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.TotalItems)
}

func TestRouter_SubmitUpstreamFailure(t *testing.T) {
	s := newTestServer(t)
	s.upstream.failPost["/basicInfo"] = true

	code, env := s.do(t, http.MethodPost, "/api/v1/wizard/submit", adminBody(), nil)

	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "BAD_GATEWAY", env.Error.Code)
	assert.Zero(t, s.upstream.count("/details"))
}

func TestRouter_SubmitInvalid(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{"roleType": "ops", "photo": "not-an-image"}

	code, env := s.do(t, http.MethodPost, "/api/v1/wizard/submit", body, opsHint)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "photo")
	assert.Zero(t, s.upstream.count("/details"))
}

func TestRouter_DraftLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/api/v1/wizard/draft", nil, opsHint)
	assert.Equal(t, http.StatusNotFound, code)

	draftBody := map[string]string{"roleType": "ops", "locationName": "Remote"}
	code, _ = s.do(t, http.MethodPut, "/api/v1/wizard/draft", draftBody, opsHint)
	require.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodGet, "/api/v1/wizard/draft", nil, opsHint)
	require.Equal(t, http.StatusOK, code)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, "ops", saved["roleType"])
	assert.Equal(t, "Remote", saved["locationName"])

	code, _ = s.do(t, http.MethodGet, "/api/v1/wizard/draft", nil, nil)
	assert.Equal(t, http.StatusNotFound, code, "admin draft is separate")

	code, _ = s.do(t, http.MethodDelete, "/api/v1/wizard/draft", nil, opsHint)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodGet, "/api/v1/wizard/draft", nil, opsHint)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_Lookups(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/lookups/departments?q=fin", nil, nil)
	require.Equal(t, http.StatusOK, code)
	var options []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &options))
	require.NotEmpty(t, options)
	assert.Equal(t, "Finance", options[0]["label"])

	code, env = s.do(t, http.MethodGet, "/api/v1/lookups/locations", nil, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &options))
	assert.Len(t, options, len(memory.DefaultLocations()))
}

func TestRouter_EmployeeID(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.do(t, http.MethodPost, "/api/v1/wizard/submit", adminBody(), nil)

	code, env := s.do(t, http.MethodGet, "/api/v1/wizard/employee-id?department=2&role=hr", nil, nil)
	require.Equal(t, http.StatusOK, code)
	var preview wizard.EmployeeIDPreview
	require.NoError(t, json.Unmarshal(env.Data, &preview))
	assert.Equal(t, "FIN-002", preview.EmployeeID)
	assert.Equal(t, 1, preview.ExistingCount)
}

func TestRouter_EmployeesInvalidPaging(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/employees?page=0&limit=500", nil, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "page")
	assert.Contains(t, env.Error.Details, "limit")
}

// readEvent returns the name and data of the next server-sent event.
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestRouter_NotificationStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/notifications/stream", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.RoleHintHeader, "ops")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := bufio.NewReader(resp.Body)
	name, data := readEvent(t, events)
	require.Equal(t, "connected", name)
	assert.Contains(t, data, `"roleType":"ops"`)
	require.Equal(t, 1, s.hub.SubscriberCount("ops"))

	body := map[string]string{
		"roleType":       "ops",
		"photo":          testPhoto,
		"employmentType": "contract",
		"location":       "5",
		"locationName":   "Remote",
	}
	code, _ := s.do(t, http.MethodPost, "/api/v1/wizard/submit", body, opsHint)
	require.Equal(t, http.StatusCreated, code)

	name, data = readEvent(t, events)
	assert.Equal(t, sse.EventNotification, name)
	assert.Contains(t, data, `"type":"success"`)
	assert.Contains(t, data, "Employee added successfully")
}

func TestRouter_NotificationStreamQueryToken(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream?token=garbage", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.do(t, http.MethodPost, "/api/v1/wizard/submit", adminBody(), nil)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wizard_submit_total")
}
