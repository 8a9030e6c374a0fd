package certificates

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"edujobs-backend/internal/courses"
)

func newTestRouter(svc *Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r
}

func TestIssueEndpointReturnsRecord(t *testing.T) {
	f := newFixture(t)
	f.enroll(t, "e1", "ada", courses.StatusCompleted)
	router := newTestRouter(f.svc, "ada")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/enrollments/e1/certificate", nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var cert map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &cert); err != nil {
		t.Fatalf("decode: %v", err)
	}
	code, _ := cert["certificateCode"].(string)
	if !strings.HasPrefix(code, "CERT-") {
		t.Fatalf("unexpected body %v", cert)
	}
	if _, ok := cert["storageKey"]; ok {
		t.Fatalf("storage key must not leak: %v", cert)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/certificates/"+strings.ToLower(code), nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), code) {
		t.Fatalf("verify: %d %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me/certificates", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), code) {
		t.Fatalf("list: %d %s", resp.Code, resp.Body.String())
	}
}

func TestIssueEndpointStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status courses.EnrollmentStatus
		path   string
		user   string
		want   int
	}{
		{name: "in progress", status: courses.StatusInProgress, path: "e1", user: "ada", want: http.StatusConflict},
		{name: "unknown", status: courses.StatusCompleted, path: "nope", user: "ada", want: http.StatusNotFound},
		{name: "foreign", status: courses.StatusCompleted, path: "e1", user: "bob", want: http.StatusNotFound},
		{name: "anonymous", status: courses.StatusCompleted, path: "e1", user: "", want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.enroll(t, "e1", "ada", tc.status)
			router := newTestRouter(f.svc, tc.user)

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/enrollments/"+tc.path+"/certificate", nil))
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestVerifyUnknownCode(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(f.svc, "")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/certificates/CERT-00000000", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
