package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"edujobs-backend/internal/render"
	"edujobs-backend/internal/shared/auth"
	"edujobs-backend/internal/shared/config"
	"edujobs-backend/internal/users"
)

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp := httptest.NewRecorder()
	c.router.ServeHTTP(resp, req)
	return resp
}

func (c client) expect(method, path string, body any, status int, out any) {
	c.t.Helper()
	resp := c.do(method, path, body)
	if resp.Code != status {
		c.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, status, resp.Code, resp.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
			c.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ENV", "test")
	app, err := Build(context.Background(), config.Config{
		Env:               "test",
		UploadDir:         t.TempDir(),
		ExportTimeout:     5 * time.Second,
		SweepGrace:        time.Minute,
		DashboardCacheTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func tokenFor(t *testing.T, id, email string, role users.Role) string {
	t.Helper()
	tok, err := auth.SignJWT(auth.Claims{
		Email:            email,
		Role:             string(role),
		RegisteredClaims: jwt.RegisteredClaims{Subject: id},
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return tok
}

func TestEndToEndInMemory(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	anon := client{t: t, router: app.Router}
	ada := client{t: t, router: app.Router, token: tokenFor(t, "ada", "ada@x.com", users.RoleEducatee)}
	acme := client{t: t, router: app.Router, token: tokenFor(t, "acme", "hr@acme.id", users.RoleCompany)}

	anon.expect(http.MethodGet, "/api/v1/health", nil, http.StatusOK, nil)

	ada.expect(http.MethodPut, "/api/v1/me/profile", map[string]any{
		"name": "Ada Lovelace", "gender": "F", "dob": "1990-01-01T00:00:00Z",
	}, http.StatusOK, nil)
	ada.expect(http.MethodPost, "/api/v1/me/skills", map[string]any{"name": "Math"}, http.StatusCreated, nil)

	var exported struct {
		URL string `json:"url"`
	}
	ada.expect(http.MethodPost, "/api/v1/me/cv", nil, http.StatusCreated, &exported)
	file := anon.do(http.MethodGet, exported.URL, nil)
	if file.Code != http.StatusOK || file.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("download: %d %s", file.Code, file.Header().Get("Content-Type"))
	}
	if pages, err := render.PageCount(file.Body.Bytes()); err != nil || pages != 1 {
		t.Fatalf("downloaded pdf: %d pages (%v)", pages, err)
	}

	acme.expect(http.MethodGet, "/api/v1/me", nil, http.StatusOK, nil)
	if err := app.UsersRepo.SaveProfile(ctx, "acme", users.Profile{Name: "Acme", Verification: users.VerificationVerified}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	var job struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
	}
	acme.expect(http.MethodPost, "/api/v1/jobs", map[string]any{"title": "Go Dev", "publish": true}, http.StatusCreated, &job)

	var before struct {
		Stats struct {
			Applicants int `json:"applicants"`
		} `json:"stats"`
	}
	acme.expect(http.MethodGet, "/api/v1/company/dashboard", nil, http.StatusOK, &before)

	var view struct {
		ApplyState string `json:"applyState"`
	}
	ada.expect(http.MethodGet, "/api/v1/jobs/"+job.Slug, nil, http.StatusOK, &view)
	if view.ApplyState != "apply" {
		t.Fatalf("expected apply state, got %q", view.ApplyState)
	}
	ada.expect(http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", nil, http.StatusCreated, nil)

	var after struct {
		Stats struct {
			Applicants int `json:"applicants"`
		} `json:"stats"`
	}
	acme.expect(http.MethodGet, "/api/v1/company/dashboard", nil, http.StatusOK, &after)
	if before.Stats.Applicants != 0 || after.Stats.Applicants != 1 {
		t.Fatalf("dashboard applicants %d -> %d", before.Stats.Applicants, after.Stats.Applicants)
	}

	course, err := app.CoursesService.CreateCourse(ctx, "Go Basics")
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	var enrollment struct {
		ID string `json:"id"`
	}
	ada.expect(http.MethodPost, "/api/v1/courses/"+course.ID+"/enrollments", nil, http.StatusCreated, &enrollment)
	ada.expect(http.MethodPost, "/api/v1/enrollments/"+enrollment.ID+"/certificate", nil, http.StatusConflict, nil)
	ada.expect(http.MethodPost, "/api/v1/enrollments/"+enrollment.ID+"/status", map[string]any{"status": "COMPLETED"}, http.StatusOK, nil)

	var cert struct {
		Code    string `json:"certificateCode"`
		FileURL string `json:"fileUrl"`
	}
	ada.expect(http.MethodPost, "/api/v1/enrollments/"+enrollment.ID+"/certificate", nil, http.StatusCreated, &cert)
	if !strings.HasPrefix(cert.FileURL, "/uploads/certificates/certificate-") {
		t.Fatalf("unexpected certificate url %q", cert.FileURL)
	}
	anon.expect(http.MethodGet, "/api/v1/certificates/"+cert.Code, nil, http.StatusOK, nil)
	acme.expect(http.MethodPost, "/api/v1/enrollments/"+enrollment.ID+"/certificate", nil, http.StatusNotFound, nil)

	res, err := app.Sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Deleted != 0 {
		t.Fatalf("sweep must not delete referenced files: %+v", res)
	}
	if file := anon.do(http.MethodGet, cert.FileURL, nil); file.Code != http.StatusOK {
		t.Fatalf("certificate download: %d", file.Code)
	}

	metrics := anon.do(http.MethodGet, "/metrics", nil)
	if !strings.Contains(metrics.Body.String(), "export_completed_total") {
		t.Fatalf("metrics missing export counters: %s", metrics.Body.String())
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	if _, err := Build(context.Background(), config.Config{Env: "production"}); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestBuildRequiresBucketForS3(t *testing.T) {
	if _, err := Build(context.Background(), config.Config{Env: "dev", ObjectStoreType: "s3"}); err == nil {
		t.Fatalf("expected error without S3_BUCKET")
	}
}
