package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailam-cse/achievers-portal/internal/app/models"
	"github.com/mailam-cse/achievers-portal/internal/pkg/apperrors"
	"github.com/mailam-cse/achievers-portal/internal/pkg/auth"
)

const testCookieName = "portal_session"

type fakeUserLoader struct {
	users map[int64]*models.User
}

func (l *fakeUserLoader) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := l.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func testRouter(t *testing.T) (*gin.Engine, *auth.JWTService, *fakeUserLoader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionTTL:  time.Hour,
		TokenIssuer: "achievers-portal",
	})
	loader := &fakeUserLoader{users: map[int64]*models.User{
		1: {ID: 1, Username: "student", IsActive: true},
		2: {ID: 2, Username: "staff", IsStaff: true, IsActive: true},
		3: {ID: 3, Username: "root", IsStaff: true, IsSuperuser: true, IsActive: true},
		4: {ID: 4, Username: "disabled", IsActive: false},
	}}
	m := NewAuthMiddleware(jwtService, loader, testCookieName)

	router := gin.New()
	router.Use(m.CurrentViewer())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	router.GET("/public/", ok)
	router.GET("/dashboard/", m.RequireAuth(), ok)
	router.GET("/admin-dashboard/", m.RequireStaff(), ok)
	router.POST("/register-staff/", m.RequireSuperuser(), ok)
	return router, jwtService, loader
}

func sessionCookie(t *testing.T, jwtService *auth.JWTService, user *models.User) *http.Cookie {
	t.Helper()
	token, err := jwtService.GenerateSessionToken(user)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}

func TestGateMatrix(t *testing.T) {
	router, jwtService, loader := testRouter(t)

	tests := []struct {
		name         string
		method       string
		path         string
		userID       int64 // 0 means anonymous
		wantStatus   int
		wantLocation string
	}{
		{name: "anonymous public", method: "GET", path: "/public/", wantStatus: http.StatusOK},
		{name: "anonymous dashboard", method: "GET", path: "/dashboard/", wantStatus: http.StatusSeeOther, wantLocation: "/login/?next=%2Fdashboard%2F"},
		{name: "anonymous admin", method: "GET", path: "/admin-dashboard/", wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "anonymous register staff", method: "POST", path: "/register-staff/", wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "student dashboard", method: "GET", path: "/dashboard/", userID: 1, wantStatus: http.StatusOK},
		{name: "student admin", method: "GET", path: "/admin-dashboard/", userID: 1, wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "student register staff", method: "POST", path: "/register-staff/", userID: 1, wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "staff admin", method: "GET", path: "/admin-dashboard/", userID: 2, wantStatus: http.StatusOK},
		{name: "staff register staff", method: "POST", path: "/register-staff/", userID: 2, wantStatus: http.StatusSeeOther, wantLocation: "/"},
		{name: "superuser admin", method: "GET", path: "/admin-dashboard/", userID: 3, wantStatus: http.StatusOK},
		{name: "superuser register staff", method: "POST", path: "/register-staff/", userID: 3, wantStatus: http.StatusOK},
		{name: "disabled account treated as anonymous", method: "GET", path: "/dashboard/", userID: 4, wantStatus: http.StatusSeeOther, wantLocation: "/login/?next=%2Fdashboard%2F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.userID != 0 {
				req.AddCookie(sessionCookie(t, jwtService, loader.users[tt.userID]))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestCurrentViewerRejectsBadTokens(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/dashboard/", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestCurrentViewerRejectsForeignSignature(t *testing.T) {
	router, _, loader := testRouter(t)

	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", SessionTTL: time.Hour})
	req := httptest.NewRequest("GET", "/dashboard/", nil)
	req.AddCookie(sessionCookie(t, other, loader.users[1]))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRoleFlagsReadFreshFromStore(t *testing.T) {
	router, jwtService, loader := testRouter(t)

	// The session was issued while the user was a student; staff access is
	// decided by the current store flags, not the token.
	cookie := sessionCookie(t, jwtService, loader.users[1])
	loader.users[1].IsStaff = true

	req := httptest.NewRequest("GET", "/admin-dashboard/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetViewerDefaultsToAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	viewer := GetViewer(c)
	assert.Equal(t, models.RoleAnonymous, viewer.Role)
	assert.False(t, viewer.Authenticated())
}
