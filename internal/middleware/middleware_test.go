package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vet_clinic/internal/domain"
	"vet_clinic/internal/store"
	"vet_clinic/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRevoker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

type fakeUsers map[uint]*domain.User

func (f fakeUsers) GetUser(_ context.Context, id uint) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func newEngine(revoker utils.TokenRevoker, users UserGetter) *gin.Engine {
	r := gin.New()
	r.Use(Recovery())
	authed := r.Group("/", JWTAuthMiddleware(secret, revoker))
	authed.GET("/me", func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": c.GetString(KeyRole)})
	})
	authed.GET("/admin", AdminOnlyMiddleware(users), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(t *testing.T, r http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(id, role, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestJWTAuth(t *testing.T) {
	r := newEngine(nil, fakeUsers{})

	w := do(t, r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":401`)

	w = do(t, r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, "/me", token(t, 3, "vet"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"role":"vet"}`, w.Body.String())
}

func TestJWTAuthRevoked(t *testing.T) {
	rev := &fakeRevoker{revoked: map[string]bool{}}
	r := newEngine(rev, fakeUsers{})
	tok := token(t, 3, "vet")

	require.Equal(t, http.StatusOK, do(t, r, "/me", tok).Code)

	claims, err := utils.ParseJWT(tok, secret)
	require.NoError(t, err)
	require.NoError(t, rev.Revoke(context.Background(), claims.ID, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, do(t, r, "/me", tok).Code)

	rev.err = errors.New("redis down")
	assert.Equal(t, http.StatusInternalServerError, do(t, r, "/me", token(t, 3, "vet")).Code)
}

func TestAdminOnlyReadsRoleFromStore(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Role: domain.RoleAdmin},
		2: {ID: 2, Role: domain.RoleVet},
	}
	r := newEngine(nil, users)

	assert.Equal(t, http.StatusNoContent, do(t, r, "/admin", token(t, 1, "admin")).Code)
	// a forged role claim does not help
	assert.Equal(t, http.StatusForbidden, do(t, r, "/admin", token(t, 2, "admin")).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, "/admin", token(t, 9, "admin")).Code)
}

func TestRecovery(t *testing.T) {
	r := newEngine(nil, fakeUsers{})

	w := do(t, r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Internal server error","code":500}`, w.Body.String())
}
