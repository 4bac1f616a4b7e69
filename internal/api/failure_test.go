package api_test

import (
	"net/http"
	"testing"
	"time"

	"vet_clinic/internal/api"
	"vet_clinic/internal/db"
	"vet_clinic/internal/store"
	"vet_clinic/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestLogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ts := newServer(t, utils.NewRedisRevoker(rdb))
	tok := ts.token(ts.vet)

	code, _ := ts.do(http.MethodGet, "/api/pets", tok, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := ts.do(http.MethodPost, "/api/logout", tok, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Logged out", env.Message)

	code, env = ts.do(http.MethodGet, "/api/pets", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token has been revoked", env.Message)

	// kept only until the token would expire
	assert.Len(t, mr.Keys(), 1)
	assert.LessOrEqual(t, mr.TTL(mr.Keys()[0]), time.Hour)

	code, _ = ts.do(http.MethodGet, "/api/pets", ts.token(ts.vet), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestLogoutNotRoutedWithoutRedis(t *testing.T) {
	ts := newServer(t, nil)

	code, _ := ts.do(http.MethodPost, "/api/logout", ts.token(ts.vet), nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), db.GormConfig())
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	ts := &testServer{t: t, router: api.NewRouter(api.Options{
		Store:     store.New(gdb),
		JWTSecret: secret,
		JWTTTL:    time.Hour,
	})}
	tok, err := utils.GenerateJWT(1, "vet", secret, time.Hour)
	require.NoError(t, err)

	code, env := ts.do(http.MethodGet, "/api/pets", tok, nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, 500, env.Code)
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotContains(t, env.Message, assert.AnError.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmptySigningKeyGrantsNothing(t *testing.T) {
	ts := newServer(t, nil)
	ts.router = api.NewRouter(api.Options{Store: ts.store, JWTSecret: "", JWTTTL: time.Hour})

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		UserID: 4242,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	code, env := ts.do(http.MethodGet, "/api/users", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid or expired token", env.Message)
}
