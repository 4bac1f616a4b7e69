package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "DB_PORT", "DATABASE_URL", "JWT_TTL", "CORS_ORIGINS", "IS_PROD"} {
		t.Setenv(k, "")
	}
	t.Setenv("DB_USER", "vet")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "clinic")
	t.Setenv("JWT_SECRET", "signing-key")

	cfg := LoadConfig()

	assert.Equal(t, "5000", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "vet:secret@tcp(db:3306)/clinic?charset=utf8mb4&parseTime=true&loc=UTC", cfg.DSN())
	require.NoError(t, cfg.Validate())
}

func TestConfigPostgresDSN(t *testing.T) {
	cfg := &Config{DBDriver: DriverPostgres, DBHost: "pg", DBUser: "u", DBPassword: "p", DBName: "n"}
	assert.Equal(t, "host=pg user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())

	cfg.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.DSN())
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{DBDriver: "sqlserver", JWTSecret: "x"}).Validate())
	assert.NoError(t, (&Config{DBDriver: DriverMySQL, IsProd: true, JWTSecret: "x"}).Validate())
	assert.NoError(t, (&Config{DBDriver: DriverPostgres, JWTSecret: "x"}).Validate())
}

func TestConfigValidateRequiresSecret(t *testing.T) {
	for _, prod := range []bool{false, true} {
		err := (&Config{DBDriver: DriverMySQL, IsProd: prod}).Validate()
		assert.ErrorContains(t, err, "JWT_SECRET", "IsProd=%v", prod)
	}
}

func TestLoadConfigWithoutSecretFailsValidation(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverMySQL)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("IS_PROD", "")

	assert.Error(t, LoadConfig().Validate())
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("1h", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-1h", time.Minute))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}
