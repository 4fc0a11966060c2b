package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:         "sign-key",
			TokenIssuer:          "identity-service",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 168 * time.Hour,
			SessionSweepInterval: time.Hour,
		},
		Storage: Storage{DB: DB{DSN: "postgres://localhost:5432/identity"}},
		Server: Server{
			HTTPAddress:    "0.0.0.0:8080",
			RequestTimeout: 30 * time.Second,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"valid", func(cfg *StructuredConfig) {}, nil},
		{"missing sign key", func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, ErrInvalidAppConfigs},
		{"missing dsn", func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"missing address", func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"zero timeout", func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = 0 }, ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-sign-key")
	t.Setenv("APP_ACCESS_TOKEN_DURATION", "20m")
	t.Setenv("APP_SESSION_SWEEP_INTERVAL", "2h")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env:5432/identity")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "45s")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "env-sign-key", cfg.App.TokenSignKey)
	assert.Equal(t, 20*time.Minute, cfg.App.AccessTokenDuration)
	assert.Equal(t, 2*time.Hour, cfg.App.SessionSweepInterval)
	assert.Equal(t, "postgres://env:5432/identity", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("APP_ACCESS_TOKEN_DURATION", "soon")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}

func TestBuilder_EnvWinsOverDefaults(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-sign-key")
	t.Setenv("APP_TOKEN_ISSUER", "custom-issuer")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env:5432/identity")

	cfg, err := newConfigBuilder().
		withEnv().
		withDefaults().
		build()
	require.NoError(t, err)

	// explicitly set values survive the merge
	assert.Equal(t, "custom-issuer", cfg.App.TokenIssuer)
	// untouched fields fall back to defaults
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultAccessTokenDuration, cfg.App.AccessTokenDuration)
	assert.Equal(t, DefaultSessionSweepInterval, cfg.App.SessionSweepInterval)
}

func TestBuilder_ValidationFailureSurfaces(t *testing.T) {
	// no sign key from any source
	t.Setenv("APP_TOKEN_SIGN_KEY", "")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env:5432/identity")

	_, err := newConfigBuilder().
		withEnv().
		withDefaults().
		build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"duration string", `"1h30m"`, 90 * time.Minute},
		{"nanosecond number", `60000000000`, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}

	var d Duration
	assert.Error(t, d.UnmarshalJSON([]byte(`"later"`)))
}
