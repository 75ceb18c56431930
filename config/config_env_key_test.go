package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"redis": map[string]any{
			"keyPrefix": "storefront-cart",
		},
		"checkout": map[string]any{
			"inventoryMode": "overwrite",
		},
		"auth": map[string]any{
			"jwtSecret": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "REDIS_KEYPREFIX", want: "redis.keyPrefix"},
		{envKey: "CHECKOUT_INVENTORYMODE", want: "checkout.inventoryMode"},
		{envKey: "AUTH_JWTSECRET", want: "auth.jwtSecret"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestLoadWithEnv_OverridesYAMLFromPrefixedEnv(t *testing.T) {
	dir := t.TempDir()
	yamlBody := `
http:
  port: 8080
redis:
  addr: localhost:6379
  keyPrefix: storefront-cart
checkout:
  timeout: 10s
  inventoryMode: overwrite
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storefront-test.yaml"), []byte(yamlBody), 0o600))

	t.Chdir(dir)
	t.Setenv("STOREFRONT_CHECKOUT_INVENTORYMODE", "conditional")
	t.Setenv("STOREFRONT_HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("storefront-test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	require.NotNil(t, cfg.Checkout)
	assert.Equal(t, "conditional", cfg.Checkout.InventoryMode)
	assert.Equal(t, 10*time.Second, cfg.Checkout.Timeout)
	require.NotNil(t, cfg.Redis)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultCartKeyPrefix, cfg.Redis.KeyPrefix)
	assert.Equal(t, defaultCheckoutTimeout, cfg.Checkout.Timeout)
	assert.Equal(t, "overwrite", cfg.Checkout.InventoryMode)
	assert.Equal(t, constants.DefaultCountry, cfg.Checkout.DefaultCountry)
	assert.NotNil(t, cfg.Catalog)
	assert.Equal(t, defaultPoolMonitorInterval, cfg.Persistence.PoolMonitorInterval)
	assert.Equal(t, constants.EnvDevelop, cfg.Env.Env)
	assert.False(t, cfg.IsProduction())
	assert.Nil(t, cfg.Worker)
}

func TestApplyDefaults_ProductionGooglePushRequiresAuth(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		provider   string
		wantVerify bool
	}{
		{name: "production google", env: constants.EnvProduction, provider: constants.PubSubProviderGoogle, wantVerify: true},
		{name: "production local", env: constants.EnvProduction, provider: constants.PubSubProviderLocal},
		{name: "develop google", env: constants.EnvDevelop, provider: constants.PubSubProviderGoogle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{PubSub: &PubSubConfig{Provider: tt.provider}}
			cfg.Env.Env = tt.env
			cfg.applyDefaults()

			verify := cfg.Worker != nil && cfg.Worker.VerifyPushAuth
			assert.Equal(t, tt.wantVerify, verify)
		})
	}
}
