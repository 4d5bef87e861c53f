package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/does-not-exist.env")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, 99, cfg.MaxCartQuantity)
	assert.True(t, cfg.ShippingFee.IsZero())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "testdata/does-not-exist.env")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SHIPPING_FEE", "49.99")
	t.Setenv("TAX_RATE", "0.18")
	t.Setenv("PAYMENT_DELAY", "10ms")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("MAX_CART_QUANTITY", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.ShippingFee.Equal(decimal.RequireFromString("49.99")))
	assert.True(t, cfg.TaxRate.Equal(decimal.RequireFromString("0.18")))
	assert.Equal(t, 10*time.Millisecond, cfg.PaymentDelay)
	assert.Equal(t, int32(4), cfg.DBMaxConns)
	assert.Equal(t, 99, cfg.MaxCartQuantity, "invalid values fall back to the default")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{StoreDriver: DriverFile, MaxCartQuantity: 10, ProfileSecret: "s"}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "file driver", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "redis" }, wantErr: "unknown STORE_DRIVER"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StoreDriver = DriverPostgres }, wantErr: "DB_DSN"},
		{name: "postgres with dsn", mutate: func(c *Config) { c.StoreDriver = DriverPostgres; c.DBUrl = "postgres://x" }},
		{name: "s3 without bucket", mutate: func(c *Config) { c.StoreDriver = DriverS3 }, wantErr: "S3_BUCKET"},
		{name: "zero cart quantity", mutate: func(c *Config) { c.MaxCartQuantity = 0 }, wantErr: "MAX_CART_QUANTITY"},
		{name: "negative tax", mutate: func(c *Config) { c.TaxRate = decimal.NewFromInt(-1) }, wantErr: "TAX_RATE"},
		{name: "failure rate above one", mutate: func(c *Config) { c.PaymentFailureRate = 1.5 }, wantErr: "PAYMENT_FAILURE_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
