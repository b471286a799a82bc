package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	strongSecret := strings.Repeat("s", 32)

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "development defaults pass",
			config: Config{Port: "5000", JWTSecret: "your-secret-key-change-in-production", Env: "development"},
		},
		{
			name:    "missing port",
			config:  Config{JWTSecret: strongSecret},
			wantErr: "PORT is required",
		},
		{
			name:    "missing secret",
			config:  Config{Port: "5000"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "production rejects default secret",
			config:  Config{Port: "5000", JWTSecret: "your-secret-key-change-in-production", Env: "production"},
			wantErr: "JWT_SECRET must be changed from the default value in production",
		},
		{
			name:    "production rejects short secret",
			config:  Config{Port: "5000", JWTSecret: "short", Env: "production"},
			wantErr: "JWT_SECRET must be at least 32 characters in production",
		},
		{
			name:    "production rejects weak db password",
			config:  Config{Port: "5000", JWTSecret: strongSecret, DBPassword: "password", Env: "production"},
			wantErr: "a strong DB_PASSWORD is required in production",
		},
		{
			name:   "production accepts strong settings",
			config: Config{Port: "5000", JWTSecret: strongSecret, DBPassword: "s3cure-pw", DBSSLMode: "require", Env: "production"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
