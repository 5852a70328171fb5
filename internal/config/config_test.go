package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":3000", cfg.Tasks.Addr)
	assert.Equal(t, 5, cfg.Match.Events)
	assert.Equal(t, 1500*time.Millisecond, cfg.Match.Interval)
	assert.Equal(t, []string{"Real Madrid", "Barcelona"}, cfg.Match.Fans)
	assert.Equal(t, "bootcamp-docs.db", cfg.Seed.DB)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.False(t, cfg.UI.NoColor)
}

func TestLoadIgnoresUnknownUsersKind(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BOOTCAMP_USERS_KIND", "grpc")
	t.Setenv("BOOTCAMP_UI_NO_COLOR", "true")
	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "grpc", cfg.Users.Kind)
	assert.True(t, cfg.UI.NoColor)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yml")
	body := "tasks:\n  addr: \":4000\"\n  token: secret\nmatch:\n  events: 2\n  interval: 10ms\n"
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))
	t.Setenv("BOOTCAMP_LOG_LEVEL", "debug")

	v := viper.New()
	require.NoError(t, Init(v, file))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Tasks.Addr)
	assert.Equal(t, "secret", cfg.Tasks.Token)
	assert.Equal(t, 2, cfg.Match.Events)
	assert.Equal(t, 10*time.Millisecond, cfg.Match.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitMissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty kind asks", cfg: Config{}},
		{name: "native", cfg: Config{Users: UsersConfig{Kind: "native"}}},
		{name: "router upper", cfg: Config{Users: UsersConfig{Kind: "ROUTER"}}},
		{name: "unknown kind left to serve", cfg: Config{Users: UsersConfig{Kind: "express"}}},
		{name: "negative events", cfg: Config{Match: MatchConfig{Events: -1}}, wantErr: true},
		{name: "negative interval", cfg: Config{Match: MatchConfig{Interval: -time.Second}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
