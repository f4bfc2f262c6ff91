package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvs = []string{
	"PORT", "STATIC_DIR", "DATABASE_DRIVER", "DATABASE_PATH", "DB_PASSWORD",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OPENAI_MAX_TOKENS",
	"OPENAI_TEMPERATURE", "OPENAI_MAX_RETRY_ATTEMPTS",
}

func clearConfigEnvs(t *testing.T) {
	t.Helper()
	for _, key := range configEnvs {
		t.Setenv(key, "")
	}
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   3001,
			CORS:                   CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Driver:   DriverSQLite,
			Path:     "./database.sqlite",
			Host:     "localhost",
			Port:     3306,
			Database: "textsaver",
			Username: "user",
		},
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-3.5-turbo",
			MaxTokens:   500,
			Temperature: 0.7,
		},
	}
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		envs              map[string]string
		wantErr           bool
		want              func(dir string) *Config
		wantErrorContains []string
	}{
		{
			name: "defaults when nothing is configured",
			want: func(string) *Config { return defaultConfig() },
		},
		{
			name: "environment variables override defaults",
			envs: map[string]string{
				"PORT":               "8080",
				"DATABASE_PATH":      "/var/lib/textsaver/db.sqlite",
				"OPENAI_API_KEY":     "sk-test",
				"OPENAI_MODEL":       "gpt-4o-mini",
				"OPENAI_MAX_TOKENS":  "200",
				"OPENAI_TEMPERATURE": "0.2",
			},
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 8080
				cfg.Database.Path = "/var/lib/textsaver/db.sqlite"
				cfg.OpenAI.APIKey = "sk-test"
				cfg.OpenAI.Model = "gpt-4o-mini"
				cfg.OpenAI.MaxTokens = 200
				cfg.OpenAI.Temperature = 0.2
				return cfg
			},
		},
		{
			name: "empty environment variables fall back to defaults",
			envs: map[string]string{
				"PORT":               "",
				"OPENAI_MAX_TOKENS":  "",
				"OPENAI_TEMPERATURE": "",
			},
			want: func(string) *Config { return defaultConfig() },
		},
		{
			name: "config file values",
			configContent: `server:
  port: 4000
  cors:
    allowed_origins:
      - https://example.com
database:
  driver: mysql
  host: db.example.com
  port: 3307
  database: texts
  username: admin
openai:
  model: gpt-4o
  max_tokens: 1000
`,
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Server.Port = 4000
				cfg.Server.CORS.AllowedOrigins = []string{"https://example.com"}
				cfg.Database.Driver = DriverMySQL
				cfg.Database.Host = "db.example.com"
				cfg.Database.Port = 3307
				cfg.Database.Database = "texts"
				cfg.Database.Username = "admin"
				cfg.OpenAI.Model = "gpt-4o"
				cfg.OpenAI.MaxTokens = 1000
				return cfg
			},
		},
		{
			name:          "environment wins over config file",
			configContent: "openai:\n  model: gpt-4o\n",
			envs:          map[string]string{"OPENAI_MODEL": "gpt-4.1-mini"},
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.OpenAI.Model = "gpt-4.1-mini"
				return cfg
			},
		},
		{
			name: "static directory must exist",
			envs: map[string]string{"STATIC_DIR": "does-not-exist"},
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"server.static_dir must be an existing directory",
			},
		},
		{
			name:    "non numeric port",
			envs:    map[string]string{"PORT": "abc"},
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration format",
			},
		},
		{
			name:    "unknown database driver",
			envs:    map[string]string{"DATABASE_DRIVER": "postgres"},
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"driver",
			},
		},
		{
			name:    "temperature out of range",
			envs:    map[string]string{"OPENAI_TEMPERATURE": "3"},
			wantErr: true,
			wantErrorContains: []string{
				"temperature",
			},
		},
		{
			name: "invalid YAML format",
			configContent: `server:
  port: 4000
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnvs(t)
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}

			tempDir := t.TempDir()
			chdir(t, tempDir)

			var configPath string
			if tt.configContent != "" {
				configPath = filepath.Join(tempDir, "config.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(tempDir), got)
		})
	}
}

func TestConfigLoader_Load_DotEnv(t *testing.T) {
	clearConfigEnvs(t)
	// godotenv never overrides a variable that is already set, even when empty.
	for _, key := range []string{"OPENAI_API_KEY", "PORT"} {
		key := key
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}

	tempDir := t.TempDir()
	chdir(t, tempDir)
	require.NoError(t, os.WriteFile(".env", []byte("OPENAI_API_KEY=sk-from-dotenv\nPORT=5005\n"), 0644))

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-from-dotenv", got.OpenAI.APIKey)
	assert.Equal(t, 5005, got.Server.Port)
}

func TestConfigLoader_Load_StaticDir(t *testing.T) {
	clearConfigEnvs(t)
	tempDir := t.TempDir()
	chdir(t, tempDir)
	staticDir := filepath.Join(tempDir, "build")
	require.NoError(t, os.MkdirAll(staticDir, 0755))
	t.Setenv("STATIC_DIR", staticDir)

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	got, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, staticDir, got.Server.StaticDir)
}

func TestConfig_RequireCredentials(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		wantErr bool
	}{
		{name: "present", apiKey: "sk-test"},
		{name: "absent", apiKey: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{OpenAI: OpenAIConfig{APIKey: tt.apiKey}}
			err := cfg.RequireCredentials()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "OPENAI_API_KEY")
				return
			}
			assert.NoError(t, err)
		})
	}
}
