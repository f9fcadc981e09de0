package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ARK_API_KEY", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Server.WebOrigin != "http://localhost:5173" {
		t.Fatalf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Chat.MaxHistoryMessages != 18 || cfg.Chat.MaxMessageChars != 2000 {
		t.Fatalf("unexpected chat config %+v", cfg.Chat)
	}
	if cfg.Database.Driver != "memory" || cfg.Seed.Source != "builtin" || !cfg.Seed.OnStartup {
		t.Fatalf("unexpected storage defaults %+v %+v", cfg.Database, cfg.Seed)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.Timeout() != 15*time.Second {
		t.Fatalf("unexpected llm defaults %+v", cfg.LLM)
	}
	if cfg.LLM.Enabled() {
		t.Fatalf("llm must be disabled without an api key")
	}
	if cfg.AdminEnabled() {
		t.Fatalf("admin must be disabled by default")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("server:\n  port: \"9000\"\nchat:\n  max_history_messages: 10\nllm:\n  model: \"from-file\"\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MAX_HISTORY_MESSAGES", "6")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("file value not applied: %q", cfg.Server.Port)
	}
	if cfg.Chat.MaxHistoryMessages != 6 {
		t.Fatalf("env must win over file, got %d", cfg.Chat.MaxHistoryMessages)
	}
	if cfg.LLM.Model != "from-file" || !cfg.LLM.Enabled() {
		t.Fatalf("unexpected llm config %+v", cfg.LLM)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"zero history":    {"MAX_HISTORY_MESSAGES": "0"},
		"negative chars":  {"MAX_MESSAGE_CHARS": "-1"},
		"unknown driver":  {"DATABASE_DRIVER": "sqlite"},
		"dsn required":    {"DATABASE_DRIVER": "postgres", "DATABASE_URL": ""},
		"unknown source":  {"SEED_SOURCE": "ftp"},
		"unknown llm":     {"LLM_PROVIDER": "other"},
		"zero timeout ms": {"LLM_TIMEOUT_MS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
