package configs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yeisme/filegate/pkg/configs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

// TestInitConfigDefaults 测试仅凭默认值即可得到可用配置.
func TestInitConfigDefaults(t *testing.T) {
	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg := configs.GetConfig()

	if cfg.Bot.CodeLength != configs.DefaultCodeLength {
		t.Errorf("code_length = %d, want %d", cfg.Bot.CodeLength, configs.DefaultCodeLength)
	}

	if cfg.Bot.WebhookPath != configs.DefaultWebhookPath {
		t.Errorf("webhook_path = %q, want %q", cfg.Bot.WebhookPath, configs.DefaultWebhookPath)
	}

	if cfg.Bot.GateEnabled() {
		t.Error("gate should be disabled without channel_id")
	}

	if cfg.Bot.IngestEnabled() {
		t.Error("ingest should be disabled without admin_id")
	}

	if cfg.Server.Port != configs.DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, configs.DefaultPort)
	}

	if cfg.Store.Database != "filegate" {
		t.Errorf("database = %q, want filegate", cfg.Store.Database)
	}
}

// TestInitConfigFromFile 测试配置文件覆盖默认值.
func TestInitConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "123456:ABC-token"
  channel_id: "@mychannel"
  admin_id: 42
  code_length: 8
server:
  port: 9000
kv:
  enabled: false
`)

	if err := configs.InitConfig(path); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg := configs.GetConfig()

	if cfg.Bot.Token != "123456:ABC-token" {
		t.Errorf("token = %q", cfg.Bot.Token)
	}

	if !cfg.Bot.GateEnabled() {
		t.Error("gate should be enabled with channel_id set")
	}

	if !cfg.Bot.IngestEnabled() {
		t.Error("ingest should be enabled with admin_id set")
	}

	if cfg.Bot.CodeLength != 8 {
		t.Errorf("code_length = %d, want 8", cfg.Bot.CodeLength)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}

	if cfg.KV.Enabled {
		t.Error("kv should be disabled")
	}
}

// TestInitConfigEnvOverride 测试环境变量覆盖, 敏感项走 FILEGATE_ 前缀.
func TestInitConfigEnvOverride(t *testing.T) {
	t.Setenv("FILEGATE_BOT_TOKEN", "env:token")
	t.Setenv("FILEGATE_BOT_ADMIN_ID", "7")

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg := configs.GetConfig()

	if cfg.Bot.Token != "env:token" {
		t.Errorf("token = %q, want env:token", cfg.Bot.Token)
	}

	if cfg.Bot.AdminID != 7 {
		t.Errorf("admin_id = %d, want 7", cfg.Bot.AdminID)
	}
}
