package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadYamlWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var c Config
	if err := c.ReadYaml(path); err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "25000" || c.Executor.PollInterval != 1000 || c.Judge.BaseURL != "https://judge0-ce.p.rapidapi.com" {
		t.Errorf("unexpected defaults %+v", c)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestReadYamlKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "8080"
executor:
  poll_interval: 250
  cancel_on_rerun: true
judge:
  base_url: http://localhost:2358
storage:
  artifact_ttl: -1
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	var c Config
	if err := c.ReadYaml(path); err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "8080" || c.Executor.PollInterval != 250 || !c.Executor.CancelOnRerun {
		t.Errorf("values not read: %+v", c)
	}
	if c.Storage.ArtifactTTL != -1 {
		t.Errorf("negative artifact_ttl rewritten to %d", c.Storage.ArtifactTTL)
	}
	if c.Judge.BaseURL != "http://localhost:2358" || c.Judge.APIHost == "" || c.Executor.JobPool != 5 {
		t.Errorf("defaults not filled: %+v", c)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("JUDGE_API_KEY", "from-env")
	t.Setenv("CODEPAD_PORT", "9999")
	var c Config
	c.Default()
	c.ApplyEnv()
	if c.Judge.APIKey != "from-env" || c.Server.Port != "9999" {
		t.Errorf("env not applied: %+v", c)
	}
}
