package affiliate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig("", envMap(nil))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !config.Enabled || !config.AddUTMParams {
		t.Errorf("Expected affiliate and UTM enabled by default")
	}
	if len(config.Merchants) != 22 {
		t.Errorf("Expected 22 default merchants, got %d", len(config.Merchants))
	}
	if config.Merchants[0].Domain != "amazon.ca" || config.Merchants[0].Tag != "yourtag-20" {
		t.Errorf("Expected amazon.ca first with placeholder tag, got %+v", config.Merchants[0])
	}
	if len(config.UTM) != 4 || config.UTM[0].Key != "utm_source" {
		t.Errorf("Expected 4 ordered UTM params, got %+v", config.UTM)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	config, err := loadConfig("", envMap(map[string]string{
		"AMAZON_CA_TAG":     "realtag-20",
		"INDIGO_CA_TAG":     "indigo-real",
		"AFFILIATE_ADD_UTM": "false",
	}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	amazon, _ := config.MatchMerchant("www.amazon.ca")
	if amazon.Tag != "realtag-20" {
		t.Errorf("Expected amazon tag 'realtag-20', got '%s'", amazon.Tag)
	}
	indigo, _ := config.MatchMerchant("www.chapters.indigo.ca")
	if indigo.Tag != "indigo-real" {
		t.Errorf("Expected indigo tag 'indigo-real', got '%s'", indigo.Tag)
	}
	if config.AddUTMParams {
		t.Errorf("Expected UTM params disabled by env")
	}
}

func TestLoadConfigInvalidEnvBool(t *testing.T) {
	_, err := loadConfig("", envMap(map[string]string{"AFFILIATE_ENABLED": "maybe"}))
	if err == nil || !strings.Contains(err.Error(), "AFFILIATE_ENABLED") {
		t.Errorf("Expected error mentioning AFFILIATE_ENABLED, got %v", err)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	tempDir := t.TempDir()

	content := `
enabled: true
add_utm_params: false
redirect_domain: "deals.example.com"
redirect_path: "/r/"
merchants:
  - domain: "Example.CA"
    tag: "ex-1"
  - domain: "amazon.ca"
    tag: "yaml-20"
utm:
  - key: "utm_source"
    value: "newsletter"
denied_params:
  - "sessionid"
`
	path := filepath.Join(tempDir, "affiliate.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfig(path, envMap(map[string]string{"EXAMPLE_CA_TAG": "ex-env"}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(config.Merchants) != 2 {
		t.Fatalf("Expected 2 merchants, got %d", len(config.Merchants))
	}
	if config.Merchants[0].Domain != "example.ca" {
		t.Errorf("Expected lowercased domain 'example.ca', got '%s'", config.Merchants[0].Domain)
	}
	if config.Merchants[0].Tag != "ex-env" {
		t.Errorf("Expected env tag 'ex-env' to win over YAML, got '%s'", config.Merchants[0].Tag)
	}
	if config.AddUTMParams {
		t.Errorf("Expected add_utm_params false")
	}
	if config.RedirectDomain != "deals.example.com" || config.RedirectPath != "/r/" {
		t.Errorf("Expected redirect overrides, got %s %s", config.RedirectDomain, config.RedirectPath)
	}
	if len(config.UTM) != 1 || config.UTM[0].Value != "newsletter" {
		t.Errorf("Expected single UTM override, got %+v", config.UTM)
	}

	cleaner := NewCleaner(config)
	if got := cleaner.Clean("https://example.ca/p?sessionid=1"); got != "https://example.ca/p" {
		t.Errorf("Expected extra denied param to be removed, got %s", got)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tempDir := t.TempDir()

	tests := map[string]string{
		"duplicate": "merchants:\n  - domain: a.ca\n  - domain: a.ca\n",
		"empty":     "merchants:\n  - tag: x\n",
		"path":      "redirect_path: go\n",
	}

	for name, content := range tests {
		path := filepath.Join(tempDir, name+".yml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(path, envMap(nil)); err == nil {
			t.Errorf("Expected validation error for %s config", name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestEnvKeyFor(t *testing.T) {
	if got := EnvKeyFor("memoryexpress.com"); got != "MEMORYEXPRESS_COM_TAG" {
		t.Errorf("Expected MEMORYEXPRESS_COM_TAG, got %s", got)
	}
}
