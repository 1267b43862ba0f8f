package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	// Neutralize whatever the developer's shell exports.
	for _, k := range []string{
		"HTTP_ADDR", "AI_PROVIDER", "OLLAMA_BASE_URL", "OLLAMA_MODEL",
		"SIGNING_PRIVATE_KEY", "STORE_BACKEND", "WORKER_CONCURRENCY",
		"CHAIN_RPC_URL", "CHAIN_ID", "CHAIN_PRIVATE_KEY",
		"JOBS_MODULE_ADDRESS", "REGISTRY_MODULE_ADDRESS", "CHAIN_GAS_LIMIT",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.HTTPAddr != ":4021" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AIProvider != "ollama" || cfg.OllamaModel != "qwen2:0.5b" {
		t.Fatalf("ai defaults = %q %q", cfg.AIProvider, cfg.OllamaModel)
	}
	if cfg.WorkerConcurrency != 2 {
		t.Fatalf("WorkerConcurrency = %d", cfg.WorkerConcurrency)
	}
	if cfg.ChainID != 296 || cfg.RegistryModuleAddress != DefaultRegistryModule {
		t.Fatalf("chain defaults = %d %q", cfg.ChainID, cfg.RegistryModuleAddress)
	}
	if cfg.ChainEnabled() {
		t.Fatalf("chain should be disabled without key and contract address")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("WORKER_CONCURRENCY", "120")
	t.Setenv("CHAIN_PRIVATE_KEY", "deadbeef")
	t.Setenv("JOBS_MODULE_ADDRESS", "0x1234")

	cfg := Load()
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.WorkerConcurrency != 50 {
		t.Fatalf("concurrency not capped: %d", cfg.WorkerConcurrency)
	}
	if !cfg.ChainEnabled() {
		t.Fatalf("chain should be enabled")
	}
}
