package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr string

	// AI provider
	AIProvider    string
	OllamaBaseURL string
	OllamaModel   string

	// Response signing (hex-encoded ed25519 seed; empty disables signing)
	SigningKey string

	// Record store backend: "memory" or "sqlite"
	StoreBackend string

	// Background workers
	WorkerConcurrency int

	// Chain
	ChainRPCURL           string
	ChainID               int64
	ChainPrivateKey       string
	JobsModuleAddress     string
	RegistryModuleAddress string
	ChainGasLimit         uint64
}

// DefaultRegistryModule is the RegistryModule contract the reputation
// score write-back targets unless overridden.
const DefaultRegistryModule = "0xa041ec83d30ef5f7ffc4bc7a62bf1aaeee5544b6"

func Load() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":4021"
	}

	aiProvider := os.Getenv("AI_PROVIDER")
	if aiProvider == "" {
		aiProvider = "ollama"
	}

	ollamaBaseURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434"
	}

	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "qwen2:0.5b"
	}

	storeBackend := os.Getenv("STORE_BACKEND")
	if storeBackend == "" {
		storeBackend = "memory"
	}

	concurrency := 2
	if v := os.Getenv("WORKER_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			concurrency = n
		}
	}
	if concurrency > 50 {
		concurrency = 50
	}

	rpcURL := os.Getenv("CHAIN_RPC_URL")
	if rpcURL == "" {
		// Hedera testnet JSON-RPC relay
		rpcURL = "https://testnet.hashio.io/api"
	}

	chainID := int64(296)
	if v := os.Getenv("CHAIN_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			chainID = n
		}
	}

	registryModule := os.Getenv("REGISTRY_MODULE_ADDRESS")
	if registryModule == "" {
		registryModule = DefaultRegistryModule
	}

	gasLimit := uint64(500000)
	if v := os.Getenv("CHAIN_GAS_LIMIT"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			gasLimit = n
		}
	}

	return Config{
		HTTPAddr: addr,

		AIProvider:    aiProvider,
		OllamaBaseURL: ollamaBaseURL,
		OllamaModel:   ollamaModel,

		SigningKey: os.Getenv("SIGNING_PRIVATE_KEY"),

		StoreBackend:      storeBackend,
		WorkerConcurrency: concurrency,

		ChainRPCURL:           rpcURL,
		ChainID:               chainID,
		ChainPrivateKey:       os.Getenv("CHAIN_PRIVATE_KEY"),
		JobsModuleAddress:     os.Getenv("JOBS_MODULE_ADDRESS"),
		RegistryModuleAddress: registryModule,
		ChainGasLimit:         gasLimit,
	}
}

// ChainEnabled reports whether enough chain configuration is present to
// serve cross-validation requests.
func (c Config) ChainEnabled() bool {
	return c.ChainPrivateKey != "" && c.JobsModuleAddress != ""
}
