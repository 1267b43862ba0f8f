package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/hyperagentio/dispute-agent/internal/ai"
	"github.com/hyperagentio/dispute-agent/internal/chain"
	"github.com/hyperagentio/dispute-agent/internal/config"
	"github.com/hyperagentio/dispute-agent/internal/httpapi"
	"github.com/hyperagentio/dispute-agent/internal/signing"
	"github.com/hyperagentio/dispute-agent/internal/task"
	"github.com/hyperagentio/dispute-agent/internal/verify"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var provider ai.Provider
	switch cfg.AIProvider {
	case "", "ollama":
		provider = ai.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel)
	default:
		log.Fatalf("unsupported AI_PROVIDER=%q", cfg.AIProvider)
	}

	store := openStore(cfg)

	var signer *signing.Signer
	if cfg.SigningKey != "" {
		s, err := signing.NewSigner(cfg.SigningKey)
		if err != nil {
			log.Fatalf("signing key: %v", err)
		}
		signer = s
		log.Printf("response signing enabled, public_key=%s", s.PublicKeyHex())
	} else {
		log.Printf("SIGNING_PRIVATE_KEY not set, responses will be unsigned")
	}

	var chainAdapter verify.Chain
	var chainClient *chain.Client
	if cfg.ChainEnabled() {
		c, err := chain.Dial(chain.Config{
			RPCURL:         cfg.ChainRPCURL,
			ChainID:        cfg.ChainID,
			PrivateKey:     cfg.ChainPrivateKey,
			JobsModule:     cfg.JobsModuleAddress,
			RegistryModule: cfg.RegistryModuleAddress,
			GasLimit:       cfg.ChainGasLimit,
		})
		if err != nil {
			log.Fatalf("chain dial: %v", err)
		}
		chainClient = c
		chainAdapter = c
		log.Printf("chain enabled, rpc=%s chain_id=%d from=%s", cfg.ChainRPCURL, cfg.ChainID, c.From())
	} else {
		log.Printf("chain not configured, /validate disabled")
	}

	executor := task.NewExecutor(cfg.WorkerConcurrency)

	svc := verify.NewService(store, executor, provider, chainAdapter, signing.NewEnvelope(signer))
	router := httpapi.NewRouter(cfg, svc, signer)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s, provider=%s workers=%d", cfg.HTTPAddr, cfg.AIProvider, cfg.WorkerConcurrency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	// Drain in-flight pipelines so no job is left processing forever.
	executor.Shutdown()

	if chainClient != nil {
		chainClient.Close()
	}
}

func openStore(cfg config.Config) verify.Store {
	switch cfg.StoreBackend {
	case "", "memory":
		return verify.NewMemoryStore()
	case "sqlite":
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		repo, err := verify.NewRepo(db)
		if err != nil {
			log.Fatalf("store migrate: %v", err)
		}
		return repo
	default:
		log.Fatalf("unsupported STORE_BACKEND=%q", cfg.StoreBackend)
		return nil
	}
}
