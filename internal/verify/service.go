package verify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/hyperagentio/dispute-agent/internal/ai"
	"github.com/hyperagentio/dispute-agent/internal/chain"
	"github.com/hyperagentio/dispute-agent/internal/signing"
)

var (
	ErrJobDataTooShort = fmt.Errorf("job data too short: minimum length is %d characters", MinJobDataLength)
	ErrJobDataTooLong  = fmt.Errorf("job data too long: maximum length is %d characters", MaxJobDataLength)
	ErrChainDisabled   = errors.New("cross-validation is not configured")
)

// Runner schedules a unit of background work. Implementations run each
// submitted function to completion exactly once.
type Runner interface {
	Submit(fn func(context.Context))
}

// Chain is the typed contract surface the cross-validation pipeline
// consumes; the pipeline never sees ABI data.
type Chain interface {
	ConfirmValidationRequest(ctx context.Context, txRef string, jobRef common.Hash, verifierID *big.Int) (bool, error)
	ReadJob(ctx context.Context, ref common.Hash) (*chain.JobDetails, error)
	WriteScore(ctx context.Context, agentID, verifierID *big.Int, score uint8) (string, error)
}

type Service struct {
	store    Store
	runner   Runner
	provider ai.Provider
	chain    Chain // nil when no chain endpoint is configured
	envelope *signing.Envelope
}

func NewService(store Store, runner Runner, provider ai.Provider, chainAdapter Chain, envelope *signing.Envelope) *Service {
	if envelope == nil {
		envelope = signing.NewEnvelope(nil)
	}
	return &Service{
		store:    store,
		runner:   runner,
		provider: provider,
		chain:    chainAdapter,
		envelope: envelope,
	}
}

// SubmitVerification validates the submitted dispute text, creates a
// processing record, and schedules the verification pipeline. The
// returned tracking id is immediately pollable.
func (s *Service) SubmitVerification(ctx context.Context, jobData string) (string, error) {
	// Bounds are in characters, not bytes; multi-byte input counts
	// one per rune.
	chars := utf8.RuneCountInString(jobData)
	if chars < MinJobDataLength {
		return "", ErrJobDataTooShort
	}
	if chars > MaxJobDataLength {
		return "", ErrJobDataTooLong
	}

	id := uuid.NewString()
	if err := s.store.Create(ctx, id); err != nil {
		return "", err
	}
	s.runner.Submit(func(ctx context.Context) {
		s.runVerification(ctx, id, jobData)
	})
	return id, nil
}

// SubmitCrossValidation normalizes the on-chain job reference, creates a
// processing record, and schedules the cross-validation pipeline. txRef
// and verifierID are optional; an empty txRef skips event confirmation.
func (s *Service) SubmitCrossValidation(ctx context.Context, jobRef, txRef string, verifierID *big.Int) (string, error) {
	if s.chain == nil {
		return "", ErrChainDisabled
	}
	ref, err := chain.NormalizeJobRef(jobRef)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := s.store.Create(ctx, id); err != nil {
		return "", err
	}
	s.runner.Submit(func(ctx context.Context) {
		s.runCrossValidation(ctx, id, ref, txRef, verifierID)
	})
	return id, nil
}

// Status reads the current record and wraps it in a fresh signing
// envelope. Signatures are recomputed on every call, never cached.
func (s *Service) Status(ctx context.Context, id string) (map[string]any, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.envelope.Sign(rec)
}

func (s *Service) complete(ctx context.Context, id string, outcome Record) {
	outcome.Status = StatusCompleted
	if err := s.store.SetTerminal(ctx, id, outcome); err != nil {
		log.Printf("job=%s terminal write failed: %v", id, err)
	}
}

func (s *Service) fail(ctx context.Context, id, msg string, details *chain.JobDetails) {
	outcome := Record{
		Status:     StatusFailed,
		Error:      msg,
		JobDetails: details,
	}
	if err := s.store.SetTerminal(ctx, id, outcome); err != nil {
		log.Printf("job=%s terminal write failed: %v", id, err)
	}
}
