package chain

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func requestLog(jobRef common.Hash, verifierID int64) *types.Log {
	return &types.Log{
		Topics: []common.Hash{
			ValidationRequestTopic,
			common.BigToHash(big.NewInt(verifierID)),
		},
		Data: jobRef.Bytes(),
	}
}

func TestMatchValidationRequest(t *testing.T) {
	jobRef := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	logs := []*types.Log{requestLog(jobRef, 7)}

	if !MatchValidationRequest(logs, jobRef, big.NewInt(7)) {
		t.Fatalf("expected match for job + verifier")
	}
	if !MatchValidationRequest(logs, jobRef, nil) {
		t.Fatalf("expected match when verifier not required")
	}
	if MatchValidationRequest(logs, jobRef, big.NewInt(8)) {
		t.Fatalf("matched despite verifier mismatch")
	}

	other := common.HexToHash("0x01")
	if MatchValidationRequest(logs, other, big.NewInt(7)) {
		t.Fatalf("matched despite job reference mismatch")
	}
}

func TestMatchValidationRequestIgnoresOtherEvents(t *testing.T) {
	jobRef := common.HexToHash("0xbeef")

	transfer := &types.Log{
		Topics: []common.Hash{common.HexToHash("0x1234")},
		Data:   jobRef.Bytes(),
	}
	if MatchValidationRequest([]*types.Log{transfer}, jobRef, nil) {
		t.Fatalf("matched a log with an unrelated event signature")
	}

	truncated := &types.Log{
		Topics: []common.Hash{ValidationRequestTopic},
		Data:   []byte{0x01, 0x02},
	}
	if MatchValidationRequest([]*types.Log{truncated}, jobRef, nil) {
		t.Fatalf("matched a log with short data")
	}

	noVerifierTopic := &types.Log{
		Topics: []common.Hash{ValidationRequestTopic},
		Data:   jobRef.Bytes(),
	}
	if MatchValidationRequest([]*types.Log{noVerifierTopic}, jobRef, big.NewInt(1)) {
		t.Fatalf("matched despite missing indexed verifier topic")
	}
	if !MatchValidationRequest([]*types.Log{noVerifierTopic}, jobRef, nil) {
		t.Fatalf("expected match when verifier check is skipped")
	}
}

func TestNormalizeJobRef(t *testing.T) {
	want := common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000abc")

	for _, in := range []string{"0xabc", "abc", "0xABC", "0Xabc", " 0xabc "} {
		got, err := NormalizeJobRef(in)
		if err != nil {
			t.Fatalf("normalize %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("normalize %q = %s, want %s", in, got.Hex(), want.Hex())
		}
	}

	full := "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	got, err := NormalizeJobRef(full)
	if err != nil {
		t.Fatalf("normalize full: %v", err)
	}
	if got != common.HexToHash(full) {
		t.Fatalf("full-width reference altered: %s", got.Hex())
	}
}

func TestNormalizeJobRefRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "0x", "zzzz", strings.Repeat("a", 65)} {
		if _, err := NormalizeJobRef(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
