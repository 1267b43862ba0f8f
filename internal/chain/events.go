package chain

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// ValidationRequestTopic is the signature hash of
// CrossValidationRequested(bytes32 jobID, uint256 indexed verifierAgentId).
var ValidationRequestTopic = crypto.Keccak256Hash([]byte("CrossValidationRequested(bytes32,uint256)"))

// MatchValidationRequest scans transaction logs for a
// CrossValidationRequested entry whose job reference equals jobRef. The
// jobID is carried in the data field; the verifier agent id is the
// second (indexed) topic and is only checked when verifierID is non-nil.
func MatchValidationRequest(logs []*types.Log, jobRef common.Hash, verifierID *big.Int) bool {
	for _, lg := range logs {
		if len(lg.Topics) == 0 || lg.Topics[0] != ValidationRequestTopic {
			continue
		}
		if len(lg.Data) < common.HashLength {
			continue
		}
		if common.BytesToHash(lg.Data[:common.HashLength]) != jobRef {
			continue
		}
		if verifierID == nil {
			return true
		}
		if len(lg.Topics) < 2 {
			continue
		}
		if lg.Topics[1].Big().Cmp(verifierID) == 0 {
			return true
		}
	}
	return false
}

// NormalizeJobRef parses a hex job reference, with or without the 0x
// prefix and in either case, into its fixed-width bytes32 form
// (left-padded to 64 hex characters).
func NormalizeJobRef(s string) (common.Hash, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if s == "" {
		return common.Hash{}, fmt.Errorf("empty job reference")
	}
	if len(s) > 2*common.HashLength {
		return common.Hash{}, fmt.Errorf("job reference longer than 32 bytes: %d hex chars", len(s))
	}
	padded := strings.Repeat("0", 2*common.HashLength-len(s)) + strings.ToLower(s)
	b, err := hex.DecodeString(padded)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid hex job reference: %w", err)
	}
	return common.BytesToHash(b), nil
}
