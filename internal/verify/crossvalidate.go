package verify

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hyperagentio/dispute-agent/internal/ai"
	"github.com/hyperagentio/dispute-agent/internal/chain"
)

const scoringSystemPrompt = `You are a job validation agent. You evaluate the quality and completion of a job based on the description and context provided.
Provide a reputation score from 0 to 100, where:
- 0-20: Poor quality or incomplete
- 21-40: Below average
- 41-60: Average
- 61-80: Good quality
- 81-100: Excellent quality

Consider factors such as:
1. Job description clarity
2. Completion status (based on state)
3. Budget appropriateness
4. Timeline adherence

Respond with ONLY a number between 0 and 100.
`

// runCrossValidation is the ordered, fail-fast sequence: optional event
// confirmation, job-data retrieval, AI scoring, on-chain write-back.
// The first failing step produces the terminal failed record and stops
// the sequence.
func (s *Service) runCrossValidation(ctx context.Context, id string, jobRef common.Hash, txRef string, verifierID *big.Int) {
	eventFound := false
	if txRef != "" {
		found, err := s.chain.ConfirmValidationRequest(ctx, txRef, jobRef, verifierID)
		if err != nil || !found {
			s.fail(ctx, id, "event not found", nil)
			return
		}
		eventFound = true
	}

	job, err := s.chain.ReadJob(ctx, jobRef)
	if err != nil {
		s.fail(ctx, id, "job not found", nil)
		return
	}
	if !job.HasData() {
		s.fail(ctx, id, "job exists but has no valid data", job)
		return
	}

	reply, err := s.provider.Chat(ctx, ai.SystemUser(scoringSystemPrompt, buildJobContext(job)))
	var score int
	if err == nil {
		score, err = ExtractScore(reply)
	}
	if err != nil {
		s.fail(ctx, id, "failed to get AI validation score", job)
		return
	}

	txHash, err := s.chain.WriteScore(ctx, job.AgentID, verifierID, uint8(score))
	if err != nil {
		s.fail(ctx, id, fmt.Sprintf("failed to record score on-chain: %v", err), job)
		return
	}

	found := eventFound
	s.complete(ctx, id, Record{
		AIScore:        &score,
		ReputationTxID: txHash,
		EventFound:     &found,
		JobDetails:     job,
	})
}

// buildJobContext renders the retrieved job fields into the fixed
// context template the scoring prompt expects. The string is passed to
// the provider and never stored.
func buildJobContext(job *chain.JobDetails) string {
	return fmt.Sprintf(`Job Validation Context:

Job ID: %s
Creator: %s
Agent ID: %s
Budget: %s (in smallest unit)
Description: %s
State: %d
Created At: %d (timestamp)
Accept Deadline: %d (timestamp)
Complete Deadline: %d (timestamp)
Multihop ID: %s
Step: %d
`,
		job.MultihopID.Hex(),
		job.Creator.Hex(),
		job.AgentID.String(),
		job.Budget.String(),
		job.Description,
		job.State,
		job.CreatedAt,
		job.AcceptDeadline,
		job.CompleteDeadline,
		job.MultihopID.Hex(),
		job.Step,
	)
}
