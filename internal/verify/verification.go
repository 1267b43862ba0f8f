package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperagentio/dispute-agent/internal/ai"
)

const disputeSystemPrompt = `You are an expert dispute resolver. Your task is to:
1. Read the provided transaction history and identify the dispute
2. Understand the dispute and the parties involved
3. Be fair and objective in your analysis.
4. Provide a single word answer to the dispute: YES or NO.
5. If the dispute is not clear, respond with "UNKNOWN".
`

const wordsPerMinute = 200

// runVerification resolves free-text dispute data to a verdict. Any
// provider failure turns the job into a terminal failed record; nothing
// is left processing.
func (s *Service) runVerification(ctx context.Context, id, jobData string) {
	verdict, err := s.provider.Chat(ctx, ai.SystemUser(
		disputeSystemPrompt,
		"Please provide the dispute history:\n\n"+jobData,
	))
	if err != nil {
		s.fail(ctx, id, err.Error(), nil)
		return
	}

	words := len(strings.Fields(jobData))
	minutes := words / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	s.complete(ctx, id, Record{
		Result:      verdict,
		WordCount:   words,
		ReadingTime: formatReadingTime(minutes),
	})
}

func formatReadingTime(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
