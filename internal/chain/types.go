package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// JobDetails is a read-only snapshot of the JobsModule contract's view
// of a job, copied into status records when relevant.
type JobDetails struct {
	Creator          common.Address `json:"creator"`
	AgentID          *big.Int       `json:"agent_id"`
	Budget           *big.Int       `json:"budget"`
	Description      string         `json:"description"`
	State            uint8          `json:"state"`
	CreatedAt        uint64         `json:"created_at"`
	AcceptDeadline   uint64         `json:"accept_deadline"`
	CompleteDeadline uint64         `json:"complete_deadline"`
	MultihopID       common.Hash    `json:"multihop_id"`
	Step             uint64         `json:"step"`
}

// HasData reports whether the decoded record describes a real job. A
// record counts as empty only when the agent id is zero AND the creator
// is the zero address; either field alone being zero is still a valid,
// sparse job.
func (d *JobDetails) HasData() bool {
	agentZero := d.AgentID == nil || d.AgentID.Sign() == 0
	creatorZero := d.Creator == (common.Address{})
	return !(agentZero && creatorZero)
}
