package payment

import (
	"context"
	"math/rand"
	"sync"

	"github.com/Karol-96/arts-sell/random"
)

var outcomes = []Status{Pending, Completed, Failed}

// Simulator stands in for a payment gateway. Each authorization draws a
// uniform outcome among pending, completed and failed.
type Simulator struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSimulator builds a simulator drawing from the given source. Pass a
// seeded source to make a run reproducible.
func NewSimulator(src rand.Source) *Simulator {
	return &Simulator{r: rand.New(src)}
}

func (s *Simulator) Authorize(ctx context.Context, method, accountName, accountNumber string) (Authorization, error) {
	s.mu.Lock()
	status := outcomes[s.r.Intn(len(outcomes))]
	s.mu.Unlock()

	return Authorization{
		Reference:     "SIM-" + random.String(12),
		AccountMasked: MaskAccount(accountNumber),
		Status:        status,
	}, nil
}

// Static always answers with the same outcome. Used by tests to drive the
// checkout pipeline down a chosen branch.
type Static Status

func (s Static) Authorize(ctx context.Context, method, accountName, accountNumber string) (Authorization, error) {
	return Authorization{
		Reference:     "SIM-" + random.String(12),
		AccountMasked: MaskAccount(accountNumber),
		Status:        Status(s),
	}, nil
}
