package memstore

import (
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/internal/migrations"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

// SeedDemo adds the demo position with its three-step interview flow and
// returns its id.
func SeedDemo(s *Store) kernel.PositionID {
	p := migrations.DemoPosition(time.Now())
	flowID := kernel.InterviewFlowID(1)
	p.InterviewFlowID = &flowID
	return s.AddPosition(p)
}
