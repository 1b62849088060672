package uid

import (
	"fmt"
	"time"

	"github.com/sony/sonyflake"
)

// UID generates process-unique numeric identifiers, used for trace and task ids.
// Entity identities (accounts, apps, deployments) use UUID v4 instead.
type UID interface {
	NextID() (uint64, error)
}

type Sonyflake struct {
	gen *sonyflake.Sonyflake
}

var _ UID = (*Sonyflake)(nil)

func NewSonyflake() (*Sonyflake, error) {
	gen := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	if gen == nil {
		return nil, fmt.Errorf("cannot create sonyflake generator")
	}

	return &Sonyflake{gen: gen}, nil
}

func (s *Sonyflake) NextID() (uint64, error) {
	return s.gen.NextID()
}
