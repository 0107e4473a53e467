// Package mock1c simula el intercambio de pedidos con 1C.
package mock1c

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/domain/orders"

	"github.com/google/uuid"
)

const DefaultDelay = 1500 * time.Millisecond

type Syncer struct {
	delay time.Duration
	now   func() time.Time
}

func NewSyncer(delay time.Duration) *Syncer {
	if delay < 0 {
		delay = 0
	}
	return &Syncer{delay: delay, now: time.Now}
}

// Sync espera delay (sin cancelación) y devuelve una referencia 1C-<unixms>-<RAND>.
func (s *Syncer) Sync(ctx context.Context, o orders.Order) (string, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("1C-%d-%s", s.now().UnixMilli(), suffix), nil
}
