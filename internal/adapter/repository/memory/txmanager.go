package memory

import (
	"context"
	"sync"

	"github.com/inkpost/inkpost/internal/port"
)

// TxManager serializes transactional sections with a mutex; combined with the
// stub repositories this gives the same increment-then-read atomicity the
// postgres transaction provides.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

var _ port.TxManager = (*TxManager)(nil)
