package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/clicktree"
	"github.com/aretw0/clicktree/pkg/domain"
)

type nopStore struct{}

func (nopStore) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	return nil
}
func (nopStore) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return nil, domain.ErrSessionNotFound
}
func (nopStore) Delete(ctx context.Context, sessionID string) error { return nil }
func (nopStore) List(ctx context.Context) ([]string, error)         { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Do(ctx, sid, func(context.Context, *clicktree.Component) error { return nil })
		_ = mgr.Delete(ctx, sid)
	}

	if n := len(mgr.locks); n != 0 {
		t.Errorf("lock leak: %d locks remaining after Delete", n)
	}
	if n := len(mgr.live); n != 0 {
		t.Errorf("component leak: %d live components remaining after Delete", n)
	}
}
