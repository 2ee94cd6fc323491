package application

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/encodergroup/portal-go/internal/repository"
	"github.com/encodergroup/portal-go/internal/storage"
	"github.com/encodergroup/portal-go/pkg/types"
)

type fakePublisher struct {
	mu        sync.Mutex
	published map[string][]interface{}
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(map[string][]interface{})}
}

func (p *fakePublisher) Publish(userID string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published[userID] = append(p.published[userID], payload)
}

func (p *fakePublisher) count(userID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published[userID])
}

func newTestServices(t *testing.T) (*Services, *fakePublisher) {
	t.Helper()
	repos, err := repository.NewMemory("", 0)
	require.NoError(t, err)
	pub := newFakePublisher()
	return New(repos, storage.NewMemoryStore(), pub), pub
}

func clientClaims() *types.Claims {
	return &types.Claims{UserID: uuid.NewString(), Role: "client"}
}

func adminClaims() *types.Claims {
	return &types.Claims{UserID: uuid.NewString(), Role: "admin", IsAdmin: true}
}
