package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/hub"
	"github.com/google/uuid"
)

type HubRepository struct {
	mu   sync.RWMutex
	hubs map[string]hub.Hub
}

func NewHubRepository() *HubRepository {
	return &HubRepository{
		hubs: make(map[string]hub.Hub),
	}
}

func (r *HubRepository) Create(_ context.Context, h hub.Hub) (hub.Hub, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hubs {
		if existing.HubCode == h.HubCode {
			return hub.Hub{}, hub.ErrHubCodeExists
		}
	}

	h.ID = uuid.NewString()
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	r.hubs[h.ID] = h

	return h, nil
}

func (r *HubRepository) GetByID(_ context.Context, id string) (hub.Hub, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hubs[id]
	if !ok {
		return hub.Hub{}, hub.ErrHubNotFound
	}
	return h, nil
}

func (r *HubRepository) List(_ context.Context) ([]hub.Hub, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []hub.Hub
	for _, h := range r.hubs {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].HubName < result[j].HubName
	})

	return result, nil
}

func (r *HubRepository) Update(_ context.Context, h hub.Hub) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.hubs[h.ID]
	if !ok {
		return hub.ErrHubNotFound
	}
	for _, other := range r.hubs {
		if other.ID != h.ID && other.HubCode == h.HubCode {
			return hub.ErrHubCodeExists
		}
	}
	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = time.Now()
	r.hubs[h.ID] = h

	return nil
}

func (r *HubRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hubs[id]; !ok {
		return hub.ErrHubNotFound
	}
	delete(r.hubs, id)

	return nil
}
