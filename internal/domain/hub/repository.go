package hub

import "context"

type HubRepository interface {
	Create(ctx context.Context, h Hub) (Hub, error)
	GetByID(ctx context.Context, id string) (Hub, error)
	List(ctx context.Context) ([]Hub, error)
	Update(ctx context.Context, h Hub) error
	Delete(ctx context.Context, id string) error
}
