package queue

import (
	"context"
	"fmt"

	"github.com/clinicaflow/console/internal/platform/apiclient"
)

// Backend is the queue resource on the clinic REST server.
type Backend interface {
	List(ctx context.Context) ([]Entry, error)
	Update(ctx context.Context, id int, e Entry) error
	Delete(ctx context.Context, id int) error
	Join(ctx context.Context, req JoinRequest) (Ticket, error)
}

type HTTPBackend struct {
	api *apiclient.Client
}

func NewHTTPBackend(api *apiclient.Client) *HTTPBackend {
	return &HTTPBackend{api: api}
}

func (b *HTTPBackend) List(ctx context.Context) ([]Entry, error) {
	var out []Entry
	if err := b.api.Get(ctx, "/api/queue", &out); err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	return out, nil
}

func (b *HTTPBackend) Update(ctx context.Context, id int, e Entry) error {
	if err := b.api.Put(ctx, fmt.Sprintf("/api/queue/%d", id), e, nil); err != nil {
		return fmt.Errorf("update queue entry %d: %w", id, err)
	}
	return nil
}

func (b *HTTPBackend) Delete(ctx context.Context, id int) error {
	if err := b.api.Delete(ctx, fmt.Sprintf("/api/queue/%d", id), nil); err != nil {
		return fmt.Errorf("delete queue entry %d: %w", id, err)
	}
	return nil
}

func (b *HTTPBackend) Join(ctx context.Context, req JoinRequest) (Ticket, error) {
	var t Ticket
	if err := b.api.Post(ctx, "/api/queue/join", req, &t); err != nil {
		return Ticket{}, fmt.Errorf("join queue: %w", err)
	}
	return t, nil
}
