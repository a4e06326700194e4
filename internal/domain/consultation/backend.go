package consultation

import (
	"context"
	"fmt"

	"github.com/clinicaflow/console/internal/platform/apiclient"
)

// Backend is the consultation collection on the clinic REST server.
type Backend interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, req Request) error
	Update(ctx context.Context, id int, req Request) error
	Delete(ctx context.Context, id int) error
}

type HTTPBackend struct {
	api *apiclient.Client
}

func NewHTTPBackend(api *apiclient.Client) *HTTPBackend {
	return &HTTPBackend{api: api}
}

func (b *HTTPBackend) List(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := b.api.Get(ctx, "/consultations/all", &out); err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return out, nil
}

func (b *HTTPBackend) Create(ctx context.Context, req Request) error {
	if err := b.api.Post(ctx, "/consultations/add", req, nil); err != nil {
		return fmt.Errorf("add consultation: %w", err)
	}
	return nil
}

func (b *HTTPBackend) Update(ctx context.Context, id int, req Request) error {
	if err := b.api.Put(ctx, fmt.Sprintf("/consultations/update/%d", id), req, nil); err != nil {
		return fmt.Errorf("update consultation %d: %w", id, err)
	}
	return nil
}

func (b *HTTPBackend) Delete(ctx context.Context, id int) error {
	if err := b.api.Delete(ctx, fmt.Sprintf("/consultations/delete/%d", id), nil); err != nil {
		return fmt.Errorf("delete consultation %d: %w", id, err)
	}
	return nil
}
