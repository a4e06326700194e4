package staff

import (
	"context"
	"fmt"

	"github.com/clinicaflow/console/internal/platform/apiclient"
)

// Backend is the medical staff resource on the clinic REST server.
type Backend interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, req Request) error
	Update(ctx context.Context, id int, req Request) error
	SetAvailability(ctx context.Context, id int, availability string) error
}

type HTTPBackend struct {
	api *apiclient.Client
}

func NewHTTPBackend(api *apiclient.Client) *HTTPBackend {
	return &HTTPBackend{api: api}
}

func (b *HTTPBackend) List(ctx context.Context) ([]Record, error) {
	var out []Record
	if err := b.api.Get(ctx, "/api/medicalstaff/all", &out); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return out, nil
}

func (b *HTTPBackend) Create(ctx context.Context, req Request) error {
	if err := b.api.Post(ctx, "/api/medicalstaff/add", req, nil); err != nil {
		return fmt.Errorf("add staff: %w", err)
	}
	return nil
}

func (b *HTTPBackend) Update(ctx context.Context, id int, req Request) error {
	if err := b.api.Put(ctx, fmt.Sprintf("/api/medicalstaff/update/%d", id), req, nil); err != nil {
		return fmt.Errorf("update staff %d: %w", id, err)
	}
	return nil
}

func (b *HTTPBackend) SetAvailability(ctx context.Context, id int, availability string) error {
	body := map[string]string{"availability": availability}
	if err := b.api.Put(ctx, fmt.Sprintf("/api/medicalstaff/%d/availability", id), body, nil); err != nil {
		return fmt.Errorf("set staff %d availability: %w", id, err)
	}
	return nil
}
