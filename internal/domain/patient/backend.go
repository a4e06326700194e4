package patient

import (
	"context"
	"fmt"

	"github.com/clinicaflow/console/internal/platform/apiclient"
)

// Backend is the patient collection on the clinic REST server.
type Backend interface {
	List(ctx context.Context) ([]Patient, error)
	Create(ctx context.Context, p Patient) (Patient, error)
	Update(ctx context.Context, id int, p Patient) error
	Delete(ctx context.Context, id int) error
}

// HTTPBackend implements Backend over the clinic REST API.
type HTTPBackend struct {
	api *apiclient.Client
}

func NewHTTPBackend(api *apiclient.Client) *HTTPBackend {
	return &HTTPBackend{api: api}
}

func (b *HTTPBackend) List(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := b.api.Get(ctx, "/patients/all", &out); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return out, nil
}

func (b *HTTPBackend) Create(ctx context.Context, p Patient) (Patient, error) {
	var created Patient
	if err := b.api.Post(ctx, "/patients/add", p, &created); err != nil {
		return Patient{}, fmt.Errorf("add patient: %w", err)
	}
	return created, nil
}

func (b *HTTPBackend) Update(ctx context.Context, id int, p Patient) error {
	if err := b.api.Put(ctx, fmt.Sprintf("/patients/update/%d", id), p, nil); err != nil {
		return fmt.Errorf("update patient %d: %w", id, err)
	}
	return nil
}

func (b *HTTPBackend) Delete(ctx context.Context, id int) error {
	if err := b.api.Delete(ctx, fmt.Sprintf("/patients/delete/%d", id), nil); err != nil {
		return fmt.Errorf("delete patient %d: %w", id, err)
	}
	return nil
}

// Find looks a patient up by id. A miss is reported as ok=false, not as an
// error.
func Find(ctx context.Context, b Backend, id int) (Patient, bool, error) {
	list, err := b.List(ctx)
	if err != nil {
		return Patient{}, false, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Patient{}, false, nil
}
