package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/common"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

type validator interface {
	Validate() error
}

// resource implements the CRUD calls shared by every collection endpoint.
type resource[T any] struct {
	client client.Client
	log    logging.Logger
	base   string
	name   string
}

func newResource[T any](c client.Client, log logging.Logger, base, name string) resource[T] {
	if log == nil {
		log = logging.Nop()
	}
	return resource[T]{client: c, log: log.With("resource", name), base: base, name: name}
}

// itemPath joins prefix and an escaped id, keeping the trailing slash the API
// expects.
func itemPath(prefix string, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		ve := &common.ValidationError{}
		ve.Add("id", "is required")
		return "", ve
	}
	return prefix + url.PathEscape(id) + "/", nil
}

func (r resource[T]) fail(ctx context.Context, op string, err error, args ...any) error {
	r.log.Error(ctx, "request failed", append([]any{"op", op, "error", err}, args...)...)
	return fmt.Errorf("%s %s: %w", op, r.name, err)
}

func (r resource[T]) list(ctx context.Context, path string) ([]T, error) {
	var out []T
	if err := r.client.Get(ctx, path, &out); err != nil {
		return nil, r.fail(ctx, "list", err, "path", path)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r resource[T]) get(ctx context.Context, id models.ID) (*T, error) {
	path, err := itemPath(r.base, id.String())
	if err != nil {
		return nil, err
	}

	var out T
	if err := r.client.Get(ctx, path, &out); err != nil {
		return nil, r.fail(ctx, "get", err, "id", id)
	}
	return &out, nil
}

func (r resource[T]) create(ctx context.Context, in T) (*T, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var out T
	if err := r.client.Post(ctx, r.base, in, &out); err != nil {
		return nil, r.fail(ctx, "create", err)
	}
	return &out, nil
}

func (r resource[T]) update(ctx context.Context, id models.ID, in T) (*T, error) {
	path, err := itemPath(r.base, id.String())
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	var out T
	if err := r.client.Put(ctx, path, in, &out); err != nil {
		return nil, r.fail(ctx, "update", err, "id", id)
	}
	return &out, nil
}

func (r resource[T]) patch(ctx context.Context, id models.ID, in any) (*T, error) {
	path, err := itemPath(r.base, id.String())
	if err != nil {
		return nil, err
	}

	var out T
	if err := r.client.Patch(ctx, path, in, &out); err != nil {
		return nil, r.fail(ctx, "patch", err, "id", id)
	}
	return &out, nil
}

func (r resource[T]) delete(ctx context.Context, id models.ID) error {
	path, err := itemPath(r.base, id.String())
	if err != nil {
		return err
	}
	if err := r.client.Delete(ctx, path); err != nil {
		return r.fail(ctx, "delete", err, "id", id)
	}
	return nil
}

func validate(v any) error {
	if x, ok := v.(validator); ok {
		return x.Validate()
	}
	return nil
}
