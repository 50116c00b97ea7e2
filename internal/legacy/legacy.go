// Package legacy keeps the call shapes older storefront code was written
// against, layered on the xano facade with normalized return values.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/MikeMC777/beyblade-store/internal/xano"
)

const (
	DefaultLimit  = 12
	DefaultOffset = 0
)

// API is the part of the facade the legacy calls need. *xano.Client
// satisfies it.
type API interface {
	CreateProduct(ctx context.Context, token string, payload any) (*xano.Product, error)
	UpdateProduct(ctx context.Context, token string, id any, payload any) (*xano.Product, error)
	ListProducts(ctx context.Context, opts xano.ProductListOptions) (json.RawMessage, error)
	UploadImages(ctx context.Context, token string, files []xano.File) (json.RawMessage, error)
}

func CreateProduct(ctx context.Context, api API, token string, payload any) (*xano.Product, error) {
	return api.CreateProduct(ctx, token, payload)
}

// UploadImages always yields a slice: one element for a single descriptor,
// empty when the backend returned nothing.
func UploadImages(ctx context.Context, api API, token string, files []xano.File) ([]xano.ImageResource, error) {
	raw, err := api.UploadImages(ctx, token, files)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		return []xano.ImageResource{}, nil
	case raw[0] == '[':
		var many []xano.ImageResource
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, fmt.Errorf("decode uploaded images: %w", err)
		}
		return many, nil
	default:
		var one xano.ImageResource
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, fmt.Errorf("decode uploaded image: %w", err)
		}
		return []xano.ImageResource{one}, nil
	}
}

type imagePatch struct {
	ImageURL *xano.ImageResource `json:"image_url"`
}

// AttachImagesToProduct stores the first image in the product's single
// image_url field. Further images are dropped; an empty slice clears it.
func AttachImagesToProduct(ctx context.Context, api API, token string, productID any, images []xano.ImageResource) (*xano.Product, error) {
	var patch imagePatch
	if len(images) > 0 {
		first := images[0]
		patch.ImageURL = &first
	}
	return api.UpdateProduct(ctx, token, productID, patch)
}

type ListProductsParams struct {
	Token string
	// Limit <= 0 means DefaultLimit; a negative Offset means DefaultOffset.
	Limit  int
	Offset int
	Q      string
}

func ListProducts(ctx context.Context, api API, p ListProductsParams) ([]xano.Product, error) {
	limit, offset, q := p.Limit, p.Offset, p.Q
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = DefaultOffset
	}
	raw, err := api.ListProducts(ctx, xano.ProductListOptions{
		Token:  p.Token,
		Limit:  &limit,
		Offset: &offset,
		Q:      &q,
	})
	if err != nil {
		return nil, err
	}
	return Items[xano.Product](raw)
}

// Items is the single place list bodies are normalized: a bare array is
// used as is, an object's "items" array is unwrapped, anything else is empty.
func Items[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []T{}, nil
	}
	switch raw[0] {
	case '[':
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	case '{':
		var env struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode list envelope: %w", err)
		}
		if items := bytes.TrimSpace(env.Items); len(items) > 0 && items[0] == '[' {
			return Items[T](items)
		}
	}
	return []T{}, nil
}
