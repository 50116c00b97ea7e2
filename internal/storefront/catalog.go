// Package storefront holds the flows the store's pages run on top of the
// backend layer: paged browsing, product creation with images, and the
// order and category listings.
package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MikeMC777/beyblade-store/internal/legacy"
	"github.com/MikeMC777/beyblade-store/internal/xano"
)

// PageSize is how many products one grid page asks for.
const PageSize = 12

var ErrLoginRequired = errors.New("login required")

// Lister is any resource that can list itself, e.g. xano.Resource[T].
type Lister interface {
	List(ctx context.Context, opts xano.ListOptions) (json.RawMessage, error)
}

type Page struct {
	Items      []xano.Product `json:"items"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
	NextOffset int            `json:"next_offset"`
	HasMore    bool           `json:"has_more"`
}

// FetchPage loads one batch. A full batch means there may be more.
func FetchPage(ctx context.Context, api legacy.API, token string, limit, offset int, q string) (Page, error) {
	if limit <= 0 {
		limit = PageSize
	}
	if offset < 0 {
		offset = 0
	}
	batch, err := legacy.ListProducts(ctx, api, legacy.ListProductsParams{Token: token, Limit: limit, Offset: offset, Q: q})
	if err != nil {
		return Page{}, err
	}
	return Page{
		Items:      batch,
		Limit:      limit,
		Offset:     offset,
		NextOffset: offset + len(batch),
		HasMore:    len(batch) == limit,
	}, nil
}

// Pager accumulates pages of the product grid. Not safe for concurrent use.
type Pager struct {
	api   legacy.API
	token string
	limit int

	// Q is sent to the backend and also used to filter locally.
	Q string

	items   []xano.Product
	offset  int
	hasMore bool
}

func NewPager(api legacy.API, token string) *Pager {
	return &Pager{api: api, token: token, limit: PageSize, hasMore: true, items: []xano.Product{}}
}

// Fetch loads the next page, or the first one again when reset is set.
// On error the pager keeps its previous state.
func (p *Pager) Fetch(ctx context.Context, reset bool) ([]xano.Product, error) {
	offset := p.offset
	if reset {
		offset = 0
	}
	page, err := FetchPage(ctx, p.api, p.token, p.limit, offset, p.Q)
	if err != nil {
		return nil, err
	}
	p.hasMore = page.HasMore
	p.offset = page.NextOffset
	if reset {
		p.items = page.Items
	} else {
		p.items = append(p.items, page.Items...)
	}
	return page.Items, nil
}

func (p *Pager) Items() []xano.Product { return p.items }
func (p *Pager) HasMore() bool         { return p.hasMore }
func (p *Pager) Offset() int           { return p.offset }

// Visible is the loaded items narrowed by Q.
func (p *Pager) Visible() []xano.Product { return Filter(p.items, p.Q) }

// Filter keeps products whose name, brand, category, type, series or
// description contains q, case-insensitively. A blank q keeps everything.
func Filter(products []xano.Product, q string) []xano.Product {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return products
	}
	out := make([]xano.Product, 0, len(products))
	for _, p := range products {
		for _, f := range []string{p.Name, p.Brand, p.Category, p.Type, p.Series, p.Description} {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// CreateProductWithImages creates the product, then uploads files and
// attaches the first image. The steps are not transactional: if a later
// step fails the created product is returned along with the error.
func CreateProductWithImages(ctx context.Context, api legacy.API, token string, in xano.ProductInput, files []xano.File) (*xano.Product, error) {
	if token == "" {
		return nil, ErrLoginRequired
	}
	created, err := legacy.CreateProduct(ctx, api, token, in)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errors.New("create product: empty response")
	}

	images := []xano.ImageResource{}
	if len(files) > 0 {
		images, err = legacy.UploadImages(ctx, api, token, files)
		if err != nil {
			return created, fmt.Errorf("product %d created, upload failed: %w", created.ID, err)
		}
	}
	if len(images) == 0 {
		return created, nil
	}
	updated, err := legacy.AttachImagesToProduct(ctx, api, token, created.ID, images)
	if err != nil {
		return created, fmt.Errorf("product %d created, attach failed: %w", created.ID, err)
	}
	return updated, nil
}

// Categories lists categories; a non-array answer yields an empty slice.
func Categories(ctx context.Context, categories Lister, token string) ([]xano.Category, error) {
	raw, err := categories.List(ctx, xano.ListOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return legacy.Items[xano.Category](raw)
}

// Orders lists the session's orders.
func Orders(ctx context.Context, orders Lister, token string) ([]xano.Order, error) {
	if token == "" {
		return nil, ErrLoginRequired
	}
	raw, err := orders.List(ctx, xano.ListOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return legacy.Items[xano.Order](raw)
}
