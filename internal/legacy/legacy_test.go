package legacy

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/beyblade-store/internal/xano"
	"github.com/MikeMC777/beyblade-store/internal/xanotest"
)

func init() {
	log.SetOutput(io.Discard)
}

// stubAPI answers uploads with a canned body and records product patches.
type stubAPI struct {
	uploadBody  json.RawMessage
	lastPatchID any
	lastPatch   []byte
}

func (s *stubAPI) CreateProduct(ctx context.Context, token string, payload any) (*xano.Product, error) {
	return &xano.Product{ID: 1}, nil
}

func (s *stubAPI) UpdateProduct(ctx context.Context, token string, id any, payload any) (*xano.Product, error) {
	s.lastPatchID = id
	s.lastPatch, _ = json.Marshal(payload)
	return &xano.Product{ID: 1}, nil
}

func (s *stubAPI) ListProducts(ctx context.Context, opts xano.ProductListOptions) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (s *stubAPI) UploadImages(ctx context.Context, token string, files []xano.File) (json.RawMessage, error) {
	return s.uploadBody, nil
}

func TestUploadImages_NormalizesToSlice(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"single", `{"name":"a.png"}`, 1},
		{"many", `[{"name":"a.png"},{"name":"b.png"}]`, 2},
		{"null", `null`, 0},
		{"absent", ``, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &stubAPI{}
			if tc.body != "" {
				api.uploadBody = json.RawMessage(tc.body)
			}
			got, err := UploadImages(context.Background(), api, "tok", nil)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, tc.want)
		})
	}
}

func TestUploadImages_AgainstBackend(t *testing.T) {
	srv := xanotest.New(t)
	c := xano.NewClient(srv.Config(), nil)

	got, err := UploadImages(context.Background(), c, "tok", []xano.File{
		{Name: "dran.png", ContentType: "image/png", Content: strings.NewReader("img")},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dran.png", got[0].Name)
}

func TestAttachImages_UsesOnlyFirst(t *testing.T) {
	api := &stubAPI{}
	images := []xano.ImageResource{
		{Name: "first.png", Path: "/vault/first.png"},
		{Name: "second.png", Path: "/vault/second.png"},
	}

	_, err := AttachImagesToProduct(context.Background(), api, "tok", 7, images)
	require.NoError(t, err)
	assert.Equal(t, 7, api.lastPatchID)
	assert.JSONEq(t, `{"image_url":{"name":"first.png","path":"/vault/first.png"}}`, string(api.lastPatch))
}

func TestAttachImages_EmptyClearsField(t *testing.T) {
	api := &stubAPI{}
	_, err := AttachImagesToProduct(context.Background(), api, "tok", 7, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"image_url":null}`, string(api.lastPatch))
}

func TestListProducts_DefaultsAndQuery(t *testing.T) {
	srv := xanotest.New(t)
	srv.SeedProducts(15)
	c := xano.NewClient(srv.Config(), nil)

	got, err := ListProducts(context.Background(), c, ListProductsParams{})
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)
	assert.Equal(t, "limit=12&offset=0&q=", srv.LastRequest().RawQuery)

	// "beyblade 1" matches 1 and 10..15
	got, err = ListProducts(context.Background(), c, ListProductsParams{Limit: 5, Offset: 2, Q: "beyblade 1"})
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Beyblade 11", got[0].Name)
	assert.Equal(t, "limit=5&offset=2&q=beyblade+1", srv.LastRequest().RawQuery)
}

func TestListProducts_UnwrapsEnvelope(t *testing.T) {
	srv := xanotest.New(t)
	srv.SetListEnvelope(true)
	srv.SeedProducts(3)
	c := xano.NewClient(srv.Config(), nil)

	got, err := ListProducts(context.Background(), c, ListProductsParams{Token: "tok"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Beyblade 1", got[0].Name)
	assert.Equal(t, "Bearer tok", srv.LastRequest().Header.Get("Authorization"))
}

func TestItems_ShapeDetection(t *testing.T) {
	type row struct {
		ID int `json:"id"`
	}
	cases := map[string]int{
		`[{"id":1},{"id":2}]`:         2,
		`{"items":[{"id":1}]}`:        1,
		`{"items":null}`:              0,
		`{"data":[{"id":1}]}`:         0,
		`{"items":{"id":1}}`:          0,
		`null`:                        0,
		``:                            0,
		`"unexpected"`:                0,
		`{"items":[],"itemsTotal":0}`: 0,
	}
	for in, want := range cases {
		got, err := Items[row](json.RawMessage(in))
		require.NoError(t, err, in)
		require.NotNil(t, got, in)
		assert.Len(t, got, want, in)
	}
}
