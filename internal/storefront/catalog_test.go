package storefront

import (
	"context"
	"io"
	"log"
	"net/http"
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

func newBackend(t *testing.T) (*xano.Client, *xanotest.Server) {
	t.Helper()
	srv := xanotest.New(t)
	return xano.NewClient(srv.Config(), nil), srv
}

// ===== paging =====

func TestFetchPage_FullBatchHasMore(t *testing.T) {
	c, srv := newBackend(t)
	srv.SeedProducts(12)

	page, err := FetchPage(context.Background(), c, "", 12, 0, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 12)
	assert.True(t, page.HasMore)
	assert.Equal(t, 12, page.NextOffset)
}

func TestFetchPage_ShortBatchIsLast(t *testing.T) {
	c, srv := newBackend(t)
	srv.SeedProducts(5)

	page, err := FetchPage(context.Background(), c, "", 12, 0, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasMore)
}

func TestPager_AccumulatesAndResets(t *testing.T) {
	c, srv := newBackend(t)
	srv.SeedProducts(17)
	ctx := context.Background()

	p := NewPager(c, "")
	require.True(t, p.HasMore())

	_, err := p.Fetch(ctx, true)
	require.NoError(t, err)
	assert.Len(t, p.Items(), 12)
	assert.True(t, p.HasMore())
	assert.Equal(t, 12, p.Offset())

	batch, err := p.Fetch(ctx, false)
	require.NoError(t, err)
	assert.Len(t, batch, 5)
	assert.Len(t, p.Items(), 17)
	assert.False(t, p.HasMore())
	assert.Equal(t, "limit=12&offset=12&q=", srv.LastRequest().RawQuery)

	_, err = p.Fetch(ctx, true)
	require.NoError(t, err)
	assert.Len(t, p.Items(), 12)
	assert.Equal(t, 12, p.Offset())
}

func TestPager_ErrorKeepsState(t *testing.T) {
	c, srv := newBackend(t)
	srv.SeedProducts(3)
	ctx := context.Background()

	p := NewPager(c, "")
	_, err := p.Fetch(ctx, true)
	require.NoError(t, err)

	srv.Fail("/product", http.StatusInternalServerError)
	_, err = p.Fetch(ctx, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Len(t, p.Items(), 3)
	assert.Equal(t, 3, p.Offset())
}

func TestFilter(t *testing.T) {
	products := []xano.Product{
		{Name: "Dran Sword", Brand: "Takara Tomy", Type: "Attack"},
		{Name: "Hells Scythe", Brand: "Hasbro", Series: "X"},
		{Name: "Wizard Arrow", Category: "Stamina", Description: "long spin"},
	}
	assert.Len(t, Filter(products, "  "), 3)
	assert.Len(t, Filter(products, "HASBRO"), 1)
	assert.Len(t, Filter(products, "attack"), 1)
	assert.Len(t, Filter(products, "stamina"), 1)
	assert.Len(t, Filter(products, "spin"), 1)
	assert.Len(t, Filter(products, "x"), 1)
	assert.Empty(t, Filter(products, "pegasus"))

	p := &Pager{items: products, Q: "dran"}
	assert.Len(t, p.Visible(), 1)
}

// ===== create with images =====

func TestCreateProductWithImages_AttachesFirstImage(t *testing.T) {
	c, srv := newBackend(t)
	ctx := context.Background()

	got, err := CreateProductWithImages(ctx, c, "tok", xano.ProductInput{
		Name: "Leon Claw", Price: xano.NewMoney(14990),
	}, []xano.File{
		{Name: "front.png", ContentType: "image/png", Content: strings.NewReader("1")},
		{Name: "back.png", ContentType: "image/png", Content: strings.NewReader("2")},
	})
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "front.png", got.ImageURL.Name)

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.Equal(t, "/product", reqs[0].Path)
	assert.Equal(t, "/upload/image", reqs[1].Path)
	assert.Equal(t, http.MethodPatch, reqs[2].Method)
}

func TestCreateProductWithImages_NoFilesSkipsUpload(t *testing.T) {
	c, srv := newBackend(t)

	got, err := CreateProductWithImages(context.Background(), c, "tok", xano.ProductInput{Name: "Shark Edge"}, nil)
	require.NoError(t, err)
	assert.Nil(t, got.ImageURL)
	assert.Len(t, srv.Requests(), 1)
}

func TestCreateProductWithImages_UploadFailureKeepsProduct(t *testing.T) {
	c, srv := newBackend(t)
	srv.Fail("/upload/image", http.StatusInternalServerError)

	got, err := CreateProductWithImages(context.Background(), c, "tok", xano.ProductInput{Name: "Knight Shield"},
		[]xano.File{{Name: "a.png", Content: strings.NewReader("a")}})
	require.Error(t, err)
	require.NotNil(t, got)
	assert.ErrorIs(t, err, xano.ErrServer)
	assert.Equal(t, 1, srv.Count("product"))
}

func TestCreateProductWithImages_RequiresToken(t *testing.T) {
	c, srv := newBackend(t)
	_, err := CreateProductWithImages(context.Background(), c, "", xano.ProductInput{Name: "x"}, nil)
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Empty(t, srv.Requests())
}

// ===== orders and categories =====

func TestOrders_RequireTokenAndNormalize(t *testing.T) {
	c, srv := newBackend(t)
	ctx := context.Background()

	_, err := Orders(ctx, c.Orders, "")
	assert.ErrorIs(t, err, ErrLoginRequired)

	srv.Seed("order", map[string]any{"order_number": "BB-7", "status": "pending", "total_amount": 12990})
	srv.SetListEnvelope(true)
	orders, err := Orders(ctx, c.Orders, "tok")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "BB-7", orders[0].OrderNumber)
}

func TestCategories(t *testing.T) {
	c, srv := newBackend(t)
	srv.Seed("product_category", map[string]any{"name": "Attack", "category_type": "type"})

	cats, err := Categories(context.Background(), c.Categories, "")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Attack", cats[0].Name)
}
