package xano_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/beyblade-store/internal/xano"
)

func TestMoney_JSONIsBareNumber(t *testing.T) {
	b, err := json.Marshal(struct {
		Price xano.Money `json:"price"`
	}{xano.NewMoney(12990)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12990}`, string(b))

	var in struct {
		A xano.Money `json:"a"`
		B xano.Money `json:"b"`
		C xano.Money `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1500,"b":"2500","c":null}`), &in))
	assert.Equal(t, "1500", in.A.String())
	assert.Equal(t, "2500", in.B.String())
	assert.True(t, in.C.IsZero())
}

func TestMoney_CLP(t *testing.T) {
	cases := map[int64]string{
		0:       "$0",
		990:     "$990",
		1000:    "$1.000",
		12990:   "$12.990",
		1234567: "$1.234.567",
		-45000:  "-$45.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, xano.NewMoney(in).CLP(), in)
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	sub := xano.OrderItemSubtotal(3, xano.NewMoney(12990))
	assert.Equal(t, "38970", sub.String())
	assert.Equal(t, "$51.960", sub.Add(xano.NewMoney(12990)).CLP())
}

func TestImageResource_AcceptsURLString(t *testing.T) {
	var p xano.Product
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 3,
		"images": ["https://cdn.example.com/a.png", {"name":"b.png","url":"https://cdn.example.com/b.png","access":"public"}]
	}`), &p))

	require.Len(t, p.Images, 2)
	assert.Equal(t, "https://cdn.example.com/a.png", p.Images[0].URL)
	assert.Equal(t, "b.png", p.Images[1].Name)
	assert.Equal(t, xano.AccessPublic, p.Images[1].Access)
}

func TestProduct_GalleryStockLabel(t *testing.T) {
	five := 5
	img := &xano.ImageResource{URL: "https://cdn.example.com/x.png"}

	withArray := xano.Product{Images: []xano.ImageResource{{URL: "1"}, {URL: "2"}}, ImageURL: img}
	assert.Len(t, withArray.Gallery(), 2)

	single := xano.Product{ImageURL: img, LegacyStock: &five, Category: "Stamina"}
	assert.Equal(t, []xano.ImageResource{*img}, single.Gallery())
	assert.Equal(t, 5, single.Stock())
	assert.Equal(t, "Stamina", single.Label())

	empty := xano.Product{Type: "Attack"}
	assert.Empty(t, empty.Gallery())
	assert.Equal(t, 0, empty.Stock())
	assert.Equal(t, "Attack", empty.Label())
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, xano.OrderCancelled.Valid())
	assert.False(t, xano.OrderStatus("canceled").Valid())
	assert.False(t, xano.PaymentStatus("refunded").Valid())
}

func TestTimestamp_Millis(t *testing.T) {
	ts := xano.Timestamp(1_700_000_000_000)
	assert.Equal(t, time.UnixMilli(1_700_000_000_000), ts.Time())
}
