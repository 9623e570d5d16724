package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProducts_BuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "mug", r.URL.Query().Get("search"))
		assert.Equal(t, "7", r.URL.Query().Get("categoryId"))
		json.NewEncoder(w).Encode(ProductPage{Page: 2, Limit: 25})
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{})
	page, err := c.SearchProducts(context.Background(), ProductQuery{Page: 2, Limit: 25, Search: "mug", CategoryID: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
}

func TestFetchAllProducts_WalksEveryPage(t *testing.T) {
	// 3 pages of 2 products, then the reported page count stops the walk.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
		require.GreaterOrEqual(t, pageNum, 1)
		require.LessOrEqual(t, pageNum, 3, "walk must stop at the reported page count")
		page := ProductPage{
			Page:       pageNum,
			Limit:      2,
			TotalItems: 6,
			TotalPages: 3,
			Items: []Product{
				{ProductID: fmt.Sprintf("p%d-1", pageNum)},
				{ProductID: fmt.Sprintf("p%d-2", pageNum)},
			},
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{})
	products, err := c.FetchAllProducts(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, products, 6)
	assert.Equal(t, "p1-1", products[0].ProductID)
	assert.Equal(t, "p3-2", products[5].ProductID)
}

func TestFetchAllProducts_StopsOnEmptyPage(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		page := ProductPage{Page: calls}
		if calls == 1 {
			page.Items = []Product{{ProductID: "only"}}
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{})
	products, err := c.FetchAllProducts(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 2, calls)
}

func TestFetchProductData_ReturnsRawJSON(t *testing.T) {
	raw := `{"productId":"p1","productName":"Copper Kettle","price":120,"discount":10}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Products/p1", r.URL.Path)
		w.Write([]byte(raw))
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{})
	product, data, err := c.FetchProductData(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Copper Kettle", product.ProductName)
	assert.Equal(t, 120.0, product.Price)
	assert.Equal(t, raw, data)
}

func TestFetchCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Categories", r.URL.Path)
		json.NewEncoder(w).Encode([]Category{
			{CategoryID: 1, CategoryName: "Kitchen"},
			{CategoryID: 2, CategoryName: "Garden"},
		})
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{})
	categories, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Kitchen", categories[0].CategoryName)
}
