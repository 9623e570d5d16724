package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_SendsMultipartForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Products", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Copper Kettle", r.FormValue("productName"))
		assert.Equal(t, "120.5", r.FormValue("price"))
		assert.Equal(t, "3", r.FormValue("categoryId"))
		assert.Equal(t, "KET-1", r.FormValue("sku"))
		assert.Equal(t, "40", r.FormValue("stockQuantity"))
		assert.Equal(t, "10", r.FormValue("discount"))
		assert.Empty(t, r.FormValue("productId"), "create carries no product id")

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "kettle.png", header.Filename)

		json.NewEncoder(w).Encode(Product{ProductID: "p1", ProductName: "Copper Kettle"})
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	product, err := c.CreateProduct(context.Background(), ProductForm{
		ProductName:   "Copper Kettle",
		Price:         120.5,
		CategoryID:    3,
		SKU:           "KET-1",
		StockQuantity: 40,
		Discount:      10,
		ImageName:     "kettle.png",
		Image:         strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ProductID)
}

func TestUpdateProduct_IncludesProductID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Products/p1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "p1", r.FormValue("productId"))
		assert.Equal(t, "Copper Kettle", r.FormValue("productName"))

		// An omitted image keeps the current one on the backend.
		_, _, err := r.FormFile("image")
		assert.Error(t, err)
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	err := c.UpdateProduct(context.Background(), "p1", ProductForm{
		ProductName:   "Copper Kettle",
		Price:         120.5,
		CategoryID:    3,
		SKU:           "KET-1",
		StockQuantity: 40,
	})
	require.NoError(t, err)
}

func TestDeleteProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/Products/p1", r.URL.Path)
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	require.NoError(t, c.DeleteProduct(context.Background(), "p1"))
}

func TestCreateCategory_SendsMultipartForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Categories", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Kitchenware", r.FormValue("categoryName"))
		assert.Equal(t, "Pots and pans", r.FormValue("description"))
		assert.Empty(t, r.FormValue("categoryId"))

		json.NewEncoder(w).Encode(Category{CategoryID: 5, CategoryName: "Kitchenware"})
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	category, err := c.CreateCategory(context.Background(), CategoryForm{
		CategoryName: "Kitchenware",
		Description:  "Pots and pans",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, category.CategoryID)
}

func TestUpdateCategory_IncludesCategoryID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Categories/5", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "5", r.FormValue("categoryId"))
		assert.Equal(t, "Kitchenware", r.FormValue("categoryName"))
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	require.NoError(t, c.UpdateCategory(context.Background(), 5, CategoryForm{CategoryName: "Kitchenware"}))
}

func TestDeleteCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/Categories/5", r.URL.Path)
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	require.NoError(t, c.DeleteCategory(context.Background(), 5))
}

func TestUpdateOrder_SendsJSONWithID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Orders/o1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "o1", payload["id"])
		assert.Equal(t, "Shipped", payload["status"])
		_, hasMethod := payload["paymentMethod"]
		assert.False(t, hasMethod, "untouched fields are omitted")
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	require.NoError(t, c.UpdateOrder(context.Background(), "o1", OrderUpdate{Status: "Shipped"}))
}

func TestDeleteOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/Orders/o1", r.URL.Path)
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	require.NoError(t, c.DeleteOrder(context.Background(), "o1"))
}
