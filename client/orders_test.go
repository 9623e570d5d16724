package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Orders", r.URL.Path)
		json.NewEncoder(w).Encode([]Order{
			{ID: "o1", TotalAmount: 250, Status: "Processing"},
			{ID: "o2", TotalAmount: 99.5, Status: "Delivered"},
		})
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	orders, err := c.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Delivered", orders[1].Status)
}

func TestFetchOrder_WithLineItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Orders/o1", r.URL.Path)
		json.NewEncoder(w).Encode(Order{
			ID:          "o1",
			TotalAmount: 250,
			OrderItems: []OrderItem{
				{ProductID: "p1", ProductName: "Copper Kettle", Quantity: 2, Price: 90},
			},
		})
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	order, err := c.FetchOrder(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 90.0, order.OrderItems[0].Price)
}

func TestFetchInvoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Invoices", r.URL.Path)
		json.NewEncoder(w).Encode([]Invoice{{InvoiceID: 7, InvoiceKey: "k7", Status: "Paid"}})
	}))
	defer server.Close()

	c := New(server.URL, "key", &memStore{accessToken: "tok"})
	invoices, err := c.FetchInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "Paid", invoices[0].Status)
}
