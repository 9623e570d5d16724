package client

import (
	"context"
	"fmt"
	"net/url"
)

// FetchOrders retrieves the signed-in user's order history.
func (c *Client) FetchOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.getJSON(ctx, "Orders", nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// FetchOrder retrieves one order with its line items.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	if err := c.getJSON(ctx, "Orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}
	return &order, nil
}

// FetchInvoices retrieves the signed-in user's payment invoices.
func (c *Client) FetchInvoices(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice
	if err := c.getJSON(ctx, "Invoices", nil, &invoices); err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	return invoices, nil
}
