package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// FetchCart retrieves the signed-in user's cart with nested product data.
// A user without a materialized cart gets an empty cart, not an error.
func (c *Client) FetchCart(ctx context.Context) (*Cart, error) {
	query := url.Values{"page": {"1"}, "limit": {"100"}}
	body, err := c.send(ctx, apiRequest{method: http.MethodGet, path: "Carts", query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	cart := &Cart{}
	if len(body) == 0 {
		// 204 from the backend means no cart exists yet.
		return cart, nil
	}
	if err := parseJSON(body, cart); err != nil {
		return nil, fmt.Errorf("failed to parse cart response: %w", err)
	}
	return cart, nil
}

// AddToCart adds one unit of the product to the cart. The endpoint takes the
// raw product id as the request body.
func (c *Client) AddToCart(ctx context.Context, productID string) error {
	_, err := c.send(ctx, apiRequest{method: http.MethodPost, path: "Carts/add", body: []byte(productID)})
	if err != nil {
		return fmt.Errorf("failed to add product %s to cart: %w", productID, err)
	}
	return nil
}

// RemoveFromCart removes one unit of the product from the cart.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	_, err := c.send(ctx, apiRequest{method: http.MethodDelete, path: "Carts/remove", body: []byte(productID)})
	if err != nil {
		return fmt.Errorf("failed to remove product %s from cart: %w", productID, err)
	}
	return nil
}

// RemoveCartLine removes the entire line for the product, whatever its
// quantity.
func (c *Client) RemoveCartLine(ctx context.Context, productID string) error {
	query := url.Values{"removeAll": {"true"}}
	_, err := c.send(ctx, apiRequest{method: http.MethodDelete, path: "Carts/remove", query: query, body: []byte(productID)})
	if err != nil {
		return fmt.Errorf("failed to remove cart line for product %s: %w", productID, err)
	}
	return nil
}

// Checkout places an order from the server-side cart. The server empties the
// cart as part of materializing the order.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var confirmation CheckoutResponse
	if err := c.sendJSON(ctx, http.MethodPost, "Checkout", req, &confirmation); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	log.Info().Str("orderId", confirmation.OrderID).Float64("totalAmount", confirmation.TotalAmount).Msg("Order placed")
	return &confirmation, nil
}
