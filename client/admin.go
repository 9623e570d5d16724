package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ProductForm carries the product fields of the management endpoints plus an
// optional image file. They travel as one multipart form.
type ProductForm struct {
	ProductName   string
	Description   string
	Price         float64
	CategoryID    int
	SKU           string
	StockQuantity int
	Discount      float64
	Rating        float64
	ImageName     string
	Image         io.Reader
}

func (p ProductForm) encode(productID string) ([]byte, string, error) {
	f := &Form{}
	if productID != "" {
		f.Set("productId", productID)
	}
	f.Set("productName", p.ProductName).
		Set("price", strconv.FormatFloat(p.Price, 'f', -1, 64)).
		Set("categoryId", strconv.Itoa(p.CategoryID)).
		Set("sku", p.SKU).
		Set("stockQuantity", strconv.Itoa(p.StockQuantity))
	if p.Description != "" {
		f.Set("description", p.Description)
	}
	if p.Discount > 0 {
		f.Set("discount", strconv.FormatFloat(p.Discount, 'f', -1, 64))
	}
	if p.Rating > 0 {
		f.Set("rating", strconv.FormatFloat(p.Rating, 'f', -1, 64))
	}
	if p.Image != nil {
		f.SetFile("image", p.ImageName, p.Image)
	}
	return f.Encode()
}

// CreateProduct adds a product to the catalogue. Requires an admin account.
func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*Product, error) {
	body, contentType, err := form.encode("")
	if err != nil {
		return nil, fmt.Errorf("failed to encode product form: %w", err)
	}

	respBody, err := c.send(ctx, apiRequest{method: http.MethodPost, path: "Products", body: body, contentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	var product Product
	if len(respBody) > 0 {
		if err := parseJSON(respBody, &product); err != nil {
			return nil, fmt.Errorf("failed to parse product response: %w", err)
		}
	}
	log.Info().Str("productId", product.ProductID).Msg("Product created")
	return &product, nil
}

// UpdateProduct overwrites a product's fields. An omitted image keeps the
// current one.
func (c *Client) UpdateProduct(ctx context.Context, productID string, form ProductForm) error {
	body, contentType, err := form.encode(productID)
	if err != nil {
		return fmt.Errorf("failed to encode product form: %w", err)
	}

	path := "Products/" + url.PathEscape(productID)
	if _, err := c.send(ctx, apiRequest{method: http.MethodPut, path: path, body: body, contentType: contentType}); err != nil {
		return fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return nil
}

// DeleteProduct removes a product from the catalogue.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	path := "Products/" + url.PathEscape(productID)
	if _, err := c.send(ctx, apiRequest{method: http.MethodDelete, path: path}); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	return nil
}

// CategoryForm carries the category fields of the management endpoints plus
// an optional image file.
type CategoryForm struct {
	CategoryName string
	Description  string
	ImageName    string
	Image        io.Reader
}

func (cf CategoryForm) encode(categoryID int) ([]byte, string, error) {
	f := &Form{}
	if categoryID > 0 {
		f.Set("categoryId", strconv.Itoa(categoryID))
	}
	f.Set("categoryName", cf.CategoryName)
	if cf.Description != "" {
		f.Set("description", cf.Description)
	}
	if cf.Image != nil {
		f.SetFile("image", cf.ImageName, cf.Image)
	}
	return f.Encode()
}

// CreateCategory adds a product category. Requires an admin account.
func (c *Client) CreateCategory(ctx context.Context, form CategoryForm) (*Category, error) {
	body, contentType, err := form.encode(0)
	if err != nil {
		return nil, fmt.Errorf("failed to encode category form: %w", err)
	}

	respBody, err := c.send(ctx, apiRequest{method: http.MethodPost, path: "Categories", body: body, contentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	var category Category
	if len(respBody) > 0 {
		if err := parseJSON(respBody, &category); err != nil {
			return nil, fmt.Errorf("failed to parse category response: %w", err)
		}
	}
	return &category, nil
}

// UpdateCategory overwrites a category's fields.
func (c *Client) UpdateCategory(ctx context.Context, categoryID int, form CategoryForm) error {
	body, contentType, err := form.encode(categoryID)
	if err != nil {
		return fmt.Errorf("failed to encode category form: %w", err)
	}

	path := "Categories/" + strconv.Itoa(categoryID)
	if _, err := c.send(ctx, apiRequest{method: http.MethodPut, path: path, body: body, contentType: contentType}); err != nil {
		return fmt.Errorf("failed to update category %d: %w", categoryID, err)
	}
	return nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, categoryID int) error {
	path := "Categories/" + strconv.Itoa(categoryID)
	if _, err := c.send(ctx, apiRequest{method: http.MethodDelete, path: path}); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", categoryID, err)
	}
	return nil
}

// OrderUpdate carries the fields an admin can change on a placed order.
// Empty fields are omitted and left untouched by the backend.
type OrderUpdate struct {
	ID              string `json:"id"`
	Status          string `json:"status,omitempty"`
	PaymentMethod   string `json:"paymentMethod,omitempty"`
	ShippingAddress string `json:"shippingAddress,omitempty"`
}

// UpdateOrder changes a placed order's status or details. Requires an admin
// account.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, update OrderUpdate) error {
	update.ID = orderID
	path := "Orders/" + url.PathEscape(orderID)
	if err := c.sendJSON(ctx, http.MethodPut, path, update, nil); err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	log.Info().Str("orderId", orderID).Str("status", update.Status).Msg("Order updated")
	return nil
}

// DeleteOrder removes a placed order.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	path := "Orders/" + url.PathEscape(orderID)
	if _, err := c.send(ctx, apiRequest{method: http.MethodDelete, path: path}); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	return nil
}
