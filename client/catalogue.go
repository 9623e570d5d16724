package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ProductQuery composes the pagination, search, and filter parameters of the
// product listing endpoint. Zero values are omitted from the query string.
type ProductQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID int
	Sort       string
}

func (q ProductQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.CategoryID > 0 {
		values.Set("categoryId", strconv.Itoa(q.CategoryID))
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	return values
}

// SearchProducts fetches one page of the product listing. Browsing needs the
// API key only; no bearer token is required.
func (c *Client) SearchProducts(ctx context.Context, query ProductQuery) (*ProductPage, error) {
	var page ProductPage
	if err := c.getJSON(ctx, "Products", query.values(), &page); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return &page, nil
}

// FetchAllProducts walks every page of the product listing and returns the
// combined result. The walk stops when a page comes back empty or the
// reported page count is reached, so a misbehaving backend cannot loop it.
func (c *Client) FetchAllProducts(ctx context.Context, pageSize int) ([]Product, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	all := make([]Product, 0, pageSize)
	for pageNum := 1; ; pageNum++ {
		page, err := c.SearchProducts(ctx, ProductQuery{Page: pageNum, Limit: pageSize})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch product page %d: %w", pageNum, err)
		}
		if len(page.Items) == 0 {
			break
		}
		all = append(all, page.Items...)
		if page.TotalPages > 0 && pageNum >= page.TotalPages {
			break
		}
		if page.TotalPages == 0 && len(page.Items) < pageSize {
			break
		}
	}

	log.Info().Int("count", len(all)).Msg("Fetched full product listing")
	return all, nil
}

// FetchProduct retrieves the details of a single product.
func (c *Client) FetchProduct(ctx context.Context, productID string) (*Product, error) {
	product, _, err := c.FetchProductData(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FetchProductData retrieves and parses a product's details. It returns the
// parsed Product together with the raw JSON, which the catalogue cache keeps
// verbatim.
func (c *Client) FetchProductData(ctx context.Context, productID string) (Product, string, error) {
	body, err := c.send(ctx, apiRequest{method: "GET", path: "Products/" + url.PathEscape(productID)})
	if err != nil {
		return Product{}, "", fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	var product Product
	if err := parseJSON(body, &product); err != nil {
		return Product{}, string(body), fmt.Errorf("failed to parse product data: %w", err)
	}
	return product, string(body), nil
}

// FetchCategories retrieves all product categories.
func (c *Client) FetchCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.getJSON(ctx, "Categories", nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// FetchCategory retrieves one category with its products.
func (c *Client) FetchCategory(ctx context.Context, categoryID int) (*Category, error) {
	var category Category
	if err := c.getJSON(ctx, "Categories/"+strconv.Itoa(categoryID), nil, &category); err != nil {
		return nil, fmt.Errorf("failed to fetch category %d: %w", categoryID, err)
	}
	return &category, nil
}
