package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tmasrour/zanbil/client"
)

// Quantity bounds for a single cart line. A line never leaves [MinQuantity,
// MaxQuantity]; a line that would reach zero is removed instead.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Shipping is the flat shipping price, independent of cart contents.
const Shipping = 70.0

// State tracks the cart-loading lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateLoaded
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load-failed"
	default:
		return "unknown"
	}
}

// Service is the server side of every cart mutation. *client.Client
// satisfies it.
type Service interface {
	FetchCart(ctx context.Context) (*client.Cart, error)
	AddToCart(ctx context.Context, productID string) error
	RemoveFromCart(ctx context.Context, productID string) error
	RemoveCartLine(ctx context.Context, productID string) error
}

// Manager holds the client-side view of the signed-in user's cart. Every
// mutation goes through the server first and touches local state only after
// the server confirms, so the view never runs ahead of the backend. Server
// failures are recorded in an error field instead of being returned; only
// precondition violations surface as errors. A single mutex serializes all
// operations, the closest analog of the event loop the behavior was designed
// for.
type Manager struct {
	mu      sync.Mutex
	svc     Service
	state   State
	cart    client.Cart
	loadErr string
	lastErr string
}

// NewManager creates a Manager in the uninitialized state. Call Load before
// reading or mutating the cart.
func NewManager(svc Service) *Manager {
	return &Manager{svc: svc}
}

// Load fetches the full cart from the server. It is called once on startup
// and again whenever the signed-in identity changes; a failed load keeps an
// empty cart and is not retried automatically.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateLoading
	m.loadErr = ""
	m.cart = client.Cart{}

	fetched, err := m.svc.FetchCart(ctx)
	if err != nil {
		m.state = StateLoadFailed
		m.loadErr = fmt.Sprintf("Failed to fetch cart: %v", err)
		log.Error().Err(err).Msg("Failed to load cart")
		return
	}
	if fetched != nil {
		m.cart = *fetched
	}
	m.state = StateLoaded
	log.Debug().Int("items", len(m.cart.CartItems)).Msg("Cart loaded")
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LoadError returns the message of the last failed Load, or "".
func (m *Manager) LoadError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Err returns the message recorded by the last failed mutation, or "".
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Items returns a copy of the cart lines in insertion order.
func (m *Manager) Items() []client.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]client.CartItem, len(m.cart.CartItems))
	copy(items, m.cart.CartItems)
	return items
}

// AddItem adds one unit of the product. A product already at MaxQuantity is a
// silent no-op. The returned error is non-nil only for the missing-product-id
// precondition; server failures are recorded in Err.
func (m *Manager) AddItem(ctx context.Context, product *client.Product) error {
	if product == nil || product.ProductID == "" {
		return fmt.Errorf("product ID is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""

	existing := m.findItem(product.ProductID)
	if existing != nil && existing.Quantity >= MaxQuantity {
		return nil
	}

	if err := m.svc.AddToCart(ctx, product.ProductID); err != nil {
		m.lastErr = fmt.Sprintf("Failed to add item to cart: %v", err)
		log.Error().Err(err).Str("productId", product.ProductID).Msg("Failed to add cart item")
		return nil
	}

	if existing != nil {
		m.adjustQuantity(product.ProductID, +1)
		return nil
	}
	m.cart.CartItems = append(m.cart.CartItems, client.CartItem{
		ProductID: product.ProductID,
		Quantity:  1,
		Product:   product,
	})
	return nil
}

// RemoveItem removes the entire line for the product, whatever its quantity.
func (m *Manager) RemoveItem(ctx context.Context, product *client.Product) error {
	if product == nil || product.ProductID == "" {
		return fmt.Errorf("product ID is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""

	if err := m.svc.RemoveCartLine(ctx, product.ProductID); err != nil {
		m.lastErr = fmt.Sprintf("Failed to remove item from cart: %v", err)
		log.Error().Err(err).Str("productId", product.ProductID).Msg("Failed to remove cart item")
		return nil
	}

	kept := m.cart.CartItems[:0]
	for _, item := range m.cart.CartItems {
		if item.ProductID != product.ProductID {
			kept = append(kept, item)
		}
	}
	m.cart.CartItems = kept
	return nil
}

// Increment adds one unit to an existing line. Missing lines and lines at
// MaxQuantity are no-ops.
func (m *Manager) Increment(ctx context.Context, productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""

	existing := m.findItem(productID)
	if existing == nil || existing.Quantity >= MaxQuantity {
		return
	}

	if err := m.svc.AddToCart(ctx, productID); err != nil {
		m.lastErr = fmt.Sprintf("Failed to add item to cart: %v", err)
		log.Error().Err(err).Str("productId", productID).Msg("Failed to increment cart item")
		return
	}
	m.adjustQuantity(productID, +1)
}

// Decrement removes one unit from an existing line. Missing lines and lines
// at MinQuantity are no-ops; decrementing at quantity 1 never removes the
// line.
func (m *Manager) Decrement(ctx context.Context, productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""

	existing := m.findItem(productID)
	if existing == nil || existing.Quantity <= MinQuantity {
		return
	}

	if err := m.svc.RemoveFromCart(ctx, productID); err != nil {
		m.lastErr = fmt.Sprintf("Failed to remove item from cart: %v", err)
		log.Error().Err(err).Str("productId", productID).Msg("Failed to decrement cart item")
		return
	}
	m.adjustQuantity(productID, -1)
}

// ItemsCount returns the sum of all line quantities.
func (m *Manager) ItemsCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, item := range m.cart.CartItems {
		total += item.Quantity
	}
	return total
}

// Subtotal sums quantity times discounted price over all lines. Lines with no
// product data contribute zero.
func (m *Manager) Subtotal() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subtotalLocked()
}

func (m *Manager) subtotalLocked() float64 {
	total := 0.0
	for _, item := range m.cart.CartItems {
		if item.Product == nil || item.Quantity == 0 {
			continue
		}
		price := item.Product.Price
		discounted := price - price*(item.Product.Discount/100)
		total += discounted * float64(item.Quantity)
	}
	return total
}

// Total is the subtotal plus the flat shipping price.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subtotalLocked() + Shipping
}

// Clear resets the cart to the empty shape locally without a server call.
// Used after checkout, where the server has already emptied the cart.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = client.Cart{}
	m.lastErr = ""
}

// findItem returns the line for productID, or nil. Callers hold m.mu.
func (m *Manager) findItem(productID string) *client.CartItem {
	for i := range m.cart.CartItems {
		if m.cart.CartItems[i].ProductID == productID {
			return &m.cart.CartItems[i]
		}
	}
	return nil
}

// adjustQuantity applies a confirmed ±1 within the quantity bounds and drops
// any line that ends at or below zero. Callers hold m.mu.
func (m *Manager) adjustQuantity(productID string, delta int) {
	kept := m.cart.CartItems[:0]
	for _, item := range m.cart.CartItems {
		if item.ProductID == productID {
			inBounds := (delta > 0 && item.Quantity < MaxQuantity) || (delta < 0 && item.Quantity > MinQuantity)
			if inBounds {
				item.Quantity += delta
			}
		}
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	m.cart.CartItems = kept
}
