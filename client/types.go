package client

// Product contains the product data returned by the storefront API.
type Product struct {
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	CategoryID    int       `json:"categoryId,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	StockQuantity int       `json:"stockQuantity,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Discount      float64   `json:"discount,omitempty"`
	SalePrice     float64   `json:"salePrice,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	Category      *Category `json:"category,omitempty"`
}

// Category contains a product category and, when expanded, its products.
type Category struct {
	CategoryID       int       `json:"categoryId"`
	CategoryName     string    `json:"categoryName"`
	ParentCategoryID int       `json:"parentCategoryId,omitempty"`
	Description      string    `json:"description,omitempty"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	ItemsCount       int       `json:"itemsCount,omitempty"`
	Products         []Product `json:"products,omitempty"`
}

// Cart is the server-authoritative cart for the signed-in user.
// CartID and UserID are empty until the server has materialized a cart.
type Cart struct {
	CartID    string     `json:"cartId"`
	UserID    string     `json:"userId"`
	CartItems []CartItem `json:"cartItems"`
}

// CartItem is one product line in a cart.
type CartItem struct {
	CartItemID string   `json:"cartItemId"`
	ProductID  string   `json:"productId"`
	Quantity   int      `json:"quantity"`
	Product    *Product `json:"product"`
}

// User holds the profile data of the signed-in user.
type User struct {
	ID          string   `json:"id"`
	UserName    string   `json:"userName"`
	Email       string   `json:"email"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Country     string   `json:"country,omitempty"`
	City        string   `json:"city,omitempty"`
	Address     string   `json:"address,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	LastSignIn  string   `json:"lastSignIn,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// AuthResponse is returned by the sign-in, sign-up, and refresh-token endpoints.
type AuthResponse struct {
	Code         int      `json:"code"`
	Message      string   `json:"message,omitempty"`
	Errors       []string `json:"errors,omitempty"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *User    `json:"user,omitempty"`
}

// Order is a placed order with its line items.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId,omitempty"`
	TotalAmount     float64     `json:"totalAmount"`
	OrderItems      []OrderItem `json:"orderItems,omitempty"`
	PaymentMethod   string      `json:"paymentMethod"`
	ShippingAddress string      `json:"shippingAddress"`
	ShippingPrice   float64     `json:"shippingPrice"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus,omitempty"`
	InvoiceID       string      `json:"invoiceId,omitempty"`
	InvoiceKey      string      `json:"invoiceKey,omitempty"`
	ReferenceNumber string      `json:"referenceNumber,omitempty"`
	CreatedAt       string      `json:"createdAt,omitempty"`
	UpdatedAt       string      `json:"updatedAt,omitempty"`
}

// OrderItem is one product line in a placed order, with the price at order time.
type OrderItem struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	Quantity    int      `json:"quantity"`
	Product     *Product `json:"product,omitempty"`
	Price       float64  `json:"price"`
	OrderID     string   `json:"orderId,omitempty"`
}

// Invoice is a payment invoice attached to an order.
type Invoice struct {
	ID          string `json:"id"`
	InvoiceID   int    `json:"invoice_id"`
	InvoiceKey  string `json:"invoice_key"`
	PaymentData string `json:"payment_data,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
	Order       *Order `json:"order,omitempty"`
}

// CheckoutRequest is the body of the checkout endpoint.
type CheckoutRequest struct {
	ShippingAddress string  `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
	ShippingPrice   float64 `json:"shippingPrice"`
}

// CheckoutResponse is the order confirmation returned by the checkout endpoint.
type CheckoutResponse struct {
	Code          int     `json:"code"`
	Message       string  `json:"message,omitempty"`
	OrderID       string  `json:"orderId"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentMethod string  `json:"paymentMethod"`
}

// ProductPage is one page of a paginated product listing.
type ProductPage struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}
