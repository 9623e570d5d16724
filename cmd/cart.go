package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tmasrour/zanbil/cart"
	"github.com/tmasrour/zanbil/client"
	"github.com/tmasrour/zanbil/pkg/validation"
)

// cartCmd groups the commands that work on the signed-in user's cart
func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your shopping cart",
	}

	cmd.AddCommand(
		cartShowCmd(),
		cartAddCmd(),
		cartRemoveCmd(),
		cartIncrementCmd(),
		cartDecrementCmd(),
		cartClearCmd(),
	)

	return cmd
}

// loadCartManager builds a Manager over the API client and loads the server
// cart. It returns nil after printing an error when the load fails.
func loadCartManager(cmd *cobra.Command) *cart.Manager {
	api := newAPIClient()
	manager := newCartManager(api)
	manager.Load(cmd.Context())
	if manager.State() == cart.StateLoadFailed {
		cmd.PrintErrln("Error: Failed to load your cart. Are you signed in? Use `zanbil login` first.")
		log.Error().Str("reason", manager.LoadError()).Msg("Cart load failed")
		return nil
	}
	return manager
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the contents of your cart",
		Run: func(cmd *cobra.Command, args []string) {
			manager := loadCartManager(cmd)
			if manager == nil {
				return
			}
			renderCart(cmd, manager)
		},
	}
}

func renderCart(cmd *cobra.Command, manager *cart.Manager) {
	items := manager.Items()
	if len(items) == 0 {
		cmd.Println("Your cart is empty.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Product ID", "Product Name", "Qty", "Unit Price", "Line Total"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, item := range items {
		name := ""
		unit := ""
		line := ""
		if item.Product != nil {
			name = strings.ReplaceAll(item.Product.ProductName, "\n", " ")
			price := item.Product.Price
			discounted := price - price*(item.Product.Discount/100)
			unit = fmt.Sprintf("%.2f", discounted)
			line = fmt.Sprintf("%.2f", discounted*float64(item.Quantity))
		}
		table.Append([]string{
			item.ProductID,
			name,
			fmt.Sprintf("%d", item.Quantity),
			unit,
			line,
		})
	}
	table.Render()

	cmd.Printf("Items: %d\n", manager.ItemsCount())
	cmd.Printf("Subtotal: %.2f\n", manager.Subtotal())
	cmd.Printf("Shipping: %.2f\n", cart.Shipping)
	cmd.Printf("Total: %.2f\n", manager.Total())
}

func cartAddCmd() *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one unit of a product to your cart",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateProductID(productID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			manager := loadCartManager(cmd)
			if manager == nil {
				return
			}

			if err := manager.AddItem(cmd.Context(), &client.Product{ProductID: productID}); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if msg := manager.Err(); msg != "" {
				cmd.PrintErrln("Error:", msg)
				return
			}
			cmd.Printf("Added product %s to the cart. The cart now has %d items.\n", productID, manager.ItemsCount())
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to add")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func cartRemoveCmd() *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a product line from your cart",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateProductID(productID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			manager := loadCartManager(cmd)
			if manager == nil {
				return
			}

			if err := manager.RemoveItem(cmd.Context(), &client.Product{ProductID: productID}); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if msg := manager.Err(); msg != "" {
				cmd.PrintErrln("Error:", msg)
				return
			}
			cmd.Printf("Removed product %s from the cart.\n", productID)
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to remove")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func cartIncrementCmd() *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "inc",
		Short: "Add one unit to an existing cart line",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateProductID(productID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			manager := loadCartManager(cmd)
			if manager == nil {
				return
			}

			manager.Increment(cmd.Context(), productID)
			if msg := manager.Err(); msg != "" {
				cmd.PrintErrln("Error:", msg)
				return
			}
			cmd.Printf("The cart now has %d items.\n", manager.ItemsCount())
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to increment")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func cartDecrementCmd() *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "dec",
		Short: "Remove one unit from an existing cart line",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateProductID(productID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			manager := loadCartManager(cmd)
			if manager == nil {
				return
			}

			manager.Decrement(cmd.Context(), productID)
			if msg := manager.Err(); msg != "" {
				cmd.PrintErrln("Error:", msg)
				return
			}
			cmd.Printf("The cart now has %d items.\n", manager.ItemsCount())
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to decrement")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from your cart",
		Run: func(cmd *cobra.Command, args []string) {
			manager := loadCartManager(cmd)
			if manager == nil {
				return
			}

			items := manager.Items()
			if len(items) == 0 {
				cmd.Println("Your cart is already empty.")
				return
			}

			for _, item := range items {
				if err := manager.RemoveItem(cmd.Context(), &client.Product{ProductID: item.ProductID}); err != nil {
					cmd.PrintErrln("Error:", err)
					return
				}
				if msg := manager.Err(); msg != "" {
					cmd.PrintErrln("Error:", msg)
					return
				}
			}
			cmd.Println("Cart cleared.")
		},
	}
}

// checkoutCmd places an order from the current cart
func checkoutCmd() *cobra.Command {
	var address string
	var method string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from your cart",
		Run: func(cmd *cobra.Command, args []string) {
			runCheckout(cmd, address, method)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Shipping address for the order")
	cmd.Flags().StringVarP(&method, "method", "m", "CashOnDelivery", "Payment method for the order")
	return cmd
}

func runCheckout(cmd *cobra.Command, address, method string) {
	if address == "" {
		address = promptForInput("Shipping address: ")
	}
	if err := validation.ValidateNonEmptyString("shipping address", address); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if !isValidPaymentMethod(method) {
		cmd.PrintErrf("Error: Invalid payment method '%s'. Valid methods are:\n", method)
		for code, name := range paymentMethods {
			cmd.Printf("  %s (%s)\n", code, name)
		}
		return
	}

	manager := loadCartManager(cmd)
	if manager == nil {
		return
	}
	if manager.ItemsCount() == 0 {
		cmd.Println("Your cart is empty. Add some products before checking out.")
		return
	}

	cmd.Printf("Placing an order for %d items, total %.2f...\n", manager.ItemsCount(), manager.Total())

	api := newAPIClient()
	confirmation, err := api.Checkout(cmd.Context(), client.CheckoutRequest{
		ShippingAddress: address,
		PaymentMethod:   method,
		ShippingPrice:   cart.Shipping,
	})
	if err != nil {
		cmd.PrintErrln("Error: Failed to place the order.")
		printAPIFieldErrors(cmd, err)
		log.Error().Err(err).Msg("Checkout failed")
		return
	}

	manager.Clear()
	cmd.Printf("Order %s placed. Total charged: %.2f (%s).\n",
		confirmation.OrderID, confirmation.TotalAmount, confirmation.PaymentMethod)
}
