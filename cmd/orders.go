package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tmasrour/zanbil/pkg/validation"
)

// ordersCmd groups the order-history commands
func ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show your order history",
	}

	cmd.AddCommand(
		ordersListCmd(),
		orderShowCmd(),
	)

	return cmd
}

func ordersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your placed orders",
		Run:   listOrders,
	}
}

func listOrders(cmd *cobra.Command, args []string) {
	api := newAPIClient()
	orders, err := api.FetchOrders(cmd.Context())
	if err != nil {
		cmd.PrintErrln("Error:", classifyError(err).Message)
		log.Error().Err(err).Msg("Failed to fetch orders")
		return
	}

	if len(orders) == 0 {
		cmd.Println("You have no orders yet.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Order ID", "Total", "Payment", "Status", "Placed At"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, order := range orders {
		table.Append([]string{
			order.ID,
			fmt.Sprintf("%.2f", order.TotalAmount),
			order.PaymentMethod,
			order.Status,
			order.CreatedAt,
		})
	}
	table.Render()

	log.Info().Msgf("Listed %d orders.", len(orders))
}

func orderShowCmd() *cobra.Command {
	var orderID string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the details of one order",
		Run: func(cmd *cobra.Command, args []string) {
			showOrder(cmd, orderID)
		},
	}

	cmd.Flags().StringVarP(&orderID, "id", "i", "", "ID of the order to show")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}
	return cmd
}

func showOrder(cmd *cobra.Command, orderID string) {
	if err := validation.ValidateNonEmptyString("order ID", orderID); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	api := newAPIClient()
	order, err := api.FetchOrder(cmd.Context(), orderID)
	if err != nil {
		cmd.PrintErrln("Error:", classifyError(err).Message)
		log.Error().Err(err).Msgf("Failed to fetch order with ID=%s", orderID)
		return
	}

	cmd.Println("Order Information:")
	cmd.Printf("ID: %s\n", order.ID)
	cmd.Printf("Status: %s\n", order.Status)
	cmd.Printf("Payment method: %s\n", order.PaymentMethod)
	if order.PaymentStatus != "" {
		cmd.Printf("Payment status: %s\n", order.PaymentStatus)
	}
	cmd.Printf("Shipping address: %s\n", order.ShippingAddress)
	cmd.Printf("Shipping price: %.2f\n", order.ShippingPrice)
	cmd.Printf("Total: %.2f\n", order.TotalAmount)
	if order.CreatedAt != "" {
		cmd.Printf("Placed at: %s\n", order.CreatedAt)
	}

	if len(order.OrderItems) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Product ID", "Product Name", "Qty", "Price"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, item := range order.OrderItems {
		table.Append([]string{
			item.ProductID,
			strings.ReplaceAll(item.ProductName, "\n", " "),
			fmt.Sprintf("%d", item.Quantity),
			fmt.Sprintf("%.2f", item.Price),
		})
	}
	table.Render()
}

// invoicesCmd lists the signed-in user's payment invoices
func invoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "Show your payment invoices",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			invoices, err := api.FetchInvoices(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msg("Failed to fetch invoices")
				return
			}

			if len(invoices) == 0 {
				cmd.Println("You have no invoices yet.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Invoice ID", "Key", "Status", "Created At"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			for _, invoice := range invoices {
				table.Append([]string{
					fmt.Sprintf("%d", invoice.InvoiceID),
					invoice.InvoiceKey,
					invoice.Status,
					invoice.CreatedAt,
				})
			}
			table.Render()
		},
	}
}
