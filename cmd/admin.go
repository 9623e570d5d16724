package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tmasrour/zanbil/client"
	"github.com/tmasrour/zanbil/pkg/validation"
)

// adminCmd groups the back-office commands. They hit the same API as the
// shopper commands; the backend rejects them for non-admin accounts.
func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the store's catalogue and orders (admin account required)",
	}

	cmd.AddCommand(
		adminProductCmd(),
		adminCategoryCmd(),
		adminOrderCmd(),
	)

	return cmd
}

func adminProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Add, edit, or delete products",
	}

	cmd.AddCommand(
		adminProductAddCmd(),
		adminProductEditCmd(),
		adminProductDeleteCmd(),
	)

	return cmd
}

// productFormFlags registers the product field flags shared by add and edit.
func productFormFlags(cmd *cobra.Command, form *client.ProductForm, imagePath *string) {
	cmd.Flags().StringVarP(&form.ProductName, "name", "n", "", "Product name")
	cmd.Flags().Float64VarP(&form.Price, "price", "p", 0, "Product price")
	cmd.Flags().IntVarP(&form.CategoryID, "category", "c", 0, "ID of the category the product belongs to")
	cmd.Flags().StringVarP(&form.SKU, "sku", "s", "", "Stock keeping unit")
	cmd.Flags().IntVarP(&form.StockQuantity, "stock", "q", 0, "Units in stock")
	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "Product description")
	cmd.Flags().Float64Var(&form.Discount, "discount", 0, "Discount percentage (0-100)")
	cmd.Flags().Float64Var(&form.Rating, "rating", 0, "Product rating (0-5)")
	cmd.Flags().StringVar(imagePath, "image", "", "Path of the product image to upload")
}

func markRequiredFlags(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Error().Err(err).Msgf("Failed to mark '%s' flag as required", name)
		}
	}
}

// attachImage opens imagePath and wires it into the form. The returned closer
// is non-nil when a file was opened and must be closed after the upload.
func attachImage(imagePath string, name *string, reader *io.Reader) (io.Closer, error) {
	if imagePath == "" {
		return nil, nil
	}
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, err
	}
	*name = filepath.Base(imagePath)
	*reader = file
	return file, nil
}

func adminProductAddCmd() *cobra.Command {
	var form client.ProductForm
	var imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalogue",
		Run: func(cmd *cobra.Command, args []string) {
			closer, err := attachImage(imagePath, &form.ImageName, &form.Image)
			if err != nil {
				cmd.PrintErrln("Error: Failed to open the image file:", err)
				return
			}
			if closer != nil {
				defer closer.Close()
			}

			api := newAPIClient()
			product, err := api.CreateProduct(cmd.Context(), form)
			if err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msg("Failed to create product")
				return
			}
			if product.ProductID != "" {
				cmd.Printf("Product created with ID %s.\n", product.ProductID)
				return
			}
			cmd.Println("Product created.")
		},
	}

	productFormFlags(cmd, &form, &imagePath)
	markRequiredFlags(cmd, "name", "price", "category", "sku", "stock")
	return cmd
}

func adminProductEditCmd() *cobra.Command {
	var productID string
	var form client.ProductForm
	var imagePath string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Overwrite a product's details",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateProductID(productID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			closer, err := attachImage(imagePath, &form.ImageName, &form.Image)
			if err != nil {
				cmd.PrintErrln("Error: Failed to open the image file:", err)
				return
			}
			if closer != nil {
				defer closer.Close()
			}

			api := newAPIClient()
			if err := api.UpdateProduct(cmd.Context(), productID, form); err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msgf("Failed to update product with ID=%s", productID)
				return
			}
			cmd.Println("Product updated.")
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to edit")
	productFormFlags(cmd, &form, &imagePath)
	markRequiredFlags(cmd, "id", "name", "price", "category", "sku", "stock")
	return cmd
}

func adminProductDeleteCmd() *cobra.Command {
	var productID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a product from the catalogue",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateProductID(productID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.DeleteProduct(cmd.Context(), productID); err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msgf("Failed to delete product with ID=%s", productID)
				return
			}
			cmd.Println("Product deleted.")
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to delete")
	markRequiredFlags(cmd, "id")
	return cmd
}

func adminCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Add, edit, or delete product categories",
	}

	cmd.AddCommand(
		adminCategoryAddCmd(),
		adminCategoryEditCmd(),
		adminCategoryDeleteCmd(),
	)

	return cmd
}

func categoryFormFlags(cmd *cobra.Command, form *client.CategoryForm, imagePath *string) {
	cmd.Flags().StringVarP(&form.CategoryName, "name", "n", "", "Category name")
	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "Category description")
	cmd.Flags().StringVar(imagePath, "image", "", "Path of the category image to upload")
}

func adminCategoryAddCmd() *cobra.Command {
	var form client.CategoryForm
	var imagePath string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product category",
		Run: func(cmd *cobra.Command, args []string) {
			closer, err := attachImage(imagePath, &form.ImageName, &form.Image)
			if err != nil {
				cmd.PrintErrln("Error: Failed to open the image file:", err)
				return
			}
			if closer != nil {
				defer closer.Close()
			}

			api := newAPIClient()
			category, err := api.CreateCategory(cmd.Context(), form)
			if err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msg("Failed to create category")
				return
			}
			if category.CategoryID > 0 {
				cmd.Printf("Category created with ID %d.\n", category.CategoryID)
				return
			}
			cmd.Println("Category created.")
		},
	}

	categoryFormFlags(cmd, &form, &imagePath)
	markRequiredFlags(cmd, "name")
	return cmd
}

func adminCategoryEditCmd() *cobra.Command {
	var categoryID int
	var form client.CategoryForm
	var imagePath string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Overwrite a category's details",
		Run: func(cmd *cobra.Command, args []string) {
			closer, err := attachImage(imagePath, &form.ImageName, &form.Image)
			if err != nil {
				cmd.PrintErrln("Error: Failed to open the image file:", err)
				return
			}
			if closer != nil {
				defer closer.Close()
			}

			api := newAPIClient()
			if err := api.UpdateCategory(cmd.Context(), categoryID, form); err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msgf("Failed to update category with ID=%d", categoryID)
				return
			}
			cmd.Println("Category updated.")
		},
	}

	cmd.Flags().IntVarP(&categoryID, "id", "i", 0, "ID of the category to edit")
	categoryFormFlags(cmd, &form, &imagePath)
	markRequiredFlags(cmd, "id", "name")
	return cmd
}

func adminCategoryDeleteCmd() *cobra.Command {
	var categoryID int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a product category",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			if err := api.DeleteCategory(cmd.Context(), categoryID); err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msgf("Failed to delete category with ID=%d", categoryID)
				return
			}
			cmd.Println("Category deleted.")
		},
	}

	cmd.Flags().IntVarP(&categoryID, "id", "i", 0, "ID of the category to delete")
	markRequiredFlags(cmd, "id")
	return cmd
}

func adminOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Update or delete placed orders",
	}

	cmd.AddCommand(
		adminOrderUpdateCmd(),
		adminOrderDeleteCmd(),
	)

	return cmd
}

func adminOrderUpdateCmd() *cobra.Command {
	var orderID string
	var update client.OrderUpdate

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change the status or details of a placed order",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("order ID", orderID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if update.Status == "" && update.PaymentMethod == "" && update.ShippingAddress == "" {
				cmd.PrintErrln("Error: at least one of --status, --method, or --address is required.")
				return
			}
			if update.PaymentMethod != "" && !isValidPaymentMethod(update.PaymentMethod) {
				cmd.PrintErrf("Error: Invalid payment method '%s'. Valid methods are:\n", update.PaymentMethod)
				for code, name := range paymentMethods {
					cmd.Printf("  %s (%s)\n", code, name)
				}
				return
			}

			api := newAPIClient()
			if err := api.UpdateOrder(cmd.Context(), orderID, update); err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msgf("Failed to update order with ID=%s", orderID)
				return
			}
			cmd.Println("Order updated.")
		},
	}

	cmd.Flags().StringVarP(&orderID, "id", "i", "", "ID of the order to update")
	cmd.Flags().StringVarP(&update.Status, "status", "s", "", "New order status (e.g. Pending, Shipped, Delivered)")
	cmd.Flags().StringVarP(&update.PaymentMethod, "method", "m", "", "New payment method")
	cmd.Flags().StringVarP(&update.ShippingAddress, "address", "a", "", "New shipping address")
	markRequiredFlags(cmd, "id")
	return cmd
}

func adminOrderDeleteCmd() *cobra.Command {
	var orderID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a placed order",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("order ID", orderID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.DeleteOrder(cmd.Context(), orderID); err != nil {
				cmd.PrintErrln("Error:", classifyError(err).Message)
				log.Error().Err(err).Msgf("Failed to delete order with ID=%s", orderID)
				return
			}
			cmd.Println("Order deleted.")
		},
	}

	cmd.Flags().StringVarP(&orderID, "id", "i", "", "ID of the order to delete")
	markRequiredFlags(cmd, "id")
	return cmd
}
