package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/tmasrour/zanbil/client"
	"github.com/tmasrour/zanbil/db"
	"github.com/tmasrour/zanbil/pkg/pool"
	"github.com/tmasrour/zanbil/pkg/validation"
)

// catalogueCmd represents the base command when called without any subcommands
func catalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Browse and cache the product catalogue",
	}

	cmd.AddCommand(
		listCmd(),
		searchCmd(),
		infoCmd(),
		refreshCmd(),
		exportCmd(),
		categoriesCmd(),
	)

	return cmd
}

// listCmd shows the list of products in the local catalogue cache
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all products in the local catalogue cache",
		Run:   listProducts,
	}
}

func listProducts(cmd *cobra.Command, args []string) {
	log.Info().Msg("Listing all products in the catalogue...")

	products, err := db.GetCatalogue()
	if err != nil {
		cmd.PrintErrln("Error: Unable to list products. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to fetch products from the catalogue cache.")
		return
	}

	if len(products) == 0 {
		cmd.Println("No products found in the catalogue. Use `zanbil catalogue refresh` to update the catalogue.")
		return
	}

	renderProductTable(cmd, products)
	log.Info().Msgf("Successfully listed %d products in the catalogue.", len(products))
}

func renderProductTable(cmd *cobra.Command, products []db.Product) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Row ID", "Product ID", "Product Name", "Price"})

	// Table appearance settings
	table.SetColMinWidth(2, 50)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for i, cached := range products {
		var product client.Product
		price := ""
		if err := json.Unmarshal([]byte(cached.Data), &product); err == nil {
			price = fmt.Sprintf("%.2f", product.Price)
		}
		cleanedName := strings.ReplaceAll(cached.Name, "\n", " ")
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			cached.ID,
			cleanedName,
			price,
		})
	}

	table.Render()
}

// infoCmd shows detailed information about a specific product, given its ID
func infoCmd() *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show information about a specific product",
		Run: func(cmd *cobra.Command, args []string) {
			showProductInfo(cmd, productID)
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to show its information")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}

func showProductInfo(cmd *cobra.Command, productID string) {
	if err := validation.ValidateProductID(productID); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Fetching info for product with ID=%s", productID)

	cached, err := db.GetProductByID(productID)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to fetch info for product with ID=%s", productID)
		cmd.PrintErrln("Error:", err)
		return
	}

	if cached == nil {
		log.Info().Msgf("No product found with ID=%s", productID)
		cmd.Println("No product found with the specified ID. Use `zanbil catalogue refresh` to update the catalogue.")
		return
	}

	var product client.Product
	if err := json.Unmarshal([]byte(cached.Data), &product); err != nil {
		cmd.PrintErrln("Error: Failed to decode cached product data.")
		return
	}

	cmd.Println("Product Information:")
	cmd.Printf("ID: %s\n", product.ProductID)
	cmd.Printf("Name: %s\n", product.ProductName)
	cmd.Printf("Price: %.2f\n", product.Price)
	if product.Discount > 0 {
		cmd.Printf("Discount: %.0f%%\n", product.Discount)
	}
	cmd.Printf("In stock: %d\n", product.StockQuantity)
	if product.SKU != "" {
		cmd.Printf("SKU: %s\n", product.SKU)
	}
	if product.Category != nil {
		cmd.Printf("Category: %s\n", product.Category.CategoryName)
	}
	if product.Description != "" {
		cmd.Printf("Description: %s\n", product.Description)
	}
}

// refreshCmd rebuilds the local catalogue cache from the storefront API
func refreshCmd() *cobra.Command {
	var numWorkers int

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update the local catalogue cache with the latest data from the store",
		Run: func(cmd *cobra.Command, args []string) {
			refreshCatalogue(cmd, numWorkers)
		},
	}

	cmd.Flags().IntVarP(&numWorkers, "workers", "w", 5, "Number of workers to use for fetching product data")
	return cmd
}

func refreshCatalogue(cmd *cobra.Command, numWorkers int) {
	log.Info().Msg("Refreshing the product catalogue...")

	if err := validation.ValidateWorkerCount(numWorkers); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	api := newAPIClient()
	products, err := api.FetchAllProducts(cmd.Context(), 50)
	if err != nil {
		cmd.PrintErrln("Error: Failed to fetch the product listing. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to fetch product listing")
		return
	}
	if len(products) == 0 {
		cmd.Println("The store returned no products.")
		return
	}

	if err := db.EmptyCatalogue(); err != nil {
		log.Error().Err(err).Msg("Failed to empty the product catalogue.")
		cmd.PrintErrln("Error: Failed to empty the local catalogue cache.")
		return
	}

	log.Info().Msg("Products table truncated. Starting data refresh...")

	bar := progressbar.NewOptions(len(products),
		progressbar.OptionSetDescription("Refreshing catalogue..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)

	workerFunc := func(ctx context.Context, item client.Product) error {
		defer func() {
			if err := bar.Add(1); err != nil {
				log.Debug().Err(err).Msg("Failed to update progress bar")
			}
		}()

		product, raw, err := api.FetchProductData(ctx, item.ProductID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to fetch data for product with ID=%s", item.ProductID)
			return err
		}
		if err := db.PutProduct(product.ProductID, product.ProductName, raw); err != nil {
			log.Error().Err(err).Msgf("Failed to store product with ID=%s", item.ProductID)
			return err
		}
		return nil
	}

	errs := pool.Run(cmd.Context(), products, numWorkers, workerFunc)
	if err := bar.Finish(); err != nil {
		log.Debug().Err(err).Msg("Failed to finish progress bar")
	}

	if len(errs) > 0 {
		cmd.Printf("Refreshing finished with %d errors. Please check the logs for details.\n", len(errs))
		return
	}

	cmd.Printf("Refreshing completed successfully. There are %d products in the catalogue.\n", len(products))
}

// searchCmd searches for products in the local catalogue cache by ID or name
func searchCmd() *cobra.Command {
	var productID string
	var searchTerm string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for products in the catalogue by ID or name",
		Run: func(cmd *cobra.Command, args []string) {
			searchProducts(cmd, productID, searchTerm)
		},
	}

	cmd.Flags().StringVarP(&productID, "id", "i", "", "ID of the product to search")
	cmd.Flags().StringVarP(&searchTerm, "term", "t", "", "Search term to search for;"+
		" search is case-insensitive and does partial matching of the term with the product name")
	return cmd
}

func searchProducts(cmd *cobra.Command, productID, searchTerm string) {
	if productID == "" && searchTerm == "" {
		cmd.PrintErrln("Error: one of the flags --id or --term is required. Use `zanbil catalogue search -h` for more information.")
		return
	}
	if productID != "" && searchTerm != "" {
		cmd.PrintErrln("Error: only one of the flags --id or --term is required. Use `zanbil catalogue search -h` for more information.")
		return
	}

	var products []db.Product

	if productID != "" {
		log.Info().Msgf("Searching for product with ID=%s", productID)
		product, err := db.GetProductByID(productID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to fetch product with ID=%s", productID)
			cmd.PrintErrln("Error:", err)
			return
		}
		if product != nil {
			products = append(products, *product)
		}
	} else {
		log.Info().Msgf("Searching for products with term=%s", searchTerm)
		var err error
		products, err = db.SearchProductsByName(searchTerm)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to search products with term=%s", searchTerm)
			cmd.PrintErrln("Error:", err)
			return
		}
	}

	if len(products) == 0 {
		cmd.Println("No matching products found in the catalogue.")
		return
	}

	renderProductTable(cmd, products)
}

// exportCmd writes the local catalogue cache to a JSON file
func exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the local catalogue cache to a JSON file",
		Run: func(cmd *cobra.Command, args []string) {
			exportCatalogue(cmd, outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "catalogue.json", "Path of the JSON file to write")
	return cmd
}

func exportCatalogue(cmd *cobra.Command, outPath string) {
	products, err := db.GetCatalogue()
	if err != nil {
		cmd.PrintErrln("Error: Unable to export the catalogue. Please check the logs for details.")
		return
	}
	if len(products) == 0 {
		cmd.Println("No products found in the catalogue. Use `zanbil catalogue refresh` to update the catalogue.")
		return
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			cmd.PrintErrln("Error: Failed to create output directory:", err)
			return
		}
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		cmd.PrintErrln("Error: Failed to encode the catalogue.")
		return
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		cmd.PrintErrln("Error: Failed to write the export file:", err)
		return
	}

	cmd.Printf("Exported %d products to %s.\n", len(products), outPath)
}

// categoriesCmd lists the store's product categories
func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the store's product categories",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			categories, err := api.FetchCategories(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Error: Failed to fetch categories. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch categories")
				return
			}
			if len(categories) == 0 {
				cmd.Println("The store has no categories.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Items"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			for _, category := range categories {
				table.Append([]string{
					fmt.Sprintf("%d", category.CategoryID),
					category.CategoryName,
					fmt.Sprintf("%d", category.ItemsCount),
				})
			}
			table.Render()
		},
	}
}
