package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/acme/productstore/app/models"
	"github.com/acme/productstore/app/repositories"
	"github.com/acme/productstore/config"
	"github.com/acme/productstore/pkg/cache"
	"github.com/acme/productstore/pkg/logger"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Query and modify the product catalogue",
}

func init() {
	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	productsCmd.AddCommand(productsCountCmd)

	listFlags := productsListCmd.Flags()
	listFlags.String("name", "", "filter by exact name")
	listFlags.String("category", "", "filter by category")
	listFlags.String("available", "", "filter by availability (true/false)")
	listFlags.String("price", "", "filter by exact price")
	listFlags.Bool("cached", false, "serve the unfiltered listing through the cache")

	createFlags := productsCreateCmd.Flags()
	createFlags.String("name", "", "product name (required)")
	createFlags.String("description", "", "product description")
	createFlags.String("price", "0", "product price")
	createFlags.Bool("available", false, "product availability")
	createFlags.String("category", string(models.CategoryUnknown), "product category")
	_ = productsCreateCmd.MarkFlagRequired("name")

	updateFlags := productsUpdateCmd.Flags()
	updateFlags.String("name", "", "new name")
	updateFlags.String("description", "", "new description")
	updateFlags.String("price", "", "new price")
	updateFlags.String("available", "", "new availability (true/false)")
	updateFlags.String("category", "", "new category")
}

func bootRepo() (*repositories.ProductRepository, error) {
	db, err := bootDB()
	if err != nil {
		return nil, err
	}
	return repositories.NewProductRepository(db), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q: %w", arg, err)
	}
	return uint(id), nil
}

// productstore products list [--name|--category|--available|--price]
var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, optionally filtered by one field",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := bootRepo()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		category, _ := flags.GetString("category")
		available, _ := flags.GetString("available")
		price, _ := flags.GetString("price")
		cached, _ := flags.GetBool("cached")

		var products []models.Product
		switch {
		case name != "":
			products, err = repo.FindByName(name)
		case category != "":
			var c models.Category
			if c, err = models.ParseCategory(category); err == nil {
				products, err = repo.FindByCategory(c)
			}
		case available != "":
			var flag bool
			if flag, err = strconv.ParseBool(available); err == nil {
				products, err = repo.FindByAvailability(flag)
			}
		case price != "":
			products, err = repo.FindByPrice(price)
		case cached:
			if cerr := cache.Connect(); cerr != nil {
				logger.Warn("cache unavailable, listing uncached", "error", cerr)
			}
			products, err = repo.AllCached(config.CacheTTL())
		default:
			products, err = repo.All()
		}
		if err != nil {
			return err
		}

		return printJSON(products)
	},
}

// productstore products get <id>
var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := bootRepo()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		product, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		return printJSON(product)
	},
}

// productstore products create --name ... [--price ...] [--category ...]
var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := bootRepo()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		description, _ := flags.GetString("description")
		priceArg, _ := flags.GetString("price")
		available, _ := flags.GetBool("available")
		categoryArg, _ := flags.GetString("category")

		price, err := models.NormalizePrice(priceArg)
		if err != nil {
			return err
		}
		category, err := models.ParseCategory(categoryArg)
		if err != nil {
			return err
		}

		product := models.Product{
			Name:        name,
			Description: description,
			Price:       price,
			Available:   available,
			Category:    category,
		}
		if err := repo.Create(&product); err != nil {
			return err
		}
		return printJSON(product)
	},
}

// productstore products update <id> [--name ...] [--price ...] ...
var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of an existing product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := bootRepo()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		product, err := repo.FindByID(id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			product.Name, _ = flags.GetString("name")
		}
		if flags.Changed("description") {
			product.Description, _ = flags.GetString("description")
		}
		if flags.Changed("price") {
			priceArg, _ := flags.GetString("price")
			if product.Price, err = models.NormalizePrice(priceArg); err != nil {
				return err
			}
		}
		if flags.Changed("available") {
			availableArg, _ := flags.GetString("available")
			if product.Available, err = strconv.ParseBool(availableArg); err != nil {
				return err
			}
		}
		if flags.Changed("category") {
			categoryArg, _ := flags.GetString("category")
			if product.Category, err = models.ParseCategory(categoryArg); err != nil {
				return err
			}
		}

		if err := repo.Update(product); err != nil {
			return err
		}
		return printJSON(product)
	},
}

// productstore products delete <id>
var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := bootRepo()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := repo.Delete(&models.Product{ID: id}); err != nil {
			return err
		}
		logger.Info("product deleted", "id", id)
		return nil
	},
}

// productstore products count
var productsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count products in the catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := bootRepo()
		if err != nil {
			return err
		}

		n, err := repo.Count()
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}
