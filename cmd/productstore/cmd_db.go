package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/acme/productstore/app/models"
	"github.com/acme/productstore/config"
	"github.com/acme/productstore/database/seeders"
	"github.com/acme/productstore/pkg/database"
	"github.com/acme/productstore/pkg/logger"
)

// bootDB loads config and opens the database connection.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect()
}

// productstore db:create
var dbCreateCmd = &cobra.Command{
	Use:   "db:create",
	Short: "Create the products table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			return err
		}
		logger.Info("products table ready")
		return nil
	},
}

// productstore db:drop
var dbDropCmd = &cobra.Command{
	Use:   "db:drop",
	Short: "Drop the products table",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		if err := db.Migrator().DropTable(&models.Product{}); err != nil {
			return err
		}
		logger.Info("products table dropped")
		return nil
	},
}

// productstore seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the catalogue with random products",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		if count > 0 {
			seeders.ProductCount = count
		}
		return seeders.RunAll(db)
	},
}

func init() {
	seedCmd.Flags().Int("count", 0, "number of products to seed (default 25)")
}
