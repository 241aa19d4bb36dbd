// Package main loads a product catalog CSV into the shopbot sqlite
// database.
package main

import (
	"fmt"

	"github.com/kart-io/logger"
	"github.com/spf13/pflag"
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/shopbot/internal/model"
	"github.com/kart-io/shopbot/internal/pkg/csvutil"
	"github.com/kart-io/shopbot/pkg/app"
	"github.com/kart-io/shopbot/pkg/component/sqlite"
	logopts "github.com/kart-io/shopbot/pkg/options/logger"
	sqliteopts "github.com/kart-io/shopbot/pkg/options/sqlite"
)

// options holds the ingest command configuration.
type options struct {
	Log    *logopts.Options    `json:"log" mapstructure:"log"`
	SQLite *sqliteopts.Options `json:"sqlite" mapstructure:"sqlite"`

	// DataPath is the product CSV to load.
	DataPath string `json:"data-path" mapstructure:"data-path"`

	// Replace drops existing rows before loading.
	Replace bool `json:"replace" mapstructure:"replace"`
}

func newOptions() *options {
	return &options{
		Log:      logopts.NewOptions(),
		SQLite:   sqliteopts.NewOptions(),
		DataPath: "resources/product_data.csv",
	}
}

func (o *options) AddFlags(fs *pflag.FlagSet) {
	o.Log.AddFlags(fs)
	o.SQLite.AddFlags(fs)
	fs.StringVar(&o.DataPath, "data-path", o.DataPath, "Product CSV file to load")
	fs.BoolVar(&o.Replace, "replace", o.Replace, "Drop existing catalog rows before loading")
}

func (o *options) Complete() error {
	return nil
}

func (o *options) Validate() error {
	if err := o.Log.Validate(); err != nil {
		return err
	}
	if errs := o.SQLite.Validate(); len(errs) > 0 {
		return errs[0]
	}
	if o.DataPath == "" {
		return fmt.Errorf("data-path is required")
	}
	return nil
}

func run(opts *options) error {
	if err := opts.Log.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	products, err := csvutil.LoadProducts(opts.DataPath)
	if err != nil {
		return fmt.Errorf("failed to load product data: %w", err)
	}
	logger.Infow("product data loaded", "path", opts.DataPath, "count", len(products))

	client, err := sqlite.New(opts.SQLite)
	if err != nil {
		return fmt.Errorf("failed to open product database: %w", err)
	}
	defer client.Close()

	db := client.DB()
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return fmt.Errorf("failed to migrate product table: %w", err)
	}

	if opts.Replace {
		if err := db.Exec("DELETE FROM product").Error; err != nil {
			return fmt.Errorf("failed to clear product table: %w", err)
		}
		logger.Info("existing catalog rows removed")
	}

	if len(products) > 0 {
		if err := db.CreateInBatches(products, 500).Error; err != nil {
			return fmt.Errorf("failed to insert products: %w", err)
		}
	}

	logger.Infow("product catalog ingested",
		"database", opts.SQLite.Path,
		"rows", len(products),
	)
	return nil
}

func main() {
	opts := newOptions()

	app.NewApp(
		app.WithName("shopbot-ingest"),
		app.WithShortDescription("Load the product catalog CSV into sqlite"),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return run(opts)
		}),
	).Run()
}
