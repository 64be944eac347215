package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/config"
	"github.com/ampereshop/storeapi/internal/domain"
	"github.com/ampereshop/storeapi/internal/repository"
	"github.com/ampereshop/storeapi/internal/repository/mongodb"
)

// seedProducts is a small starter catalog for local development
var seedProducts = []domain.Product{
	{
		Name:        "100 kVA Distribution Transformer",
		Description: "Oil-cooled three-phase distribution transformer, 11kV/433V",
		Brand:       "AmperePower",
		Price:       185000,
		Category:    "Transformers",
		Images:      []string{"/images/transformer-100kva.jpg"},
		Specifications: []domain.Specification{
			{Key: "Rating", Value: "100 kVA"},
			{Key: "Primary Voltage", Value: "11 kV"},
			{Key: "Secondary Voltage", Value: "433 V"},
			{Key: "Cooling", Value: "ONAN"},
		},
		CountInStock: 4,
	},
	{
		Name:        "10 kVA Online UPS",
		Description: "Double-conversion online UPS for industrial loads",
		Brand:       "AmperePower",
		Price:       92500,
		Category:    "UPS Systems",
		Images:      []string{"/images/ups-10kva.jpg"},
		Specifications: []domain.Specification{
			{Key: "Capacity", Value: "10 kVA"},
			{Key: "Topology", Value: "Online double conversion"},
			{Key: "Backup Time", Value: "30 min at full load"},
		},
		CountInStock: 12,
	},
	{
		Name:        "63A Automatic Changeover Switch",
		Description: "Four-pole automatic transfer switch for generator backup",
		Brand:       "SwitchSafe",
		Price:       8400,
		Category:    "Switchgear",
		Images:      []string{"/images/ats-63a.jpg"},
		Specifications: []domain.Specification{
			{Key: "Rated Current", Value: "63 A"},
			{Key: "Poles", Value: "4"},
		},
		CountInStock: 40,
	},
	{
		Name:        "30 kVA Servo Voltage Stabilizer",
		Description: "Three-phase servo stabilizer with digital display",
		Brand:       "AmperePower",
		Price:       64000,
		Category:    "Stabilizers",
		Images:      []string{"/images/stabilizer-30kva.jpg"},
		Specifications: []domain.Specification{
			{Key: "Capacity", Value: "30 kVA"},
			{Key: "Input Range", Value: "340-480 V"},
		},
		CountInStock: 7,
	},
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()

	// Connect to the document store
	db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to mongo: %v\n", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(ctx)

	repos := &repository.Repositories{}
	mongodb.Attach(ctx, repos, db, logger)

	for i := range seedProducts {
		product := seedProducts[i]
		if err := repos.Product.Create(ctx, &product); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed %q: %v\n", product.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %s (%s)\n", product.Name, product.ID)
	}

	fmt.Printf("\n✅ Seeded %d products.\n", len(seedProducts))
}
