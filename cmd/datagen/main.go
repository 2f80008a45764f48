package main

import (
	"flag"
	"log"

	"github.com/orderdesk/order-api/internal/datagen"
)

func main() {
	defaults := datagen.DefaultTotals()

	out := flag.String("out", "data", "output directory for generated CSV files")
	seed := flag.Int64("seed", 20240320, "random seed")
	users := flag.Int("users", defaults.Users, "number of users")
	products := flag.Int("products", defaults.Products, "number of products")
	orders := flag.Int("orders", defaults.Orders, "number of orders")
	itemsPerOrder := flag.Int("items-per-order", defaults.ItemsPerOrder, "line items per order")
	flag.Parse()

	totals := datagen.Totals{
		Users:         *users,
		Products:      *products,
		Orders:        *orders,
		ItemsPerOrder: *itemsPerOrder,
	}

	if err := datagen.Generate(*out, *seed, totals); err != nil {
		log.Fatalf("generate error: %v", err)
	}
	log.Printf("CSV files generated in %s", *out)
}
