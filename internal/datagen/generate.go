package datagen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/order-api/internal/models"
)

// Totals configures how many rows of each entity the generator emits.
// ItemsPerOrder line items are drawn per order from distinct products.
type Totals struct {
	Users         int
	Products      int
	Orders        int
	ItemsPerOrder int
}

func DefaultTotals() Totals {
	return Totals{
		Users:         10_000,
		Products:      20_000,
		Orders:        40_000,
		ItemsPerOrder: 4,
	}
}

// referenceNow pins timestamps so a given seed always produces the same
// dataset.
var referenceNow = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

var categoryNames = []string{
	"Electronics", "Home & Kitchen", "Sports & Outdoors", "Books",
	"Toys & Games", "Beauty", "Health", "Automotive", "Clothing", "Shoes",
	"Jewelry", "Office", "Pet Supplies", "Garden", "Tools", "Music",
	"Movies", "Grocery", "Baby", "Art", "Furniture", "Crafts",
	"Video Games", "Appliances", "Smart Home",
}

var firstNames = []string{
	"Alice", "Bruno", "Carla", "Denis", "Elena", "Felix", "Greta", "Hugo",
	"Ivana", "Jonas", "Katya", "Leon", "Marta", "Nikola", "Olga", "Pavel",
	"Rosa", "Simon", "Tanya", "Viktor",
}

var lastNames = []string{
	"Adler", "Bergman", "Castillo", "Dvorak", "Eriksen", "Fischer",
	"Gustafsson", "Hoffman", "Ivanov", "Jensen", "Kowalski", "Larsson",
	"Moreau", "Novak", "Olsen", "Petrov", "Ricci", "Sokolov", "Tamm",
	"Vasquez",
}

var productAdjectives = []string{
	"Crimson", "Azure", "Emerald", "Ivory", "Amber", "Slate", "Coral",
	"Golden", "Silver", "Obsidian", "Teal", "Violet",
}

var productNouns = []string{
	"Widget", "Gadget", "Lamp", "Chair", "Kettle", "Speaker", "Backpack",
	"Notebook", "Blender", "Monitor", "Helmet", "Racket",
}

var statusChoices = []string{
	models.OrderStatusPending,
	models.OrderStatusPaid,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

var statusWeights = []float64{0.05, 0.35, 0.25, 0.30, 0.05}

func weightedStatus(rng *rand.Rand) string {
	r := rng.Float64()
	acc := 0.0
	for i, w := range statusWeights {
		acc += w
		if r < acc {
			return statusChoices[i]
		}
	}
	return statusChoices[len(statusChoices)-1]
}

func randomPrice(rng *rand.Rand) decimal.Decimal {
	return decimal.NewFromFloat(5 + rng.Float64()*495).Round(2)
}

func randomTimestamp(rng *rand.Rand, daysBack int) time.Time {
	window := time.Duration(daysBack) * 24 * time.Hour
	offset := time.Duration(rng.Float64() * float64(window))
	return referenceNow.Add(-window).Add(offset)
}

func writeCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Generate writes users.csv, categories.csv, products.csv, orders.csv and
// order_items.csv into dir, deterministically for a given seed. Line item
// unit prices are copied from the generated product prices so the loaded
// dataset satisfies the snapshot-price invariant.
func Generate(dir string, seed int64, totals Totals) error {
	if totals.ItemsPerOrder < 1 || totals.ItemsPerOrder > totals.Products {
		return fmt.Errorf("items per order %d out of range for %d products", totals.ItemsPerOrder, totals.Products)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))

	users := make([][]string, totals.Users)
	for i := range users {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		users[i] = []string{
			first + " " + last,
			fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			randomTimestamp(rng, 365).Format(time.RFC3339),
		}
	}
	if err := writeCSV(filepath.Join(dir, "users.csv"), []string{"full_name", "email", "created_at"}, users); err != nil {
		return err
	}

	categories := make([][]string, len(categoryNames))
	for i, name := range categoryNames {
		categories[i] = []string{name}
	}
	if err := writeCSV(filepath.Join(dir, "categories.csv"), []string{"name"}, categories); err != nil {
		return err
	}

	// index 0 unused; product ids are 1-based after load
	prices := make([]decimal.Decimal, totals.Products+1)
	products := make([][]string, totals.Products)
	for i := range products {
		id := i + 1
		price := randomPrice(rng)
		prices[id] = price
		name := fmt.Sprintf("%s %s %d",
			productAdjectives[rng.Intn(len(productAdjectives))],
			productNouns[rng.Intn(len(productNouns))],
			id,
		)
		products[i] = []string{
			strconv.Itoa(rng.Intn(len(categoryNames)) + 1),
			name,
			fmt.Sprintf("SKU%08d", id),
			price.StringFixed(2),
			strconv.Itoa(rng.Intn(1001)),
			randomTimestamp(rng, 365).Format(time.RFC3339),
		}
	}
	if err := writeCSV(
		filepath.Join(dir, "products.csv"),
		[]string{"category_id", "name", "sku", "price", "in_stock", "created_at"},
		products,
	); err != nil {
		return err
	}

	orders := make([][]string, totals.Orders)
	for i := range orders {
		orders[i] = []string{
			strconv.Itoa(rng.Intn(totals.Users) + 1),
			randomTimestamp(rng, 180).Format(time.RFC3339),
			weightedStatus(rng),
		}
	}
	if err := writeCSV(filepath.Join(dir, "orders.csv"), []string{"user_id", "order_date", "status"}, orders); err != nil {
		return err
	}

	items := make([][]string, 0, totals.Orders*totals.ItemsPerOrder)
	for orderID := 1; orderID <= totals.Orders; orderID++ {
		for _, productID := range sampleProducts(rng, totals.Products, totals.ItemsPerOrder) {
			items = append(items, []string{
				strconv.Itoa(orderID),
				strconv.Itoa(productID),
				strconv.Itoa(rng.Intn(5) + 1),
				prices[productID].StringFixed(2),
			})
		}
	}
	return writeCSV(
		filepath.Join(dir, "order_items.csv"),
		[]string{"order_id", "product_id", "quantity", "unit_price"},
		items,
	)
}

// sampleProducts draws n distinct product ids from [1, total].
func sampleProducts(rng *rand.Rand, total, n int) []int {
	picked := make(map[int]struct{}, n)
	ids := make([]int, 0, n)
	for len(ids) < n {
		id := rng.Intn(total) + 1
		if _, ok := picked[id]; ok {
			continue
		}
		picked[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
