// Command kiosk is a terminal storefront client: it browses the inventory
// API, keeps a locally persisted cart, and can watch availability as it
// changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"
	"time"

	"void-shop/internal/cart"
	"void-shop/internal/client"
	"void-shop/internal/config"
	"void-shop/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: kiosk [flags] <command> [args]

Commands:
  list              show the full inventory
  watch             poll the inventory and print changes (Ctrl-C to stop)
  add <id>          add a product to the cart
  remove <id>       remove a product from the cart
  buy <id>          purchase one unit
  cart              show the cart contents and total
  clear             empty the cart

Flags:
`)
	flag.PrintDefaults()
}

func run() error {
	baseURL := flag.String("url", os.Getenv("API_BASE_URL"), "API base URL (default: resolved from hostname)")
	interval := flag.Duration("interval", defaultPollInterval(), "poll interval for watch")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		return fmt.Errorf("a command is required")
	}

	logger := config.NewLogger(config.LoggerConfig{Level: "warn", Format: "console"})

	url := *baseURL
	if url == "" {
		hostname, _ := os.Hostname()
		url = client.ResolveBaseURL(hostname)
	}
	api := client.New(url, nil, logger)

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	storage := cart.NewFileStorage(filepath.Join(cacheDir, "void-shop"))
	basket := cart.New(storage, api, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch cmd := flag.Arg(0); cmd {
	case "list":
		return listInventory(ctx, api)
	case "watch":
		return watchInventory(api, *interval)
	case "add":
		return addToCart(ctx, api, basket, flag.Arg(1))
	case "remove":
		return removeFromCart(basket, flag.Arg(1))
	case "buy":
		return buyProduct(ctx, api, flag.Arg(1))
	case "cart":
		return showCart(basket)
	case "clear":
		basket.Clear()
		fmt.Println("Cart cleared.")
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// defaultPollInterval honours POLL_INTERVAL (seconds) like the server
// config does, falling back to 3s.
func defaultPollInterval() time.Duration {
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 3 * time.Second
}

func listInventory(ctx context.Context, api *client.Client) error {
	inventory, err := api.GetInventory(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch inventory: %w", err)
	}

	printInventory(inventory)
	return nil
}

func watchInventory(api *client.Client, interval time.Duration) error {
	watcher := cart.NewWatcher(interval, api.GetInventory, func(snapshot map[string]model.InventoryEntry) {
		fmt.Printf("--- %s ---\n", time.Now().Format(time.TimeOnly))
		if len(snapshot) == 0 {
			fmt.Println("(inventory unavailable)")
			return
		}
		printInventory(snapshot)
	}, config.NewLogger(config.LoggerConfig{Level: "warn", Format: "console"}))

	watcher.Start()
	defer watcher.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	return nil
}

func addToCart(ctx context.Context, api *client.Client, basket *cart.Cart, id string) error {
	if id == "" {
		return fmt.Errorf("a product id is required")
	}

	product, err := api.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch product: %w", err)
	}

	item := cart.Item{ID: product.ProductID, Title: product.Name, Price: product.Price, Qty: 1}
	if err := basket.Add(ctx, item); err != nil {
		return fmt.Errorf("could not add %s: %w", id, err)
	}

	fmt.Printf("Added %s (%d items in cart).\n", product.Name, basket.Count())
	return nil
}

func removeFromCart(basket *cart.Cart, id string) error {
	if id == "" {
		return fmt.Errorf("a product id is required")
	}
	if !basket.Remove(id) {
		return fmt.Errorf("%s is not in the cart", id)
	}
	fmt.Printf("Removed %s.\n", id)
	return nil
}

func buyProduct(ctx context.Context, api *client.Client, id string) error {
	if id == "" {
		return fmt.Errorf("a product id is required")
	}

	outcome := api.Purchase(ctx, id)
	if !outcome.Success {
		return fmt.Errorf("purchase failed: %s", outcome.Error)
	}

	fmt.Printf("%s (remaining: %d", outcome.Message, outcome.NewQuantity)
	if outcome.SoldOut {
		fmt.Print(", now sold out")
	}
	fmt.Println(")")
	return nil
}

func showCart(basket *cart.Cart) error {
	items := basket.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%-12s %-20s x%d  €%.2f\n", item.ID, item.Title, item.Qty, item.Price*float64(item.Qty))
	}
	fmt.Printf("Total: €%.2f (%d items)\n", basket.Total(), basket.Count())
	return nil
}

func printInventory(inventory map[string]model.InventoryEntry) {
	ids := make([]string, 0, len(inventory))
	for id := range inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := inventory[id]
		status := fmt.Sprintf("%d in stock", entry.Quantity)
		if entry.Quantity == 0 {
			status = "SOLD OUT"
		}
		fmt.Printf("%-12s %-20s €%.2f  %s\n", id, entry.Name, entry.Price, status)
	}
}
