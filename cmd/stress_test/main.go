package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/vase-shop/internal/adapter/handler"
)

// Hammers one cart with concurrent AddItemToCart calls against a running
// server and checks that no increment was lost.
func main() {
	addr := flag.String("addr", "localhost:50051", "gRPC address of the server")
	totalRequests := flag.Int("n", 50, "concurrent add-to-cart calls")
	flag.Parse()

	ctx := context.Background()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	client := handler.NewShopClient(conn)

	cart, err := client.CreateNewShoppingCart(ctx)
	if err != nil {
		log.Fatalf("failed to create cart: %v", err)
	}
	vase, err := client.CreateVase(ctx, "Stress Vase", 10)
	if err != nil {
		log.Fatalf("failed to create vase: %v", err)
	}
	defer client.DeleteShoppingCart(ctx, cart.CartID)

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent requests
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := client.AddItemToCart(ctx, cart.CartID, vase.ID); err == nil {
				successCount.Add(1)
			} else {
				log.Printf("add item: %v", err)
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Total Requests:   %d\n", *totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	final, err := client.GetShoppingCartById(ctx, cart.CartID)
	if err != nil {
		log.Fatalf("failed to read cart: %v", err)
	}

	quantity := 0
	if len(final.Items) == 1 {
		quantity = final.Items[0].Quantity
	}
	fmt.Printf("Final Quantity:   %d\n", quantity)
	fmt.Printf("Final Total:      %.2f\n", final.TotalPrice)

	if quantity == int(success) {
		fmt.Println("PASS: no lost updates")
	} else {
		fmt.Printf("FAIL: expected quantity %d, got %d\n", success, quantity)
	}

	if final.TotalPrice == float64(quantity)*vase.UnitPrice {
		fmt.Println("PASS: total matches lines")
	} else {
		fmt.Printf("FAIL: expected total %.2f, got %.2f\n", float64(quantity)*vase.UnitPrice, final.TotalPrice)
	}
}
