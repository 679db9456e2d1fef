// Command loadtest drives the full registration pipeline concurrently
// against a throwaway ledger file and checks that no append is lost and
// no registration ID repeats.  Run it before the fest opens to validate
// the store's serialization on the target filesystem:
//
//	go run ./cmd/loadtest -n 50 -file /tmp/loadtest.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/model"
	"github.com/cache2k25/registration-backend/internal/payment"
	"github.com/cache2k25/registration-backend/internal/registration"
	"github.com/cache2k25/registration-backend/internal/repository"
)

// autoPayGateway stands in for the checkout widget: it immediately calls
// back with a correctly signed success for every order.
type autoPayGateway struct {
	secret []byte
}

func (g *autoPayGateway) Open(_ context.Context, order model.Order, _ payment.Prefill, _ payment.Channel) (payment.CheckoutResult, error) {
	paymentID := "pay_" + uuid.NewString()
	return payment.CheckoutSuccess{
		PaymentID: paymentID,
		OrderID:   order.ID,
		Signature: payment.Sign(order.ID, paymentID, g.secret),
	}, nil
}

func main() {
	n := flag.Int("n", 50, "number of concurrent registrations")
	file := flag.String("file", "loadtest_registrations.xlsx", "ledger file to write (removed first)")
	flag.Parse()

	_ = os.Remove(*file)
	defer os.Remove(*file)

	secret := []byte("loadtest_secret")
	cat := catalog.New()
	builder := registration.NewBuilder(cat)
	ledger := repository.NewLedger(*file, "LOADTEST")

	orch := &payment.Orchestrator{
		Orders:   payment.NewOrderService(),
		Gateway:  &autoPayGateway{secret: secret},
		Verifier: payment.NewHMACVerifier(string(secret)),
		Store:    ledger,
		Catalog:  cat,
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	var mu sync.Mutex
	confirmed := 0
	failed := 0

	start := time.Now()
	for i := 0; i < *n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pending, err := builder.Build(registration.Submission{
				EventID:         "web-dev",
				ParticipantName: fmt.Sprintf("Load Tester %02d", i),
				Email:           fmt.Sprintf("tester%02d@example.com", i),
				Phone:           fmt.Sprintf("98%08d", i),
				College:         "Load Test College",
			})
			if err != nil {
				log.Printf("goroutine %02d: build: %v", i, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			attempt := orch.Run(ctx, pending, payment.ChannelUPI)
			mu.Lock()
			defer mu.Unlock()
			if attempt.State == payment.StateConfirmed {
				confirmed++
				fmt.Printf("  goroutine %02d  confirmed  %s\n", i, attempt.RegistrationID)
			} else {
				failed++
				fmt.Printf("  goroutine %02d  %s: %v\n", i, attempt.State, attempt.Err)
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	rows, err := ledger.ListAll(ctx)
	if err != nil {
		log.Fatalf("list ledger: %v", err)
	}
	ids := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		ids[r.RegistrationID] = struct{}{}
	}

	fmt.Println("Attempts:         ", *n)
	fmt.Println("Confirmed:        ", confirmed)
	fmt.Println("Failed:           ", failed)
	fmt.Println("Rows in ledger:   ", len(rows))
	fmt.Println("Distinct IDs:     ", len(ids))
	fmt.Println("Elapsed:          ", elapsed)

	if confirmed == *n && len(rows) == *n && len(ids) == *n {
		fmt.Println("\nPASS: every append landed, no duplicate IDs, no lost updates")
		return
	}
	fmt.Println("\nFAIL: lost update or duplicate registration ID detected")
	os.Exit(1)
}
