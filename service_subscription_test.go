package webcore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
)

type subscriptionBackend struct {
	planFetches atomic.Int64
	gotUserID   string
}

func (b *subscriptionBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /subscription-service/v1/pricing-plans", func(w http.ResponseWriter, _ *http.Request) {
		b.planFetches.Add(1)
		_ = json.NewEncoder(w).Encode(Page[PricingPlan]{
			Content: []PricingPlan{
				{ID: "basic", Name: "Basic", Price: "9.99", Currency: "USD", DurationDays: 30},
				{ID: "pro", Name: "Pro", Price: "29.99", Currency: "USD", DurationDays: 30},
			},
			TotalElements: 2,
		})
	})

	mux.HandleFunc("GET /subscription-service/v1/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		b.gotUserID = r.URL.Query().Get("userId")
		_ = json.NewEncoder(w).Encode(Page[Subscription]{
			Content: []Subscription{{ID: "sub-1", UserID: b.gotUserID, Status: "ACTIVE"}},
		})
	})

	mux.HandleFunc("GET /subscription-service/v1/payments/stripe/publishable-key", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"publishableKey": "pk_test_123"})
	})

	return mux
}

func TestFetchPricingPlansCachesUnwrappedContent(t *testing.T) {
	backend := &subscriptionBackend{}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	plans, err := c.FetchPricingPlans(context.Background())
	if err != nil {
		t.Fatalf("FetchPricingPlans failed: %v", err)
	}
	if len(plans) != 2 || plans[1].ID != "pro" {
		t.Fatalf("unexpected plans %v", plans)
	}

	if _, err := c.FetchPricingPlans(context.Background()); err != nil {
		t.Fatalf("second FetchPricingPlans failed: %v", err)
	}
	if got := backend.planFetches.Load(); got != 1 {
		t.Fatalf("expected one backend fetch, got %d", got)
	}
}

func TestFetchUserSubscriptionsRequiresSession(t *testing.T) {
	backend := &subscriptionBackend{}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	if _, err := c.FetchUserSubscriptions(context.Background(), ListQuery{PageSize: 10}); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}

	establishSession(t, c)

	page, err := c.FetchUserSubscriptions(context.Background(), ListQuery{PageSize: 10})
	if err != nil {
		t.Fatalf("FetchUserSubscriptions failed: %v", err)
	}
	if backend.gotUserID != "user-1" {
		t.Fatalf("expected held user id on the wire, got %q", backend.gotUserID)
	}
	if len(page.Content) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestFetchStripePublishableKey(t *testing.T) {
	backend := &subscriptionBackend{}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	key, err := c.FetchStripePublishableKey(context.Background())
	if err != nil {
		t.Fatalf("FetchStripePublishableKey failed: %v", err)
	}
	if key != "pk_test_123" {
		t.Fatalf("unexpected key %q", key)
	}
}
