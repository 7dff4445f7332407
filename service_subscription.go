package webcore

import (
	"context"
)

const subscriptionBase = "/subscription-service/v1"

// FetchPricingPlans returns the plan catalog, cached. The backend wraps the
// plans in a paged envelope; only the content is cached and returned.
func (c *Client) FetchPricingPlans(ctx context.Context) ([]PricingPlan, error) {
	out, err := cachedGet(ctx, c, cacheKeyPricingPlans, c.config.Cache.ReferenceTTL, func(ctx context.Context) ([]PricingPlan, error) {
		var page Page[PricingPlan]
		if err := c.get(ctx, subscriptionBase+"/pricing-plans", nil, &page); err != nil {
			return nil, err
		}
		return page.Content, nil
	})
	if err != nil {
		return nil, c.serviceError(ctx, err, "could not load pricing plans")
	}
	return out, nil
}

// FetchUserSubscriptions pages through the caller's own subscriptions using
// the held session identity. Fails with [ErrSessionRequired] when no session
// is active.
func (c *Client) FetchUserSubscriptions(ctx context.Context, query ListQuery) (*Page[Subscription], error) {
	userID, _ := c.session.Identity()
	if userID == "" {
		return nil, ErrSessionRequired
	}

	v := query.values()
	v.Set("userId", userID)

	var page Page[Subscription]
	if err := c.get(ctx, subscriptionBase+"/subscriptions", v, &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load subscriptions")
	}
	return &page, nil
}

// FetchSubscriptions lists all subscriptions, admin scope.
func (c *Client) FetchSubscriptions(ctx context.Context, query ListQuery) (*Page[Subscription], error) {
	var page Page[Subscription]
	if err := c.get(ctx, subscriptionBase+"/subscriptions", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load subscriptions")
	}
	return &page, nil
}

// FetchTransaction reads one payment transaction, used by the payment-status
// polling screen.
func (c *Client) FetchTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	var tx Transaction
	if err := c.get(ctx, subscriptionBase+"/transactions/"+transactionID, nil, &tx); err != nil {
		return nil, c.serviceError(ctx, err, "could not load transaction")
	}
	return &tx, nil
}

// ApplyPromoCode validates a promo code against a plan and returns the
// resulting promotion.
func (c *Client) ApplyPromoCode(ctx context.Context, planID, code string) (*Promotion, error) {
	body := map[string]string{"planId": planID, "code": code}
	var promo Promotion
	if err := c.post(ctx, subscriptionBase+"/promotions/apply", body, &promo); err != nil {
		return nil, c.serviceError(ctx, err, "could not apply promo code")
	}
	return &promo, nil
}

// InitiatePayment starts a payment flow and returns the created transaction
// for the caller to poll.
func (c *Client) InitiatePayment(ctx context.Context, req PaymentRequest) (*Transaction, error) {
	var tx Transaction
	if err := c.post(ctx, subscriptionBase+"/payments", req, &tx); err != nil {
		return nil, c.serviceError(ctx, err, "could not initiate payment")
	}
	return &tx, nil
}

// FetchSubscriptionsSummary aggregates subscription counts and revenue,
// admin scope.
func (c *Client) FetchSubscriptionsSummary(ctx context.Context) (*SubscriptionsSummary, error) {
	var summary SubscriptionsSummary
	if err := c.get(ctx, subscriptionBase+"/subscriptions/summary", nil, &summary); err != nil {
		return nil, c.serviceError(ctx, err, "could not load subscriptions summary")
	}
	return &summary, nil
}

// InactivateSubscription describes the inactivatesubscription operation and its observable behavior.
//
// InactivateSubscription may return an error when input validation, dependency calls, or security checks fail.
// InactivateSubscription does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) InactivateSubscription(ctx context.Context, subscriptionID string) error {
	if err := c.put(ctx, subscriptionBase+"/subscriptions/"+subscriptionID+"/inactivate", nil, nil); err != nil {
		return c.serviceError(ctx, err, "could not inactivate subscription")
	}
	return nil
}

// FetchPromotions lists promotions, admin scope.
func (c *Client) FetchPromotions(ctx context.Context, query ListQuery) (*Page[Promotion], error) {
	var page Page[Promotion]
	if err := c.get(ctx, subscriptionBase+"/promotions", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load promotions")
	}
	return &page, nil
}

// CreatePromotion describes the createpromotion operation and its observable behavior.
//
// CreatePromotion may return an error when input validation, dependency calls, or security checks fail.
// CreatePromotion does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreatePromotion(ctx context.Context, promo Promotion) (*Promotion, error) {
	var created Promotion
	if err := c.post(ctx, subscriptionBase+"/promotions", promo, &created); err != nil {
		return nil, c.serviceError(ctx, err, "could not create promotion")
	}
	return &created, nil
}

// UpdatePromotion describes the updatepromotion operation and its observable behavior.
//
// UpdatePromotion may return an error when input validation, dependency calls, or security checks fail.
// UpdatePromotion does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdatePromotion(ctx context.Context, promotionID string, promo Promotion) (*Promotion, error) {
	var updated Promotion
	if err := c.put(ctx, subscriptionBase+"/promotions/"+promotionID, promo, &updated); err != nil {
		return nil, c.serviceError(ctx, err, "could not update promotion")
	}
	return &updated, nil
}

// FetchStripePublishableKey returns the publishable key the payment form
// initializes Stripe with.
func (c *Client) FetchStripePublishableKey(ctx context.Context) (string, error) {
	var key struct {
		PublishableKey string `json:"publishableKey"`
	}
	if err := c.get(ctx, subscriptionBase+"/payments/stripe/publishable-key", nil, &key); err != nil {
		return "", c.serviceError(ctx, err, "could not load payment configuration")
	}
	return key.PublishableKey, nil
}

// UpdateSenderWallet records the wallet address a crypto payment will arrive
// from.
func (c *Client) UpdateSenderWallet(ctx context.Context, transactionID, wallet string) (*Transaction, error) {
	body := map[string]string{"senderWallet": wallet}
	var tx Transaction
	if err := c.put(ctx, subscriptionBase+"/transactions/"+transactionID+"/sender-wallet", body, &tx); err != nil {
		return nil, c.serviceError(ctx, err, "could not update sender wallet")
	}
	return &tx, nil
}
