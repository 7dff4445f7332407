package webcore

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const exchangeBase = "/exchange-service/v1"

// FetchExchanges lists the supported exchanges, served through the reference
// cache.
func (c *Client) FetchExchanges(ctx context.Context) ([]Exchange, error) {
	out, err := cachedGet(ctx, c, cacheKeyExchanges, c.config.Cache.ReferenceTTL, func(ctx context.Context) ([]Exchange, error) {
		var exchanges []Exchange
		if err := c.get(ctx, exchangeBase+"/exchanges", nil, &exchanges); err != nil {
			return nil, err
		}
		return exchanges, nil
	})
	if err != nil {
		return nil, c.serviceError(ctx, err, "could not load exchanges")
	}
	return out, nil
}

// UpdateExchange mutates an exchange and invalidates the cached list.
func (c *Client) UpdateExchange(ctx context.Context, exchangeID string, update ExchangeUpdate) (*Exchange, error) {
	var exchange Exchange
	if err := c.put(ctx, exchangeBase+"/exchanges/"+exchangeID, update, &exchange); err != nil {
		return nil, c.serviceError(ctx, err, "could not update exchange")
	}
	_ = c.cache.Delete(ctx, cacheKeyExchanges)
	return &exchange, nil
}

// FetchExchangeUsers lists the caller's connected exchange accounts.
func (c *Client) FetchExchangeUsers(ctx context.Context, userID string, query ListQuery) (*Page[ExchangeUser], error) {
	v := query.values()
	v.Set("userId", userID)

	var page Page[ExchangeUser]
	if err := c.get(ctx, exchangeBase+"/exchange-users", v, &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load exchange accounts")
	}
	return &page, nil
}

// FetchWallet reads the balances of one connected exchange account.
func (c *Client) FetchWallet(ctx context.Context, exchangeUserID string) (*Wallet, error) {
	var wallet Wallet
	if err := c.get(ctx, exchangeBase+"/exchange-users/"+exchangeUserID+"/wallet", nil, &wallet); err != nil {
		return nil, c.serviceError(ctx, err, "could not load wallet")
	}
	return &wallet, nil
}

// ConnectExchangeUser links an exchange account via API credentials.
func (c *Client) ConnectExchangeUser(ctx context.Context, eu ExchangeUser) (*ExchangeUser, error) {
	var created ExchangeUser
	if err := c.post(ctx, exchangeBase+"/exchange-users", eu, &created); err != nil {
		return nil, c.serviceError(ctx, err, "could not connect exchange account")
	}
	return &created, nil
}

// DisconnectExchangeUser removes a connected exchange account.
func (c *Client) DisconnectExchangeUser(ctx context.Context, exchangeUserID string) error {
	if err := c.del(ctx, exchangeBase+"/exchange-users/"+exchangeUserID, nil); err != nil {
		return c.serviceError(ctx, err, "could not disconnect exchange account")
	}
	return nil
}

// UpdateExchangeUser rotates the credentials of a connected account.
func (c *Client) UpdateExchangeUser(ctx context.Context, exchangeUserID string, update ExchangeUserUpdate) (*ExchangeUser, error) {
	var eu ExchangeUser
	if err := c.put(ctx, exchangeBase+"/exchange-users/"+exchangeUserID, update, &eu); err != nil {
		return nil, c.serviceError(ctx, err, "could not update exchange account")
	}
	return &eu, nil
}

// FetchAlgorithms lists the caller's algorithms.
func (c *Client) FetchAlgorithms(ctx context.Context, query ListQuery) (*Page[Algorithm], error) {
	var page Page[Algorithm]
	if err := c.get(ctx, exchangeBase+"/algorithms", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load algorithms")
	}
	return &page, nil
}

// CreateAlgorithm describes the createalgorithm operation and its observable behavior.
//
// CreateAlgorithm may return an error when input validation, dependency calls, or security checks fail.
// CreateAlgorithm does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreateAlgorithm(ctx context.Context, algorithm Algorithm) (*Algorithm, error) {
	var created Algorithm
	if err := c.post(ctx, exchangeBase+"/algorithms", algorithm, &created); err != nil {
		return nil, c.serviceError(ctx, err, "could not create algorithm")
	}
	return &created, nil
}

// UpdateAlgorithm describes the updatealgorithm operation and its observable behavior.
//
// UpdateAlgorithm may return an error when input validation, dependency calls, or security checks fail.
// UpdateAlgorithm does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdateAlgorithm(ctx context.Context, algorithmID string, algorithm Algorithm) (*Algorithm, error) {
	var updated Algorithm
	if err := c.put(ctx, exchangeBase+"/algorithms/"+algorithmID, algorithm, &updated); err != nil {
		return nil, c.serviceError(ctx, err, "could not update algorithm")
	}
	return &updated, nil
}

// FetchOperators returns the condition-operator catalog, cached.
func (c *Client) FetchOperators(ctx context.Context) ([]CatalogEntry, error) {
	return c.fetchCatalog(ctx, cacheKeyOperators, "/operators", "could not load operators")
}

// FetchIndicators returns the indicator catalog, cached.
func (c *Client) FetchIndicators(ctx context.Context) ([]CatalogEntry, error) {
	return c.fetchCatalog(ctx, cacheKeyIndicators, "/indicators", "could not load indicators")
}

// FetchIntervals returns the candle-interval catalog, cached.
func (c *Client) FetchIntervals(ctx context.Context) ([]CatalogEntry, error) {
	return c.fetchCatalog(ctx, cacheKeyIntervals, "/intervals", "could not load intervals")
}

// FetchPeriods returns the period catalog, cached.
func (c *Client) FetchPeriods(ctx context.Context) ([]CatalogEntry, error) {
	return c.fetchCatalog(ctx, cacheKeyPeriods, "/periods", "could not load periods")
}

func (c *Client) fetchCatalog(ctx context.Context, key, path, fallback string) ([]CatalogEntry, error) {
	out, err := cachedGet(ctx, c, key, c.config.Cache.ReferenceTTL, func(ctx context.Context) ([]CatalogEntry, error) {
		var entries []CatalogEntry
		if err := c.get(ctx, exchangeBase+path, nil, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	})
	if err != nil {
		return nil, c.serviceError(ctx, err, fallback)
	}
	return out, nil
}

// FetchStrategies lists strategies.
func (c *Client) FetchStrategies(ctx context.Context, query ListQuery) (*Page[Strategy], error) {
	var page Page[Strategy]
	if err := c.get(ctx, exchangeBase+"/strategies", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load strategies")
	}
	return &page, nil
}

// FetchStrategiesForExchange lists the strategies runnable on one exchange.
func (c *Client) FetchStrategiesForExchange(ctx context.Context, exchangeID string) ([]Strategy, error) {
	var strategies []Strategy
	if err := c.get(ctx, exchangeBase+"/exchanges/"+exchangeID+"/strategies", nil, &strategies); err != nil {
		return nil, c.serviceError(ctx, err, "could not load strategies")
	}
	return strategies, nil
}

// CreateStrategy describes the createstrategy operation and its observable behavior.
//
// CreateStrategy may return an error when input validation, dependency calls, or security checks fail.
// CreateStrategy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreateStrategy(ctx context.Context, strategy Strategy) (*Strategy, error) {
	var created Strategy
	if err := c.post(ctx, exchangeBase+"/strategies", strategy, &created); err != nil {
		return nil, c.serviceError(ctx, err, "could not create strategy")
	}
	return &created, nil
}

// UpdateStrategy describes the updatestrategy operation and its observable behavior.
//
// UpdateStrategy may return an error when input validation, dependency calls, or security checks fail.
// UpdateStrategy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) UpdateStrategy(ctx context.Context, strategyID string, strategy Strategy) (*Strategy, error) {
	var updated Strategy
	if err := c.put(ctx, exchangeBase+"/strategies/"+strategyID, strategy, &updated); err != nil {
		return nil, c.serviceError(ctx, err, "could not update strategy")
	}
	return &updated, nil
}

// FetchStrategyAutomations lists all automations, admin scope.
func (c *Client) FetchStrategyAutomations(ctx context.Context, query ListQuery) (*Page[StrategyAutomation], error) {
	var page Page[StrategyAutomation]
	if err := c.get(ctx, exchangeBase+"/strategy-automations", query.values(), &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load automations")
	}
	return &page, nil
}

// FetchUserStrategyAutomations lists the automations of one user.
func (c *Client) FetchUserStrategyAutomations(ctx context.Context, userID string, query ListQuery) (*Page[StrategyAutomation], error) {
	v := query.values()
	v.Set("userId", userID)

	var page Page[StrategyAutomation]
	if err := c.get(ctx, exchangeBase+"/strategy-automations", v, &page); err != nil {
		return nil, c.serviceError(ctx, err, "could not load automations")
	}
	return &page, nil
}

// CreateStrategyAutomation describes the createstrategyautomation operation and its observable behavior.
//
// CreateStrategyAutomation may return an error when input validation, dependency calls, or security checks fail.
// CreateStrategyAutomation does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) CreateStrategyAutomation(ctx context.Context, automation StrategyAutomation) (*StrategyAutomation, error) {
	var created StrategyAutomation
	if err := c.post(ctx, exchangeBase+"/strategy-automations", automation, &created); err != nil {
		return nil, c.serviceError(ctx, err, "could not create automation")
	}
	return &created, nil
}

// FetchStrategyAutomationDetails reads one automation together with a page of
// its instances; onlyOpen restricts the page to open positions.
func (c *Client) FetchStrategyAutomationDetails(ctx context.Context, automationID string, query ListQuery, onlyOpen bool) (*StrategyAutomationDetails, error) {
	v := query.pageValues()
	v.Set("fetchOnlyOpenInstances", strconv.FormatBool(onlyOpen))

	var details StrategyAutomationDetails
	if err := c.get(ctx, exchangeBase+"/strategy-automations/"+automationID, v, &details); err != nil {
		return nil, c.serviceError(ctx, err, "could not load automation details")
	}
	return &details, nil
}

// CancelStrategyAutomation stops an automation; open instances keep running
// until individually cancelled.
func (c *Client) CancelStrategyAutomation(ctx context.Context, automationID string) error {
	if err := c.put(ctx, exchangeBase+"/strategy-automations/"+automationID+"/cancel", nil, nil); err != nil {
		return c.serviceError(ctx, err, "could not cancel automation")
	}
	return nil
}

// CancelStrategyAutomationInstance closes one open instance of an automation.
func (c *Client) CancelStrategyAutomationInstance(ctx context.Context, automationID, instanceID string) error {
	path := exchangeBase + "/strategy-automations/" + automationID + "/instances/" + instanceID + "/cancel"
	if err := c.put(ctx, path, nil, nil); err != nil {
		return c.serviceError(ctx, err, "could not cancel automation instance")
	}
	return nil
}

// FetchDashboardSummary aggregates trading results for one exchange account
// over a date range.
func (c *Client) FetchDashboardSummary(ctx context.Context, exchangeUserID string, start, end time.Time) (*DashboardSummary, error) {
	v := url.Values{}
	v.Set("exchangeUserId", exchangeUserID)
	v.Set("startDate", start.Format(time.RFC3339))
	v.Set("endDate", end.Format(time.RFC3339))

	var summary DashboardSummary
	if err := c.get(ctx, exchangeBase+"/dashboard/summary", v, &summary); err != nil {
		return nil, c.serviceError(ctx, err, "could not load dashboard summary")
	}
	return &summary, nil
}
