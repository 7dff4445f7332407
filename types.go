package webcore

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Page is the generic paged envelope returned by backend list endpoints.
//
// Page instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNo        int   `json:"pageNo"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// ListQuery carries the common list-endpoint parameters: an rsql filter
// string, a zero-based page index, page size, and sort order. The page index
// is converted to the backend's 1-based pageNo on the wire.
type ListQuery struct {
	RSQL          string
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	v.Set("rsql", q.RSQL)
	v.Set("pageNo", strconv.Itoa(q.Page+1))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	v.Set("sortBy", q.SortBy)
	v.Set("sortDirection", q.SortDirection)
	return v
}

// pageValues is the variant without an rsql filter, used by endpoints that
// never accept one.
func (q ListQuery) pageValues() url.Values {
	v := q.values()
	v.Del("rsql")
	return v
}

// LoginResult is returned by [Client.Login], [Client.LoginWithGoogle], and
// [Client.ConfirmLogin2FA]. When TwoFactorAuthenticationEnabled is true the
// access token is a pre-auth token held client-side only and Cookie is nil;
// no session has been established yet.
type LoginResult struct {
	AccessToken                    string `json:"accessToken"`
	UserID                         string `json:"userId"`
	FirstName                      string `json:"firstName"`
	TwoFactorAuthenticationEnabled bool   `json:"twoFactorAuthenticationEnabled"`

	// Cookie is the logged-in marker the host must set on its response.
	// Nil while a second factor is still pending.
	Cookie *http.Cookie `json:"-"`
}

// RegisterRequest defines a public type used by webcore APIs.
//
// RegisterRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Terms     bool   `json:"terms"`
}

/*
====================================
EXCHANGE SERVICE TYPES
====================================
*/

// ExchangeStatus defines a public type used by webcore APIs.
//
// ExchangeStatus instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ExchangeStatus string

const (
	// ExchangePublic is an exported constant or variable used by the web client core.
	ExchangePublic ExchangeStatus = "PUBLIC"
	// ExchangePrivate is an exported constant or variable used by the web client core.
	ExchangePrivate ExchangeStatus = "PRIVATE"
	// ExchangeDisabled is an exported constant or variable used by the web client core.
	ExchangeDisabled ExchangeStatus = "DISABLED"
)

// Exchange defines a public type used by webcore APIs.
//
// Exchange instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Exchange struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Status  ExchangeStatus `json:"status"`
	LogoURL string         `json:"logoUrl,omitempty"`
}

// ExchangeUpdate is the mutable subset of [Exchange] accepted by
// [Client.UpdateExchange].
type ExchangeUpdate struct {
	Name   string         `json:"name,omitempty"`
	Status ExchangeStatus `json:"status,omitempty"`
}

// ExchangeUser links a platform user to an exchange account via API
// credentials.
type ExchangeUser struct {
	ID         string `json:"id,omitempty"`
	UserID     string `json:"userId"`
	ExchangeID string `json:"exchangeId"`
	Name       string `json:"name"`
	APIKey     string `json:"apiKey"`
	SecretKey  string `json:"secretKey"`
	Status     string `json:"status,omitempty"`
}

// ExchangeUserUpdate defines a public type used by webcore APIs.
//
// ExchangeUserUpdate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ExchangeUserUpdate struct {
	Name      string `json:"name"`
	APIKey    string `json:"apiKey"`
	SecretKey string `json:"secretKey"`
}

// WalletBalance defines a public type used by webcore APIs.
//
// WalletBalance instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type WalletBalance struct {
	Asset  string `json:"asset"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
}

// Wallet defines a public type used by webcore APIs.
//
// Wallet instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Wallet struct {
	ExchangeUserID string          `json:"exchangeUserId"`
	Balances       []WalletBalance `json:"balances"`
}

// Algorithm is a strategy-algorithm definition: a set of indicator/operator
// conditions evaluated by the automation engine.
type Algorithm struct {
	ID         string               `json:"id,omitempty"`
	Name       string               `json:"name"`
	Status     string               `json:"status,omitempty"`
	Conditions []AlgorithmCondition `json:"conditions,omitempty"`
}

// AlgorithmCondition defines a public type used by webcore APIs.
//
// AlgorithmCondition instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AlgorithmCondition struct {
	Indicator string  `json:"indicator"`
	Operator  string  `json:"operator"`
	Value     float64 `json:"value"`
	Interval  string  `json:"interval,omitempty"`
	Period    int     `json:"period,omitempty"`
}

// CatalogEntry is a single operator/indicator/interval/period catalog item.
type CatalogEntry struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
}

// Strategy defines a public type used by webcore APIs.
//
// Strategy instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Strategy struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Status      string `json:"status,omitempty"`
	AlgorithmID string `json:"algorithmId,omitempty"`
}

// StrategyAutomationStatus defines a public type used by webcore APIs.
//
// StrategyAutomationStatus instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StrategyAutomationStatus string

const (
	// AutomationNew is an exported constant or variable used by the web client core.
	AutomationNew StrategyAutomationStatus = "NEW"
	// AutomationStarted is an exported constant or variable used by the web client core.
	AutomationStarted StrategyAutomationStatus = "STARTED"
	// AutomationCompleted is an exported constant or variable used by the web client core.
	AutomationCompleted StrategyAutomationStatus = "COMPLETED"
	// AutomationCancelled is an exported constant or variable used by the web client core.
	AutomationCancelled StrategyAutomationStatus = "CANCELLED"
	// AutomationStopped is an exported constant or variable used by the web client core.
	AutomationStopped StrategyAutomationStatus = "STOPPED"
)

// StrategyAutomation defines a public type used by webcore APIs.
//
// StrategyAutomation instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StrategyAutomation struct {
	ID             string                   `json:"id,omitempty"`
	UserID         string                   `json:"userId"`
	StrategyID     string                   `json:"strategyId"`
	ExchangeUserID string                   `json:"exchangeUserId"`
	Symbol         string                   `json:"symbol"`
	Amount         string                   `json:"amount"`
	Status         StrategyAutomationStatus `json:"status,omitempty"`
}

// StrategyAutomationInstance is one open/closed position opened by an
// automation run.
type StrategyAutomationInstance struct {
	ID       string     `json:"id"`
	Status   string     `json:"status"`
	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
	Profit   string     `json:"profit,omitempty"`
}

// StrategyAutomationDetails defines a public type used by webcore APIs.
//
// StrategyAutomationDetails instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StrategyAutomationDetails struct {
	Automation StrategyAutomation               `json:"automation"`
	Instances  Page[StrategyAutomationInstance] `json:"instances"`
}

// DashboardSummary defines a public type used by webcore APIs.
//
// DashboardSummary instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DashboardSummary struct {
	TotalProfit       string `json:"totalProfit"`
	OpenPositions     int    `json:"openPositions"`
	ActiveAutomations int    `json:"activeAutomations"`
	TotalTrades       int64  `json:"totalTrades"`
}

/*
====================================
USER SERVICE TYPES
====================================
*/

// Notification defines a public type used by webcore APIs.
//
// Notification instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserProfile is the raw user-profile mirror cached without an expiry and
// invalidated manually by profile mutations.
type UserProfile struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage,omitempty"`
	TwoFAEnabled bool   `json:"twoFAEnabled"`
}

// ProfileUpdate defines a public type used by webcore APIs.
//
// ProfileUpdate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ProfileUpdate struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// UserDevice defines a public type used by webcore APIs.
//
// UserDevice instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UserDevice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
}

// UserActivity defines a public type used by webcore APIs.
//
// UserActivity instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UserActivity struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TicketStatus defines a public type used by webcore APIs.
//
// TicketStatus instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TicketStatus string

const (
	// TicketOpen is an exported constant or variable used by the web client core.
	TicketOpen TicketStatus = "OPEN"
	// TicketAssigned is an exported constant or variable used by the web client core.
	TicketAssigned TicketStatus = "ASSIGNED"
	// TicketInProgress is an exported constant or variable used by the web client core.
	TicketInProgress TicketStatus = "INPROGRESS"
	// TicketClosed is an exported constant or variable used by the web client core.
	TicketClosed TicketStatus = "CLOSED"
)

// Ticket defines a public type used by webcore APIs.
//
// Ticket instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Ticket struct {
	ID         string       `json:"id"`
	Message    string       `json:"message"`
	Status     TicketStatus `json:"status"`
	Priority   string       `json:"priority,omitempty"`
	AssignedTo string       `json:"assignedTo,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// TicketsSummary defines a public type used by webcore APIs.
//
// TicketsSummary instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TicketsSummary struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	Assigned   int64 `json:"assigned"`
	InProgress int64 `json:"inProgress"`
	Closed     int64 `json:"closed"`
}

// TicketUpdate defines a public type used by webcore APIs.
//
// TicketUpdate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TicketUpdate struct {
	Status   TicketStatus `json:"status,omitempty"`
	Priority string       `json:"priority,omitempty"`
	Message  string       `json:"message,omitempty"`
}

/*
====================================
SUBSCRIPTION SERVICE TYPES
====================================
*/

// PricingPlan defines a public type used by webcore APIs.
//
// PricingPlan instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PricingPlan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        string   `json:"price"`
	Currency     string   `json:"currency"`
	DurationDays int      `json:"durationDays"`
	Features     []string `json:"features,omitempty"`
}

// Subscription defines a public type used by webcore APIs.
//
// Subscription instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlanID    string    `json:"planId"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Transaction defines a public type used by webcore APIs.
//
// Transaction instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Transaction struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	Amount       string    `json:"amount"`
	Gateway      string    `json:"gateway"`
	SenderWallet string    `json:"senderWallet,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PaymentRequest defines a public type used by webcore APIs.
//
// PaymentRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PaymentRequest struct {
	PlanID    string `json:"planId"`
	Gateway   string `json:"gateway"`
	PromoCode string `json:"promoCode,omitempty"`
}

// Promotion defines a public type used by webcore APIs.
//
// Promotion instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Promotion struct {
	ID     string `json:"id,omitempty"`
	Code   string `json:"code"`
	Type   string `json:"type"`
	Value  string `json:"value"`
	Status string `json:"status,omitempty"`
}

// SubscriptionsSummary defines a public type used by webcore APIs.
//
// SubscriptionsSummary instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SubscriptionsSummary struct {
	ActiveCount  int64  `json:"activeCount"`
	ExpiredCount int64  `json:"expiredCount"`
	Revenue      string `json:"revenue"`
}
