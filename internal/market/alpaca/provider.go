package alpaca

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"wsb_trader/internal/market"
	"wsb_trader/internal/models"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// callTimeout bounds every broker round trip. A hung snapshot read would
// otherwise stall the whole cycle until the next scheduled trigger.
const callTimeout = 30 * time.Second

// Provider implements the generic market.Provider interface for Alpaca.
type Provider struct {
	mdClient    *marketdata.Client
	tradeClient *alpaca.Client
}

// Ensure Provider implements the interface
var _ market.Provider = (*Provider)(nil)

// NewProvider returns a new Alpaca provider. The SDK clients read
// APCA_API_KEY_ID / APCA_API_SECRET_KEY / APCA_API_BASE_URL from the
// environment, which config.Load validated at startup.
func NewProvider() *Provider {
	httpClient := &http.Client{Timeout: callTimeout}
	return &Provider{
		mdClient:    marketdata.NewClient(marketdata.ClientOpts{HTTPClient: httpClient}),
		tradeClient: alpaca.NewClient(alpaca.ClientOpts{HTTPClient: httpClient}),
	}
}

// --- Snapshot reads ---

func (p *Provider) GetBalance() (models.Balance, error) {
	acct, err := p.tradeClient.GetAccount()
	if err != nil {
		return models.Balance{}, fmt.Errorf("get account: %w", err)
	}
	return models.Balance{
		Equity: acct.Equity,
		Cash:   acct.Cash,
	}, nil
}

func (p *Provider) ListPositions() ([]models.Position, error) {
	alpacaPositions, err := p.tradeClient.GetPositions()
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	var result []models.Position
	for i := range alpacaPositions {
		result = append(result, mapPosition(&alpacaPositions[i]))
	}
	return result, nil
}

// GetPosition fetches a single position. Alpaca answers an unheld symbol
// with a 404 wrapped in a verbose error object; we normalize that to
// market.ErrPositionNotFound so callers can treat "not held" as a state,
// not a failure.
func (p *Provider) GetPosition(symbol string) (models.Position, error) {
	pos, err := p.tradeClient.GetPosition(symbol)
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return models.Position{}, market.ErrPositionNotFound
		}
		return models.Position{}, fmt.Errorf("get position %s: %w", symbol, err)
	}
	return mapPosition(pos), nil
}

func (p *Provider) GetPrice(symbol string) (decimal.Decimal, error) {
	trade, err := p.mdClient.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("latest trade %s: %w", symbol, err)
	}
	if trade == nil {
		return decimal.Zero, fmt.Errorf("no trade found for %s", symbol)
	}
	return decimal.NewFromFloat(trade.Price), nil
}

func (p *Provider) GetClock() (*models.Clock, error) {
	c, err := p.tradeClient.GetClock()
	if err != nil {
		return nil, fmt.Errorf("get clock: %w", err)
	}
	return &models.Clock{
		Timestamp: c.Timestamp,
		IsOpen:    c.IsOpen,
		NextOpen:  c.NextOpen,
		NextClose: c.NextClose,
	}, nil
}

// ListAssets returns the active, tradable US equities. Used as the universe
// fallback when no reference file is on disk.
func (p *Provider) ListAssets() ([]models.Asset, error) {
	alpacaAssets, err := p.tradeClient.GetAssets(alpaca.GetAssetsRequest{
		Status:     "active",
		AssetClass: "us_equity",
	})
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	var results []models.Asset
	for _, a := range alpacaAssets {
		if !a.Tradable {
			continue
		}
		results = append(results, models.Asset{
			Symbol:   a.Symbol,
			Name:     a.Name,
			Exchange: a.Exchange,
			Status:   string(a.Status),
			Tradable: a.Tradable,
		})
	}
	return results, nil
}

// --- Execution ---

// PlaceOrder submits a market day order. Fire-and-forget: the engine never
// polls the returned order for fill status.
func (p *Provider) PlaceOrder(symbol string, qty decimal.Decimal, side string) (*models.Order, error) {
	req := alpaca.PlaceOrderRequest{
		Symbol:      symbol,
		Qty:         &qty,
		Side:        alpaca.Side(side),
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	}
	o, err := p.tradeClient.PlaceOrder(req)
	if err != nil {
		return nil, fmt.Errorf("place %s order %s: %w", side, symbol, err)
	}
	return mapOrder(o), nil
}

// --- Helpers ---

func mapPosition(x *alpaca.Position) models.Position {
	// Safely dereference the decimal pointers the SDK hands back.
	marketValue := decimal.Zero
	if x.MarketValue != nil {
		marketValue = *x.MarketValue
	}
	unrealizedPLPC := decimal.Zero
	if x.UnrealizedPLPC != nil {
		unrealizedPLPC = *x.UnrealizedPLPC
	}

	return models.Position{
		Symbol:         x.Symbol,
		Qty:            x.Qty,
		MarketValue:    marketValue,
		UnrealizedPLPC: unrealizedPLPC,
	}
}

func mapOrder(o *alpaca.Order) *models.Order {
	if o == nil {
		return nil
	}

	qty := decimal.Zero
	if o.Qty != nil {
		qty = *o.Qty
	}
	filledAvgPrice := decimal.Zero
	if o.FilledAvgPrice != nil {
		filledAvgPrice = *o.FilledAvgPrice
	}

	return &models.Order{
		ID:             o.ID,
		Symbol:         o.Symbol,
		Qty:            qty,
		Side:           string(o.Side),
		Type:           string(o.Type),
		TimeInForce:    string(o.TimeInForce),
		Status:         o.Status,
		FilledAvgPrice: filledAvgPrice,
		CreatedAt:      o.CreatedAt,
	}
}
