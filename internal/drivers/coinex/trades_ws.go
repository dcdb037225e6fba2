package coinex

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dewebdes/antra/internal/scraper"

	"github.com/gorilla/websocket"
	"github.com/segmentio/kafka-go"
)

const tradeWSURL = "wss://socket.coinex.com/"

// TradeFeed streams live deals over the CoinEx websocket and republishes
// them as normalized trade messages.
type TradeFeed struct {
	markets []string
	sender  *scraper.Sender
	logger  *slog.Logger
	ws      *scraper.WSClient
}

// NewTradeFeed creates a trade feed for the given exchange market names.
func NewTradeFeed(kafkaWriter *kafka.Writer, markets []string, logger *slog.Logger) *TradeFeed {
	feedLogger := logger.With("scraper", "coinex-trades")
	sender := scraper.NewSender(kafkaWriter, feedLogger)

	feed := &TradeFeed{
		markets: markets,
		sender:  sender,
		logger:  feedLogger,
	}

	feed.ws = scraper.NewWSClient(
		scraper.WSConfig{URL: tradeWSURL},
		scraper.WSHandler{
			OnSubscribe: feed.subscribe,
			OnMessage:   feed.handleMessage,
		},
		sender,
		feedLogger,
	)
	return feed
}

func (f *TradeFeed) Name() string { return "coinex-trades" }

// Run blocks until the context is cancelled, reconnecting as needed.
func (f *TradeFeed) Run(ctx context.Context) error {
	f.logger.Info("Starting trade feed", "markets", len(f.markets))
	return f.ws.Run(ctx, f.markets)
}

// subscribeChunkSize bounds how many markets go into one subscribe request.
const subscribeChunkSize = 50

func (f *TradeFeed) subscribe(conn *websocket.Conn, markets []string) error {
	for i, chunk := range scraper.ChunkSlice(markets, subscribeChunkSize) {
		sub := map[string]any{
			"method": "deals.subscribe",
			"params": chunk,
			"id":     i + 1,
		}
		if err := f.ws.WriteJSON(conn, sub); err != nil {
			return err
		}
	}
	return nil
}

type wsDeal struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Price  string  `json:"price"`
	Amount string  `json:"amount"`
	Time   float64 `json:"time"`
}

// handleMessage parses deals.update notifications. One notification carries a
// batch of deals, so sends happen here and nothing is returned to the client.
func (f *TradeFeed) handleMessage(conn *websocket.Conn, msg []byte) ([]byte, error) {
	var notification struct {
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(msg, &notification); err != nil {
		return nil, err
	}
	if notification.Method != "deals.update" || len(notification.Params) < 2 {
		return nil, nil
	}

	var market string
	if err := json.Unmarshal(notification.Params[0], &market); err != nil {
		return nil, err
	}
	var deals []wsDeal
	if err := json.Unmarshal(notification.Params[1], &deals); err != nil {
		return nil, err
	}

	symbol := scraper.NormalizeSymbol(market)
	for _, deal := range deals {
		trade, err := buildTrade(symbol, deal)
		if err != nil {
			f.logger.Debug("Skipping malformed deal", "market", market, "error", err)
			continue
		}
		if err := f.sender.SendJSON(context.Background(), trade); err != nil {
			f.logger.Error("Kafka send failed", "error", err)
		}
	}
	return nil, nil
}

func buildTrade(symbol string, deal wsDeal) (scraper.TradeMessage, error) {
	price, err := strconv.ParseFloat(deal.Price, 64)
	if err != nil {
		return scraper.TradeMessage{}, fmt.Errorf("price: %w", err)
	}
	volume, err := strconv.ParseFloat(deal.Amount, 64)
	if err != nil {
		return scraper.TradeMessage{}, fmt.Errorf("amount: %w", err)
	}

	sec := int64(deal.Time)
	nsec := int64((deal.Time - float64(sec)) * float64(time.Second))

	return scraper.TradeMessage{
		ID:       scraper.GenerateID(ExchangeName, symbol, strconv.FormatInt(deal.ID, 10)),
		Exchange: ExchangeName,
		Symbol:   symbol,
		Price:    price,
		Volume:   volume,
		Side:     deal.Type,
		Time:     time.Unix(sec, nsec).UTC().Format(time.RFC3339),
	}, nil
}
