package baskets

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

// CommandType identifies a user command in a session script.
type CommandType string

// Command types of session scripts.
const (
	CmdLogin      CommandType = "login"
	CmdLogout     CommandType = "logout"
	CmdInvest     CommandType = "invest"
	CmdSell       CommandType = "sell"
	CmdSaveBasket CommandType = "save-basket"
	CmdWatch      CommandType = "watch"
	CmdNavigate   CommandType = "navigate"
	CmdOpenBasket CommandType = "open-basket"
	CmdOpenStock  CommandType = "open-stock"
	CmdBack       CommandType = "back"
	CmdBackBasket CommandType = "back-basket"
	CmdBackStock  CommandType = "back-stock"
	CmdDashboard  CommandType = "dashboard"
	CmdSubscribe  CommandType = "subscribe"
	CmdRedeem     CommandType = "redeem"
)

// Command is a user command that can be replayed on a Session.
type Command interface {
	What() CommandType
	Apply(ctx context.Context, s *Session) error
}

type baseCmd struct {
	Command CommandType `json:"command"`
}

func (c baseCmd) What() CommandType { return c.Command }

// Login logs a user in.
type Login struct {
	baseCmd
	Credentials
}

func (c Login) Apply(ctx context.Context, s *Session) error { return s.Login(ctx, c.Credentials) }

// Invest invests the default amount in a basket.
type Invest struct {
	baseCmd
	Basket string `json:"basket"`
}

func (c Invest) Apply(_ context.Context, s *Session) error {
	_, outcome := s.Invest(c.Basket)
	log.Printf("invest %q: %v", c.Basket, outcome)
	return nil
}

// Sell sells a basket.
type Sell struct {
	baseCmd
	Basket string `json:"basket"`
}

func (c Sell) Apply(_ context.Context, s *Session) error {
	if !s.Sell(c.Basket) {
		log.Printf("sell %q: not invested, nothing to do", c.Basket)
	}
	return nil
}

// StockAmount is one funding line of a SaveBasket command.
type StockAmount struct {
	Ticker   string          `json:"ticker"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"` // defaults to the session currency
}

// SaveBasket creates or edits a basket.
type SaveBasket struct {
	baseCmd
	Basket string        `json:"basket"`
	Stocks []StockAmount `json:"stocks"`
	Edit   bool          `json:"edit,omitempty"`
}

func (c SaveBasket) Apply(_ context.Context, s *Session) error {
	fundings := make([]Funding, 0, len(c.Stocks))
	for _, sa := range c.Stocks {
		cur := sa.Currency
		if cur == "" {
			cur = s.cfg.Currency
		}
		fundings = append(fundings, Funding{Ticker: sa.Ticker, Amount: M(sa.Amount, cur)})
	}
	_, err := s.SaveBasket(c.Basket, fundings, c.Edit)
	return err
}

// Watch toggles a watchlist entry.
type Watch struct {
	baseCmd
	Kind WatchKind `json:"kind"`
	Key  string    `json:"key"`
}

func (c Watch) Apply(_ context.Context, s *Session) error {
	s.ToggleWatchlist(c.Kind, c.Key)
	return nil
}

// Navigate shows a view.
type Navigate struct {
	baseCmd
	View View `json:"view"`
}

func (c Navigate) Apply(_ context.Context, s *Session) error {
	s.Navigate(c.View)
	return nil
}

// OpenBasket shows a basket detail.
type OpenBasket struct {
	baseCmd
	Basket string       `json:"basket"`
	From   BasketSource `json:"from"`
}

func (c OpenBasket) Apply(_ context.Context, s *Session) error { return s.OpenBasket(c.Basket, c.From) }

// OpenStock shows a stock detail.
type OpenStock struct {
	baseCmd
	Ticker string      `json:"ticker"`
	From   StockSource `json:"from"`
}

func (c OpenStock) Apply(_ context.Context, s *Session) error { return s.OpenStock(c.Ticker, c.From) }

// Redeem redeems a subscription code.
type Redeem struct {
	baseCmd
	Code string `json:"code"`
}

func (c Redeem) Apply(_ context.Context, s *Session) error { return s.RedeemSubscriptionCode(c.Code) }

// Action is a command without arguments: logout, back, back-basket,
// back-stock, dashboard and subscribe.
type Action struct {
	baseCmd
}

func (c Action) Apply(_ context.Context, s *Session) error {
	switch c.Command {
	case CmdLogout:
		s.Logout()
	case CmdBack:
		if !s.Back() {
			return fmt.Errorf("cannot go back from %v", s.nav.View())
		}
	case CmdBackBasket:
		s.BackFromBasket()
	case CmdBackStock:
		s.BackFromStock()
	case CmdDashboard:
		if !s.OpenDashboard() {
			return fmt.Errorf("login required to open the dashboard")
		}
	case CmdSubscribe:
		if !s.OpenSubscribeOrPro() {
			return fmt.Errorf("login required to subscribe")
		}
	default:
		return fmt.Errorf("unsupported action %q", c.Command)
	}
	return nil
}

// DecodeScript decodes a JSONL session script, one command per line.
// Empty lines are skipped.
func DecodeScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		cmd, err := decodeCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read script: %w", err)
	}
	return cmds, nil
}

func decodeCommand(line []byte) (Command, error) {
	var identifier baseCmd
	if err := json.Unmarshal(line, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in %q: %w", string(line), err)
	}

	var cmd Command
	switch identifier.Command {
	case CmdLogin:
		cmd = new(Login)
	case CmdInvest:
		cmd = new(Invest)
	case CmdSell:
		cmd = new(Sell)
	case CmdSaveBasket:
		cmd = new(SaveBasket)
	case CmdWatch:
		cmd = new(Watch)
	case CmdNavigate:
		cmd = new(Navigate)
	case CmdOpenBasket:
		cmd = new(OpenBasket)
	case CmdOpenStock:
		cmd = new(OpenStock)
	case CmdRedeem:
		cmd = new(Redeem)
	case CmdLogout, CmdBack, CmdBackBasket, CmdBackStock, CmdDashboard, CmdSubscribe:
		return Action{baseCmd: identifier}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", identifier.Command)
	}
	if err := json.Unmarshal(line, cmd); err != nil {
		return nil, fmt.Errorf("invalid %s command: %w", identifier.Command, err)
	}
	return cmd, nil
}
