package bot

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"stock-sentry/internal/domain"
	"stock-sentry/internal/store"

	tele "gopkg.in/telebot.v3"
)

// Bot owns the Telegram surface: inline menus, command shortcuts, and the
// per-user conversation sessions behind them.
type Bot struct {
	tb       *tele.Bot
	sessions *SessionStore
	alerts   *store.AlertStore
	quotes   QuoteSource
	rates    RateSource
	renderer ChartRenderer

	menuMain     *tele.ReplyMarkup
	menuBack     *tele.ReplyMarkup
	menuCurrency *tele.ReplyMarkup

	btnPrice    tele.Btn
	btnChart    tele.Btn
	btnAlert    tele.Btn
	btnCurrency tele.Btn
	btnHelp     tele.Btn
	btnBack     tele.Btn
}

func New(token string, quotes QuoteSource, rates RateSource, renderer ChartRenderer, alerts *store.AlertStore) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		// Generous transport timeout; slow sends surface as TimedOut
		// errors in onError instead of hanging a handler.
		Client:    &http.Client{Timeout: 30 * time.Second},
		ParseMode: tele.ModeMarkdown,
	}
	tb, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	b := &Bot{
		tb:       tb,
		sessions: NewSessionStore(),
		alerts:   alerts,
		quotes:   quotes,
		rates:    rates,
		renderer: renderer,
	}
	b.buildKeyboards()
	b.registerHandlers()
	tb.OnError = b.onError
	return b, nil
}

// Start blocks on the long poller until Stop is called.
func (b *Bot) Start() {
	log.Println("Telegram bot started")
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

// Notify delivers a watcher notification to a chat.
func (b *Bot) Notify(ctx context.Context, chatID int64, text string) error {
	_ = ctx
	_, err := b.tb.Send(&tele.Chat{ID: chatID}, text)
	return err
}

func (b *Bot) registerHandlers() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/currency", b.handleCurrencyCommand)
	b.tb.Handle("/price", b.handlePriceCommand)
	b.tb.Handle("/chart", b.handleChartCommand)
	b.tb.Handle("/alert", b.handleAlertCommand)

	b.tb.Handle(&b.btnPrice, b.handleAction(ActionPrice))
	b.tb.Handle(&b.btnChart, b.handleAction(ActionChart))
	b.tb.Handle(&b.btnAlert, b.handleAction(ActionSetAlert))
	b.tb.Handle(&b.btnCurrency, b.handleAction(ActionChangeCurrency))
	b.tb.Handle(&b.btnHelp, b.handleAction(ActionHelp))
	b.tb.Handle(&b.btnBack, b.handleAction(ActionBack))
	b.tb.Handle(&tele.Btn{Unique: currencyPickUnique}, b.handleCurrencyPick)

	b.tb.Handle(tele.OnText, b.handleText)
}

func (b *Bot) handleStart(c tele.Context) error {
	userID := c.Sender().ID
	ses, _ := Advance(b.sessions.Get(userID), Event{Kind: EventStart})
	b.sessions.Set(userID, ses)
	return c.Send(menuText(ses.Currency), b.menuMain)
}

// handleAction routes one inline-menu press through the transition function
// and renders the resulting effect by editing the pressed message.
func (b *Bot) handleAction(action Action) tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = c.Respond()

		userID := c.Sender().ID
		ses, effect := Advance(b.sessions.Get(userID), Event{Kind: EventButton, Action: action})
		b.sessions.Set(userID, ses)

		switch effect {
		case EffectPromptSymbol:
			prompt := promptSymbol
			if ses.Pending == ActionChart {
				prompt = promptChartSymbol
			}
			return c.Edit(prompt, b.menuBack)
		case EffectPromptAlertSpec:
			return c.Edit(promptAlertSpec, b.menuBack)
		case EffectShowCurrencyPicker:
			return c.Edit("💱 Select currency:", b.menuCurrency)
		case EffectShowHelp:
			return c.Edit(helpText, b.menuBack)
		default:
			return c.Edit("📈 *Main Menu*", b.menuMain)
		}
	}
}

func (b *Bot) handleCurrencyPick(c tele.Context) error {
	_ = c.Respond()

	userID := c.Sender().ID
	code := domain.CurrencyCode(strings.TrimSpace(c.Data()))
	ses, effect := Advance(b.sessions.Get(userID), Event{Kind: EventCurrencyPick, Currency: code})
	b.sessions.Set(userID, ses)

	if effect != EffectCurrencyChanged {
		return c.Edit("📈 *Main Menu*", b.menuMain)
	}
	return c.Edit(currencyChangedText(code), b.menuMain)
}

// handleText drives the two data-entry steps; any other text just brings the
// menu back.
func (b *Bot) handleText(c tele.Context) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID
	text := c.Text()

	ses, effect := Advance(b.sessions.Get(userID), Event{Kind: EventText, Text: text})
	b.sessions.Set(userID, ses)

	ctx := context.Background()
	switch effect {
	case EffectRunPriceLookup:
		return b.deliverPrice(ctx, c, ses.Currency, text)
	case EffectRunChartLookup:
		return b.deliverChart(ctx, c, ses.Currency, text)
	case EffectRunAlertRegistration:
		reply, ok := b.registerAlert(ctx, userID, chatID, ses.Currency, text)
		if !ok {
			return c.Send(reply, b.menuBack)
		}
		ses.Step = StepSelectingAction
		ses.Pending = ActionNone
		b.sessions.Set(userID, ses)
		return c.Send(reply, b.menuMain)
	default:
		return c.Send(menuText(ses.Currency), b.menuMain)
	}
}

func (b *Bot) deliverPrice(ctx context.Context, c tele.Context, cur domain.CurrencyCode, symbol string) error {
	for _, msg := range b.priceReport(ctx, cur, symbol) {
		if err := c.Send(msg); err != nil {
			return err
		}
	}
	return c.Send(promptNextAction, b.menuMain)
}

func (b *Bot) deliverChart(ctx context.Context, c tele.Context, cur domain.CurrencyCode, symbol string) error {
	png, caption, errText := b.chartImage(ctx, cur, symbol)
	if errText != "" {
		if err := c.Send(errText); err != nil {
			return err
		}
		return c.Send(promptNextAction, b.menuMain)
	}

	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(png)),
		Caption: caption,
	}
	if err := c.Send(photo); err != nil {
		return err
	}
	return c.Send(promptNextAction, b.menuMain)
}

func (b *Bot) handleCurrencyCommand(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send(fmt.Sprintf("Usage: /currency CODE\nSupported: %s", supportedCodes()))
	}

	userID := c.Sender().ID
	code := domain.CurrencyCode(strings.ToUpper(args[0]))
	ses, effect := Advance(b.sessions.Get(userID), Event{Kind: EventCurrencyPick, Currency: code})
	if effect != EffectCurrencyChanged {
		return c.Send(fmt.Sprintf("Unknown currency: %s\nSupported: %s", args[0], supportedCodes()))
	}
	b.sessions.Set(userID, ses)
	return c.Send(currencyChangedText(code), b.menuMain)
}

func (b *Bot) handlePriceCommand(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: /price SYMBOL\nExample: /price AAPL")
	}
	ses := b.sessions.Get(c.Sender().ID)
	return b.deliverPrice(context.Background(), c, ses.Currency, args[0])
}

func (b *Bot) handleChartCommand(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: /chart SYMBOL\nExample: /chart BTC-USD")
	}
	ses := b.sessions.Get(c.Sender().ID)
	return b.deliverChart(context.Background(), c, ses.Currency, args[0])
}

func (b *Bot) handleAlertCommand(c tele.Context) error {
	payload := strings.TrimSpace(c.Message().Payload)
	if payload == "" {
		return c.Send("Usage: /alert SYMBOL PRICE\nExample: /alert AAPL 150")
	}
	userID := c.Sender().ID
	ses := b.sessions.Get(userID)
	reply, _ := b.registerAlert(context.Background(), userID, c.Chat().ID, ses.Currency, payload)
	return c.Send(reply, b.menuMain)
}

// onError is the backstop for every handler: classify, report, and drop the
// user back at the menu. Nothing here may panic or terminate the process.
func (b *Bot) onError(err error, c tele.Context) {
	log.Printf("telegram handler error: %v", err)
	if c == nil || c.Chat() == nil {
		return
	}

	if sender := c.Sender(); sender != nil {
		ses := b.sessions.Get(sender.ID)
		ses.Step = StepSelectingAction
		ses.Pending = ActionNone
		b.sessions.Set(sender.ID, ses)
	}

	msg := msgGenericError
	if domain.IsTimeout(err) {
		msg = msgTimeoutError
	}
	if _, sendErr := b.tb.Send(c.Chat(), msg, b.menuMain); sendErr != nil {
		log.Printf("failed to report handler error to chat %d: %v", c.Chat().ID, sendErr)
	}
}

func supportedCodes() string {
	codes := make([]string, 0, len(domain.CurrencyOrder))
	for _, code := range domain.CurrencyOrder {
		codes = append(codes, string(code))
	}
	return strings.Join(codes, ", ")
}
