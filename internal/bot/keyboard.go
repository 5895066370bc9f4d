package bot

import (
	tele "gopkg.in/telebot.v3"
)

const currencyPickUnique = "currency"

func (b *Bot) buildKeyboards() {
	b.menuMain = &tele.ReplyMarkup{}
	b.btnPrice = b.menuMain.Data("📈 Price", string(ActionPrice))
	b.btnChart = b.menuMain.Data("📊 Chart", string(ActionChart))
	b.btnAlert = b.menuMain.Data("🔔 Set Alert", string(ActionSetAlert))
	b.btnCurrency = b.menuMain.Data("💱 Change Currency", string(ActionChangeCurrency))
	b.btnHelp = b.menuMain.Data("ℹ️ Help", string(ActionHelp))
	b.menuMain.Inline(
		b.menuMain.Row(b.btnPrice, b.btnChart),
		b.menuMain.Row(b.btnAlert, b.btnCurrency),
		b.menuMain.Row(b.btnHelp),
	)

	b.menuBack = &tele.ReplyMarkup{}
	b.btnBack = b.menuBack.Data("⬅️ Back", string(ActionBack))
	b.menuBack.Inline(b.menuBack.Row(b.btnBack))

	b.menuCurrency = &tele.ReplyMarkup{}
	pick := func(code, label string) tele.Btn {
		return b.menuCurrency.Data(label, currencyPickUnique, code)
	}
	b.menuCurrency.Inline(
		b.menuCurrency.Row(pick("USD", "USD $"), pick("EUR", "EUR €")),
		b.menuCurrency.Row(pick("UZS", "UZS soʻm"), pick("RUB", "RUB ₽")),
		b.menuCurrency.Row(pick("GBP", "GBP £"), b.menuCurrency.Data("⬅️ Back", string(ActionBack))),
	)
}
