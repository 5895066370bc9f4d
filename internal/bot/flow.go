package bot

import "stock-sentry/internal/domain"

// EventKind tags an inbound interaction.
type EventKind int

const (
	EventStart EventKind = iota
	EventButton
	EventCurrencyPick
	EventText
)

// Event is one inbound interaction, normalized away from the transport.
type Event struct {
	Kind     EventKind
	Action   Action
	Currency domain.CurrencyCode
	Text     string
}

// Effect names the side effect the handler layer must execute after a
// transition. Transitions themselves stay pure so the conversation logic is
// testable without a live transport.
type Effect int

const (
	EffectShowMenu Effect = iota
	EffectPromptSymbol
	EffectPromptAlertSpec
	EffectShowCurrencyPicker
	EffectShowHelp
	EffectCurrencyChanged
	EffectRunPriceLookup
	EffectRunChartLookup
	EffectRunAlertRegistration
)

// Advance applies one event to a session and names the effect to run.
//
// /start is a universal fallback: it resets the step and pending action from
// any state but preserves the chosen currency. Text received while awaiting
// a symbol always returns the session to the menu; the lookup outcome is
// reported in-line, never by re-prompting. Text received while awaiting an
// alert spec leaves the step unchanged here — the handler moves to the menu
// only once registration succeeds, so malformed input re-prompts in place.
func Advance(s Session, ev Event) (Session, Effect) {
	switch ev.Kind {
	case EventStart:
		s.Step = StepSelectingAction
		s.Pending = ActionNone
		return s, EffectShowMenu

	case EventButton:
		switch ev.Action {
		case ActionPrice, ActionChart:
			s.Step = StepAwaitingSymbol
			s.Pending = ev.Action
			return s, EffectPromptSymbol
		case ActionSetAlert:
			s.Step = StepAwaitingAlertSpec
			s.Pending = ActionSetAlert
			return s, EffectPromptAlertSpec
		case ActionChangeCurrency:
			s.Step = StepSelectingAction
			return s, EffectShowCurrencyPicker
		case ActionHelp:
			s.Step = StepSelectingAction
			return s, EffectShowHelp
		case ActionBack:
			s.Step = StepSelectingAction
			s.Pending = ActionNone
			return s, EffectShowMenu
		default:
			return s, EffectShowMenu
		}

	case EventCurrencyPick:
		if !domain.ValidCurrency(ev.Currency) {
			return s, EffectShowMenu
		}
		s.Step = StepSelectingAction
		s.Currency = ev.Currency
		return s, EffectCurrencyChanged

	case EventText:
		switch s.Step {
		case StepAwaitingSymbol:
			pending := s.Pending
			s.Step = StepSelectingAction
			s.Pending = ActionNone
			switch pending {
			case ActionPrice:
				return s, EffectRunPriceLookup
			case ActionChart:
				return s, EffectRunChartLookup
			default:
				return s, EffectShowMenu
			}
		case StepAwaitingAlertSpec:
			return s, EffectRunAlertRegistration
		default:
			return s, EffectShowMenu
		}
	}

	return s, EffectShowMenu
}
