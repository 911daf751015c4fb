package dashboard

import (
	"unicode"

	"MetalStack/internal/model"
	"MetalStack/internal/terminal"
)

// Event is anything the render loop consumes. Commands come from the
// keyboard; PricesFetched comes from the scheduler.
type Event interface {
	isEvent()
}

// Command is a keyboard-originated Event.
type Command interface {
	Event
	isCommand()
}

type (
	// SelectMetal makes Metal the selected metal.
	SelectMetal struct{ Metal model.MetalKind }
	// ToggleChart shows or hides the price chart.
	ToggleChart struct{}
	// PrevPeriod and NextPeriod cycle the chart period while the chart is visible.
	PrevPeriod struct{}
	NextPeriod struct{}
	// Refresh requests an immediate price fetch.
	Refresh struct{}
	// Quit ends the dashboard.
	Quit struct{}
	// Ignore is an unbound key.
	Ignore struct{}
)

func (SelectMetal) isEvent() {}
func (ToggleChart) isEvent() {}
func (PrevPeriod) isEvent()  {}
func (NextPeriod) isEvent()  {}
func (Refresh) isEvent()     {}
func (Quit) isEvent()        {}
func (Ignore) isEvent()      {}

func (SelectMetal) isCommand() {}
func (ToggleChart) isCommand() {}
func (PrevPeriod) isCommand()  {}
func (NextPeriod) isCommand()  {}
func (Refresh) isCommand()     {}
func (Quit) isCommand()        {}
func (Ignore) isCommand()      {}

// PricesFetched carries the result of one scheduled or manual price fetch.
// Exactly one of Prices and Err is set.
type PricesFetched struct {
	Prices model.Prices
	Err    error
}

func (PricesFetched) isEvent() {}

const ctrlC = 0x03

var metalKeys = map[rune]model.MetalKind{
	'1': model.Gold, 'g': model.Gold,
	'2': model.Silver, 's': model.Silver,
	'3': model.Platinum, 'p': model.Platinum,
	'4': model.Palladium, 'd': model.Palladium,
}

// ParseKey translates a key press into a Command. Letters are
// case-insensitive.
func ParseKey(k terminal.Key) Command {
	switch k.Arrow {
	case terminal.ArrowLeft:
		return PrevPeriod{}
	case terminal.ArrowRight:
		return NextPeriod{}
	case terminal.ArrowNone:
	default:
		return Ignore{}
	}

	r := unicode.ToLower(k.Rune)
	if m, ok := metalKeys[r]; ok {
		return SelectMetal{Metal: m}
	}
	switch r {
	case 'c':
		return ToggleChart{}
	case '<', ',':
		return PrevPeriod{}
	case '>', '.':
		return NextPeriod{}
	case 'r':
		return Refresh{}
	case 'q', ctrlC:
		return Quit{}
	}
	return Ignore{}
}
