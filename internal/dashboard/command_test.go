package dashboard

import (
	"testing"

	"MetalStack/internal/model"
	"MetalStack/internal/terminal"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  terminal.Key
		want Command
	}{
		{terminal.Key{Rune: '1'}, SelectMetal{model.Gold}},
		{terminal.Key{Rune: 'g'}, SelectMetal{model.Gold}},
		{terminal.Key{Rune: 'G'}, SelectMetal{model.Gold}},
		{terminal.Key{Rune: '2'}, SelectMetal{model.Silver}},
		{terminal.Key{Rune: 's'}, SelectMetal{model.Silver}},
		{terminal.Key{Rune: '3'}, SelectMetal{model.Platinum}},
		{terminal.Key{Rune: 'P'}, SelectMetal{model.Platinum}},
		{terminal.Key{Rune: '4'}, SelectMetal{model.Palladium}},
		{terminal.Key{Rune: 'd'}, SelectMetal{model.Palladium}},
		{terminal.Key{Rune: 'c'}, ToggleChart{}},
		{terminal.Key{Rune: 'C'}, ToggleChart{}},
		{terminal.Key{Rune: '<'}, PrevPeriod{}},
		{terminal.Key{Rune: ','}, PrevPeriod{}},
		{terminal.Key{Rune: 0x1b, Arrow: terminal.ArrowLeft}, PrevPeriod{}},
		{terminal.Key{Rune: '>'}, NextPeriod{}},
		{terminal.Key{Rune: '.'}, NextPeriod{}},
		{terminal.Key{Rune: 0x1b, Arrow: terminal.ArrowRight}, NextPeriod{}},
		{terminal.Key{Rune: 'r'}, Refresh{}},
		{terminal.Key{Rune: 'R'}, Refresh{}},
		{terminal.Key{Rune: 'q'}, Quit{}},
		{terminal.Key{Rune: 'Q'}, Quit{}},
		{terminal.Key{Rune: 0x03}, Quit{}},
		{terminal.Key{Rune: 'x'}, Ignore{}},
		{terminal.Key{Rune: '5'}, Ignore{}},
		{terminal.Key{Rune: 0x1b}, Ignore{}},
		{terminal.Key{Rune: 0x1b, Arrow: terminal.ArrowUp}, Ignore{}},
	}
	for _, tt := range tests {
		if got := ParseKey(tt.key); got != tt.want {
			t.Errorf("ParseKey(%+v) = %#v, want %#v", tt.key, got, tt.want)
		}
	}
}
