package hotkey

import (
	"testing"

	hook "github.com/robotn/gohook"
)

func TestMatches(t *testing.T) {
	cases := []struct {
		name string
		ev   hook.Event
		code uint16
		want bool
	}{
		{"escape down", hook.Event{Kind: hook.KeyDown, Rawcode: 27}, 27, true},
		{"wrong key", hook.Event{Kind: hook.KeyDown, Rawcode: 65}, 27, false},
		{"key up ignored", hook.Event{Kind: hook.KeyUp, Rawcode: 27}, 27, false},
		{"mouse ignored", hook.Event{Kind: hook.MouseDown, Rawcode: 27}, 27, false},
	}
	for _, tc := range cases {
		if got := Matches(tc.ev, tc.code); got != tc.want {
			t.Fatalf("%s: Matches = %v, want %v", tc.name, got, tc.want)
		}
	}
}
