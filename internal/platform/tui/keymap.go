package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris-arcade/internal/core"
)

// quitKeys end the program from any screen.
var quitKeys = map[string]bool{"ctrl+c": true, "q": true}

// gameKeys binds in-game keys to actions. Arrows and WASD both work; x is
// an extra rotate key for players who keep a hand on the home row.
var gameKeys = map[string]core.Action{
	"left": core.ActionLeft, "a": core.ActionLeft,
	"right": core.ActionRight, "d": core.ActionRight,
	"down": core.ActionDown, "s": core.ActionDown,
	"up": core.ActionRotate, "w": core.ActionRotate, "x": core.ActionRotate,
	" ":     core.ActionDrop,
	"c":     core.ActionCycle,
	"1":     core.ActionBuyRainbow,
	"2":     core.ActionBuyAI,
	"3":     core.ActionUseRainbow,
	"4":     core.ActionUseAI,
	"g":     core.ActionFormat,
	"enter": core.ActionConfirm,
	"b":     core.ActionBack, "esc": core.ActionBack,
	"p": core.ActionPause,
	"r": core.ActionRestart,
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// menuKeys binds menu keys, with vim-style j/k alongside arrows and w/s.
var menuKeys = map[string]MenuAction{
	"up": MenuActionUp, "w": MenuActionUp, "k": MenuActionUp,
	"down": MenuActionDown, "s": MenuActionDown, "j": MenuActionDown,
	"enter": MenuActionSelect, " ": MenuActionSelect,
	"b": MenuActionBack, "esc": MenuActionBack,
	"tab": MenuActionScoreboard,
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action. Unbound keys yield
// ActionNone; quit keys yield ActionQuit and isQuit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if quitKeys[key] {
		return core.ActionQuit, true
	}
	return gameKeys[key], false
}

// MapKeyToFrame records the key's action in frame and reports whether the
// key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()
	if quitKeys[key] {
		return MenuActionQuit
	}
	return menuKeys[key]
}
