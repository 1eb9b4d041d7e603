package room

import (
	"errors"
	"fmt"
)

// ErrRoomNotFound distinguishes "room expired or never existed" from a
// malformed command so handlers can answer 404 vs 400.
var ErrRoomNotFound = errors.New("room not found")

// CommandError marks a rejected command. The room is untouched and no
// broadcast fires.
type CommandError struct {
	Reason string
}

func (e *CommandError) Error() string { return e.Reason }

func badCommand(format string, args ...any) error {
	return &CommandError{Reason: fmt.Sprintf(format, args...)}
}

// Command is the externally-tagged payload a controller submits.
// Which fields are required depends on Type.
type Command struct {
	Type     string  `json:"type"`
	SongID   *string `json:"songId,omitempty"`
	Position *int    `json:"position,omitempty"`
	Value    *int    `json:"value,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
	Speed    *int    `json:"speed,omitempty"`
}

// Apply validates the command, translates it into a patch and runs it
// through Update. Range checking is deliberately absent: out-of-range
// scroll, transpose and section values are stored as-is, matching the
// client-side-clamping contract the UI relies on.
func (h *Hub) Apply(code string, cmd Command) (*State, error) {
	cur, ok := h.Get(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	patch, err := commandPatch(cmd, cur)
	if err != nil {
		return nil, err
	}

	st, ok := h.Update(code, patch)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return st, nil
}

func commandPatch(cmd Command, cur *State) (Patch, error) {
	zero := 0
	switch cmd.Type {
	case "setSong":
		if cmd.SongID == nil {
			return Patch{}, badCommand("setSong requires songId")
		}
		return Patch{CurrentSong: cmd.SongID, CurrentSection: &zero, ScrollPosition: &zero}, nil

	case "nextSection":
		next := cur.CurrentSection + 1
		return Patch{CurrentSection: &next}, nil

	case "prevSection":
		prev := max(0, cur.CurrentSection-1)
		return Patch{CurrentSection: &prev}, nil

	case "scroll":
		if cmd.Position == nil {
			return Patch{}, badCommand("scroll requires position")
		}
		return Patch{ScrollPosition: cmd.Position}, nil

	case "transpose":
		if cmd.Value == nil {
			return Patch{}, badCommand("transpose requires value")
		}
		return Patch{Transpose: cmd.Value}, nil

	case "setAutoScroll":
		if cmd.Enabled == nil {
			return Patch{}, badCommand("setAutoScroll requires enabled")
		}
		// Speed is optional and preserved when omitted.
		return Patch{AutoScroll: cmd.Enabled, AutoScrollSpeed: cmd.Speed}, nil

	case "":
		return Patch{}, badCommand("missing command type")

	default:
		return Patch{}, badCommand("unknown command type: %s", cmd.Type)
	}
}

// AddController appends a freshly assigned controller id to the room and
// broadcasts the result. Part of the reserved controller surface; the
// command set above never touches controllers.
func (h *Hub) AddController(code, controllerID string) (*State, bool) {
	cur, ok := h.Get(code)
	if !ok {
		return nil, false
	}
	controllers := append(cur.Controllers, controllerID)
	return h.Update(code, Patch{Controllers: controllers})
}
