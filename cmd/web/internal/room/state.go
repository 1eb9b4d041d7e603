package room

// State is the full mutable state of one room, sent wholesale to
// subscribers on every change (no diffing).
type State struct {
	Code            string   `json:"code"`
	CurrentSong     *string  `json:"currentSong"`
	CurrentSection  int      `json:"currentSection"`
	ScrollPosition  int      `json:"scrollPosition"`
	Transpose       int      `json:"transpose"`
	Controllers     []string `json:"controllers"`
	AutoScroll      bool     `json:"autoScroll"`
	AutoScrollSpeed int      `json:"autoScrollSpeed"`
	CreatedAt       int64    `json:"createdAt"`
	LastActivity    int64    `json:"lastActivity"`
}

// clone returns a snapshot safe to hand to callers and subscribers
// after the hub lock is released.
func (s *State) clone() *State {
	cp := *s
	cp.Controllers = make([]string, len(s.Controllers))
	copy(cp.Controllers, s.Controllers)
	return &cp
}

// Patch is a partial state update. Nil fields are left unchanged;
// present fields fully replace their counterpart (shallow merge).
// Code and CreatedAt are immutable and have no patch field.
type Patch struct {
	CurrentSong     *string
	CurrentSection  *int
	ScrollPosition  *int
	Transpose       *int
	Controllers     []string
	AutoScroll      *bool
	AutoScrollSpeed *int
}

func (s *State) apply(p Patch) {
	if p.CurrentSong != nil {
		s.CurrentSong = p.CurrentSong
	}
	if p.CurrentSection != nil {
		s.CurrentSection = *p.CurrentSection
	}
	if p.ScrollPosition != nil {
		s.ScrollPosition = *p.ScrollPosition
	}
	if p.Transpose != nil {
		s.Transpose = *p.Transpose
	}
	if p.Controllers != nil {
		s.Controllers = p.Controllers
	}
	if p.AutoScroll != nil {
		s.AutoScroll = *p.AutoScroll
	}
	if p.AutoScrollSpeed != nil {
		s.AutoScrollSpeed = *p.AutoScrollSpeed
	}
}
