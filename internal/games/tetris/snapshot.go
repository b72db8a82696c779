package tetris

// PieceView is a detached copy of a piece.
type PieceView struct {
	Shape  [][]int `json:"shape"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Type   int     `json:"type"`
	Kind   string  `json:"kind"`
	Rarity string  `json:"rarity,omitempty"`
	Target int     `json:"target,omitempty"`
}

// Snapshot is an immutable view of a session. It shares no memory with the
// session, so it can be handed to renderers and encoders freely.
type Snapshot struct {
	Format   string     `json:"format"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Board    [][]int    `json:"board"`
	Current  *PieceView `json:"current"`
	Next     *PieceView `json:"next"`
	GhostRow int        `json:"ghost_row"` // row the current piece would drop to

	Score    int `json:"score"`
	Level    int `json:"level"`
	Lines    int `json:"lines"`
	Combo    int `json:"combo"`
	MaxCombo int `json:"max_combo"`

	RainbowBlocks  int `json:"rainbow_blocks"`
	AICustomBlocks int `json:"ai_custom_blocks"`
	CoffeeBonus    int `json:"coffee_bonus"`

	GameOver bool `json:"game_over"`
	Paused   bool `json:"paused"`

	ClearedLines  []int `json:"cleared_lines"`
	SpecialActive bool  `json:"special_active"`
	GravityActive bool  `json:"gravity_active"`
	ShowCoffee    bool  `json:"show_coffee"`

	ClockMs  int64    `json:"clock_ms"`
	Analysis Analysis `json:"analysis"`
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() Snapshot {
	board := make([][]int, s.board.H)
	for r := range board {
		board[r] = make([]int, s.board.W)
		for c := range board[r] {
			board[r][c] = int(s.board.Get(r, c))
		}
	}

	snap := Snapshot{
		Format:         string(s.format),
		Width:          s.board.W,
		Height:         s.board.H,
		Board:          board,
		Current:        viewOf(s.current),
		Next:           viewOf(s.next),
		Score:          s.score,
		Level:          s.level,
		Lines:          s.lines,
		Combo:          s.combo,
		MaxCombo:       s.maxCombo,
		RainbowBlocks:  s.rainbowBlocks,
		AICustomBlocks: s.aiCustomBlocks,
		CoffeeBonus:    s.coffeeBonus,
		GameOver:       s.gameOver,
		Paused:         s.paused,
		ClearedLines:   append([]int(nil), s.clearedLines...),
		SpecialActive:  s.specialActive,
		GravityActive:  s.gravityActive,
		ShowCoffee:     s.showCoffee,
		ClockMs:        s.sched.Now().Milliseconds(),
		Analysis:       AnalyzeColumns(s.board),
	}
	if s.current != nil {
		snap.GhostRow = s.current.Row + s.DropDistance()
	}
	return snap
}

func viewOf(p *Piece) *PieceView {
	if p == nil {
		return nil
	}
	shape := make([][]int, len(p.Shape))
	for i, row := range p.Shape {
		shape[i] = make([]int, len(row))
		for j, c := range row {
			shape[i][j] = int(c)
		}
	}
	return &PieceView{
		Shape:  shape,
		Row:    p.Row,
		Col:    p.Col,
		Type:   int(p.Type),
		Kind:   p.Kind.String(),
		Rarity: p.Rarity.String(),
		Target: int(p.Target),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(17)
	mix := func(v int) {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, row := range snap.Board {
		for _, c := range row {
			mix(c)
		}
	}
	for _, p := range []*PieceView{snap.Current, snap.Next} {
		if p == nil {
			mix(-1)
			continue
		}
		mix(p.Row)
		mix(p.Col)
		mix(p.Type)
		for _, row := range p.Shape {
			for _, c := range row {
				mix(c)
			}
		}
	}
	mix(snap.Score)
	mix(snap.Level)
	mix(snap.Lines)
	mix(snap.Combo)
	mix(snap.CoffeeBonus)
	if snap.GameOver {
		mix(1)
	}
	return h
}
