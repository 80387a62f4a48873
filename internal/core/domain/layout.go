package domain

import (
	"fmt"
	"math"
)

// Orientation of the simulated print page.
type Orientation string

const (
	Portrait  Orientation = "PORTRAIT"
	Landscape Orientation = "LANDSCAPE"
)

const (
	MinPositions = 1
	MaxPositions = 8

	// A4 page at 72 dpi.
	a4ShortSide = 595
	a4LongSide  = 842
)

// APIValue is the backend's numeric code for the orientation.
func (o Orientation) APIValue() int {
	if o == Landscape {
		return 2
	}
	return 1
}

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o == Portrait || o == Landscape
}

// OrientationFromBackend maps RETRATO/PAISAGEM to an Orientation.
func OrientationFromBackend(v string) (Orientation, bool) {
	switch v {
	case "RETRATO":
		return Portrait, true
	case "PAISAGEM":
		return Landscape, true
	}
	return "", false
}

// PanelSize returns the canvas width and height for the orientation.
func (o Orientation) PanelSize() (int, int) {
	if o == Landscape {
		return a4LongSide, a4ShortSide
	}
	return a4ShortSide, a4LongSide
}

// EditorState tracks the print-layout editor lifecycle.
type EditorState string

const (
	EditorUnconfigured EditorState = "unconfigured"
	EditorConfigured   EditorState = "configured"
	EditorDirty        EditorState = "dirty"
)

// PrintToken selects one of the two draggable tokens of a position pair.
type PrintToken string

const (
	TokenStub   PrintToken = "stub"
	TokenTicket PrintToken = "ticket"
)

// PositionPair holds the stub ("canhoto") and ticket ("bilhete") offsets of
// one print position. A token is placed once it was loaded from the backend
// or dragged; unplaced tokens sit at the origin.
type PositionPair struct {
	StubX        float64 `json:"stubX"`
	StubY        float64 `json:"stubY"`
	TicketX      float64 `json:"ticketX"`
	TicketY      float64 `json:"ticketY"`
	StubPlaced   bool    `json:"stubPlaced"`
	TicketPlaced bool    `json:"ticketPlaced"`
}

// Complete reports whether both tokens of the pair are placed.
func (p PositionPair) Complete() bool {
	return p.StubPlaced && p.TicketPlaced
}

// PrintPosition is the wire format submitted for print-file generation.
type PrintPosition struct {
	XCanhoto int `json:"xCanhoto"`
	YCanhoto int `json:"yCanhoto"`
	XBilhete int `json:"xBilhete"`
	YBilhete int `json:"yBilhete"`
}

// PrintLayout is the in-progress layout of one browser context.
//
// Invariant: len(Positions) == PositionCount.
type PrintLayout struct {
	Orientation   Orientation    `json:"orientation"`
	PositionCount int            `json:"positionCount"`
	Positions     []PositionPair `json:"positions"`
	State         EditorState    `json:"state"`
	TestLink      string         `json:"testLink,omitempty"`
	PanelWidth    int            `json:"panelWidth"`
	PanelHeight   int            `json:"panelHeight"`
}

// NewPrintLayout returns a configured layout with every pair at the origin.
func NewPrintLayout(o Orientation, count int) (*PrintLayout, error) {
	if count < MinPositions || count > MaxPositions {
		return nil, ErrInvalidPositionCount
	}
	if !o.Valid() {
		return nil, fmt.Errorf("unknown orientation %q", o)
	}
	w, h := o.PanelSize()
	return &PrintLayout{
		Orientation:   o,
		PositionCount: count,
		Positions:     make([]PositionPair, count),
		State:         EditorConfigured,
		PanelWidth:    w,
		PanelHeight:   h,
	}, nil
}

// Place sets the absolute position of both tokens of pair i.
func (l *PrintLayout) Place(i int, stubX, stubY, ticketX, ticketY float64) error {
	if i < 0 || i >= len(l.Positions) {
		return ErrInvalidPosition
	}
	l.Positions[i] = PositionPair{
		StubX: stubX, StubY: stubY,
		TicketX: ticketX, TicketY: ticketY,
		StubPlaced: true, TicketPlaced: true,
	}
	return nil
}

// Drag adds the pointer delta to the token's last committed position. No
// snapping or clamping is applied, so a token can leave the canvas. Any
// pending test link is discarded.
func (l *PrintLayout) Drag(i int, token PrintToken, dx, dy float64) error {
	if l.State == EditorUnconfigured {
		return ErrLayoutNotConfigured
	}
	if i < 0 || i >= len(l.Positions) {
		return ErrInvalidPosition
	}
	p := &l.Positions[i]
	switch token {
	case TokenStub:
		p.StubX += dx
		p.StubY += dy
		p.StubPlaced = true
	case TokenTicket:
		p.TicketX += dx
		p.TicketY += dy
		p.TicketPlaced = true
	default:
		return fmt.Errorf("unknown print token %q", token)
	}
	l.State = EditorDirty
	l.TestLink = ""
	return nil
}

// Export serializes every pair rounded to integer pixels, in order.
func (l *PrintLayout) Export() ([]PrintPosition, error) {
	if l == nil || l.State == EditorUnconfigured {
		return nil, ErrLayoutNotConfigured
	}
	out := make([]PrintPosition, 0, len(l.Positions))
	for _, p := range l.Positions {
		if !p.Complete() {
			return nil, ErrIncompleteLayout
		}
		out = append(out, PrintPosition{
			XCanhoto: RoundPixel(p.StubX),
			YCanhoto: RoundPixel(p.StubY),
			XBilhete: RoundPixel(p.TicketX),
			YBilhete: RoundPixel(p.TicketY),
		})
	}
	return out, nil
}

// MarkSubmitted returns the editor to Configured after a successful submit.
// testLink is kept only for test submissions; pass "" otherwise.
func (l *PrintLayout) MarkSubmitted(testLink string) {
	l.State = EditorConfigured
	l.TestLink = testLink
}

// RoundPixel rounds to the nearest integer pixel with halves going towards
// +Inf, the rounding the canvas front-end applies.
func RoundPixel(v float64) int {
	return int(math.Floor(v + 0.5))
}
