package engine

import "fmt"

// Suit constants, packed into bits 4-5 of Card.
const (
	SuitSpades   uint8 = 0
	SuitHearts   uint8 = 1
	SuitDiamonds uint8 = 2
	SuitClubs    uint8 = 3
)

// Rank constants, packed into the lower 4 bits of Card. Ace is 1 so that the
// zero Card can mean "no card".
const (
	RankAce   uint8 = 1
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

// Card is a packed uint8: bit 7 = face-up flag, bits 4-5 = suit,
// lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0

const faceUpBit Card = 0x80

// NewCard constructs a face-down Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit&0x03)<<4 | rank&0x0F)
}

// Suit returns the suit bits.
func (c Card) Suit() uint8 { return uint8(c>>4) & 0x03 }

// Rank returns the rank bits (1 = Ace … 13 = King).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// FaceUp reports whether the card is showing.
func (c Card) FaceUp() bool { return c&faceUpBit != 0 }

// Up returns the card turned face-up.
func (c Card) Up() Card { return c | faceUpBit }

// Down returns the card turned face-down.
func (c Card) Down() Card { return c &^ faceUpBit }

// Identity returns the (rank, suit) part of the card with orientation
// stripped. Two cards are the same physical card iff their identities match.
func (c Card) Identity() Card { return c &^ faceUpBit }

// Valid reports whether c encodes one of the 52 real cards.
func (c Card) Valid() bool {
	r := c.Rank()
	return r >= RankAce && r <= RankKing && c&0x40 == 0
}

// Index returns a dense 0..51 index for the card identity.
func (c Card) Index() int { return int(c.Suit())*13 + int(c.Rank()) - 1 }

// IsRed reports whether the card belongs to the red colour class.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == SuitHearts || s == SuitDiamonds
}

// OppositeColor reports whether a and b belong to different colour classes.
func OppositeColor(a, b Card) bool { return a.IsRed() != b.IsRed() }

var (
	rankNames = [...]string{"?", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suitNames = [...]string{"♠", "♥", "♦", "♣"}
)

// RankString returns the short name of the rank ("A", "10", "K").
func (c Card) RankString() string {
	r := c.Rank()
	if int(r) >= len(rankNames) {
		return "?"
	}
	return rankNames[r]
}

// SuitString returns the suit symbol.
func (c Card) SuitString() string { return suitNames[c.Suit()] }

// String renders the card identity regardless of orientation, e.g. "10♥".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return c.RankString() + c.SuitString()
}

// ---------------------------------------------------------------------------
// Moves
// ---------------------------------------------------------------------------

// MoveKind enumerates the move families a player can attempt.
type MoveKind uint8

const (
	MoveNone                MoveKind = iota // 0
	MoveTableauToTableau                    // 1
	MoveTableauToFoundation                 // 2
	MoveReserveToTableau                    // 3
	MoveReserveToFoundation                 // 4
	MoveDraw                                // 5
	MoveReshuffle                           // 6
	MoveDiscardReserve                      // 7
)

var moveKindNames = [...]string{
	"none",
	"tableau_to_tableau",
	"tableau_to_foundation",
	"reserve_to_tableau",
	"reserve_to_foundation",
	"draw",
	"reshuffle",
	"discard_reserve",
}

func (k MoveKind) String() string {
	if int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return fmt.Sprintf("MoveKind(%d)", uint8(k))
}

// Move describes one attempted mutation. Src and Dst are column indices where
// the kind needs them; Count is the run length of a tableau-to-tableau move.
type Move struct {
	Kind  MoveKind
	Src   uint8
	Dst   uint8
	Count uint8
}

// TableauToTableau moves the top count cards of column src onto column dst.
func TableauToTableau(src, dst, count uint8) Move {
	return Move{Kind: MoveTableauToTableau, Src: src, Dst: dst, Count: count}
}

// TableauToFoundation moves the top card of column src to its foundation.
func TableauToFoundation(src uint8) Move {
	return Move{Kind: MoveTableauToFoundation, Src: src}
}

// ReserveToTableau moves the reserve top onto column dst.
func ReserveToTableau(dst uint8) Move {
	return Move{Kind: MoveReserveToTableau, Dst: dst}
}

// ReserveToFoundation moves the reserve top to its foundation.
func ReserveToFoundation() Move { return Move{Kind: MoveReserveToFoundation} }

// Draw moves the stock top into the reserve, face-up.
func Draw() Move { return Move{Kind: MoveDraw} }

// Reshuffle turns the discard pile into a freshly shuffled stock.
func Reshuffle() Move { return Move{Kind: MoveReshuffle} }

// DiscardReserve moves the reserve top to the discard pile.
func DiscardReserve() Move { return Move{Kind: MoveDiscardReserve} }

func (m Move) String() string {
	switch m.Kind {
	case MoveTableauToTableau:
		return fmt.Sprintf("%s(%d->%d x%d)", m.Kind, m.Src+1, m.Dst+1, m.Count)
	case MoveTableauToFoundation:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Src+1)
	case MoveReserveToTableau:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Dst+1)
	default:
		return m.Kind.String()
	}
}

// GameStatus classifies a position.
type GameStatus uint8

const (
	StatusInProgress GameStatus = iota // 0
	StatusWon                          // 1
	StatusStuck                        // 2
)

func (s GameStatus) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusStuck:
		return "stuck"
	default:
		return "in_progress"
	}
}
