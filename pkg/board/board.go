// Package board implements the bitboard position representation: squares, pieces,
// castling rights, Zobrist hashing, and the mutable Board with make/unmake move support.
package board

import (
	"fmt"
	"strings"
)

// Board holds the full mutable chess position plus game-history metadata needed for
// make/unmake and the 50-move/repetition rules.
type Board struct {
	pieces          [NumColors][NumPieces]Bitboard
	occupiedByColor [NumColors]Bitboard
	occupied        Bitboard

	sideToMove     Color
	castling       Castling
	epSquare       Square // NoSquare if not available
	halfmoveClock  int
	fullmoveNumber int
	hash           ZobristHash

	undo []UndoInfo
}

// UndoInfo is the minimum state needed to reverse a single make-move.
type UndoInfo struct {
	Move          Move
	Captured      Piece
	PrevCastling  Castling
	PrevEPSquare  Square
	PrevHalfmove  int
	PrevHash      ZobristHash
}

// NewBoard constructs an empty board positioned for White to move, no castling rights,
// no en-passant square, at move 1. Callers typically populate it via Put or via FEN decode.
func NewBoard() *Board {
	b := &Board{
		epSquare:       NoSquare,
		fullmoveNumber: 1,
	}
	for c := Color(0); c < NumColors; c++ {
		for p := Piece(0); p < NumPieces; p++ {
			b.pieces[c][p] = EmptyBitboard
		}
	}
	b.hash = ZobristFromScratch(b)
	return b
}

// Put places a piece on an empty square. Callers must not call Put on an occupied square.
func (b *Board) Put(c Color, p Piece, sq Square) {
	b.pieces[c][p] = b.pieces[c][p].Set(sq)
	b.occupiedByColor[c] = b.occupiedByColor[c].Set(sq)
	b.occupied = b.occupied.Set(sq)
}

func (b *Board) remove(c Color, p Piece, sq Square) {
	b.pieces[c][p] = b.pieces[c][p].Clear(sq)
	b.occupiedByColor[c] = b.occupiedByColor[c].Clear(sq)
	b.occupied = b.occupied.Clear(sq)
}

// RecomputeHash sets Hash to the from-scratch value; used right after direct construction
// via Put (e.g. from a FEN decoder) before any make-move has happened.
func (b *Board) RecomputeHash() {
	b.hash = ZobristFromScratch(b)
}

func (b *Board) SetSideToMove(c Color)     { b.sideToMove = c }
func (b *Board) SetCastling(c Castling)    { b.castling = c }
func (b *Board) SetEnPassant(sq Square)    { b.epSquare = sq }
func (b *Board) SetHalfmoveClock(n int)    { b.halfmoveClock = n }
func (b *Board) SetFullmoveNumber(n int)   { b.fullmoveNumber = n }

func (b *Board) SideToMove() Color       { return b.sideToMove }
func (b *Board) Castling() Castling      { return b.castling }
func (b *Board) EnPassant() (Square, bool) {
	return b.epSquare, b.epSquare != NoSquare
}
func (b *Board) HalfmoveClock() int  { return b.halfmoveClock }
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }
func (b *Board) Hash() ZobristHash   { return b.hash }
func (b *Board) Ply() int            { return len(b.undo) }

// Occupied returns the union of all pieces of both colors.
func (b *Board) Occupied() Bitboard { return b.occupied }

// OccupiedBy returns the union of pieces of the given color.
func (b *Board) OccupiedBy(c Color) Bitboard { return b.occupiedByColor[c] }

// PieceBB returns the bitboard of pieces of the given color and kind.
func (b *Board) PieceBB(c Color, p Piece) Bitboard { return b.pieces[c][p] }

// PieceAt returns the piece and color on a square, if any.
func (b *Board) PieceAt(sq Square) (Color, Piece, bool) {
	if !b.occupied.IsSet(sq) {
		return 0, NoPiece, false
	}
	c := White
	if b.occupiedByColor[Black].IsSet(sq) {
		c = Black
	}
	for p := Piece(0); p < NumPieces; p++ {
		if b.pieces[c][p].IsSet(sq) {
			return c, p, true
		}
	}
	return 0, NoPiece, false
}

// KingSquare returns the square of the color's king.
func (b *Board) KingSquare(c Color) Square {
	return b.pieces[c][King].LSB()
}

// Clone returns a deep copy suitable for being handed to a concurrent reader (e.g. a
// UCI "go" probe on a separate forked board); the search itself mutates a single Board
// in place via Make/Unmake rather than cloning per ply.
func (b *Board) Clone() *Board {
	c := *b
	c.undo = append([]UndoInfo(nil), b.undo...)
	return &c
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		for f := 0; f < 8; f++ {
			sq := NewSquare(File(f), Rank(r))
			if c, p, ok := b.PieceAt(sq); ok {
				sb.WriteByte(PrintPiece(c, p))
			} else {
				sb.WriteByte('-')
			}
		}
		if r != int(Rank1) {
			sb.WriteByte('/')
		}
	}
	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}
	return fmt.Sprintf("%v %v %v %v hm=%v fm=%v", sb.String(), b.sideToMove, b.castling, ep, b.halfmoveClock, b.fullmoveNumber)
}

// Equal reports whether two boards have identical observable state (used by the
// make/unmake round-trip test, which requires byte-for-byte equality after unmake).
func (b *Board) Equal(o *Board) bool {
	if b.sideToMove != o.sideToMove || b.castling != o.castling || b.epSquare != o.epSquare ||
		b.halfmoveClock != o.halfmoveClock || b.fullmoveNumber != o.fullmoveNumber || b.hash != o.hash ||
		b.occupied != o.occupied {
		return false
	}
	for c := Color(0); c < NumColors; c++ {
		if b.occupiedByColor[c] != o.occupiedByColor[c] {
			return false
		}
		for p := Piece(0); p < NumPieces; p++ {
			if b.pieces[c][p] != o.pieces[c][p] {
				return false
			}
		}
	}
	return true
}
