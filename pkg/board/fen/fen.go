// Package fen decodes and encodes positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/gyrfalcon/pkg/board"
)

// Initial is the FEN for the standard chess starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// StartposAlias is the well-known shorthand the UCI-like protocol accepts instead of a
// literal FEN string.
const StartposAlias = "startpos"

// Decode parses a six-field FEN string into a Board. A seventh field, or fewer than six
// fields, is rejected; so is any character outside the grammar; so is a board with the
// wrong piece count (not exactly one king per side) or where the side not to move is
// already in check.
func Decode(s string) (*board.Board, error) {
	if strings.TrimSpace(s) == StartposAlias {
		s = Initial
	}

	parts := strings.Fields(s)
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid fen: expected 6 fields, got %d: %q", len(parts), s)
	}

	b := board.NewBoard()

	if err := decodePlacement(b, parts[0]); err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", s, err)
	}

	switch parts[1] {
	case "w":
		b.SetSideToMove(board.White)
	case "b":
		b.SetSideToMove(board.Black)
	default:
		return nil, fmt.Errorf("invalid fen %q: bad active color %q", s, parts[1])
	}

	castling, err := decodeCastling(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", s, err)
	}
	b.SetCastling(castling)

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid fen %q: bad en passant square: %w", s, err)
		}
		ep = sq
	}
	b.SetEnPassant(ep)

	half, err := strconv.Atoi(parts[4])
	if err != nil || half < 0 {
		return nil, fmt.Errorf("invalid fen %q: bad halfmove clock %q", s, parts[4])
	}
	b.SetHalfmoveClock(half)

	full, err := strconv.Atoi(parts[5])
	if err != nil || full < 1 {
		return nil, fmt.Errorf("invalid fen %q: bad fullmove number %q", s, parts[5])
	}
	b.SetFullmoveNumber(full)

	b.RecomputeHash()

	if err := validate(b); err != nil {
		return nil, fmt.Errorf("invalid fen %q: %w", s, err)
	}
	return b, nil
}

func decodePlacement(b *board.Board, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := board.Rank(7 - i) // FEN ranks run 8 -> 1
		file := 0
		for _, r := range rankStr {
			switch {
			case unicode.IsDigit(r):
				file += int(r - '0')
			default:
				piece, color, ok := board.ParsePiece(r)
				if !ok {
					return fmt.Errorf("invalid piece character %q", r)
				}
				if file >= 8 {
					return fmt.Errorf("rank %d overflows 8 files", i+1)
				}
				sq := board.NewSquare(board.File(file), rank)
				if _, _, occ := b.PieceAt(sq); occ {
					return fmt.Errorf("duplicate piece on %v", sq)
				}
				b.Put(color, piece, sq)
				file++
			}
		}
		if file != 8 {
			return fmt.Errorf("rank %d has %d files, want 8", i+1, file)
		}
	}
	return nil
}

func decodeCastling(field string) (board.Castling, error) {
	if field == "-" {
		return board.NoCastling, nil
	}
	var c board.Castling
	for _, r := range field {
		switch r {
		case 'K':
			c |= board.WhiteKingside
		case 'Q':
			c |= board.WhiteQueenside
		case 'k':
			c |= board.BlackKingside
		case 'q':
			c |= board.BlackQueenside
		default:
			return 0, fmt.Errorf("invalid castling character %q", r)
		}
	}
	return c, nil
}

func validate(b *board.Board) error {
	if b.PieceBB(board.White, board.King).PopCount() != 1 || b.PieceBB(board.Black, board.King).PopCount() != 1 {
		return fmt.Errorf("must have exactly one king per side")
	}
	if b.ColorInCheck(b.SideToMove().Opponent()) {
		return fmt.Errorf("side not to move is in check")
	}
	return nil
}

// Encode renders the board in canonical FEN: no extra whitespace, fields in order, "-"
// where a field is absent.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		rank := board.Rank(7 - i)
		empty := 0
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(board.File(file), rank)
			if c, p, ok := b.PieceAt(sq); ok {
				if empty > 0 {
					sb.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				sb.WriteByte(board.PrintPiece(c, p))
			} else {
				empty++
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if i != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.SideToMove().String())

	sb.WriteByte(' ')
	sb.WriteString(b.Castling().String())

	sb.WriteByte(' ')
	if sq, ok := b.EnPassant(); ok {
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfmoveClock()))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullmoveNumber()))

	return sb.String()
}
