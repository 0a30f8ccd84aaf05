package movegen

import (
	"fmt"

	"github.com/herohde/gyrfalcon/pkg/board"
)

// ParseUCI resolves a UCI move string (e.g. "e2e4", "e7e8q") against the legal moves
// available in b, since the string alone does not encode capture/en-passant/castle flags.
func ParseUCI(b *board.Board, s string) (board.Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return 0, fmt.Errorf("malformed UCI move %q", s)
	}

	from, err := board.ParseSquareStr(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("malformed UCI move %q: %w", s, err)
	}
	to, err := board.ParseSquareStr(s[2:4])
	if err != nil {
		return 0, fmt.Errorf("malformed UCI move %q: %w", s, err)
	}

	var promo board.Piece = board.NoPiece
	if len(s) == 5 {
		promo, err = parsePromoLetter(s[4])
		if err != nil {
			return 0, fmt.Errorf("malformed UCI move %q: %w", s, err)
		}
	}

	legal := GenerateLegal(b)
	for i := 0; i < legal.Len(); i++ {
		m := legal.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.PromotionPiece() != promo {
			continue
		}
		if !m.IsPromotion() && promo != board.NoPiece {
			continue
		}
		return m, nil
	}
	return 0, fmt.Errorf("illegal move %q", s)
}

func parsePromoLetter(c byte) (board.Piece, error) {
	switch c {
	case 'q':
		return board.Queen, nil
	case 'r':
		return board.Rook, nil
	case 'b':
		return board.Bishop, nil
	case 'n':
		return board.Knight, nil
	default:
		return board.NoPiece, fmt.Errorf("unknown promotion piece %q", string(c))
	}
}
