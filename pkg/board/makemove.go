package board

// castlingRookSquares returns the rook's from/to squares for a castle move, keyed by the
// king's destination square (g1/c1/g8/c8).
func castlingRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case NewSquare(FileG, Rank1):
		return NewSquare(FileH, Rank1), NewSquare(FileF, Rank1)
	case NewSquare(FileC, Rank1):
		return NewSquare(FileA, Rank1), NewSquare(FileD, Rank1)
	case NewSquare(FileG, Rank8):
		return NewSquare(FileH, Rank8), NewSquare(FileF, Rank8)
	default: // FileC, Rank8
		return NewSquare(FileA, Rank8), NewSquare(FileD, Rank8)
	}
}

// castlingRightsLostBy returns the rights that are cleared when a piece moves from, or a
// capture lands on, sq (a king's or rook's home square).
func castlingRightsLostBy(sq Square) Castling {
	switch sq {
	case NewSquare(FileE, Rank1):
		return WhiteKingside | WhiteQueenside
	case NewSquare(FileH, Rank1):
		return WhiteKingside
	case NewSquare(FileA, Rank1):
		return WhiteQueenside
	case NewSquare(FileE, Rank8):
		return BlackKingside | BlackQueenside
	case NewSquare(FileH, Rank8):
		return BlackKingside
	case NewSquare(FileA, Rank8):
		return BlackQueenside
	default:
		return NoCastling
	}
}

// MakeMove applies a (assumed pseudo-legal) move to the board and returns the UndoInfo
// needed to reverse it. The move is also pushed onto the board's internal undo stack, so
// callers may instead use UnmakeLast to reverse the most recent move.
func (b *Board) MakeMove(m Move) UndoInfo {
	undo := UndoInfo{
		Move:         m,
		PrevCastling: b.castling,
		PrevEPSquare: b.epSquare,
		PrevHalfmove: b.halfmoveClock,
		PrevHash:     b.hash,
	}

	us := b.sideToMove
	them := us.Opponent()
	from, to, flag := m.From(), m.To(), m.Flag()

	_, piece, _ := b.PieceAt(from)

	// (1) Remove the moving piece from its origin.
	b.remove(us, piece, from)
	b.hash ^= pieceKey(us, piece, from)

	// (2) Capture, if any (en-passant captures the pawn behind the destination).
	if flag.IsCapture() {
		capSq := to
		if flag == FlagEnPassant {
			if us == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		_, captured, _ := b.PieceAt(capSq)
		b.remove(them, captured, capSq)
		b.hash ^= pieceKey(them, captured, capSq)
		undo.Captured = captured
	} else {
		undo.Captured = NoPiece
	}

	// (3) Place the moving piece (or the promoted piece) on the destination.
	placed := piece
	if flag.IsPromotion() {
		placed = flag.PromotionPiece()
	}
	b.Put(us, placed, to)
	b.hash ^= pieceKey(us, placed, to)

	// (4) Castling: move the associated rook too.
	if flag == FlagKingCastle || flag == FlagQueenCastle {
		rFrom, rTo := castlingRookSquares(to)
		b.remove(us, Rook, rFrom)
		b.Put(us, Rook, rTo)
		b.hash ^= pieceKey(us, Rook, rFrom)
		b.hash ^= pieceKey(us, Rook, rTo)
	}

	// (5) Update castling rights.
	newCastling := b.castling &^ castlingRightsLostBy(from) &^ castlingRightsLostBy(to)

	// (6) Update en-passant target square.
	newEP := NoSquare
	if flag == FlagDoublePawnPush {
		if us == White {
			newEP = from + 8
		} else {
			newEP = from - 8
		}
	}

	// (7) Update halfmove clock.
	if piece == Pawn || flag.IsCapture() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}

	// (8) Fullmove number increments after Black's move.
	if us == Black {
		b.fullmoveNumber++
	}

	// (9)-(10) Toggle side to move and XOR metadata deltas into hash.
	b.hash ^= castlingKey(b.castling)
	b.hash ^= castlingKey(newCastling)
	b.hash ^= epFileKey(b.epSquare)
	b.hash ^= epFileKey(newEP)
	b.hash ^= sideKey()

	b.castling = newCastling
	b.epSquare = newEP
	b.sideToMove = them

	b.undo = append(b.undo, undo)
	return undo
}

// UnmakeMove reverses the most recently made move (which must be m, the caller's own
// record of what it last made) using the given UndoInfo. Restores the board to byte-for-byte
// equality with its pre-make state.
func (b *Board) UnmakeMove(m Move, undo UndoInfo) {
	them := b.sideToMove // side that is about to move was not-to-move before unmake's target move
	us := them.Opponent()

	from, to, flag := m.From(), m.To(), m.Flag()

	_, placed, _ := b.PieceAt(to)
	b.remove(us, placed, to)

	orig := placed
	if flag.IsPromotion() {
		orig = Pawn
	}
	b.Put(us, orig, from)

	if flag == FlagKingCastle || flag == FlagQueenCastle {
		rFrom, rTo := castlingRookSquares(to)
		b.remove(us, Rook, rTo)
		b.Put(us, Rook, rFrom)
	}

	if flag.IsCapture() {
		capSq := to
		if flag == FlagEnPassant {
			if us == White {
				capSq = to - 8
			} else {
				capSq = to + 8
			}
		}
		b.Put(them, undo.Captured, capSq)
	}

	if us == Black {
		b.fullmoveNumber--
	}

	b.castling = undo.PrevCastling
	b.epSquare = undo.PrevEPSquare
	b.halfmoveClock = undo.PrevHalfmove
	b.hash = undo.PrevHash
	b.sideToMove = us

	if n := len(b.undo); n > 0 && b.undo[n-1].Move == m {
		b.undo = b.undo[:n-1]
	}
}

// UnmakeLast reverses the most recently made move, popping it from the internal undo
// stack. Panics if no move has been made.
func (b *Board) UnmakeLast() Move {
	n := len(b.undo)
	undo := b.undo[n-1]
	b.UnmakeMove(undo.Move, undo)
	return undo.Move
}

// MakeNullMove toggles the side to move, clears the en-passant square, and XORs the
// side and en-passant deltas into the hash. Returns the info needed to reverse it.
func (b *Board) MakeNullMove() UndoInfo {
	undo := UndoInfo{
		PrevEPSquare: b.epSquare,
		PrevHash:     b.hash,
		PrevCastling: b.castling,
		PrevHalfmove: b.halfmoveClock,
	}
	b.hash ^= epFileKey(b.epSquare)
	b.hash ^= sideKey()
	b.epSquare = NoSquare
	b.sideToMove = b.sideToMove.Opponent()
	b.halfmoveClock++
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (b *Board) UnmakeNullMove(undo UndoInfo) {
	b.sideToMove = b.sideToMove.Opponent()
	b.epSquare = undo.PrevEPSquare
	b.hash = undo.PrevHash
	b.halfmoveClock = undo.PrevHalfmove
	b.castling = undo.PrevCastling
}
