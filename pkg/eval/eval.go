package eval

import "github.com/herohde/gyrfalcon/pkg/board"

// Options tunes the relative weight of each evaluation component. Values mirror the engine's
// configurable option table; zero is never valid and Evaluator substitutes the packaged
// defaults when constructed via NewEvaluator.
type Options struct {
	PSTScale            int
	PawnStructureDivisor int
	MobilityDivisor      int
	KingSafetyDivisor    int
}

// DefaultOptions returns the factory-default divisors.
func DefaultOptions() Options {
	return Options{
		PSTScale:             4,
		PawnStructureDivisor: 4,
		MobilityDivisor:      8,
		KingSafetyDivisor:    12,
	}
}

// Evaluator is the static position evaluator: a pure function of the board plus a small
// amount of cross-call cache state (the pawn-hash table) that never affects the result, only
// its cost.
type Evaluator struct {
	opts  Options
	pawns *PawnCache
}

// NewEvaluator creates an Evaluator with the given options, substituting any zero divisor
// with its packaged default so a caller need not fill in every field.
func NewEvaluator(opts Options) *Evaluator {
	d := DefaultOptions()
	if opts.PSTScale != 0 {
		d.PSTScale = opts.PSTScale
	}
	if opts.PawnStructureDivisor != 0 {
		d.PawnStructureDivisor = opts.PawnStructureDivisor
	}
	if opts.MobilityDivisor != 0 {
		d.MobilityDivisor = opts.MobilityDivisor
	}
	if opts.KingSafetyDivisor != 0 {
		d.KingSafetyDivisor = opts.KingSafetyDivisor
	}
	return &Evaluator{opts: d, pawns: NewPawnCache()}
}

// ClearCaches drops all cached pawn-structure evaluations, e.g. at the start of a new game.
func (e *Evaluator) ClearCaches() {
	e.pawns.Clear()
}

// Evaluate returns a centipawn score from the perspective of the side to move: positive
// favors whoever is to move. Evaluate never mutates board and is deterministic for a given
// board and Options, so two evaluators with the same options always agree on the same
// position.
func (e *Evaluator) Evaluate(b *board.Board) Score {
	phase := Phase(b)

	mat := material(b)
	mg, eg := mat, mat

	pm, pe := pstTotal(b, e.opts.PSTScale)
	mg += pm
	eg += pe

	sm, se := pawnStructure(b, e.pawns)
	mg += sm / Score(e.opts.PawnStructureDivisor)
	eg += se / Score(e.opts.PawnStructureDivisor)

	for _, c := range [2]board.Color{board.White, board.Black} {
		am, ae := activity(b, c, phase, e.opts.MobilityDivisor)
		mg += am * Unit(c)
		eg += ae * Unit(c)

		km, ke := kingSafety(b, c, phase, e.opts.KingSafetyDivisor)
		mg += km * Unit(c)
		eg += ke * Unit(c)
	}

	total := Interpolate(mg, eg, phase)
	total = clamp(total, MinScore, MaxScore)

	return total * Unit(b.SideToMove())
}
