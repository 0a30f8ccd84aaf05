package engine

import (
	"strconv"

	"github.com/herohde/gyrfalcon/pkg/eval"
	"github.com/herohde/gyrfalcon/pkg/search"
)

// Options holds every runtime-tunable parameter from the option table (§6), with the
// factory defaults baked in. set_option mutates a copy of this struct under the engine's
// lock; out-of-range values are clamped rather than rejected, and unknown option names
// are silently ignored, per spec.
type Options struct {
	HashSizeMB int
	Threads    int
	MultiPV    int

	Search search.Config
	Eval   eval.Options
}

// DefaultOptions returns the factory-default runtime configuration.
func DefaultOptions() Options {
	return Options{
		HashSizeMB: 64,
		Threads:    1,
		MultiPV:    1,
		Search:     search.DefaultConfig(),
		Eval:       eval.DefaultOptions(),
	}
}

// SetOption updates a single named runtime option from its string value, clamping values
// that fall outside the option's valid range. Unknown names are ignored.
func (o *Options) SetOption(name, value string) {
	switch name {
	case "hash_size_mb":
		o.HashSizeMB = clampInt(atoiOr(value, o.HashSizeMB), 1, 1024)
	case "threads":
		o.Threads = 1 // only 1 supported; silently pinned
	case "multi_pv":
		o.MultiPV = clampInt(atoiOr(value, o.MultiPV), 1, 255)
	case "lmr_base_reduction":
		o.Search.LMRBaseReduction = atoiOr(value, o.Search.LMRBaseReduction)
	case "lmr_move_threshold":
		o.Search.LMRMoveThreshold = atoiOr(value, o.Search.LMRMoveThreshold)
	case "lmr_depth_threshold":
		o.Search.LMRDepthThreshold = atoiOr(value, o.Search.LMRDepthThreshold)
	case "null_move_r":
		o.Search.NullMoveR = atoiOr(value, o.Search.NullMoveR)
	case "null_move_min_depth":
		o.Search.NullMoveMinDepth = atoiOr(value, o.Search.NullMoveMinDepth)
	case "futility_margin_d1", "futility_margin_d2", "futility_margin_d3":
		setScoreAtIndex(o.Search.FutilityMargin[:], depthSuffix(name), value)
	case "rfp_margin_d1", "rfp_margin_d2", "rfp_margin_d3", "rfp_margin_d4", "rfp_margin_d5":
		setScoreAtIndex(o.Search.RFPMargin[:], depthSuffix(name), value)
	case "razor_margin_d1", "razor_margin_d2", "razor_margin_d3":
		setScoreAtIndex(o.Search.RazorMargin[:], depthSuffix(name), value)
	case "lmp_threshold_d1", "lmp_threshold_d2", "lmp_threshold_d3":
		d := depthSuffix(name)
		o.Search.LMPThreshold[d] = atoiOr(value, o.Search.LMPThreshold[d])
	case "aspiration_delta":
		o.Search.AspirationDelta = eval.Score(atoiOr(value, int(o.Search.AspirationDelta)))
	case "king_safety_divisor":
		o.Eval.KingSafetyDivisor = clampInt(atoiOr(value, o.Eval.KingSafetyDivisor), 1, 1000)
	case "pst_scale":
		o.Eval.PSTScale = clampInt(atoiOr(value, o.Eval.PSTScale), 1, 1000)
	case "pawn_structure_divisor":
		o.Eval.PawnStructureDivisor = clampInt(atoiOr(value, o.Eval.PawnStructureDivisor), 1, 1000)
	case "mobility_divisor":
		o.Eval.MobilityDivisor = clampInt(atoiOr(value, o.Eval.MobilityDivisor), 1, 1000)
	default:
		// unknown option: ignored per spec
	}
}

func depthSuffix(name string) int {
	d, _ := strconv.Atoi(name[len(name)-1:])
	return d
}

func setScoreAtIndex(margins []eval.Score, d int, value string) {
	if d < 0 || d >= len(margins) {
		return
	}
	margins[d] = eval.Score(atoiOr(value, int(margins[d])))
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
