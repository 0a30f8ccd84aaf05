// Package protocol defines the JSON request/response envelope the transport layer
// exchanges with an engine.Engine, and a Dispatch function implementing it. Every message
// is a flat JSON object discriminated by its "type" field, so a single struct with
// omitempty fields round-trips both requests and responses without a parser generator.
package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/herohde/gyrfalcon/pkg/engine"
	"github.com/herohde/gyrfalcon/pkg/search"
	"github.com/herohde/gyrfalcon/pkg/searchctl"
)

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Request is a single incoming message. Type selects which of the other fields apply.
type Request struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	Position string   `json:"position,omitempty"`
	Moves    []string `json:"moves,omitempty"`
	Move     string   `json:"move,omitempty"`

	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`

	Depth      int  `json:"depth,omitempty"`
	MoveTimeMs int  `json:"move_time_ms,omitempty"`
	WTimeMs    int  `json:"wtime_ms,omitempty"`
	BTimeMs    int  `json:"btime_ms,omitempty"`
	WIncMs     int  `json:"winc_ms,omitempty"`
	BIncMs     int  `json:"binc_ms,omitempty"`
	MovesToGo  int  `json:"movestogo,omitempty"`
	Infinite   bool `json:"infinite,omitempty"`
}

// Request type discriminators, one per §4.10 operation exposed over the wire.
const (
	TypeAnalyze      = "analyze"
	TypeStop         = "stop"
	TypeValidateMove = "validate_move"
	TypeMakeMove     = "make_move"
	TypeLegalMoves   = "legal_moves"
	TypeGameStatus   = "game_status"
	TypeSetPosition  = "set_position"
	TypeSetOption    = "set_option"
	TypeNewGame      = "new_game"
)

// Response is a single outgoing message. Type selects which of the other fields apply.
type Response struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	SearchInfo *SearchInfoPayload `json:"search_info,omitempty"`
	BestMove   string             `json:"best_move,omitempty"`

	Legal    bool     `json:"legal,omitempty"`
	FEN      string   `json:"fen,omitempty"`
	Moves    []string `json:"moves,omitempty"`

	Over   bool   `json:"over,omitempty"`
	Reason string `json:"reason,omitempty"`

	Error string `json:"error,omitempty"`
}

// Response type discriminators.
const (
	TypeSearchInfo     = "search_info"
	TypeBestMove       = "best_move"
	TypeMoveValidation = "move_validation"
	TypeNewPosition    = "new_position"
	TypeLegalMovesResp = "legal_moves"
	TypeGameStatusResp = "game_status"
	TypeError          = "error"
	TypeAck            = "ack"
)

// SearchInfoPayload carries one completed iterative-deepening depth, for one PV line.
// MultiPV is the 1-based line index; it is always 1 unless multi_pv was set above 1.
type SearchInfoPayload struct {
	Depth   int      `json:"depth"`
	Score   int      `json:"score_cp"`
	Nodes   uint64   `json:"nodes"`
	PV      []string `json:"pv"`
	MultiPV int      `json:"multi_pv"`
}

// Dispatch decodes a single request against e and returns the zero or more responses it
// produces: most requests yield exactly one, but analyze streams SearchInfo messages as
// depths complete (a depth whose PV was replaced before it was read is skipped), followed
// by a final BestMove.
func Dispatch(ctx context.Context, e *engine.Engine, req Request, send func(Response)) {
	switch req.Type {
	case TypeNewGame:
		e.NewGame(ctx)
		send(Response{ID: req.ID, Type: TypeAck})

	case TypeSetPosition:
		if err := e.SetPosition(ctx, req.Position, req.Moves); err != nil {
			send(errResponse(req.ID, err))
			return
		}
		send(Response{ID: req.ID, Type: TypeNewPosition, FEN: e.Position()})

	case TypeSetOption:
		e.SetOption(ctx, req.Name, req.Value)
		send(Response{ID: req.ID, Type: TypeAck})

	case TypeAnalyze:
		dispatchAnalyze(ctx, e, req, send)

	case TypeStop:
		pv, err := e.Stop(ctx)
		if err != nil {
			send(errResponse(req.ID, err))
			return
		}
		send(Response{ID: req.ID, Type: TypeBestMove, BestMove: bestMoveUCI(pv)})

	case TypeValidateMove:
		ok, err := engine.IsMoveLegal(req.Position, req.Move)
		if err != nil {
			send(errResponse(req.ID, err))
			return
		}
		send(Response{ID: req.ID, Type: TypeMoveValidation, Legal: ok})

	case TypeMakeMove:
		fen, err := engine.MakeMove(req.Position, req.Move)
		if err != nil {
			send(errResponse(req.ID, err))
			return
		}
		send(Response{ID: req.ID, Type: TypeNewPosition, FEN: fen})

	case TypeLegalMoves:
		moves, err := engine.LegalMoves(req.Position)
		if err != nil {
			send(errResponse(req.ID, err))
			return
		}
		send(Response{ID: req.ID, Type: TypeLegalMovesResp, Moves: moves})

	case TypeGameStatus:
		status, err := engine.Status(req.Position)
		if err != nil {
			send(errResponse(req.ID, err))
			return
		}
		send(Response{ID: req.ID, Type: TypeGameStatusResp, Over: status.Over, Reason: status.Reason})

	default:
		send(Response{ID: req.ID, Type: TypeError, Error: fmt.Sprintf("unknown request type %q", req.Type)})
	}
}

func dispatchAnalyze(ctx context.Context, e *engine.Engine, req Request, send func(Response)) {
	tc, hasTC := buildTimeControl(req)

	out, err := e.Analyze(ctx, req.Depth, tc, hasTC)
	if err != nil {
		send(errResponse(req.ID, err))
		return
	}

	var last search.PV
	for pv := range out {
		last = pv
		for i, line := range e.Lines() {
			info := toSearchInfo(line)
			info.MultiPV = i + 1
			send(Response{ID: req.ID, Type: TypeSearchInfo, SearchInfo: info})
		}
	}
	send(Response{ID: req.ID, Type: TypeBestMove, BestMove: bestMoveUCI(last)})
}

func buildTimeControl(req Request) (searchctl.TimeControl, bool) {
	switch {
	case req.Infinite:
		return searchctl.TimeControl{Kind: searchctl.Infinite}, true
	case req.MoveTimeMs > 0:
		return searchctl.TimeControl{Kind: searchctl.MoveTime, MoveTime: msToDuration(req.MoveTimeMs)}, true
	case req.WTimeMs > 0 || req.BTimeMs > 0:
		return searchctl.TimeControl{
			Kind:       searchctl.Clock,
			WhiteTime:  msToDuration(req.WTimeMs),
			BlackTime:  msToDuration(req.BTimeMs),
			WhiteInc:  msToDuration(req.WIncMs),
			BlackInc:  msToDuration(req.BIncMs),
			MovesToGo: req.MovesToGo,
		}, true
	default:
		return searchctl.TimeControl{}, false
	}
}

func toSearchInfo(pv search.PV) *SearchInfoPayload {
	moves := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		moves[i] = m.ToUCI()
	}
	return &SearchInfoPayload{Depth: pv.Depth, Score: int(pv.Score), Nodes: pv.Nodes, PV: moves}
}

func bestMoveUCI(pv search.PV) string {
	if len(pv.Moves) == 0 {
		return ""
	}
	return pv.Moves[0].ToUCI()
}

func errResponse(id string, err error) Response {
	return Response{ID: id, Type: TypeError, Error: err.Error()}
}

// Encode/Decode are thin json wrappers kept here so the transport layer never imports
// encoding/json directly, matching the layering the rest of the pack follows.
func Encode(r Response) ([]byte, error) {
	return json.Marshal(r)
}

func Decode(data []byte) (Request, error) {
	var r Request
	err := json.Unmarshal(data, &r)
	return r, err
}
