/*
 * TempoGo - chess engine core in GO
 *
 * MIT License
 *
 * Copyright (c) 2024-2026 Thomas Mertens
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package movepicker implements the staged move enumerator of the
// search. A MovePicker is bound to one position and one search node
// and emits one new pseudo legal move per call to NextMove until no
// moves are left, ordering the moves so that the most promising
// ones come first: transposition table move, winning captures,
// refutations (killers and countermove), quiet moves by history,
// losing captures and finally the left over quiet moves.
//
// Generation is lazy: each move class is only generated when the
// previous classes are exhausted so a beta cutoff on an early move
// never pays for generating the rest.
package movepicker

import (
	"github.com/tmertens/TempoGo/internal/history"
	"github.com/tmertens/TempoGo/internal/movegen"
	"github.com/tmertens/TempoGo/internal/moveslice"
	"github.com/tmertens/TempoGo/internal/position"
	. "github.com/tmertens/TempoGo/internal/types"
)

// the stages of the picker state machine in emission order
type stage int8

const (
	// main search stages
	mainTT stage = iota
	captureInit
	goodCapture
	refutationStage
	quietInit
	goodQuiet
	badCapture
	badQuiet

	// check evasion stages
	evasionTT
	evasionInit
	evasion

	// ProbCut stages
	probCutTT
	probCutInit
	probCut

	// quiescence search stages
	qsearchTT
	qCaptureInit
	qCapture
	qCheckInit
	qCheck
)

const (
	// score sentinel for captures which failed their SEE gate -
	// they are re-emitted by the bad capture stage
	badCaptureScore = 8888888
	// score sentinel for moves reported illegal by the caller
	illegalScore = 9999999

	// sort limit which sorts the whole range
	sortAllLimit = -2147483648

	// quiet moves scoring above this bound are always emitted by
	// the good quiet stage
	goodQuietBound = -7998

	// quiet checks are generated in the quiescence search at this
	// depth and above
	depthQsChecks = 0

	// see slack divisor of the dynamic good capture gate
	seeGateDivisor = 18

	// bonus for quiet moves giving check with a tolerable exchange
	checkBonus = 16384
)

// threat migration bonuses per piece type (knight, bishop, rook,
// queen)
var threatBonus = [4]int{144, 144, 256, 517}

// quietThreshold is the depth dependent partial sort limit of the
// quiet stage
func quietThreshold(depth int) int {
	return -3560 * depth
}

// MovePicker emits one pseudo legal move per call to NextMove in
// an order tuned to maximize alpha-beta cutoffs. It must be
// created per search node with one of the constructors and must
// not be copied once constructed.
type MovePicker struct {
	pos *position.Position

	mainHistory         *history.ButterflyHistory
	lowPlyHistory       *history.LowPlyHistory
	captureHistory      *history.CapturePieceToHistory
	continuationHistory []*history.PieceToHistory
	pawnHistory         *history.PawnHistory

	ttMove          Move
	refutations     [3]Move
	refCur          int
	depth           int
	ply             int
	threshold       Value
	recaptureSquare Square
	skipQuiets      bool

	stage stage

	// the inline move buffer: captures first, quiets after.
	// cursors are indices into this buffer which keeps the picker
	// trivially relocatable-safe.
	moves                        [MaxMoves]ExtMove
	cur, endMoves, endCaptures   int
	beginBadQuiets, endBadQuiets int
}

// NewMovePicker creates a move picker for the main search and for
// the quiescence search. The depth decides which branch of the
// state machine is entered: positive depths use the main search
// stages, zero and negative depths the quiescence stages. When the
// side to move is in check the evasion stages are used regardless
// of depth.
//
// The continuation history view must hold the sheets of at least
// the back plies {0, 1, 2, 3, 5}. Killers and the countermove are
// the refutation moves slotted in by the search stack.
func NewMovePicker(p *position.Position, ttMove Move, depth int,
	mh *history.ButterflyHistory, lph *history.LowPlyHistory,
	cph *history.CapturePieceToHistory, ch []*history.PieceToHistory,
	ph *history.PawnHistory, ply int,
	killers [2]Move, counterMove Move) *MovePicker {

	mp := &MovePicker{
		pos:                 p,
		mainHistory:         mh,
		lowPlyHistory:       lph,
		captureHistory:      cph,
		continuationHistory: ch,
		pawnHistory:         ph,
		ttMove:              ttMove,
		depth:               depth,
		ply:                 ply,
		recaptureSquare:     SqNone,
	}

	// the countermove is dropped when it duplicates a killer
	mp.refutations = [3]Move{killers[0], killers[1], counterMove}
	if counterMove == killers[0] || counterMove == killers[1] {
		mp.refutations[2] = MoveNone
	}

	ttOk := ttMove != MoveNone && p.PseudoLegal(ttMove)
	switch {
	case p.HasCheck():
		mp.stage = evasionTT
	case depth > 0:
		mp.stage = mainTT
	default:
		mp.stage = qsearchTT
	}
	if !ttOk {
		mp.stage++
	}
	return mp
}

// NewProbCutMovePicker creates a move picker for the ProbCut
// search: only captures with a static exchange evaluation greater
// than or equal to the given threshold are emitted. The position
// must not be in check.
func NewProbCutMovePicker(p *position.Position, ttMove Move, threshold Value,
	cph *history.CapturePieceToHistory) *MovePicker {

	if p.HasCheck() {
		panic("ProbCut move picker requires a position not in check")
	}

	mp := &MovePicker{
		pos:             p,
		captureHistory:  cph,
		ttMove:          ttMove,
		threshold:       threshold,
		recaptureSquare: SqNone,
		stage:           probCutTT,
	}
	if !(ttMove != MoveNone && p.CaptureStage(ttMove) &&
		p.PseudoLegal(ttMove) && p.SeeGe(ttMove, threshold)) {
		mp.stage++
	}
	return mp
}

// NewRecaptureMovePicker creates a move picker for very deep
// quiescence nodes: only captures onto the given recapture square
// are emitted. The position must not be in check and the depth
// must not be positive.
func NewRecaptureMovePicker(p *position.Position, ttMove Move, depth int,
	cph *history.CapturePieceToHistory, recaptureSquare Square) *MovePicker {

	if p.HasCheck() || depth > 0 {
		panic("recapture move picker requires a quiescence position not in check")
	}

	mp := &MovePicker{
		pos:             p,
		captureHistory:  cph,
		ttMove:          ttMove,
		depth:           depth,
		recaptureSquare: recaptureSquare,
		stage:           qsearchTT,
	}
	if !(ttMove != MoveNone && ttMove.To() == recaptureSquare && p.PseudoLegal(ttMove)) {
		mp.stage++
	}
	return mp
}

// NextMove returns the next pseudo legal move of the position or
// MoveNone when all moves are exhausted. Once MoveNone has been
// returned every further call returns MoveNone.
func (mp *MovePicker) NextMove() Move {

top:
	switch mp.stage {

	case mainTT, evasionTT, qsearchTT, probCutTT:
		mp.stage++
		mp.cur = 1
		return mp.ttMove

	case captureInit:
		mp.cur = 0
		mp.generateInto(0, movegen.GenerateCaptures)
		mp.endCaptures = mp.endMoves
		mp.scoreCaptures()
		partialInsertionSort(mp.moves[:mp.endMoves], sortAllLimit)
		mp.stage++
		goto top

	case goodCapture:
		for mp.cur < mp.endMoves {
			em := &mp.moves[mp.cur]
			mp.cur++
			if em.Move == mp.ttMove {
				continue
			}
			// more history-favoured captures get more SEE slack.
			// Losing captures are marked and tried again later.
			if mp.pos.SeeGe(em.Move, Value(-em.Value/seeGateDivisor)) {
				return em.Move
			}
			em.Value = badCaptureScore
		}
		mp.stage++
		goto top

	case refutationStage:
		if !mp.skipQuiets {
			for mp.refCur < len(mp.refutations) {
				m := mp.refutations[mp.refCur]
				mp.refCur++
				if m != MoveNone && m != mp.ttMove &&
					!mp.pos.IsCapturingMove(m) && mp.pos.PseudoLegal(m) {
					return m
				}
			}
		}
		mp.stage++
		goto top

	case quietInit:
		if !mp.skipQuiets {
			mp.cur = mp.endCaptures
			mp.generateInto(mp.endCaptures, movegen.GenerateQuiets)
			mp.beginBadQuiets = mp.endMoves
			mp.endBadQuiets = mp.endMoves
			mp.scoreQuiets()
			partialInsertionSort(mp.moves[mp.cur:mp.endMoves], quietThreshold(mp.depth))
		}
		mp.stage++
		goto top

	case goodQuiet:
		if !mp.skipQuiets {
			for mp.cur < mp.endMoves {
				em := mp.moves[mp.cur]
				mp.cur++
				if em.Move == mp.ttMove || mp.isRefutation(em.Move) {
					continue
				}
				if em.Value > goodQuietBound || em.Value <= quietThreshold(mp.depth) {
					return em.Move
				}
				// remaining quiets are bad - keep them for later
				mp.beginBadQuiets = mp.cur - 1
				break
			}
		}
		// prepare the cursors to loop over the bad captures
		mp.cur = 0
		mp.endMoves = mp.endCaptures
		mp.stage++
		goto top

	case badCapture:
		for mp.cur < mp.endMoves {
			em := mp.moves[mp.cur]
			mp.cur++
			if em.Value == badCaptureScore {
				return em.Move
			}
		}
		// prepare the cursors to loop over the bad quiets
		mp.cur = mp.beginBadQuiets
		mp.endMoves = mp.endBadQuiets
		mp.stage++
		goto top

	case badQuiet:
		if !mp.skipQuiets {
			for mp.cur < mp.endMoves {
				em := mp.moves[mp.cur]
				mp.cur++
				if em.Move != mp.ttMove && !mp.isRefutation(em.Move) {
					return em.Move
				}
			}
		}
		return MoveNone

	case evasionInit:
		mp.cur = 0
		mp.generateInto(0, movegen.GenerateEvasions)
		mp.scoreEvasions()
		partialInsertionSort(mp.moves[:mp.endMoves], sortAllLimit)
		mp.stage++
		goto top

	case evasion:
		for mp.cur < mp.endMoves {
			em := mp.moves[mp.cur]
			mp.cur++
			if em.Move != mp.ttMove {
				return em.Move
			}
		}
		return MoveNone

	case probCutInit, qCaptureInit:
		mp.cur = 0
		mp.generateInto(0, movegen.GenerateCaptures)
		mp.endCaptures = mp.endMoves
		mp.scoreCaptures()
		mp.stage++
		goto top

	case probCut:
		for mp.cur < mp.endMoves {
			em := pickBest(mp.moves[mp.cur:mp.endMoves])
			mp.cur++
			if em.Move != mp.ttMove && mp.pos.SeeGe(em.Move, mp.threshold) {
				return em.Move
			}
		}
		return MoveNone

	case qCapture:
		for mp.cur < mp.endMoves {
			em := pickBest(mp.moves[mp.cur:mp.endMoves])
			mp.cur++
			if em.Move == mp.ttMove {
				continue
			}
			if mp.recaptureSquare != SqNone && em.Move.To() != mp.recaptureSquare {
				continue
			}
			return em.Move
		}
		// after the captures are exhausted the quiescence search
		// considers quiet checks when deep enough and not in
		// recapture mode
		if mp.depth >= depthQsChecks && mp.recaptureSquare == SqNone {
			mp.stage++
			goto top
		}
		return MoveNone

	case qCheckInit:
		mp.cur = mp.endMoves
		mp.generateInto(mp.endMoves, movegen.GenerateQuietChecks)
		mp.stage++
		goto top

	case qCheck:
		for mp.cur < mp.endMoves {
			em := mp.moves[mp.cur]
			mp.cur++
			if em.Move != mp.ttMove {
				return em.Move
			}
		}
		return MoveNone
	}

	panic("invalid move picker stage")
}

// SkipQuietMoves instructs the picker to omit all quiet stages
// from now on. Bad captures are still emitted.
func (mp *MovePicker) SkipQuietMoves() {
	mp.skipQuiets = true
}

// MarkCurrentIllegal flags the slot of the last emitted move after
// the caller discovered it to be illegal. Later bookkeeping queries
// (OtherPieceTypesMobile) ignore flagged slots.
func (mp *MovePicker) MarkCurrentIllegal() {
	mp.moves[mp.cur-1].Value = illegalScore
}

// OtherPieceTypesMobile returns true when any already generated
// legal move is moved by a piece of a different type than the
// given one. Outside the quiet stages the picker cannot answer and
// returns true so the caller assumes mobility exists.
func (mp *MovePicker) OtherPieceTypesMobile(pt PieceType) bool {
	if mp.stage != goodQuiet && mp.stage != badQuiet {
		return true
	}
	// verify all generated captures and quiets
	for i := 0; i < mp.endBadQuiets; i++ {
		em := mp.moves[i]
		if em.Value == illegalScore {
			continue
		}
		moved := mp.pos.MovedPiece(em.Move).TypeOf()
		if moved == pt {
			continue
		}
		if moved != King {
			return true
		}
		if mp.pos.IsLegalMove(em.Move) {
			return true
		}
	}
	return false
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// generateInto runs a generator appending into the inline buffer
// starting at the given offset and updates endMoves
func (mp *MovePicker) generateInto(offset int, generate func(*position.Position, *moveslice.ExtMoveSlice) *moveslice.ExtMoveSlice) {
	buf := moveslice.ExtMoveSlice(mp.moves[offset:offset])
	generate(mp.pos, &buf)
	mp.endMoves = offset + buf.Len()
}

func (mp *MovePicker) isRefutation(m Move) bool {
	return m == mp.refutations[0] || m == mp.refutations[1] || m == mp.refutations[2]
}

// scoreCaptures orders captures by most valuable victim biased by
// the capture history. The victim value is weighted higher when
// the capture is a discovered attack candidate: the moving piece
// blocks a slider to the opponent king and does not stay on the
// blocked line.
func (mp *MovePicker) scoreCaptures() {
	them := mp.pos.NextPlayer().Flip()
	theirKing := mp.pos.KingSquare(them)
	blockers := mp.pos.BlockersForKing(them)

	for i := mp.cur; i < mp.endMoves; i++ {
		m := mp.moves[i].Move
		captured := mp.pos.GetPiece(m.To()).TypeOf()
		weight := 7
		if blockers.Has(m.From()) && !Aligned(m.From(), m.To(), theirKing) {
			weight = 9
		}
		mp.moves[i].Value = weight*int(PieceValue[captured]) +
			mp.captureHistory.Get(mp.pos.MovedPiece(m), m.To(), captured)
	}
}

// scoreQuiets orders quiet moves by the history tables plus a
// bonus for checking moves and a threat migration term which
// rewards escaping an attack by a lesser piece and punishes moving
// into one.
func (mp *MovePicker) scoreQuiets() {
	us := mp.pos.NextPlayer()
	them := us.Flip()
	pawnIndex := history.PawnStructureIndex(mp.pos)

	// squares attacked by opponent pieces of lesser value, indexed
	// by our piece type - knight
	var threatByLesser [4]Bitboard
	threatByLesser[0] = mp.pos.AttacksBy(them, Pawn)
	threatByLesser[1] = threatByLesser[0]
	threatByLesser[2] = mp.pos.AttacksBy(them, Knight) | mp.pos.AttacksBy(them, Bishop) | threatByLesser[0]
	threatByLesser[3] = mp.pos.AttacksBy(them, Rook) | threatByLesser[2]

	for i := mp.cur; i < mp.endMoves; i++ {
		m := mp.moves[i].Move
		pc := mp.pos.MovedPiece(m)
		pt := pc.TypeOf()
		from := m.From()
		to := m.To()

		// histories
		v := 2 * mp.mainHistory.Get(us, m.FromTo())
		v += 2 * mp.pawnHistory.Get(pawnIndex, pc, to)
		v += mp.contHist(0, pc, to)
		v += mp.contHist(1, pc, to)
		v += mp.contHist(2, pc, to)
		v += mp.contHist(3, pc, to)
		v += mp.contHist(5, pc, to)

		// bonus for checks which do not lose too much material
		if mp.pos.CheckSquares(pt).Has(to) && mp.pos.SeeGe(m, -75) {
			v += checkBonus
		}

		// penalty for moving to a square threatened by a lesser
		// piece or bonus for escaping an attack by a lesser piece
		if pt >= Knight && pt <= Queen {
			idx := int(pt - Knight)
			w := 0
			if threatByLesser[idx].Has(to) {
				w = -95
			} else if threatByLesser[idx].Has(from) {
				w = 100
			}
			v += threatBonus[idx] * w
		}

		if mp.ply < history.LowPlyHistorySize {
			v += 8 * mp.lowPlyHistory.Get(mp.ply, m.FromTo()) / (1 + 2*mp.ply)
		}

		mp.moves[i].Value = v
	}
}

// scoreEvasions orders check evasions: captures by most valuable
// victim above all non captures, non captures by history
func (mp *MovePicker) scoreEvasions() {
	us := mp.pos.NextPlayer()
	for i := mp.cur; i < mp.endMoves; i++ {
		m := mp.moves[i].Move
		if mp.pos.CaptureStage(m) {
			mp.moves[i].Value = int(PieceValue[mp.pos.GetPiece(m.To()).TypeOf()]) + (1 << 28)
		} else {
			mp.moves[i].Value = mp.mainHistory.Get(us, m.FromTo()) +
				mp.contHist(0, mp.pos.MovedPiece(m), m.To())
		}
	}
}

// contHist reads a continuation history sheet of the given back ply
func (mp *MovePicker) contHist(backPly int, pc Piece, to Square) int {
	if backPly >= len(mp.continuationHistory) || mp.continuationHistory[backPly] == nil {
		return 0
	}
	return mp.continuationHistory[backPly].Get(pc, to)
}

// partialInsertionSort sorts the moves in descending order of value
// down to and including the given limit. The order of moves with a
// value smaller than the limit is left unspecified.
func partialInsertionSort(moves []ExtMove, limit int) {
	sortedEnd := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].Value >= limit {
			tmp := moves[i]
			sortedEnd++
			moves[i] = moves[sortedEnd]
			j := sortedEnd
			for ; j > 0 && moves[j-1].Value < tmp.Value; j-- {
				moves[j] = moves[j-1]
			}
			moves[j] = tmp
		}
	}
}

// pickBest swaps the maximum scored element to the front of the
// range and returns it. Linear in the range length, the order of
// the remainder is unspecified.
func pickBest(moves []ExtMove) ExtMove {
	best := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].Value > moves[best].Value {
			best = i
		}
	}
	moves[0], moves[best] = moves[best], moves[0]
	return moves[0]
}
