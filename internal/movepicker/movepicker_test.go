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

package movepicker

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmertens/TempoGo/internal/config"
	"github.com/tmertens/TempoGo/internal/history"
	"github.com/tmertens/TempoGo/internal/movegen"
	"github.com/tmertens/TempoGo/internal/moveslice"
	"github.com/tmertens/TempoGo/internal/position"
	. "github.com/tmertens/TempoGo/internal/types"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

type testHistories struct {
	main    *history.ButterflyHistory
	lowPly  *history.LowPlyHistory
	capture *history.CapturePieceToHistory
	pawn    *history.PawnHistory
	cont    []*history.PieceToHistory
}

func emptyHistories() *testHistories {
	cont := make([]*history.PieceToHistory, 6)
	for i := range cont {
		cont[i] = &history.PieceToHistory{}
	}
	return &testHistories{
		main:    &history.ButterflyHistory{},
		lowPly:  &history.LowPlyHistory{},
		capture: &history.CapturePieceToHistory{},
		pawn:    &history.PawnHistory{},
		cont:    cont,
	}
}

func newMainPicker(p *position.Position, ttMove Move, depth int, h *testHistories,
	killers [2]Move, counterMove Move) *MovePicker {
	return NewMovePicker(p, ttMove, depth, h.main, h.lowPly, h.capture, h.cont,
		h.pawn, 2, killers, counterMove)
}

// collect drains the picker and verifies the exhaustion fixedpoint
func collect(t *testing.T, mp *MovePicker) []Move {
	var moves []Move
	for m := mp.NextMove(); m != MoveNone; m = mp.NextMove() {
		moves = append(moves, m)
		require.True(t, len(moves) <= MaxMoves, "picker does not terminate")
	}
	// once exhausted the picker stays exhausted
	assert.Equal(t, MoveNone, mp.NextMove())
	assert.Equal(t, MoveNone, mp.NextMove())
	return moves
}

func generatedMoves(p *position.Position) map[Move]bool {
	buf := moveslice.NewExtMoveSlice(MaxMoves)
	if p.HasCheck() {
		movegen.GenerateEvasions(p, buf)
	} else {
		movegen.GenerateCaptures(p, buf)
		movegen.GenerateQuiets(p, buf)
	}
	set := map[Move]bool{}
	for _, em := range *buf {
		set[em.Move] = true
	}
	return set
}

func assertNoDuplicates(t *testing.T, moves []Move) {
	seen := map[Move]bool{}
	for _, m := range moves {
		assert.False(t, seen[m], "duplicate move %s", m.StringUci())
		seen[m] = true
	}
}

func index(moves []Move, m Move) int {
	for i, move := range moves {
		if move == m {
			return i
		}
	}
	return -1
}

func TestTTMovePrecedence(t *testing.T) {
	// starting position, TT move e2e4, depth 10: the TT move comes
	// first and the total count is 20
	p := position.NewPosition()
	ttMove := CreateMove(SqE2, SqE4, Normal, PtNone)
	mp := newMainPicker(p, ttMove, 10, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	require.NotEmpty(t, moves)
	assert.Equal(t, ttMove, moves[0])
	assert.Equal(t, 20, len(moves))
	assertNoDuplicates(t, moves)
}

func TestTTMoveNotPseudoLegal(t *testing.T) {
	// a TT move failing pseudo legality is silently treated as
	// absent
	p := position.NewPosition()
	ttMove := CreateMove(SqE2, SqE5, Normal, PtNone)
	mp := newMainPicker(p, ttMove, 10, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	assert.Equal(t, 20, len(moves))
	assert.Equal(t, -1, index(moves, ttMove))
}

func TestCoverageMain(t *testing.T) {
	// without skipping quiets the emitted multiset equals the
	// pseudo legal captures and quiets
	p := position.NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	mp := newMainPicker(p, MoveNone, 8, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	assertNoDuplicates(t, moves)
	generated := generatedMoves(p)
	assert.Equal(t, len(generated), len(moves))
	for _, m := range moves {
		assert.True(t, generated[m], "%s not in generated set", m.StringUci())
		assert.True(t, p.PseudoLegal(m))
	}
}

func TestCoverageSparseEndgame(t *testing.T) {
	// sparse endgame position, no TT move: the evasion path is not
	// taken and the picker runs through every pseudo legal move
	p := position.NewPosition("8/8/8/8/5kp1/P7/8/1K1N4 w - - 0 1")
	require.False(t, p.HasCheck())
	mp := newMainPicker(p, MoveNone, 8, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	assertNoDuplicates(t, moves)
	generated := generatedMoves(p)
	assert.Equal(t, len(generated), len(moves))
	assert.NotEqual(t, -1, index(moves, CreateMove(SqB1, SqC2, Normal, PtNone)))
	assert.NotEqual(t, -1, index(moves, CreateMove(SqB1, SqC1, Normal, PtNone)))
}

func TestCoverageEvasions(t *testing.T) {
	p := position.NewPosition("4k3/8/8/8/4r3/8/2B3N1/4K3 w - - 0 1")
	require.True(t, p.HasCheck())
	mp := newMainPicker(p, MoveNone, 8, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	assertNoDuplicates(t, moves)
	generated := generatedMoves(p)
	assert.Equal(t, len(generated), len(moves))
	for _, m := range moves {
		assert.True(t, generated[m], "%s not in generated set", m.StringUci())
	}
	// captures of the checker sort above all non captures
	assert.Equal(t, "c2e4", moves[0].StringUci())
}

func TestSingleEvasion(t *testing.T) {
	// checked king with exactly one pseudo legal escape
	p := position.NewPosition("7k/5Npp/8/8/8/8/8/K7 b - - 0 1")
	require.True(t, p.HasCheck())
	mp := newMainPicker(p, MoveNone, 8, emptyHistories(), [2]Move{}, MoveNone)

	m := mp.NextMove()
	assert.Equal(t, "h8g8", m.StringUci())
	assert.Equal(t, MoveNone, mp.NextMove())
	assert.Equal(t, MoveNone, mp.NextMove())
}

func TestEvasionTTMove(t *testing.T) {
	// a TT move which is no evasion is not pseudo legal while in
	// check and must not be emitted
	p := position.NewPosition("4k3/8/8/8/4r3/8/3P2N1/4K3 w - - 0 1")
	require.True(t, p.HasCheck())
	nonEvasion := CreateMove(SqD2, SqD3, Normal, PtNone)
	mp := newMainPicker(p, nonEvasion, 8, emptyHistories(), [2]Move{}, MoveNone)
	moves := collect(t, mp)
	assert.Equal(t, -1, index(moves, nonEvasion))

	// a blocking TT move is emitted first
	block := CreateMove(SqG2, SqE3, Normal, PtNone)
	mp = newMainPicker(p, block, 8, emptyHistories(), [2]Move{}, MoveNone)
	moves = collect(t, mp)
	assert.Equal(t, block, moves[0])
	assertNoDuplicates(t, moves)
}

func TestGoodBadCapturePartition(t *testing.T) {
	// dxe5 holds its value (rook recapture loses the exchange to
	// the queen behind) - Qxe5 loses the queen to the rook
	p := position.NewPosition("k3r3/8/8/4p3/3P4/8/7Q/K7 w - - 0 1")
	mp := newMainPicker(p, MoveNone, 6, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	assertNoDuplicates(t, moves)
	goodCapture := CreateMove(SqD4, SqE5, Normal, PtNone)
	badCapture := CreateMove(SqH2, SqE5, Normal, PtNone)
	assert.Equal(t, goodCapture, moves[0])
	// the losing capture is deferred behind all good quiets
	assert.Equal(t, badCapture, moves[len(moves)-1])
}

func TestProbCutFilter(t *testing.T) {
	// only the winning rook capture passes the threshold - the
	// queen capture of the defended pawn has negative SEE
	p := position.NewPosition("3q3k/8/3p4/7p/8/3Q4/8/K6R w - - 0 1")
	h := emptyHistories()
	mp := NewProbCutMovePicker(p, MoveNone, 0, h.capture)

	moves := collect(t, mp)
	assert.Equal(t, 1, len(moves))
	assert.Equal(t, "h1h5", moves[0].StringUci())

	// with a TT move passing the gate it comes first and only once
	ttMove := CreateMove(SqH1, SqH5, Normal, PtNone)
	mp = NewProbCutMovePicker(p, ttMove, 0, h.capture)
	moves = collect(t, mp)
	assert.Equal(t, []Move{ttMove}, moves)

	// a TT move failing the SEE gate is treated as absent
	losing := CreateMove(SqD3, SqD6, Normal, PtNone)
	mp = NewProbCutMovePicker(p, losing, 0, h.capture)
	moves = collect(t, mp)
	assert.Equal(t, 1, len(moves))
	assert.Equal(t, "h1h5", moves[0].StringUci())
}

func TestRecaptureFilter(t *testing.T) {
	// several captures exist but only those onto e5 are emitted
	p := position.NewPosition("4k3/8/8/1p2p3/P2P1P2/8/8/4K3 w - - 0 1")
	h := emptyHistories()
	mp := NewRecaptureMovePicker(p, MoveNone, -6, h.capture, SqE5)

	moves := collect(t, mp)
	assert.Equal(t, 2, len(moves))
	for _, m := range moves {
		assert.Equal(t, SqE5, m.To())
	}
	// the capture elsewhere is filtered
	assert.Equal(t, -1, index(moves, CreateMove(SqA4, SqB5, Normal, PtNone)))
}

func TestSkipQuietMoves(t *testing.T) {
	p := position.NewPosition("k3r3/8/8/4p3/3P4/8/7Q/K7 w - - 0 1")
	mp := newMainPicker(p, MoveNone, 6, emptyHistories(), [2]Move{}, MoveNone)

	first := mp.NextMove()
	assert.Equal(t, "d4e5", first.StringUci())
	mp.SkipQuietMoves()

	// bad captures keep coming, quiets do not
	var rest []Move
	for m := mp.NextMove(); m != MoveNone; m = mp.NextMove() {
		rest = append(rest, m)
		assert.True(t, p.IsCapturingMove(m), "quiet move %s after SkipQuietMoves", m.StringUci())
	}
	assert.Equal(t, 1, len(rest))
	assert.Equal(t, "h2e5", rest[0].StringUci())
}

func TestRefutationOrderAndSuppression(t *testing.T) {
	p := position.NewPosition()
	killer0 := CreateMove(SqB1, SqC3, Normal, PtNone)
	killer1 := CreateMove(SqG1, SqF3, Normal, PtNone)
	counter := CreateMove(SqD2, SqD4, Normal, PtNone)
	mp := newMainPicker(p, MoveNone, 8, emptyHistories(), [2]Move{killer0, killer1}, counter)

	moves := collect(t, mp)
	assertNoDuplicates(t, moves)
	assert.Equal(t, 20, len(moves))
	// refutations come before the remaining quiets in slot order
	assert.Equal(t, killer0, moves[0])
	assert.Equal(t, killer1, moves[1])
	assert.Equal(t, counter, moves[2])
}

func TestCounterMoveDuplicatingKillerDropped(t *testing.T) {
	p := position.NewPosition()
	killer0 := CreateMove(SqB1, SqC3, Normal, PtNone)
	mp := newMainPicker(p, MoveNone, 8, emptyHistories(), [2]Move{killer0, MoveNone}, killer0)

	moves := collect(t, mp)
	assertNoDuplicates(t, moves)
	assert.Equal(t, 20, len(moves))
	assert.Equal(t, killer0, moves[0])
}

func TestHistoryDrivenQuietOrdering(t *testing.T) {
	// depth 1, history strongly favouring one quiet: that quiet
	// comes before any quiet of lower history score
	p := position.NewPosition()
	h := emptyHistories()
	favoured := CreateMove(SqG2, SqG3, Normal, PtNone)
	for i := 0; i < 100; i++ {
		h.main.Update(White, favoured.FromTo(), 300)
	}
	mp := newMainPicker(p, MoveNone, 1, h, [2]Move{}, MoveNone)

	moves := collect(t, mp)
	assert.Equal(t, favoured, moves[0])
	assert.Equal(t, 20, len(moves))
}

func TestCheckBonusOrdering(t *testing.T) {
	// quiet checking moves with a tolerable exchange are pulled to
	// the front of the quiet stage
	p := position.NewPosition("4k3/8/8/8/8/8/1R6/4K3 w - - 0 1")
	mp := newMainPicker(p, MoveNone, 6, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	checkingMoves := map[string]bool{"b2b8": true, "b2e2": true}
	assert.True(t, checkingMoves[moves[0].StringUci()], "first move %s", moves[0].StringUci())
	assert.True(t, checkingMoves[moves[1].StringUci()], "second move %s", moves[1].StringUci())
}

func TestQsearchCapturesThenQuietChecks(t *testing.T) {
	p := position.NewPosition("k3r3/8/8/4p3/3P4/8/7Q/K7 w - - 0 1")
	mp := newMainPicker(p, MoveNone, 0, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	require.True(t, len(moves) >= 2)
	assertNoDuplicates(t, moves)
	// both captures come first (no SEE gate in the quiescence
	// capture stage)
	captures := map[string]bool{"d4e5": true, "h2e5": true}
	assert.True(t, captures[moves[0].StringUci()])
	assert.True(t, captures[moves[1].StringUci()])
	// at depth 0 quiet checks follow the captures
	for _, m := range moves[2:] {
		assert.False(t, p.IsCapturingMove(m))
		assert.True(t, p.GivesCheck(m), "%s gives no check", m.StringUci())
	}
}

func TestQsearchNoQuietChecksBelowDepth(t *testing.T) {
	p := position.NewPosition("k3r3/8/8/4p3/3P4/8/7Q/K7 w - - 0 1")
	mp := newMainPicker(p, MoveNone, -2, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	assert.Equal(t, 2, len(moves))
	for _, m := range moves {
		assert.True(t, p.IsCapturingMove(m))
	}
}

func TestQsearchInCheckUsesEvasions(t *testing.T) {
	p := position.NewPosition("4k3/8/8/8/4r3/8/2B3N1/4K3 w - - 0 1")
	mp := newMainPicker(p, MoveNone, 0, emptyHistories(), [2]Move{}, MoveNone)

	moves := collect(t, mp)
	generated := generatedMoves(p)
	assert.Equal(t, len(generated), len(moves))
}

func TestOtherPieceTypesMobile(t *testing.T) {
	p := position.NewPosition("8/8/8/8/8/8/P7/K1k5 w - - 0 1")
	mp := newMainPicker(p, MoveNone, 6, emptyHistories(), [2]Move{}, MoveNone)

	// outside the quiet stages the picker cannot answer
	assert.True(t, mp.OtherPieceTypesMobile(Pawn))

	// drive the picker into the quiet stage
	first := mp.NextMove()
	require.NotEqual(t, MoveNone, first)

	// the only non pawn moves are illegal king steps
	assert.False(t, mp.OtherPieceTypesMobile(Pawn))
	// pawn moves exist so any other piece type sees mobility
	assert.True(t, mp.OtherPieceTypesMobile(Knight))
	assert.True(t, mp.OtherPieceTypesMobile(King))
}

func TestMarkCurrentIllegal(t *testing.T) {
	p := position.NewPosition("8/8/8/8/8/8/P7/K1k5 w - - 0 1")
	mp := newMainPicker(p, MoveNone, 6, emptyHistories(), [2]Move{}, MoveNone)

	for m := mp.NextMove(); m != MoveNone; m = mp.NextMove() {
		if !p.IsLegalMove(m) {
			mp.MarkCurrentIllegal()
		}
	}
	// marked slots are skipped by the bookkeeping scan without
	// re-checking legality
	assert.False(t, mp.OtherPieceTypesMobile(Pawn))
}

func TestMonotoneSeeGate(t *testing.T) {
	// a higher examined score yields a more lenient SEE threshold:
	// the knight capture of a pawn defended by a pawn loses the
	// exchange (SEE -220) and is deferred as a bad capture - with a
	// strong capture history the gate widens enough to keep it a
	// good capture
	p := position.NewPosition("7k/8/5p2/4p3/8/3N4/8/7K w - - 0 1")
	capture := CreateMove(SqD3, SqE5, Normal, PtNone)

	mp := newMainPicker(p, MoveNone, 6, emptyHistories(), [2]Move{}, MoveNone)
	moves := collect(t, mp)
	// the bad capture follows the good quiets - only the knight
	// move onto the square guarded by the e5 pawn (a bad quiet)
	// comes later
	assert.Equal(t, capture, moves[len(moves)-2])
	assert.Equal(t, "d3f4", moves[len(moves)-1].StringUci())

	h := emptyHistories()
	for i := 0; i < 100; i++ {
		h.capture.Update(WhiteKnight, SqE5, Pawn, 300)
	}
	mp = newMainPicker(p, MoveNone, 6, h, [2]Move{}, MoveNone)
	moves = collect(t, mp)
	assert.Equal(t, capture, moves[0])
}
