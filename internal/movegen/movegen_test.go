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

package movegen

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmertens/TempoGo/internal/config"
	"github.com/tmertens/TempoGo/internal/moveslice"
	"github.com/tmertens/TempoGo/internal/position"
	. "github.com/tmertens/TempoGo/internal/types"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func newBuffer() *moveslice.ExtMoveSlice {
	return moveslice.NewExtMoveSlice(MaxMoves)
}

func ucis(ml *moveslice.ExtMoveSlice) map[string]bool {
	set := map[string]bool{}
	for _, em := range *ml {
		set[em.Move.StringUci()] = true
	}
	return set
}

func TestGenerateCapturesAndQuietsStartPos(t *testing.T) {
	p := position.NewPosition()
	captures := newBuffer()
	GenerateCaptures(p, captures)
	assert.Equal(t, 0, captures.Len())

	quiets := newBuffer()
	GenerateQuiets(p, quiets)
	assert.Equal(t, 20, quiets.Len())
	set := ucis(quiets)
	assert.True(t, set["e2e4"])
	assert.True(t, set["b1c3"])
	assert.True(t, set["h2h3"])
}

func TestGenerateCaptures(t *testing.T) {
	// white pawns d4/f4 can capture e5, the rook h1 the pawn h5,
	// and a queen promotion push on a8 is part of the capture class
	p := position.NewPosition("4k3/P7/8/4p2p/3P1P2/8/8/4K2R w K - 0 1")
	captures := newBuffer()
	GenerateCaptures(p, captures)
	set := ucis(captures)
	assert.True(t, set["d4e5"])
	assert.True(t, set["f4e5"])
	assert.True(t, set["h1h5"])
	assert.True(t, set["a7a8q"])
	assert.Equal(t, 4, captures.Len())

	// underpromotions are in the quiet class
	quiets := newBuffer()
	GenerateQuiets(p, quiets)
	qset := ucis(quiets)
	assert.True(t, qset["a7a8n"])
	assert.True(t, qset["a7a8r"])
	assert.True(t, qset["a7a8b"])
	assert.False(t, qset["a7a8q"])
}

func TestGenerateEnPassant(t *testing.T) {
	p := position.NewPosition("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")
	captures := newBuffer()
	GenerateCaptures(p, captures)
	assert.True(t, ucis(captures)["d4e3"])
}

func TestGenerateEvasions(t *testing.T) {
	// rook check on the e file: the king steps off the ray, the
	// bishop captures the checker, the knight blocks on e3
	p := position.NewPosition("4k3/8/8/8/4r3/8/2B3N1/4K3 w - - 0 1")
	assert.True(t, p.HasCheck())
	evasions := newBuffer()
	GenerateEvasions(p, evasions)
	set := ucis(evasions)
	// king off the ray
	assert.True(t, set["e1d1"])
	assert.True(t, set["e1f1"])
	assert.True(t, set["e1d2"])
	assert.True(t, set["e1f2"])
	// king stays on the checking ray - not generated
	assert.False(t, set["e1e2"])
	// knight blocks the check, bishop captures the checker
	assert.True(t, set["g2e3"])
	assert.True(t, set["c2e4"])
	assert.Equal(t, 6, evasions.Len())

	// all generated evasions are pseudo legal
	for _, em := range *evasions {
		assert.True(t, p.PseudoLegal(em.Move), "not pseudo legal: %s", em.Move.StringUci())
	}

	// double check: only king moves
	p = position.NewPosition("4k3/8/8/8/8/3n4/4r3/4K3 w - - 0 1")
	evasions = newBuffer()
	GenerateEvasions(p, evasions)
	assert.NotEqual(t, 0, evasions.Len())
	for _, em := range *evasions {
		assert.Equal(t, SqE1, em.Move.From())
	}
}

func TestGenerateEvasionPawnBlock(t *testing.T) {
	// no block possible: the d2 pawn pushes miss the checking ray
	p := position.NewPosition("4k3/8/8/8/4r3/8/3P4/4K3 w - - 0 1")
	evasions := newBuffer()
	GenerateEvasions(p, evasions)
	for _, em := range *evasions {
		assert.Equal(t, SqE1, em.Move.From())
	}

	// pawn double step block: the rook checks along the 4th rank,
	// the pawn blocks with d2-d4
	p = position.NewPosition("4k3/8/8/8/r3K3/8/3P4/8 w - - 0 1")
	evasions = newBuffer()
	GenerateEvasions(p, evasions)
	assert.True(t, ucis(evasions)["d2d4"])
}

func TestGenerateEvasionEnPassant(t *testing.T) {
	// the black pawn just stepped d7-d5 and gives check to the
	// white king on c4 - exd6 en passant resolves the check
	p := position.NewPosition("4k3/8/8/3pP3/2K5/8/8/8 w - d6 0 2")
	assert.True(t, p.HasCheck())
	evasions := newBuffer()
	GenerateEvasions(p, evasions)
	assert.True(t, ucis(evasions)["e5d6"])
}

func TestGenerateQuietChecks(t *testing.T) {
	// white to move: rook b2 can give quiet checks on b8 (rank)
	// and e2 (file)
	p := position.NewPosition("4k3/8/8/8/8/8/1R6/4K3 w - - 0 1")
	checks := newBuffer()
	GenerateQuietChecks(p, checks)
	set := ucis(checks)
	assert.True(t, set["b2b8"])
	assert.True(t, set["b2e2"])
	assert.False(t, set["b2b3"])
	// every generated move gives check and is quiet
	for _, em := range *checks {
		assert.True(t, p.GivesCheck(em.Move), "no check: %s", em.Move.StringUci())
		assert.False(t, p.IsCapturingMove(em.Move))
	}
}

func TestLegalMovesStartPos(t *testing.T) {
	p := position.NewPosition()
	assert.Equal(t, 20, LegalMoves(p).Len())
}

func TestCoverageEqualsPseudoLegal(t *testing.T) {
	// the union of the capture and quiet class must hold no
	// duplicates and only pseudo legal moves
	p := position.NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	buf := newBuffer()
	GenerateCaptures(p, buf)
	GenerateQuiets(p, buf)
	seen := map[Move]bool{}
	for _, em := range *buf {
		assert.False(t, seen[em.Move], "duplicate move %s", em.Move.StringUci())
		seen[em.Move] = true
		assert.True(t, p.PseudoLegal(em.Move), "not pseudo legal: %s", em.Move.StringUci())
	}
	// kiwipete has 48 legal moves at depth 1
	assert.Equal(t, 48, LegalMoves(p).Len())
}
