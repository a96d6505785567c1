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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmertens/TempoGo/internal/position"
)

func TestPerftStartPosition(t *testing.T) {
	expected := []int64{1, 20, 400, 8_902, 197_281}
	p := position.NewPosition()
	for depth := 1; depth <= 4; depth++ {
		assert.Equal(t, expected[depth], Perft(p, depth), "perft depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	expected := []int64{1, 48, 2_039, 97_862}
	p := position.NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for depth := 1; depth <= 3; depth++ {
		assert.Equal(t, expected[depth], Perft(p, depth), "perft depth %d", depth)
	}
}

func TestPerftEnPassantAndPromotion(t *testing.T) {
	// position 5 from the CPW perft results
	expected := []int64{1, 44, 1_486, 62_379}
	p := position.NewPosition("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	for depth := 1; depth <= 3; depth++ {
		assert.Equal(t, expected[depth], Perft(p, depth), "perft depth %d", depth)
	}
}

func TestPerftParallel(t *testing.T) {
	p := position.NewPosition()
	assert.Equal(t, int64(197_281), PerftParallel(p, 4))
}
