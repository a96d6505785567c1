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

package position

import (
	. "github.com/tmertens/TempoGo/internal/types"
)

// zobrist holds the random keys used to build the incremental
// hash keys of a position
type zobristKeys struct {
	pieces         [PieceLength][SqLength]Key
	castlingRights [CastlingRightsLength]Key
	enPassantFile  [8]Key
	nextPlayer     Key
	// per from-to index, used for the derived SEE cache key
	seeMove [4096]Key
}

var zobristBase zobristKeys

// xorshift64star generator to create the zobrist keys. Fixed seed
// so keys are stable across runs.
type zobristRnd struct {
	s uint64
}

func (r *zobristRnd) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

func initZobrist() {
	rnd := zobristRnd{s: 1070372}
	for pc := PieceNone; pc < PieceLength; pc++ {
		for sq := SqA1; sq < SqNone; sq++ {
			zobristBase.pieces[pc][sq] = Key(rnd.rand64())
		}
	}
	for cr := CastlingNone; cr < CastlingRightsLength; cr++ {
		zobristBase.castlingRights[cr] = Key(rnd.rand64())
	}
	for f := FileA; f <= FileH; f++ {
		zobristBase.enPassantFile[f] = Key(rnd.rand64())
	}
	zobristBase.nextPlayer = Key(rnd.rand64())
	for i := 0; i < 4096; i++ {
		zobristBase.seeMove[i] = Key(rnd.rand64())
	}
}
