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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquareBitboards(t *testing.T) {
	assert.Equal(t, Bitboard(1), SqA1.Bb())
	assert.Equal(t, Bitboard(1)<<63, SqH8.Bb())
	assert.Equal(t, SqE4, SqE4.Bb().Lsb())

	b := BbZero
	b.PushSquare(SqE4)
	b.PushSquare(SqD5)
	assert.Equal(t, 2, b.PopCount())
	assert.True(t, b.Has(SqE4))
	b.PopSquare(SqE4)
	assert.False(t, b.Has(SqE4))
	assert.Equal(t, SqD5, b.PopLsb())
	assert.Equal(t, BbZero, b)
}

func TestShiftBitboard(t *testing.T) {
	assert.Equal(t, SqE5.Bb(), ShiftBitboard(SqE4.Bb(), North))
	assert.Equal(t, SqE3.Bb(), ShiftBitboard(SqE4.Bb(), South))
	assert.Equal(t, SqF4.Bb(), ShiftBitboard(SqE4.Bb(), East))
	assert.Equal(t, SqD4.Bb(), ShiftBitboard(SqE4.Bb(), West))
	assert.Equal(t, SqF5.Bb(), ShiftBitboard(SqE4.Bb(), Northeast))
	// bits wrapping around the board edge are dropped
	assert.Equal(t, BbZero, ShiftBitboard(SqH4.Bb(), East))
	assert.Equal(t, BbZero, ShiftBitboard(SqA4.Bb(), West))
	assert.Equal(t, BbZero, ShiftBitboard(SqE8.Bb(), North))
}

func TestSquareDistance(t *testing.T) {
	assert.Equal(t, 1, SquareDistance(SqE4, SqE5))
	assert.Equal(t, 7, SquareDistance(SqA1, SqH8))
	assert.Equal(t, 4, SquareDistance(SqD4, SqH4))
}

func TestPseudoAttacks(t *testing.T) {
	// rook on an empty board attacks its full file and rank
	assert.Equal(t, 14, GetAttacksBb(Rook, SqA1, BbZero).PopCount())
	assert.Equal(t, 14, GetAttacksBb(Rook, SqE4, BbZero).PopCount())
	// bishop in the center and in the corner
	assert.Equal(t, 13, GetAttacksBb(Bishop, SqE4, BbZero).PopCount())
	assert.Equal(t, 7, GetAttacksBb(Bishop, SqA1, BbZero).PopCount())
	// knight in the center and on the rim
	assert.Equal(t, 8, GetPseudoAttacks(Knight, SqE4).PopCount())
	assert.Equal(t, 2, GetPseudoAttacks(Knight, SqA1).PopCount())
	// king
	assert.Equal(t, 8, GetPseudoAttacks(King, SqE4).PopCount())
	assert.Equal(t, 3, GetPseudoAttacks(King, SqA1).PopCount())
	// pawns
	assert.Equal(t, SqD5.Bb()|SqF5.Bb(), GetPawnAttacks(White, SqE4))
	assert.Equal(t, SqD3.Bb()|SqF3.Bb(), GetPawnAttacks(Black, SqE4))
	assert.Equal(t, SqB5.Bb(), GetPawnAttacks(White, SqA4))
}

func TestMagicAttacks(t *testing.T) {
	// rook a1 with a blocker on a4: a2, a3, a4 and the first rank
	occupied := SqA4.Bb()
	attacks := GetAttacksBb(Rook, SqA1, occupied)
	assert.True(t, attacks.Has(SqA2))
	assert.True(t, attacks.Has(SqA4))
	assert.False(t, attacks.Has(SqA5))
	assert.Equal(t, 10, attacks.PopCount())

	// bishop c1 with blocker on e3
	occupied = SqE3.Bb()
	attacks = GetAttacksBb(Bishop, SqC1, occupied)
	assert.True(t, attacks.Has(SqD2))
	assert.True(t, attacks.Has(SqE3))
	assert.False(t, attacks.Has(SqF4))

	// queen combines rook and bishop attacks
	assert.Equal(t,
		GetAttacksBb(Rook, SqD4, occupied)|GetAttacksBb(Bishop, SqD4, occupied),
		GetAttacksBb(Queen, SqD4, occupied))
}

func TestIntermediate(t *testing.T) {
	assert.Equal(t, 6, Intermediate(SqA1, SqA8).PopCount())
	assert.Equal(t, 6, Intermediate(SqA1, SqH8).PopCount())
	assert.Equal(t, BbZero, Intermediate(SqA1, SqB2))
	// not aligned
	assert.Equal(t, BbZero, Intermediate(SqA1, SqB5))
	assert.True(t, Intermediate(SqE1, SqH1).Has(SqF1))
	assert.True(t, Intermediate(SqE1, SqH1).Has(SqG1))
	assert.False(t, Intermediate(SqE1, SqH1).Has(SqH1))
}

func TestLineAndAligned(t *testing.T) {
	assert.Equal(t, FileE_Bb, Line(SqE2, SqE7))
	assert.Equal(t, Rank4_Bb, Line(SqA4, SqC4))
	assert.Equal(t, BbZero, Line(SqA1, SqB5))
	assert.True(t, Aligned(SqA1, SqB2, SqH8))
	assert.True(t, Aligned(SqA4, SqD4, SqH4))
	assert.False(t, Aligned(SqA1, SqB2, SqH7))
}

func TestCastlingRightsMask(t *testing.T) {
	assert.Equal(t, CastlingWhite, GetCastlingRights(SqE1))
	assert.Equal(t, CastlingWhiteOO, GetCastlingRights(SqH1))
	assert.Equal(t, CastlingBlackOOO, GetCastlingRights(SqA8))
	assert.Equal(t, CastlingNone, GetCastlingRights(SqE4))
}
