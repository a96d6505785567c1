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

func TestCreateMove(t *testing.T) {
	m := CreateMove(SqE2, SqE4, Normal, PtNone)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, Normal, m.MoveType())
	assert.Equal(t, "e2e4", m.StringUci())
	assert.True(t, m.IsValid())

	m = CreateMove(SqE7, SqE8, Promotion, Queen)
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, "e7e8q", m.StringUci())

	m = CreateMove(SqE1, SqG1, Castling, PtNone)
	assert.Equal(t, Castling, m.MoveType())

	assert.False(t, MoveNone.IsValid())
	assert.Equal(t, "NoMove", MoveNone.StringUci())
}

func TestMoveFromTo(t *testing.T) {
	m := CreateMove(SqE2, SqE4, Normal, PtNone)
	// from-to index packs from (bits 6-11) and to (bits 0-5)
	assert.Equal(t, int(SqE2)<<6|int(SqE4), m.FromTo())
	assert.Equal(t, 796, m.FromTo())
	// the from-to index is independent of move type and promotion
	p := CreateMove(SqE2, SqE4, Promotion, Queen)
	assert.Equal(t, m.FromTo(), p.FromTo())
}

func TestPieceEncoding(t *testing.T) {
	assert.Equal(t, WhiteKnight, MakePiece(White, Knight))
	assert.Equal(t, BlackQueen, MakePiece(Black, Queen))
	assert.Equal(t, Knight, WhiteKnight.TypeOf())
	assert.Equal(t, Black, BlackQueen.ColorOf())
	assert.Equal(t, Value(900), BlackQueen.ValueOf())
	assert.Equal(t, Value(0), PieceValue[PtNone])
	assert.Equal(t, BlackPawn, PieceFromChar("p"))
	assert.Equal(t, WhiteKing, PieceFromChar("K"))
	assert.Equal(t, PieceNone, PieceFromChar("x"))
}
