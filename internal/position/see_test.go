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
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/tmertens/TempoGo/internal/types"
)

func TestSeeSimpleCaptures(t *testing.T) {
	// knight takes an undefended pawn
	p := NewPosition("7k/8/8/4p3/8/3N4/8/7K w - - 0 1")
	m := CreateMove(SqD3, SqE5, Normal, PtNone)
	assert.Equal(t, Value(100), p.See(m))
	assert.True(t, p.SeeGe(m, 0))
	assert.True(t, p.SeeGe(m, 100))
	assert.False(t, p.SeeGe(m, 101))

	// knight takes a pawn defended by a pawn
	p = NewPosition("7k/8/5p2/4p3/8/3N4/8/7K w - - 0 1")
	m = CreateMove(SqD3, SqE5, Normal, PtNone)
	assert.Equal(t, Value(100-320), p.See(m))
	assert.False(t, p.SeeGe(m, 0))
	assert.True(t, p.SeeGe(m, -220))
}

func TestSeeExchange(t *testing.T) {
	// rook takes pawn but is lost to the recapture by the rook on
	// e8: +100 -500 with nothing to retake
	p := NewPosition("1k2r3/8/8/4p3/8/8/8/1K2R3 w - - 0 1")
	m := CreateMove(SqE1, SqE5, Normal, PtNone)
	assert.Equal(t, Value(-400), p.See(m))

	// queen takes a pawn defended by a pawn - heavy loss
	p = NewPosition("7k/8/5p2/4p3/8/8/8/4Q2K w - - 0 1")
	m = CreateMove(SqE1, SqE5, Normal, PtNone)
	assert.Equal(t, Value(100-900), p.See(m))
}

func TestSeeEnPassant(t *testing.T) {
	// en passant is treated as a winning pawn capture
	p := NewPosition("7k/8/8/3pP3/8/8/8/7K w - - 0 1")
	m := CreateMove(SqE5, SqD6, EnPassant, PtNone)
	assert.Equal(t, Pawn.ValueOf(), p.See(m))
}

func TestSeeXray(t *testing.T) {
	// pawn takes pawn, defended by a pawn, but two rooks line up
	// behind the capture: the x-ray attack makes the exchange
	// winning for white
	// e5 pawn black defended by f6 pawn, white pawn d4, white rooks
	// e1 and e2 stacked on the e file
	p := NewPosition("1k6/8/5p2/4p3/3P4/8/4R3/1K2R3 w - - 0 1")
	m := CreateMove(SqD4, SqE5, Normal, PtNone)
	// dxe5 fxe5 Rxe5 - the rook battery on the e file keeps the
	// exchange winning: white ends a pawn up however black answers
	assert.Equal(t, Value(100), p.See(m))
}

func TestSeeKey(t *testing.T) {
	p := NewPosition("7k/8/8/4p3/8/3N4/8/7K w - - 0 1")
	m := CreateMove(SqD3, SqE5, Normal, PtNone)
	k1 := p.SeeKey(m, p.GetPiece(SqE5))
	// same inputs - same key
	assert.Equal(t, k1, p.SeeKey(m, p.GetPiece(SqE5)))
	// different attacked piece - different key
	assert.NotEqual(t, k1, p.SeeKey(m, PieceNone))
	// different move - different key
	m2 := CreateMove(SqD3, SqC5, Normal, PtNone)
	assert.NotEqual(t, k1, p.SeeKey(m2, p.GetPiece(SqE5)))
}
