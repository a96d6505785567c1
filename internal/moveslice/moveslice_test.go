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

package moveslice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/tmertens/TempoGo/internal/types"
)

func TestMoveSliceBasics(t *testing.T) {
	ms := NewMoveSlice(16)
	assert.Equal(t, 0, ms.Len())

	e2e4 := CreateMove(SqE2, SqE4, Normal, PtNone)
	d2d4 := CreateMove(SqD2, SqD4, Normal, PtNone)
	ms.PushBack(e2e4)
	ms.PushBack(d2d4)
	assert.Equal(t, 2, ms.Len())
	assert.Equal(t, e2e4, ms.At(0))
	assert.True(t, ms.Contains(d2d4))
	assert.False(t, ms.Contains(CreateMove(SqA2, SqA4, Normal, PtNone)))

	ms.Set(0, d2d4)
	assert.Equal(t, d2d4, ms.At(0))

	ms.Filter(func(i int) bool { return ms.At(i) == d2d4 })
	assert.Equal(t, 2, ms.Len())

	other := NewMoveSlice(4)
	other.PushBack(d2d4)
	other.PushBack(d2d4)
	assert.True(t, ms.Equals(other))

	ms.Clear()
	assert.Equal(t, 0, ms.Len())
	assert.Equal(t, "d2d4 d2d4", other.StringUci())
}

func TestExtMoveSliceOverArray(t *testing.T) {
	// the move picker lays an ExtMoveSlice over its inline array -
	// appends must stay within the backing array
	var backing [MaxMoves]ExtMove
	es := ExtMoveSlice(backing[:0])
	es.PushBack(CreateMove(SqE2, SqE4, Normal, PtNone))
	es.PushBack(CreateMove(SqD2, SqD4, Normal, PtNone))
	assert.Equal(t, 2, es.Len())
	assert.Equal(t, CreateMove(SqE2, SqE4, Normal, PtNone), backing[0].Move)
	assert.Equal(t, CreateMove(SqD2, SqD4, Normal, PtNone), backing[1].Move)
	es.Clear()
	assert.Equal(t, 0, es.Len())
}
