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
	"fmt"
	"strings"

	. "github.com/tmertens/TempoGo/internal/types"
)

// ExtMoveSlice represents a data structure (go slice) for ExtMove.
// The move generators append generated moves to it. When the slice
// is created over a fixed size array (as the move picker does) no
// allocations happen during generation.
type ExtMoveSlice []ExtMove

// NewExtMoveSlice creates a new slice with the given capacity
// and 0 elements.
func NewExtMoveSlice(cap int) *ExtMoveSlice {
	moves := make([]ExtMove, 0, cap)
	return (*ExtMoveSlice)(&moves)
}

// Len returns the number of moves currently stored in the slice
func (es *ExtMoveSlice) Len() int {
	return len(*es)
}

// PushBack appends a move without a score at the end of the slice
func (es *ExtMoveSlice) PushBack(m Move) {
	*es = append(*es, ExtMove{Move: m})
}

// Clear removes all moves from the slice, but retains the current
// capacity
func (es *ExtMoveSlice) Clear() {
	*es = (*es)[:0]
}

// String returns a string representation of the slice
func (es *ExtMoveSlice) String() string {
	var os strings.Builder
	os.WriteString(fmt.Sprintf("ExtMoveList: [%d] { ", len(*es)))
	for i, em := range *es {
		if i > 0 {
			os.WriteString(", ")
		}
		os.WriteString(em.String())
	}
	os.WriteString(" }")
	return os.String()
}
