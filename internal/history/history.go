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

// Package history provides the statistic tables updated during
// search and consulted by the move picker for move ordering:
// butterfly history, capture history, continuation history, pawn
// structure history, low ply history and the countermove table.
//
// All tables share the same bounded update rule: the current value
// first decays proportionally to the update magnitude, then the
// new signed contribution is added. This keeps every entry within
// a fixed point of the recurrence and makes the tables drift
// resistant without explicit aging.
package history

import (
	"github.com/tmertens/TempoGo/internal/position"
	. "github.com/tmertens/TempoGo/internal/types"
)

const (
	// PawnHistorySize is the number of pawn structure buckets of the
	// pawn history. Must be a power of two.
	PawnHistorySize = 512

	// LowPlyHistorySize is the number of plies from root covered by
	// the low ply history
	LowPlyHistorySize = 5

	// updates with a magnitude of updateClip or larger are ignored
	updateClip = 324

	// decay divisors of the update rule
	historyDivisor      = 324
	continuationDivisor = 936
)

// PawnStructureIndex returns the pawn history bucket of the given
// position
func PawnStructureIndex(p *position.Position) int {
	return int(p.PawnKey()) & (PawnHistorySize - 1)
}

// update applies the bounded history update rule to a single entry:
//  v += 32*delta - v*|delta|/divisor
// Updates with |delta| >= 324 are clipped.
func update(entry *int32, delta int, divisor int32) {
	d := int32(delta)
	if d >= updateClip || d <= -updateClip {
		return
	}
	abs := d
	if abs < 0 {
		abs = -abs
	}
	*entry -= *entry * abs / divisor
	*entry += d * 32
}

// ButterflyHistory records how successful quiet moves have been,
// indexed by side to move and the from-to index of the move.
type ButterflyHistory struct {
	table [ColorLength][SqLength * SqLength]int32
}

// Get returns the history score
func (h *ButterflyHistory) Get(c Color, fromTo int) int {
	return int(h.table[c][fromTo])
}

// Update applies the bounded update rule
func (h *ButterflyHistory) Update(c Color, fromTo int, delta int) {
	update(&h.table[c][fromTo], delta, historyDivisor)
}

// Clear resets all entries to zero
func (h *ButterflyHistory) Clear() {
	h.table = [ColorLength][SqLength * SqLength]int32{}
}

// CapturePieceToHistory records how successful captures have been,
// indexed by the moving piece, the destination square and the
// captured piece type.
type CapturePieceToHistory struct {
	table [PieceLength][SqLength][PtLength]int32
}

// Get returns the history score
func (h *CapturePieceToHistory) Get(pc Piece, to Square, captured PieceType) int {
	return int(h.table[pc][to][captured])
}

// Update applies the bounded update rule
func (h *CapturePieceToHistory) Update(pc Piece, to Square, captured PieceType, delta int) {
	update(&h.table[pc][to][captured], delta, historyDivisor)
}

// Clear resets all entries to zero
func (h *CapturePieceToHistory) Clear() {
	h.table = [PieceLength][SqLength][PtLength]int32{}
}

// PieceToHistory is a single continuation history sheet indexed by
// piece and destination square. The search stack hands the move
// picker one sheet per back ply.
type PieceToHistory struct {
	table [PieceLength][SqLength]int32
}

// Get returns the history score
func (h *PieceToHistory) Get(pc Piece, to Square) int {
	return int(h.table[pc][to])
}

// Update applies the bounded update rule with the continuation
// history decay divisor
func (h *PieceToHistory) Update(pc Piece, to Square, delta int) {
	update(&h.table[pc][to], delta, continuationDivisor)
}

// Clear resets all entries to zero
func (h *PieceToHistory) Clear() {
	h.table = [PieceLength][SqLength]int32{}
}

// ContinuationHistory owns one PieceToHistory sheet per (piece,
// destination) of a previous move. The search addresses the sheet
// of the move made N plies ago and passes it down the stack.
type ContinuationHistory struct {
	table [PieceLength][SqLength]PieceToHistory
}

// Get returns the sheet conditioned on the given previous move
// piece and destination
func (h *ContinuationHistory) Get(pc Piece, to Square) *PieceToHistory {
	return &h.table[pc][to]
}

// Clear resets all sheets to zero
func (h *ContinuationHistory) Clear() {
	h.table = [PieceLength][SqLength]PieceToHistory{}
}

// PawnHistory records quiet move quality conditioned on the pawn
// structure, indexed by the pawn structure bucket, the moving piece
// and the destination square.
type PawnHistory struct {
	table [PawnHistorySize][PieceLength][SqLength]int32
}

// Get returns the history score
func (h *PawnHistory) Get(index int, pc Piece, to Square) int {
	return int(h.table[index][pc][to])
}

// Update applies the bounded update rule
func (h *PawnHistory) Update(index int, pc Piece, to Square, delta int) {
	update(&h.table[index][pc][to], delta, historyDivisor)
}

// Clear resets all entries to zero
func (h *PawnHistory) Clear() {
	h.table = [PawnHistorySize][PieceLength][SqLength]int32{}
}

// LowPlyHistory records quiet move quality near the root, indexed
// by ply and the from-to index of the move. Only meaningful for
// plies below LowPlyHistorySize.
type LowPlyHistory struct {
	table [LowPlyHistorySize][SqLength * SqLength]int32
}

// Get returns the history score
func (h *LowPlyHistory) Get(ply int, fromTo int) int {
	return int(h.table[ply][fromTo])
}

// Update applies the bounded update rule
func (h *LowPlyHistory) Update(ply int, fromTo int, delta int) {
	update(&h.table[ply][fromTo], delta, historyDivisor)
}

// Clear resets all entries to zero
func (h *LowPlyHistory) Clear() {
	h.table = [LowPlyHistorySize][SqLength * SqLength]int32{}
}

// CounterMoveTable stores the move which refuted a previous move,
// indexed by the piece and destination square of the previous move.
type CounterMoveTable struct {
	table [PieceLength][SqLength]Move
}

// Get returns the stored countermove or MoveNone
func (t *CounterMoveTable) Get(pc Piece, to Square) Move {
	return t.table[pc][to]
}

// Put stores the countermove for the previous move
func (t *CounterMoveTable) Put(pc Piece, to Square, m Move) {
	if t.table[pc][to] != m {
		t.table[pc][to] = m
	}
}

// Clear resets all entries to MoveNone
func (t *CounterMoveTable) Clear() {
	t.table = [PieceLength][SqLength]Move{}
}
