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

// Package search holds the per worker state of the search: the
// work unit with its history tables and caches, the resizable
// work unit pool and the SEE cache.
//
// The alpha-beta search itself lives on top of these building
// blocks. Each search worker owns exactly one work unit and is
// single-threaded with respect to it - the pool structure is only
// changed between searches.
package search

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/op/go-logging"

	"github.com/tmertens/TempoGo/internal/config"
	"github.com/tmertens/TempoGo/internal/history"
	myLogging "github.com/tmertens/TempoGo/internal/logging"
	"github.com/tmertens/TempoGo/internal/movegen"
	"github.com/tmertens/TempoGo/internal/moveslice"
	"github.com/tmertens/TempoGo/internal/position"
)

var log *logging.Logger

// WorkUnit is the per search worker state bundle: the root
// position and root moves, the search depths and all history
// tables and scratch caches the worker updates during search.
// Each worker uses exactly one work unit.
type WorkUnit struct {
	idx int

	rootPos        *position.Position
	rootMoves      *moveslice.MoveSlice
	rootDepth      int
	completedDepth int

	mainHistory         *history.ButterflyHistory
	lowPlyHistory       *history.LowPlyHistory
	captureHistory      *history.CapturePieceToHistory
	continuationHistory *history.ContinuationHistory
	pawnHistory         *history.PawnHistory
	counterMoves        *history.CounterMoveTable

	seeCache      *SeeCache
	pawnTable     *pawnTable
	materialTable *materialTable
}

// NewWorkUnit creates a work unit with cleared tables and the
// start position as root
func NewWorkUnit(idx int) *WorkUnit {
	if log == nil {
		log = myLogging.GetLog()
	}
	wu := &WorkUnit{
		idx:                 idx,
		rootPos:             position.NewPosition(),
		rootMoves:           moveslice.NewMoveSlice(64),
		mainHistory:         &history.ButterflyHistory{},
		lowPlyHistory:       &history.LowPlyHistory{},
		captureHistory:      &history.CapturePieceToHistory{},
		continuationHistory: &history.ContinuationHistory{},
		pawnHistory:         &history.PawnHistory{},
		counterMoves:        &history.CounterMoveTable{},
		pawnTable:           &pawnTable{},
		materialTable:       &materialTable{},
	}
	if config.Settings.Search.UseSeeCache {
		var size datasize.ByteSize
		if err := size.UnmarshalText([]byte(config.Settings.Search.SeeCacheSize)); err != nil {
			log.Warningf("Invalid SeeCacheSize %q - SEE cache disabled", config.Settings.Search.SeeCacheSize)
		} else {
			wu.seeCache = NewSeeCache(size)
		}
	}
	return wu
}

// SetRootPosition binds the work unit to a new root position and
// rebuilds the root move list
func (wu *WorkUnit) SetRootPosition(p *position.Position) {
	wu.rootPos = p
	wu.rootMoves = movegen.LegalMoves(p)
	wu.rootDepth = 0
	wu.completedDepth = 0
}

// ClearSearchState resets all history tables and scratch caches.
// Called when a new game starts.
func (wu *WorkUnit) ClearSearchState() {
	wu.mainHistory.Clear()
	wu.lowPlyHistory.Clear()
	wu.captureHistory.Clear()
	wu.continuationHistory.Clear()
	wu.pawnHistory.Clear()
	wu.counterMoves.Clear()
	wu.pawnTable = &pawnTable{}
	wu.materialTable = &materialTable{}
}

// Idx returns the index of the work unit within its pool
func (wu *WorkUnit) Idx() int {
	return wu.idx
}

// RootPos returns the root position of the work unit
func (wu *WorkUnit) RootPos() *position.Position {
	return wu.rootPos
}

// RootMoves returns the root move list of the work unit
func (wu *WorkUnit) RootMoves() *moveslice.MoveSlice {
	return wu.rootMoves
}

// RootDepth returns the current iteration depth of the worker
func (wu *WorkUnit) RootDepth() int {
	return wu.rootDepth
}

// SetRootDepth sets the current iteration depth of the worker
func (wu *WorkUnit) SetRootDepth(d int) {
	wu.rootDepth = d
}

// CompletedDepth returns the last fully searched iteration depth
func (wu *WorkUnit) CompletedDepth() int {
	return wu.completedDepth
}

// SetCompletedDepth records the last fully searched iteration depth
func (wu *WorkUnit) SetCompletedDepth(d int) {
	wu.completedDepth = d
}

// MainHistory returns the butterfly history of the worker
func (wu *WorkUnit) MainHistory() *history.ButterflyHistory {
	return wu.mainHistory
}

// LowPlyHistory returns the low ply history of the worker
func (wu *WorkUnit) LowPlyHistory() *history.LowPlyHistory {
	return wu.lowPlyHistory
}

// CaptureHistory returns the capture history of the worker
func (wu *WorkUnit) CaptureHistory() *history.CapturePieceToHistory {
	return wu.captureHistory
}

// ContinuationHistory returns the continuation history of the worker
func (wu *WorkUnit) ContinuationHistory() *history.ContinuationHistory {
	return wu.continuationHistory
}

// PawnHistory returns the pawn structure history of the worker
func (wu *WorkUnit) PawnHistory() *history.PawnHistory {
	return wu.pawnHistory
}

// CounterMoves returns the countermove table of the worker
func (wu *WorkUnit) CounterMoves() *history.CounterMoveTable {
	return wu.counterMoves
}

// SeeCache returns the SEE cache of the worker. Nil when disabled.
func (wu *WorkUnit) SeeCache() *SeeCache {
	return wu.seeCache
}

// PawnEntry returns the cached pawn structure entry of the given
// position
func (wu *WorkUnit) PawnEntry(p *position.Position) *PawnEntry {
	return wu.pawnTable.probe(p)
}

// MaterialEntry returns the cached material entry of the given
// position
func (wu *WorkUnit) MaterialEntry(p *position.Position) *MaterialEntry {
	return wu.materialTable.probe(p)
}

// String returns a short description of the work unit
func (wu *WorkUnit) String() string {
	return fmt.Sprintf("WorkUnit %d: { root: %s, rootMoves: %d, depth: %d/%d }",
		wu.idx, wu.rootPos.StringFen(), wu.rootMoves.Len(), wu.rootDepth, wu.completedDepth)
}
