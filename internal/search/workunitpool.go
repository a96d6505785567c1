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

package search

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tmertens/TempoGo/internal/config"
)

var out = message.NewPrinter(language.English)

// workers beyond the configured thread count - one overload unit
// is always kept so a helper task never waits for a worker
const overload = 1

// WorkUnitPool is a resizable collection of work units, one per
// search worker. The pool is shared process wide but its structure
// (size, membership) is only modified between searches - it is not
// thread safe under a concurrent search. During search each worker
// only touches its own unit.
type WorkUnitPool struct {
	units []*WorkUnit
}

// Init creates the first work unit and applies the configured
// size from the options
func (pool *WorkUnitPool) Init() {
	pool.units = append(pool.units, NewWorkUnit(0))
	pool.ReadUCIOptions()
}

// Exit destroys all work units. Called before the engine exits.
func (pool *WorkUnitPool) Exit() {
	pool.units = nil
}

// ReadUCIOptions updates the pool from the corresponding UCI
// options and creates/destroys work units at the tail to match the
// requested number of threads
func (pool *WorkUnitPool) ReadUCIOptions() {
	requested := config.Settings.Search.Threads
	if requested < 1 {
		requested = 1
	}
	for len(pool.units) < requested+overload {
		pool.units = append(pool.units, NewWorkUnit(len(pool.units)))
	}
	for len(pool.units) > requested+overload {
		pool.units = pool.units[:len(pool.units)-1]
	}
}

// NodesSearched returns the number of nodes searched over all
// work units. Safe to call while workers are searching - the per
// unit counters may lag but are monotone non-decreasing.
func (pool *WorkUnitPool) NodesSearched() int64 {
	var nodes int64
	for _, wu := range pool.units {
		nodes += wu.rootPos.NodesVisited()
	}
	return nodes
}

// First returns the first (main) work unit
func (pool *WorkUnitPool) First() *WorkUnit {
	return pool.units[0]
}

// Get returns the work unit with the given index
func (pool *WorkUnitPool) Get(i int) *WorkUnit {
	return pool.units[i]
}

// Size returns the number of work units of the pool
func (pool *WorkUnitPool) Size() int {
	return len(pool.units)
}

// String returns a description of the pool and its units
func (pool *WorkUnitPool) String() string {
	var os strings.Builder
	os.WriteString(out.Sprintf("WorkUnitPool: { units: %d, nodes: %d }\n", len(pool.units), pool.NodesSearched()))
	for _, wu := range pool.units {
		os.WriteString(wu.String())
		os.WriteString("\n")
	}
	return os.String()
}
