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

package config

// searchConfiguration is a data structure to hold the configuration of
// the search workers and the move ordering machinery.
type searchConfiguration struct {
	// Worker pool
	Threads int

	// Static Exchange Evaluation
	UseSEE       bool
	UseSeeCache  bool
	SeeCacheSize string // human readable size, e.g. "2MB"

	// Quiescence search
	UseQuiescence bool

	// Move ordering
	UseHistoryTables bool
	UseKiller        bool
	UseCounterMoves  bool
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.Threads = 1

	Settings.Search.UseSEE = true
	Settings.Search.UseSeeCache = true
	Settings.Search.SeeCacheSize = "2MB"

	Settings.Search.UseQuiescence = true

	Settings.Search.UseHistoryTables = true
	Settings.Search.UseKiller = true
	Settings.Search.UseCounterMoves = true
}

// guards against invalid values from the config file
func setupSearch() {
	if Settings.Search.Threads < 1 {
		Settings.Search.Threads = 1
	}
}
