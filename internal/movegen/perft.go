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

package movegen

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tmertens/TempoGo/internal/position"
)

// Perft counts the number of leaf nodes of the legal move tree of
// the given depth. This is the standard correctness harness for
// move generation and the do/undo machinery.
func Perft(p *position.Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	var nodes int64
	moves := LegalMoves(p)
	if depth == 1 {
		return int64(moves.Len())
	}
	for i := 0; i < moves.Len(); i++ {
		p.DoMove(moves.At(i))
		nodes += Perft(p, depth-1)
		p.UndoMove()
	}
	return nodes
}

// PerftParallel runs perft with the root moves distributed over
// goroutines. Each worker runs on its own copy of the position.
func PerftParallel(p *position.Position, depth int) int64 {
	if depth <= 1 {
		return Perft(p, depth)
	}
	var nodes int64
	moves := LegalMoves(p)
	fen := p.StringFen()

	g := new(errgroup.Group)
	for i := 0; i < moves.Len(); i++ {
		move := moves.At(i)
		g.Go(func() error {
			workerPos, err := position.NewPositionFen(fen)
			if err != nil {
				return err
			}
			workerPos.DoMove(move)
			atomic.AddInt64(&nodes, Perft(workerPos, depth-1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0
	}
	return atomic.LoadInt64(&nodes)
}
