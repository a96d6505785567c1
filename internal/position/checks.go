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
	. "github.com/tmertens/TempoGo/internal/types"
)

// PseudoLegal tests if a move is pseudo legal on this position.
// Unlike the move generators this works for any move, especially
// moves taken from a transposition table which might come from a
// different position. While the side to move is in check the move
// additionally has to be an evasion to be pseudo legal.
func (p *Position) PseudoLegal(m Move) bool {
	if m == MoveNone {
		return false
	}

	us := p.nextPlayer
	fromSq := m.From()
	toSq := m.To()
	pc := p.board[fromSq]

	// there must be a piece of ours on the from square
	if pc == PieceNone || pc.ColorOf() != us {
		return false
	}
	// the target square must not hold one of our own pieces
	if p.occupiedBb[us].Has(toSq) {
		return false
	}

	pt := pc.TypeOf()

	switch m.MoveType() {
	case Castling:
		if !p.castlingOk(m, us, pc) {
			return false
		}
	case Promotion:
		if pt != Pawn || !us.PromotionRankBb().Has(toSq) {
			return false
		}
		if !p.pawnStepOk(us, fromSq, toSq) {
			return false
		}
	case EnPassant:
		if pt != Pawn || toSq != p.enPassantSquare {
			return false
		}
		if !GetPawnAttacks(us, fromSq).Has(toSq) {
			return false
		}
		if p.board[toSq.To(us.Flip().MoveDirection())] != MakePiece(us.Flip(), Pawn) {
			return false
		}
	case Normal:
		if pt == Pawn {
			// pawns moving to the promotion rank must be encoded as
			// promotion moves
			if us.PromotionRankBb().Has(toSq) {
				return false
			}
			if !p.pawnStepOk(us, fromSq, toSq) {
				return false
			}
		} else if !GetAttacksBb(pt, fromSq, p.OccupiedAll()).Has(toSq) {
			return false
		}
	}

	// while in check the move must be an evasion. The evasion
	// generator takes care of this for generated moves - moves from
	// the transposition table are filtered here.
	if checkers := p.Checkers(); checkers != BbZero {
		if pt != King {
			// double check can only be evaded by a king move
			if checkers&(checkers-1) != BbZero {
				return false
			}
			// the move must block the check or capture the checker -
			// en passant captures the checker off the target square
			checkerSq := checkers.Lsb()
			if m.MoveType() == EnPassant {
				if toSq.To(us.Flip().MoveDirection()) != checkerSq {
					return false
				}
			} else if toSq != checkerSq &&
				!Intermediate(p.kingSquare[us], checkerSq).Has(toSq) {
				return false
			}
		} else {
			if m.MoveType() == Castling {
				return false
			}
			// the king must not step onto an attacked square - with
			// the king removed so stepping away on the checking ray
			// is caught as well
			if p.AttackersTo(toSq, p.OccupiedAll()&^fromSq.Bb())&p.occupiedBb[us.Flip()] != BbZero {
				return false
			}
		}
	}

	return true
}

// pawnStepOk validates pawn movement geometry: single push, double
// push or diagonal capture
func (p *Position) pawnStepOk(us Color, fromSq Square, toSq Square) bool {
	occupied := p.OccupiedAll()
	// capture
	if GetPawnAttacks(us, fromSq).Has(toSq) {
		return p.occupiedBb[us.Flip()].Has(toSq)
	}
	// single push
	if fromSq.To(us.MoveDirection()) == toSq {
		return !occupied.Has(toSq)
	}
	// double push
	if fromSq.To(us.MoveDirection()).To(us.MoveDirection()) == toSq {
		return us.PawnDoubleRank().Has(fromSq.To(us.MoveDirection())) &&
			!occupied.Has(fromSq.To(us.MoveDirection())) &&
			!occupied.Has(toSq)
	}
	return false
}

// castlingOk validates the pseudo legal parts of a castling move:
// rights available, king and rook on their squares and the way
// in between free. Attacked crossing squares are a matter of
// legality and checked by IsLegalMove.
func (p *Position) castlingOk(m Move, us Color, pc Piece) bool {
	if pc.TypeOf() != King {
		return false
	}
	switch m.To() {
	case SqG1:
		return us == White && m.From() == SqE1 &&
			p.castlingRights.Has(CastlingWhiteOO) &&
			p.board[SqH1] == WhiteRook &&
			Intermediate(SqE1, SqH1)&p.OccupiedAll() == 0
	case SqC1:
		return us == White && m.From() == SqE1 &&
			p.castlingRights.Has(CastlingWhiteOOO) &&
			p.board[SqA1] == WhiteRook &&
			Intermediate(SqE1, SqA1)&p.OccupiedAll() == 0
	case SqG8:
		return us == Black && m.From() == SqE8 &&
			p.castlingRights.Has(CastlingBlackOO) &&
			p.board[SqH8] == BlackRook &&
			Intermediate(SqE8, SqH8)&p.OccupiedAll() == 0
	case SqC8:
		return us == Black && m.From() == SqE8 &&
			p.castlingRights.Has(CastlingBlackOOO) &&
			p.board[SqA8] == BlackRook &&
			Intermediate(SqE8, SqA8)&p.OccupiedAll() == 0
	}
	return false
}

// CheckSquares returns the squares from which a piece of the given
// type of the side to move would give check to the opponent king
func (p *Position) CheckSquares(pt PieceType) Bitboard {
	kingSq := p.kingSquare[p.nextPlayer.Flip()]
	switch pt {
	case King:
		return BbZero
	case Pawn:
		// reverse perspective: squares a pawn of ours checks from are
		// the squares an opponent pawn on the king square would attack
		return GetPawnAttacks(p.nextPlayer.Flip(), kingSq)
	default:
		return GetAttacksBb(pt, kingSq, p.OccupiedAll())
	}
}

// AttacksBy returns a bitboard of all squares attacked by pieces
// of the given type and color
func (p *Position) AttacksBy(c Color, pt PieceType) Bitboard {
	if pt == Pawn {
		pawns := p.piecesBb[c][Pawn]
		return ShiftBitboard(pawns, Direction(c.Direction())*North+West) |
			ShiftBitboard(pawns, Direction(c.Direction())*North+East)
	}
	attacks := BbZero
	pieces := p.piecesBb[c][pt]
	for pieces != 0 {
		attacks |= GetAttacksBb(pt, pieces.PopLsb(), p.OccupiedAll())
	}
	return attacks
}

// BlockersForKing returns a bitboard of all pieces (of both colors)
// which block a sliding attack on the king of the given color.
// Removing such a piece from the board would leave the king
// attacked by a slider.
func (p *Position) BlockersForKing(c Color) Bitboard {
	blockers, _ := p.sliderBlockers(c.Flip(), p.kingSquare[c])
	return blockers
}

// sliderBlockers computes the blockers of sliding attacks from
// pieces of color 'by' to the given square and the pinning sliders
// themselves
func (p *Position) sliderBlockers(by Color, sq Square) (Bitboard, Bitboard) {
	blockers := BbZero
	pinners := BbZero

	// snipers are sliders which would attack the square if the
	// board were otherwise empty
	snipers := (GetPseudoAttacks(Rook, sq) & (p.piecesBb[by][Rook] | p.piecesBb[by][Queen])) |
		(GetPseudoAttacks(Bishop, sq) & (p.piecesBb[by][Bishop] | p.piecesBb[by][Queen]))
	occupancy := p.OccupiedAll() &^ snipers

	for snipers != 0 {
		sniperSq := snipers.PopLsb()
		between := Intermediate(sq, sniperSq) & occupancy
		// exactly one piece in between blocks (more than one means
		// no pin-like relation)
		if between != BbZero && between&(between-1) == BbZero {
			blockers |= between
			if between&p.occupiedBb[p.board[sq].ColorOf()] != BbZero {
				pinners.PushSquare(sniperSq)
			}
		}
	}
	return blockers, pinners
}
