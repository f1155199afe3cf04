package board

// pawnCaptureDirections returns the two diagonal directions a pawn of color c captures in.
func pawnCaptureDirections(c Color) (Direction, Direction) {
	if c == White {
		return NorthEast, NorthWest
	}
	return SouthEast, SouthWest
}

var whiteCastlingTypes = [2]CastlingType{WhiteOO, WhiteOOO}
var blackCastlingTypes = [2]CastlingType{BlackOO, BlackOOO}

// Generate appends every pseudo-legal move for the side to move to list: pawn pushes,
// double pushes, captures, en passant, officer moves and castling, each already
// restricted to the side's check-block mask (§4.6). In double check, only king moves
// are produced, since no other move can resolve it. A final legality filter (IsLegal)
// is still required, for pins, castling-through-check and en passant discovered check.
func (p *Position) Generate(list *MoveList) {
	s := p.cur()
	turn := s.turn
	own, opp := s.colorBB[turn], s.colorBB[turn.Opponent()]
	occ := own | opp
	checkMask := p.CheckBlockMask(turn)
	doubleCheck := s.checkers[turn].PopCount() > 1

	if !doubleCheck {
		generatePawnMoves(s, turn, own, opp, occ, checkMask, list, false)
		generateLeaperMoves(KnightAttackboard, s.pieceBB[Knight]&own, own, checkMask, list)
		generateSliderMoves(occ, s.pieceBB[Bishop]&own, own, checkMask, list, Bishop)
		generateSliderMoves(occ, s.pieceBB[Rook]&own, own, checkMask, list, Rook)
		generateSliderMoves(occ, s.pieceBB[Queen]&own, own, checkMask, list, Queen)
		generateCastling(s, turn, occ, list)
	}
	generateLeaperMoves(KingAttackboard, s.kingSq[turn].asBitboard(), own, FullBitboard, list)
}

// GenerateTactical appends only captures, en passant and promotions: the moves
// quiescence search considers (§4.6). Quiet promotion pushes are included since a
// queen promotion is too large a material swing for quiescence to ignore.
func (p *Position) GenerateTactical(list *MoveList) {
	s := p.cur()
	turn := s.turn
	own, opp := s.colorBB[turn], s.colorBB[turn.Opponent()]
	occ := own | opp
	checkMask := p.CheckBlockMask(turn)
	doubleCheck := s.checkers[turn].PopCount() > 1

	if !doubleCheck {
		generatePawnMoves(s, turn, own, opp, occ, checkMask, list, true)
		generateLeaperMoves(KnightAttackboard, s.pieceBB[Knight]&own, own, checkMask&opp, list)
		generateSliderMoves(occ, s.pieceBB[Bishop]&own, own, checkMask&opp, list, Bishop)
		generateSliderMoves(occ, s.pieceBB[Rook]&own, own, checkMask&opp, list, Rook)
		generateSliderMoves(occ, s.pieceBB[Queen]&own, own, checkMask&opp, list, Queen)
	}
	generateLeaperMoves(KingAttackboard, s.kingSq[turn].asBitboard(), own, opp, list)
}

func (sq Square) asBitboard() Bitboard {
	return BitMask(sq)
}

func generatePawnMoves(s *snapshot, turn Color, own, opp, occ, checkMask Bitboard, list *MoveList, tacticalOnly bool) {
	pawns := s.pieceBB[Pawn] & own
	promRank := PawnPromotionRank(turn)
	pushDir := PawnPushDirection(turn)

	if !tacticalOnly {
		singlePush := PawnPushboard(turn, pawns, occ)
		quietPush := singlePush &^ promRank & checkMask
		for quietPush != 0 {
			var to Square
			to, quietPush = quietPush.PopLSB()
			list.Add(NewMove(to-Square(pushDir), to))
		}

		doublePush := PawnPushboard(turn, singlePush&oneStepFromHomeRank(turn), occ) & checkMask
		for doublePush != 0 {
			var to Square
			to, doublePush = doublePush.PopLSB()
			list.Add(NewMove(to-Square(pushDir)-Square(pushDir), to))
		}
	}

	promPush := PawnPushboard(turn, pawns, occ) & promRank & checkMask
	for promPush != 0 {
		var to Square
		to, promPush = promPush.PopLSB()
		addPromotions(list, to-Square(pushDir), to)
	}

	d1, d2 := pawnCaptureDirections(turn)
	for _, d := range [2]Direction{d1, d2} {
		targets := Shift(pawns, d) & opp & checkMask
		for targets != 0 {
			var to Square
			to, targets = targets.PopLSB()
			from := to - Square(d)
			if BitMask(to)&promRank != 0 {
				addPromotions(list, from, to)
			} else {
				list.Add(NewMove(from, to))
			}
		}
	}

	if s.ep != NoSquare {
		// The capture resolves a check by landing on a blocking square or by removing
		// the checking pawn, which stands behind the ep square.
		capSq := s.ep - Square(pushDir)
		if (BitMask(s.ep)|BitMask(capSq))&checkMask != 0 {
			attackers := PawnAttackboard(turn.Opponent(), BitMask(s.ep)) & pawns
			for attackers != 0 {
				var from Square
				from, attackers = attackers.PopLSB()
				list.Add(NewEnPassant(from, s.ep))
			}
		}
	}
}

// oneStepFromHomeRank returns the rank a pawn of color c lands on after a single push
// from its home rank: a double push is a second push restricted to that rank, which
// also guarantees it only applies to pawns that started at home.
func oneStepFromHomeRank(c Color) Bitboard {
	if c == White {
		return BitRank(Rank3)
	}
	return BitRank(Rank6)
}

func addPromotions(list *MoveList, from, to Square) {
	list.Add(NewPromotion(from, to, Queen))
	list.Add(NewPromotion(from, to, Rook))
	list.Add(NewPromotion(from, to, Bishop))
	list.Add(NewPromotion(from, to, Knight))
}

func generateLeaperMoves(attacks func(Square) Bitboard, pieces, own, mask Bitboard, list *MoveList) {
	for pieces != 0 {
		var from Square
		from, pieces = pieces.PopLSB()
		targets := attacks(from) &^ own & mask
		for targets != 0 {
			var to Square
			to, targets = targets.PopLSB()
			list.Add(NewMove(from, to))
		}
	}
}

func generateSliderMoves(occ, pieces, own, mask Bitboard, list *MoveList, piece PieceType) {
	for pieces != 0 {
		var from Square
		from, pieces = pieces.PopLSB()
		targets := Attackboard(occ, from, piece) &^ own & mask
		for targets != 0 {
			var to Square
			to, targets = targets.PopLSB()
			list.Add(NewMove(from, to))
		}
	}
}

func generateCastling(s *snapshot, turn Color, occ Bitboard, list *MoveList) {
	types := whiteCastlingTypes
	if turn == Black {
		types = blackCastlingTypes
	}
	for _, ct := range types {
		if !s.castling.IsAllowed(ct.Right()) {
			continue
		}
		kingFrom, _ := ct.KingSquares()
		rookFrom, _ := ct.RookSquares()
		if Between(kingFrom, rookFrom)&occ != 0 {
			continue
		}
		list.Add(NewCastling(ct))
	}
}
