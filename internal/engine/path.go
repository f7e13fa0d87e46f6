package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// direction returns the unit step from one square toward another when the
// two share a rank, file or diagonal.
func direction(from, to chess.Square) (dr, df int, ok bool) {
	rankDiff := to.Rank - from.Rank
	fileDiff := to.File - from.File
	if rankDiff == 0 && fileDiff == 0 {
		return 0, 0, false
	}
	if rankDiff != 0 && fileDiff != 0 && abs(rankDiff) != abs(fileDiff) {
		return 0, 0, false
	}
	return sign(rankDiff), sign(fileDiff), true
}

// between returns the squares strictly between two aligned squares, ordered
// from `from` toward `to`. It returns nil when they are not aligned.
func between(from, to chess.Square) []chess.Square {
	dr, df, ok := direction(from, to)
	if !ok {
		return nil
	}
	var squares []chess.Square
	for sq := from.Offset(dr, df); sq != to; sq = sq.Offset(dr, df) {
		squares = append(squares, sq)
	}
	return squares
}

// isPathClear checks that every square strictly between from and to is
// empty, regardless of which colour would block it.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	for _, sq := range between(from, to) {
		if !board.IsEmpty(sq) {
			return false
		}
	}
	return true
}

// isStraight reports whether a unit step runs along a rank or file.
func isStraight(dr, df int) bool {
	return dr == 0 || df == 0
}

// slidesAlong reports whether a piece kind attacks along lines of the given
// orientation.
func slidesAlong(kind chess.Kind, straight bool) bool {
	switch kind {
	case chess.Queen:
		return true
	case chess.Rook:
		return straight
	case chess.Bishop:
		return !straight
	}
	return false
}

// kingOffsets are the eight single steps a king can take.
var kingOffsets = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign maps x to -1, 0 or 1.
func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
