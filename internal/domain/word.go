package domain

import "time"

// Word is a rendered word-translation pair stored in the history
type Word struct {
	ID          int
	UserID      int64
	Word        string
	Translation string
	Direction   Direction
	CreatedAt   time.Time
}

// Pair returns the pair the word was rendered from
func (w Word) Pair() WordPair {
	return WordPair{Source: w.Word, Target: w.Translation}
}

// WordPair is one (source term, target term) unit extracted from user input
type WordPair struct {
	Source string
	Target string
}
