package domain

import "errors"

var (
	ErrInvalidMetric       = errors.New("invalid metric")
	ErrInvalidYear         = errors.New("invalid year")
	ErrInvalidBand         = errors.New("invalid band")
	ErrInvalidRankingKind  = errors.New("invalid ranking kind")
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
)
