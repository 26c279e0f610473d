package workload

import "errors"

var (
	ErrEmptyTrace         = errors.New("trace is empty")
	ErrFailedToParseTrace = errors.New("failed to parse trace")
	ErrFailedToReadTrace  = errors.New("failed to read trace file")
	ErrInvalidTrace       = errors.New("invalid trace")
	ErrReplayFailed       = errors.New("trace replay failed")
	ErrReplayCanceled     = errors.New("trace replay canceled")
	ErrUnmetExpectation   = errors.New("replay result does not match expectation")
)
