package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoPairsFound       = errors.New("no word pairs found")
	ErrUnknownDirection   = errors.New("unknown translation direction")
	ErrInvalidRepeatCount = errors.New("repeat count must be at least 1")
	ErrInvalidPause       = errors.New("pause must not be negative")
	ErrInvalidValue       = errors.New("invalid settings value")
	ErrSynthesisFailure   = errors.New("speech synthesis failed")
	ErrExportFailure      = errors.New("audio export failed")
)

// SynthesisError reports a failed speech rendering of one term
type SynthesisError struct {
	Text     string
	Language string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize %q (%s): %v", e.Text, e.Language, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSynthesisFailure) hold for every SynthesisError
func (e *SynthesisError) Is(target error) bool { return target == ErrSynthesisFailure }

// ExportError reports a failure while encoding the assembled audio
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export audio: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func (e *ExportError) Is(target error) bool { return target == ErrExportFailure }
