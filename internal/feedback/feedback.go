// Package feedback records reviewer verdicts on extracted elements.
package feedback

import (
	"errors"
	"fmt"
	"time"
)

// Verdict is a reviewer's judgement of one element.
type Verdict string

const (
	VerdictKeep   Verdict = "keep"
	VerdictReject Verdict = "reject"
	VerdictUnsure Verdict = "unsure"
)

// Valid reports whether v is a known verdict.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictKeep, VerdictReject, VerdictUnsure:
		return true
	}
	return false
}

var (
	// ErrNotFound is returned when no feedback has the requested id.
	ErrNotFound = errors.New("feedback not found")
	// ErrInvalid is returned for feedback missing required fields.
	ErrInvalid = errors.New("invalid feedback")
)

// Feedback is one verdict on an element of a checkpoint file.
type Feedback struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	SectionID string    `json:"section"`
	ElementID string    `json:"element"`
	Verdict   Verdict   `json:"verdict"`
	Comment   string    `json:"comment,omitempty"`
	Reviewer  string    `json:"reviewer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the required fields.
func (f Feedback) Validate() error {
	switch {
	case f.Filename == "":
		return fmt.Errorf("%w: filename is required", ErrInvalid)
	case f.SectionID == "":
		return fmt.Errorf("%w: section is required", ErrInvalid)
	case f.ElementID == "":
		return fmt.Errorf("%w: element is required", ErrInvalid)
	case !f.Verdict.Valid():
		return fmt.Errorf("%w: verdict must be keep, reject or unsure", ErrInvalid)
	}
	return nil
}
