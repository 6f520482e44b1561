package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a textual id is not a non-negative integer.
var ErrInvalidID = errors.New("invalid id")

func parseID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidID)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return n, nil
}

type CandidateID int64

func NewCandidateID(id int64) CandidateID { return CandidateID(id) }
func (r CandidateID) String() string      { return strconv.FormatInt(int64(r), 10) }
func (r CandidateID) IsEmpty() bool       { return r <= 0 }
func (r CandidateID) Int64() int64        { return int64(r) }

func ParseCandidateID(s string) (CandidateID, error) {
	n, err := parseID(s)
	return CandidateID(n), err
}

type ApplicationID int64

func NewApplicationID(id int64) ApplicationID { return ApplicationID(id) }
func (r ApplicationID) String() string        { return strconv.FormatInt(int64(r), 10) }
func (r ApplicationID) IsEmpty() bool         { return r <= 0 }
func (r ApplicationID) Int64() int64          { return int64(r) }

type PositionID int64

func NewPositionID(id int64) PositionID { return PositionID(id) }
func (r PositionID) String() string     { return strconv.FormatInt(int64(r), 10) }
func (r PositionID) IsEmpty() bool      { return r <= 0 }
func (r PositionID) Int64() int64       { return int64(r) }

func ParsePositionID(s string) (PositionID, error) {
	n, err := parseID(s)
	return PositionID(n), err
}

type InterviewFlowID int64

type InterviewStepID int64
