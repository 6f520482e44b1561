package auth

import "strings"

const (
	ScopeAll = "*"

	ScopeCandidatesAll   = "candidates:*"
	ScopeCandidatesRead  = "candidates:read"
	ScopeCandidatesWrite = "candidates:write"

	ScopePositionsAll  = "positions:*"
	ScopePositionsRead = "positions:read"

	ScopeResumesWrite = "resumes:write"
)

// RecruiterScopes is what a recruiter token carries by default.
var RecruiterScopes = []string{
	ScopeCandidatesAll,
	ScopePositionsRead,
	ScopeResumesWrite,
}

// HasScope reports whether granted satisfies required, honouring "*" and
// "resource:*" wildcards.
func HasScope(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, g := range granted {
		switch g {
		case ScopeAll, required, resource + ":*":
			return true
		}
	}
	return false
}
