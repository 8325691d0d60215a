package game

import (
	"strings"

	"github.com/google/uuid"
)

// Session identifiers are <opaque>-<imposterId>. The opaque component is a
// uuid with its dashes stripped, so the final dash-separated segment is always
// the imposter id and decoding never has to disambiguate. The encoding lets a
// process that has lost all storage recover the round's answer from the id
// alone; it is deliberately not a secret (a player inspecting their own id is
// out of threat model).

// NewSessionID allocates a practically-unique identifier embedding the
// round's imposter.
func NewSessionID(imposterID string) string {
	opaque := strings.ReplaceAll(uuid.NewString(), "-", "")
	return opaque + "-" + imposterID
}

// DecodeSessionID extracts the trailing imposter id candidate. The caller is
// responsible for validating it against the catalog before trusting it.
func DecodeSessionID(sessionID string) (imposterID string, ok bool) {
	idx := strings.LastIndex(sessionID, "-")
	if idx <= 0 || idx == len(sessionID)-1 {
		return "", false
	}
	return sessionID[idx+1:], true
}
