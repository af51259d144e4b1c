package domain

// StoredProfile is a profile row as the hosted store returns it. Historical
// records sometimes carry the user's id in a legacy OwnerID column instead
// of the primary ID.
type StoredProfile struct {
	UserProfile
	OwnerID string `json:"ownerId"`
}

// MatchKind tags how a profile was resolved.
type MatchKind string

// Resolution outcomes.
const (
	MatchPrimary   MatchKind = "primary"
	MatchSecondary MatchKind = "secondary"
	MatchNone      MatchKind = "none"
)

// ResolveProfile finds the profile belonging to userID among candidates.
//
// Precedence is fixed and explicit: a record whose primary ID matches always
// wins over one that only matches through the legacy OwnerID column, even
// when both kinds are present. Within a kind the first candidate wins.
func ResolveProfile(candidates []StoredProfile, userID string) (*UserProfile, MatchKind) {
	if userID == "" {
		return nil, MatchNone
	}

	var secondary *UserProfile
	for i := range candidates {
		c := &candidates[i]
		if c.ID == userID {
			p := c.UserProfile
			return &p, MatchPrimary
		}
		if secondary == nil && c.OwnerID == userID {
			p := c.UserProfile
			secondary = &p
		}
	}
	if secondary != nil {
		return secondary, MatchSecondary
	}
	return nil, MatchNone
}
