package domain

// Principal is the transient view of a User for the duration of a single
// authentication check. It is recomputed on every attempt and never cached
// across requests.
type Principal struct {
	ID           string
	Username     string
	PasswordHash string
	Enabled      bool
	Authorities  []string // one entry per role name, no prefixing
}

// HasAuthority reports whether the principal holds the exact authority.
// There is no hierarchy and no wildcard matching.
func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
