package testutil

// DefaultSessionID is used when a scenario does not name its session.
const DefaultSessionID = "test-session-default"

// FixedSessionGenerator returns the same session ID every time.
//
// It satisfies journal.SessionIDGenerator and makes journal contents
// byte-identical across runs, which golden traces rely on.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator for id.
// An empty id falls back to DefaultSessionID.
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = DefaultSessionID
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session ID.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
