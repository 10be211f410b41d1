package session

// Repo stores sessions keyed by the opaque session ID carried in the
// browser cookie.
type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
