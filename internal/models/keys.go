package models

// Durable store keys. These are the persisted-state contract: every value
// is written whole under its key, never partially updated.
const (
	KeyUser        = "user"         // JSON User, absent when logged out
	KeyPosts       = "contentPosts" // JSON array of ContentPost, newest-first
	KeyAgeVerified = "ageVerified"  // literal "true", absent until confirmed
)
