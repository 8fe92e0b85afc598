package ids

import (
	"sync"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

var (
	mu   sync.Mutex
	last ksuid.KSUID
)

// New returns a ksuid that is strictly greater than any id this process
// handed out before. That keeps a head-inserted, id-descending sequence
// sorted without an explicit sort step, even for ids minted within the
// same second.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id := ksuid.New()
	if ksuid.Compare(id, last) <= 0 {
		id = last.Next()
	}
	last = id
	return id.String()
}

// NewOpaque returns a random uuid for identifiers with no ordering
// requirement, such as user ids.
func NewOpaque() string {
	return uuid.NewString()
}
