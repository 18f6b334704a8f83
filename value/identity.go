package value

import (
	"math"
	"strconv"
	"sync/atomic"
)

// Identity is an interned type name token. Identities compare by token only;
// the zero Identity is never assigned to a type.
type Identity uint32

// InvalidIdentity is the zero token.
const InvalidIdentity Identity = 0

// lastIdentity is shared by every registry in the process.
var lastIdentity atomic.Uint32

// NewIdentity allocates a token that no other call in this process returns.
// It reports false once the token space is exhausted.
func NewIdentity() (Identity, bool) {
	for {
		cur := lastIdentity.Load()
		if cur == math.MaxUint32 {
			return InvalidIdentity, false
		}
		if lastIdentity.CompareAndSwap(cur, cur+1) {
			return Identity(cur + 1), true
		}
	}
}

func (id Identity) Valid() bool {
	return id != InvalidIdentity
}

func (id Identity) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}
