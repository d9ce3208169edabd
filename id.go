package librevent

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IDSource generates identities for actions created without WithID
type IDSource func() string

// TimestampID returns the current unix time in milliseconds followed by a
// random integer in [0, 1000000].
func TimestampID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + strconv.Itoa(rand.Intn(1000001))
}

// UUIDID returns a random (version 4) UUID string
func UUIDID() string {
	return uuid.NewString()
}

// DefaultIDSource is used by NewAction when no WithID or WithIDSource option is given
var DefaultIDSource IDSource = TimestampID
