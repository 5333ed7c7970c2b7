package geocode

import (
	"errors"
	"fmt"
)

var (
	errNoResult = errors.New("geocode: no result")
	errBadPos   = errors.New("geocode: malformed pos field")
)

type errStatus int

func (e errStatus) Error() string {
	return fmt.Sprintf("geocode: provider returned status %d", int(e))
}
