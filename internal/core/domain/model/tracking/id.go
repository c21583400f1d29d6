package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"

	"zapshift/internal/pkg/errs"
	"zapshift/internal/pkg/guard"
)

const (
	idPrefix      = "ZAP-"
	idRandomBytes = 5
)

var (
	ErrIDIsNotConstructed = errs.NewValueIsRequiredError("tracking ID must be created via GenerateID or ParseID")

	idPattern = regexp.MustCompile(`^ZAP-[0-9A-F]{10}$`)
)

// ID is the human readable parcel reference, independent of the storage identifier.
type ID struct {
	value string
	guard guard.ConstructorGuard
}

// GenerateID draws a fresh tracking ID from crypto/rand. Collisions are possible in
// principle, so callers persisting it must check for an existing owner and retry.
func GenerateID() (ID, error) {
	return NewIDFromSource(rand.Reader)
}

// NewIDFromSource builds an ID from the next five bytes of source.
func NewIDFromSource(source io.Reader) (ID, error) {
	buf := make([]byte, idRandomBytes)
	if _, err := io.ReadFull(source, buf); err != nil {
		return ID{}, fmt.Errorf("read tracking id entropy: %w", err)
	}
	return ID{
		value: idPrefix + strings.ToUpper(hex.EncodeToString(buf)),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseID accepts an ID in canonical form. Lower-case hex is upper-cased first.
func ParseID(raw string) (ID, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return ID{}, errs.NewValueIsRequiredError("trackingId")
	}
	if !idPattern.MatchString(value) {
		return ID{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingId",
			fmt.Errorf("%q does not match %s", raw, idPattern.String()),
		)
	}
	return ID{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (id ID) String() string {
	return id.value
}

func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

func (id ID) Validate() error {
	return id.guard.Validate(ErrIDIsNotConstructed)
}
