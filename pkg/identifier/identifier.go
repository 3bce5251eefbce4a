// Package identifier generates and validates collision-resistant identifiers
// used to tag individual encode and patch jobs in logs and statistics
// output.
package identifier

import (
	"errors"
	"regexp"
	"strings"

	"github.com/yrgoldteeth/librsync/pkg/encoding"
	"github.com/yrgoldteeth/librsync/pkg/random"
)

const (
	// PrefixEncode is the prefix used for delta-encoding job identifiers.
	PrefixEncode = "enco"
	// PrefixPatch is the prefix used for patch-application job identifiers.
	PrefixPatch = "patc"
	// PrefixSignature is the prefix used for signature-construction job
	// identifiers.
	PrefixSignature = "sign"

	// requiredPrefixLength is the required length for identifier prefixes.
	requiredPrefixLength = 4

	// targetBase62Length is the target length for the Base62-encoded portion
	// of the identifier. This is the maximum possible length that a byte
	// array of random.CollisionResistantLength bytes will take to encode in
	// Base62, computed as ceil(n*8*ln(2)/ln(62)).
	targetBase62Length = 43
)

// matcher is a regular expression that matches identifiers produced by New.
var matcher = regexp.MustCompile("^[a-z]{4}_[0-9a-zA-Z]{43}$")

// New generates a new collision-resistant identifier with the specified
// prefix. The prefix must have a length of requiredPrefixLength.
func New(prefix string) (string, error) {
	if len(prefix) != requiredPrefixLength {
		return "", errors.New("incorrect prefix length")
	}
	for _, r := range prefix {
		if !('a' <= r && r <= 'z') {
			return "", errors.New("invalid prefix character")
		}
	}

	value, err := random.New(random.CollisionResistantLength)
	if err != nil {
		return "", err
	}

	encoded := encoding.EncodeBase62(value)
	if len(encoded) > targetBase62Length {
		panic("encoded random data length longer than expected")
	}

	builder := &strings.Builder{}
	builder.WriteString(prefix)
	builder.WriteRune('_')
	for i := targetBase62Length - len(encoded); i > 0; i-- {
		builder.WriteByte(encoding.Base62Alphabet[0])
	}
	builder.WriteString(encoded)

	return builder.String(), nil
}

// IsValid determines whether or not a string is a valid identifier.
func IsValid(value string) bool {
	return matcher.MatchString(value)
}
