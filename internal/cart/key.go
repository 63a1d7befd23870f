package cart

import (
	"strings"

	"github.com/rvasant/kinara/internal/domain"
)

// Sentinel values a flat key uses for unset variant attributes.
const (
	noSize  = "nosize"
	noColor = "nocolor"
)

// keyDelimiter separates segments in the unambiguous flat encoding. The unit
// separator cannot appear in product identifiers, sizes or colors, so Encode
// round-trips for every input that DelimiterFree accepts.
const keyDelimiter = "\x1f"

// ItemKey is the structured variant identity of a cart line: the
// (product id, size, color) tuple that decides whether two selections are the
// same line. It travels as a tuple end-to-end; flat string forms exist only
// for calling surfaces that need a single key.
type ItemKey struct {
	ProductID string
	Size      string
	Color     string
}

// KeyOf returns the normalized identity of a line.
func KeyOf(line domain.CartLine) ItemKey {
	return ItemKey{ProductID: line.ProductID, Size: line.Size, Color: line.Color}.Normalize()
}

// Normalize maps unset size/color to their sentinel values so identities
// compare correctly regardless of how the caller spelled "absent".
func (k ItemKey) Normalize() ItemKey {
	if k.Size == "" {
		k.Size = noSize
	}
	if k.Color == "" {
		k.Color = noColor
	}
	return k
}

// Matches reports whether the key identifies the given line.
func (k ItemKey) Matches(line domain.CartLine) bool {
	return k.Normalize() == KeyOf(line)
}

// Size and Color accessors returning "" for the sentinel values.

func (k ItemKey) SizeOrEmpty() string {
	if k.Size == noSize {
		return ""
	}
	return k.Size
}

func (k ItemKey) ColorOrEmpty() string {
	if k.Color == noColor {
		return ""
	}
	return k.Color
}

// Encode renders the key as a flat string using a reserved delimiter that is
// guaranteed absent from identifiers. Returns an error if any segment
// contains the delimiter.
func (k ItemKey) Encode() (string, error) {
	k = k.Normalize()
	for _, seg := range []string{k.ProductID, k.Size, k.Color} {
		if strings.Contains(seg, keyDelimiter) {
			return "", domain.Errorf(domain.EINVALID, "cart.key", "identifier contains reserved delimiter")
		}
	}
	return k.ProductID + keyDelimiter + k.Size + keyDelimiter + k.Color, nil
}

// Decode parses a delimiter-encoded flat key.
func Decode(s string) (ItemKey, error) {
	parts := strings.Split(s, keyDelimiter)
	if len(parts) != 3 || parts[0] == "" {
		return ItemKey{}, domain.Errorf(domain.EINVALID, "cart.key", "malformed item key")
	}
	return ItemKey{ProductID: parts[0], Size: parts[1], Color: parts[2]}, nil
}

// EncodeLegacy renders the hyphen-joined key some calling surfaces still send:
// productId + "-" + size + "-" + color, with sentinels for unset attributes.
func EncodeLegacy(k ItemKey) string {
	k = k.Normalize()
	return k.ProductID + "-" + k.Size + "-" + k.Color
}

// DecodeLegacy parses a hyphen-joined key by taking the last segment as the
// color and the second-to-last as the size; everything before them is rejoined
// as the product id. This tolerates hyphens inside the product id (UUIDs and
// the like) only because exactly two trailing segments are stripped, never
// more. A size or color that itself contains a hyphen cannot round-trip
// through this form; use Encode for those.
func DecodeLegacy(s string) (ItemKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return ItemKey{}, domain.Errorf(domain.EINVALID, "cart.key", "malformed item key: %q", s)
	}

	color := parts[len(parts)-1]
	size := parts[len(parts)-2]
	productID := strings.Join(parts[:len(parts)-2], "-")
	if productID == "" {
		return ItemKey{}, domain.Errorf(domain.EINVALID, "cart.key", "malformed item key: %q", s)
	}

	return ItemKey{ProductID: productID, Size: size, Color: color}, nil
}
