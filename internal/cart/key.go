package cart

import "strings"

// CompositeKey identifies one purchasable line: the same product in two
// colors or sizes is two distinct lines. Absent color/size normalize to the
// empty string, so (id, "", "") and (id, "Red", "") are different keys.
type CompositeKey struct {
	ProductID string
	Color     string
	Size      string
}

// Key builds the composite identity key for a product selection. Inputs are
// trimmed so that " Red " and "Red" resolve to the same key.
func Key(productID, color, size string) CompositeKey {
	return CompositeKey{
		ProductID: strings.TrimSpace(productID),
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
	}
}

func (k CompositeKey) String() string {
	return k.ProductID + "|" + k.Color + "|" + k.Size
}
