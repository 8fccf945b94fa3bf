package quote

import (
	"fmt"
	"strings"
)

// Category is the product family picked on the calculator screen.
type Category string

const (
	CategoryApparel  Category = "apparel"
	CategoryFootwear Category = "footwear"
)

// shoes is what the widget tiles historically sent for footwear.
const categoryShoesAlias = "shoes"

// ParseCategory normalizes a wire value. Blank input selects apparel.
func ParseCategory(value string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(CategoryApparel):
		return CategoryApparel, nil
	case string(CategoryFootwear), categoryShoesAlias:
		return CategoryFootwear, nil
	default:
		return "", fmt.Errorf("unknown category %q", value)
	}
}

func (c Category) Valid() bool {
	return c == CategoryApparel || c == CategoryFootwear
}

func (c Category) String() string {
	return string(c)
}
