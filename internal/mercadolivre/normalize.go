package mercadolivre

import (
	"path"
	"slices"
	"strings"

	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

// brandAttributeIDs are the attribute ids that carry the brand name.
var brandAttributeIDs = []string{"BRAND", "MARCA"}

// placeholderMarkers identify thumbnails that stand in for a missing photo.
var placeholderMarkers = []string{"noimage", "no-image", "no_image", "placeholder", "sem-imagem"}

// Normalize converts raw search items into products. Missing fields get
// defaults; products with an image sort first and otherwise keep the
// upstream order.
func Normalize(items []Item) []domain.Product {
	products := make([]domain.Product, 0, len(items))
	for i := range items {
		products = append(products, normalizeItem(&items[i]))
	}

	slices.SortStableFunc(products, func(a, b domain.Product) int {
		switch {
		case a.HasImage == b.HasImage:
			return 0
		case a.HasImage:
			return -1
		default:
			return 1
		}
	})
	return products
}

func normalizeItem(item *Item) domain.Product {
	p := domain.Product{
		ID:        item.ID,
		Title:     strings.TrimSpace(item.Title),
		Price:     item.Price,
		Currency:  item.CurrencyID,
		Brand:     extractBrand(item.Attributes),
		Thumbnail: UpgradeThumbnail(item.Thumbnail),
		Permalink: item.Permalink,
		Condition: item.Condition,
	}

	if p.Title == "" {
		p.Title = domain.DefaultTitle
	}
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}
	p.HasImage = p.Thumbnail != "" && !IsPlaceholderThumbnail(p.Thumbnail)

	if item.Shipping != nil {
		p.FreeShipping = item.Shipping.FreeShipping
	}
	if item.Reviews != nil {
		p.Rating = item.Reviews.RatingAverage
		p.ReviewCount = item.Reviews.Total
	}

	return p
}

// extractBrand returns the value of the first BRAND or MARCA attribute, or
// the default brand when none carries a value.
func extractBrand(attrs []Attribute) string {
	for _, attr := range attrs {
		if !slices.Contains(brandAttributeIDs, strings.ToUpper(attr.ID)) {
			continue
		}
		if v := strings.TrimSpace(attr.ValueName); v != "" {
			return v
		}
		break
	}
	return domain.DefaultBrand
}

// UpgradeThumbnail rewrites the low-resolution "-I.jpg" variant to "-V.jpg".
// Other URLs pass through unchanged.
func UpgradeThumbnail(u string) string {
	if base, ok := strings.CutSuffix(u, "-I.jpg"); ok {
		return base + "-V.jpg"
	}
	return u
}

// IsPlaceholderThumbnail reports whether u points at a "no image" graphic.
func IsPlaceholderThumbnail(u string) bool {
	name := strings.ToLower(path.Base(u))
	for _, m := range placeholderMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// FilterByBrand returns the products whose brand contains brandQuery,
// ignoring case. An empty query returns products unchanged.
func FilterByBrand(products []domain.Product, brandQuery string) []domain.Product {
	brandQuery = strings.TrimSpace(brandQuery)
	if brandQuery == "" {
		return products
	}

	filtered := make([]domain.Product, 0, len(products))
	for i := range products {
		if products[i].MatchesBrand(brandQuery) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}
