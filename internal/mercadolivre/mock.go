package mercadolivre

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	domain "github.com/donaldgifford/ml-explorer/pkg/types"
)

// DefaultMockCount is the number of products a fallback search returns.
const DefaultMockCount = 4

// MockGenerator produces synthetic products used when the live catalog is
// unavailable. Every product it returns has IsMock set.
type MockGenerator interface {
	Generate(query string, count int) []domain.Product
}

type fixture struct {
	title     string // %s is replaced with the capitalized query
	brand     string
	price     float64
	thumbnail string
}

var fixtures = []fixture{
	{
		title:     "%s Samsung Book",
		brand:     "Samsung",
		price:     3500.00,
		thumbnail: "https://http2.mlstatic.com/D_NQ_NP_683315-MLA44484625294_012021-V.jpg",
	},
	{
		title:     "%s Apple MacBook Air",
		brand:     "Apple",
		price:     8000.00,
		thumbnail: "https://http2.mlstatic.com/D_NQ_NP_822458-MLA45231151666_032021-V.jpg",
	},
	{
		title:     "%s Dell Inspiron",
		brand:     "Dell",
		price:     4200.00,
		thumbnail: "https://http2.mlstatic.com/D_NQ_NP_905291-MLA44484661073_012021-V.jpg",
	},
	{
		title:     "Produto sem Marca Exemplo",
		brand:     domain.DefaultBrand,
		price:     150.00,
		thumbnail: "https://http2.mlstatic.com/D_NQ_NP_854515-MLA44484661073_012021-V.jpg",
	},
}

// FixtureGenerator returns the same demo catalog for every call, cycling
// through the fixtures when count exceeds them.
type FixtureGenerator struct{}

// Generate implements MockGenerator.
func (FixtureGenerator) Generate(query string, count int) []domain.Product {
	if count <= 0 {
		count = DefaultMockCount
	}
	label := capitalize(query)

	products := make([]domain.Product, 0, count)
	for i := range count {
		f := fixtures[i%len(fixtures)]
		title := f.title
		if strings.Contains(title, "%s") {
			title = fmt.Sprintf(title, label)
		}
		products = append(products, domain.Product{
			ID:        strconv.Itoa(i + 1),
			Title:     strings.TrimSpace(title),
			Price:     f.price,
			Currency:  domain.DefaultCurrency,
			Brand:     f.brand,
			Thumbnail: f.thumbnail,
			Permalink: "#",
			HasImage:  true,
			IsMock:    true,
		})
	}
	return products
}

var randomBrands = []string{"Samsung", "Apple", "Dell", "Lenovo", "Asus", "Acer", "LG", "Motorola", "Xiaomi"}

var randomConditions = []string{"new", "used"}

// RandomGenerator produces varied demo products from a seeded source.
type RandomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGenerator creates a RandomGenerator. The same seed yields the same
// sequence of products.
func NewRandomGenerator(seed uint64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Generate implements MockGenerator.
func (g *RandomGenerator) Generate(query string, count int) []domain.Product {
	if count <= 0 {
		count = DefaultMockCount
	}
	label := capitalize(query)

	g.mu.Lock()
	defer g.mu.Unlock()

	products := make([]domain.Product, 0, count)
	for i := range count {
		brand := randomBrands[g.rng.IntN(len(randomBrands))]
		f := fixtures[g.rng.IntN(len(fixtures))]
		price := math.Round((100+g.rng.Float64()*9900)*100) / 100

		products = append(products, domain.Product{
			ID:           "MOCK" + strconv.Itoa(i+1),
			Title:        strings.TrimSpace(fmt.Sprintf("%s %s %d", label, brand, 100+g.rng.IntN(900))),
			Price:        price,
			Currency:     domain.DefaultCurrency,
			Brand:        brand,
			Thumbnail:    f.thumbnail,
			Permalink:    "#",
			HasImage:     true,
			FreeShipping: g.rng.IntN(2) == 0,
			Rating:       math.Round((3+g.rng.Float64()*2)*10) / 10,
			ReviewCount:  g.rng.IntN(500),
			Condition:    randomConditions[g.rng.IntN(len(randomConditions))],
			IsMock:       true,
		})
	}
	return products
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
