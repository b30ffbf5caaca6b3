package mercadolivre

// Item represents a single raw result from the catalog search response.
// Every field is optional; normalization substitutes defaults.
type Item struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Price      float64     `json:"price"`
	CurrencyID string      `json:"currency_id"`
	Thumbnail  string      `json:"thumbnail"`
	Permalink  string      `json:"permalink"`
	Condition  string      `json:"condition"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Shipping   *Shipping   `json:"shipping,omitempty"`
	Reviews    *Reviews    `json:"reviews,omitempty"`
}

// Attribute is a single {id, value_name} pair from an item's attribute list.
type Attribute struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	ValueName string `json:"value_name"`
}

// Shipping holds the item's shipping flags.
type Shipping struct {
	FreeShipping bool `json:"free_shipping"`
}

// Reviews holds the item's review summary.
type Reviews struct {
	RatingAverage float64 `json:"rating_average"`
	Total         int     `json:"total"`
}

type searchAPIResponse struct {
	Results []Item `json:"results"`
	Paging  struct {
		Total int `json:"total"`
	} `json:"paging"`
}
