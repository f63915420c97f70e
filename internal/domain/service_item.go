package domain

import "time"

const (
	ServiceTypeMassage  = "massage"
	ServiceTypeTraining = "training"
	ServiceTypeHerbs    = "herbs"
)

// ServiceItem is one offering shown in the catalog.
type ServiceItem struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DurationMin *int      `json:"duration_min"`
	PriceUAH    *int      `json:"price_uah"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"-"`
}

// Catalog groups active items by type.
type Catalog struct {
	Massage  []ServiceItem `json:"massage"`
	Training []ServiceItem `json:"training"`
	Herbs    []ServiceItem `json:"herbs"`
}

// NewCatalog buckets items by type, keeping their order. Items of an unknown
// type are skipped.
func NewCatalog(items []ServiceItem) Catalog {
	c := Catalog{Massage: []ServiceItem{}, Training: []ServiceItem{}, Herbs: []ServiceItem{}}
	for _, it := range items {
		switch it.Type {
		case ServiceTypeMassage:
			c.Massage = append(c.Massage, it)
		case ServiceTypeTraining:
			c.Training = append(c.Training, it)
		case ServiceTypeHerbs:
			c.Herbs = append(c.Herbs, it)
		}
	}
	return c
}
