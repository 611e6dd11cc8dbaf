package catalog

// Service услуга из каталога CatalogService
type Service struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	DurationMinutes   int      `json:"durationMinutes"`
	Price             *float64 `json:"price,omitempty"`
	DefaultEmployeeID *int64   `json:"defaultEmployeeId,omitempty"`
}

// Employee сотрудник из каталога CatalogService
type Employee struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
