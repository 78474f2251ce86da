package models

// Table is implemented by every persisted model.
type Table interface {
	TableName() string
	CreateTableSQL() string
}

// Tables lists the models in foreign key dependency order.
func Tables() []Table {
	return []Table{
		User{},
		Customer{},
		Category{},
		Product{},
		Comment{},
		Cart{},
		CartItem{},
		Order{},
		OrderItem{},
	}
}
