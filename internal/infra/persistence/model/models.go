// Package model holds the GORM persistence models.
package model

// All lists every model in dependency order, for migrations and code generation.
func All() []any {
	return []any{
		&AccountModel{},
		&BuyerProfileModel{},
		&SellerProfileModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&SellerDeviceModel{},
	}
}
