package entity

import "time"

// PlatformStats is the admin dashboard view folded over accounts, products and orders.
type PlatformStats struct {
	TotalUsers             int // Buyers plus sellers; admins are not counted.
	TotalBuyers            int
	TotalSellers           int
	VerifiedSellers        int
	TotalProducts          int
	ActiveProducts         int
	AverageDiscountPercent float64
	TotalRevenue           float64
	TotalOrders            int
	FoodRescued            int // Units sold across non-cancelled orders.
}

// ComputePlatformStats derives PlatformStats from the given snapshots.
// Cancelled orders count towards TotalOrders but not towards revenue or rescued food.
func ComputePlatformStats(accounts []*Account, products []*Product, orders []*Order) PlatformStats {
	var stats PlatformStats

	for _, a := range accounts {
		switch a.Role {
		case RoleBuyer:
			stats.TotalBuyers++
		case RoleSeller:
			stats.TotalSellers++
			if a.Verified {
				stats.VerifiedSellers++
			}
		}
	}
	stats.TotalUsers = stats.TotalBuyers + stats.TotalSellers

	var discountSum float64
	priced := 0
	for _, p := range products {
		stats.TotalProducts++
		if p.Status == ProductStatusActive {
			stats.ActiveProducts++
		}
		if p.OriginalPrice > 0 {
			discountSum += p.DiscountPercent()
			priced++
		}
	}
	if priced > 0 {
		stats.AverageDiscountPercent = Round2(discountSum / float64(priced))
	}

	var revenue float64
	for _, o := range orders {
		stats.TotalOrders++
		if o.Status == OrderStatusCancelled {
			continue
		}
		revenue += o.Total
		stats.FoodRescued += o.ItemCount()
	}
	stats.TotalRevenue = Round2(revenue)

	return stats
}

// SellerStats is the seller dashboard view.
type SellerStats struct {
	TotalProducts  int
	ActiveProducts int
	UrgentProducts int     // Not yet expired, expiring within the urgent window.
	InventoryValue float64 // Σ rescuePrice × quantity over active products.
	Revenue        float64 // Σ total over non-cancelled orders.
	Orders         OrderStatusCounts
}

// ComputeSellerStats derives SellerStats for one seller's products and orders.
func ComputeSellerStats(products []*Product, orders []*Order, now time.Time, urgentWindow time.Duration) SellerStats {
	var stats SellerStats

	var inventory float64
	for _, p := range products {
		stats.TotalProducts++
		if p.Status != ProductStatusActive {
			continue
		}
		stats.ActiveProducts++
		inventory += p.RescuePrice * float64(p.Quantity)
		if p.ExpiresWithin(now, urgentWindow) {
			stats.UrgentProducts++
		}
	}
	stats.InventoryValue = Round2(inventory)

	var revenue float64
	for _, o := range orders {
		if o.Status != OrderStatusCancelled {
			revenue += o.Total
		}
	}
	stats.Revenue = Round2(revenue)
	stats.Orders = CountOrdersByStatus(orders)

	return stats
}
