package category

import (
	"github.com/shopspring/decimal"
)

// Category labels produced by the keyword table.
const (
	DryFruits          = "Dry fruits and nuts"
	Electronics        = "Electronics"
	MedicalSupplies    = "Medical supplies"
	FreshFood          = "Food items (fresh)"
	RestaurantServices = "Restaurant services"
)

// statutorySlabs is the closed set of GST rates the resolver may return.
var statutorySlabs = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// IsSlab reports whether rate is one of the statutory GST slabs.
func IsSlab(rate decimal.Decimal) bool {
	for _, s := range statutorySlabs {
		if rate.Equal(s) {
			return true
		}
	}
	return false
}

// Rule maps a keyword set to a category and its rate.
type Rule struct {
	Category string
	Rate     decimal.Decimal
	HSNCode  string
	Keywords []string
}

// DefaultTable returns the keyword rules in priority order. Descriptions can hit
// several rules ("tea with milk"), so the first matching rule wins.
func DefaultTable() []Rule {
	return []Rule{
		{
			Category: DryFruits, Rate: decimal.NewFromInt(5), HSNCode: "08013200",
			Keywords: []string{
				"cashew", "almond", "walnut", "dates", "raisin", "pistachio",
				"badam", "kaju", "pista", "kishmish", "anjeer", "fig",
				"mixed nuts", "mixed bites", "dry fruit",
			},
		},
		{
			Category: Electronics, Rate: decimal.NewFromInt(18),
			Keywords: []string{
				"mobile", "phone", "laptop", "computer", "charger", "earphone",
				"headphone", "tv", "television", "air conditioner", "refrigerator",
				"washing machine",
			},
		},
		{
			Category: MedicalSupplies, Rate: decimal.NewFromInt(12),
			Keywords: []string{
				"medicine", "tablet", "syrup", "injection", "capsule",
				"test", "pathology", "xray", "scan",
			},
		},
		{
			Category: FreshFood, Rate: decimal.NewFromInt(0),
			Keywords: []string{
				"parotta", "chapati", "roti", "bread", "milk", "curd",
				"vegetables", "fruits", "eggs",
			},
		},
		{
			Category: RestaurantServices, Rate: decimal.NewFromInt(5),
			Keywords: []string{
				"dosa", "idli", "vada", "rice", "dal", "sambar",
				"biryani", "curry", "meal", "coffee", "tea",
			},
		},
	}
}
