// Package matching maps vendor service offerings to the requirement
// categories those vendors are entitled to browse.
package matching

import (
	"github.com/samber/lo"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

// serviceCategories is the static offering → category table. Offerings
// without an entry contribute nothing. The "tours" offering also maps to the
// legacy "tour" tag still present on historic requirement documents.
var serviceCategories = map[string][]models.Category{
	"stays":          {models.CategoryStays},
	"tours":          {models.CategoryTours, models.CategoryTourLegacy},
	"adventures":     {models.CategoryAdventure},
	"vehicle-rental": {models.CategoryVehicleRental},
	"products":       {models.CategoryMarketplace},
}

// MatchCategories returns the union of categories mapped from the vendor's
// declared services, in first-seen order with duplicates collapsed. Sellers
// always match market-place regardless of offerings. An empty result means
// the caller must not query at all; an empty $in filter would otherwise
// match nothing, but guarding here keeps the contract independent of the
// query layer.
func MatchCategories(services []string, isSeller bool) []models.Category {
	matched := lo.FlatMap(services, func(service string, _ int) []models.Category {
		return serviceCategories[service]
	})
	if isSeller {
		matched = append(matched, models.CategoryMarketplace)
	}
	return lo.Uniq(matched)
}
