// FILE: internal/catalog/registry.go
// Platform module registrations. This is the single authoritative list; the
// composition root feeds it into New at startup.
package catalog

// Well-known names used by enforcement points and seeds.
const (
	ModuleIdentity   = "Platform.Identity"
	ModuleProducts   = "Ecommerce.Products"
	ModuleOrders     = "Ecommerce.Orders"
	ModulePromotions = "Ecommerce.Promotions"
	ModuleBlog       = "Content.Blog"
	ModulePages      = "Content.Pages"

	FeatureProductVariants  = "Ecommerce.Products.Variants"
	FeatureProductReviews   = "Ecommerce.Products.Reviews"
	FeatureProductInventory = "Ecommerce.Products.Inventory"
	FeatureOrderRefunds     = "Ecommerce.Orders.Refunds"
	FeatureOrderInvoicing   = "Ecommerce.Orders.Invoicing"
	FeatureCoupons          = "Ecommerce.Promotions.Coupons"
	FeatureBlogComments     = "Content.Blog.Comments"
	FeatureBlogScheduling   = "Content.Blog.Scheduling"
)

// Definitions returns the static module set for the commerce/CMS platform.
func Definitions() []ModuleDefinition {
	return []ModuleDefinition{
		{
			Name:           ModuleIdentity,
			IsCore:         true,
			DefaultEnabled: true,
		},
		{
			Name:           ModuleProducts,
			DefaultEnabled: true,
			Features: []FeatureDefinition{
				{Name: FeatureProductVariants, DefaultEnabled: true},
				{Name: FeatureProductReviews, DefaultEnabled: true},
				{Name: FeatureProductInventory, DefaultEnabled: false},
			},
		},
		{
			Name:           ModuleOrders,
			DefaultEnabled: true,
			Features: []FeatureDefinition{
				{Name: FeatureOrderRefunds, DefaultEnabled: true},
				{Name: FeatureOrderInvoicing, DefaultEnabled: false},
			},
		},
		{
			Name:           ModulePromotions,
			DefaultEnabled: false, // opt-in per tenant
			Features: []FeatureDefinition{
				{Name: FeatureCoupons, DefaultEnabled: true},
			},
		},
		{
			Name:           ModuleBlog,
			DefaultEnabled: true,
			Features: []FeatureDefinition{
				{Name: FeatureBlogComments, DefaultEnabled: true},
				{Name: FeatureBlogScheduling, DefaultEnabled: false},
			},
		},
		{
			Name:           ModulePages,
			DefaultEnabled: true,
		},
	}
}
