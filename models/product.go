package models

// Product fields a caller may change through an update
const (
	ProductName           = "name"
	ProductCategory       = "category"
	ProductPrice          = "price"
	ProductRating         = "rating"
	ProductStockStatus    = "stockStatus"
	ProductGrip           = "grip"
	ProductProcessingTime = "processingTime"
	ProductPhoto          = "photo"
)

// ProductMutableFields is the update whitelist for product listings
var ProductMutableFields = []string{
	ProductName,
	ProductCategory,
	ProductPrice,
	ProductRating,
	ProductStockStatus,
	ProductGrip,
	ProductProcessingTime,
	ProductPhoto,
}

// FilterProductUpdate keeps only whitelisted product fields.
// It returns the accepted fields and the names of the dropped ones.
func FilterProductUpdate(fields Document) (accepted Document, dropped []string) {
	accepted = make(Document, len(fields))
	allowed := make(map[string]struct{}, len(ProductMutableFields))
	for _, name := range ProductMutableFields {
		allowed[name] = struct{}{}
	}

	for k, v := range fields {
		if _, ok := allowed[k]; ok {
			accepted[k] = v
			continue
		}
		dropped = append(dropped, k)
	}
	return accepted, dropped
}
