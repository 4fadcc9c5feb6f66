package entity

import "github.com/dukahub/reception-api/pkg/selectbox"

// Catalog is the form-scoped mirror of the shop's product and supplier
// lists. It is seeded once when the form opens and grows by append when an
// inline or quick creation succeeds; it is never reconciled against
// concurrent edits by other sessions and is discarded with the form.
type Catalog struct {
	Products  []Product
	Suppliers []Supplier
}

// NewCatalog seeds a catalog from the lists fetched at form-open time.
func NewCatalog(products []Product, suppliers []Supplier) *Catalog {
	return &Catalog{Products: products, Suppliers: suppliers}
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) *Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}

// Supplier looks up a supplier by id.
func (c *Catalog) Supplier(id string) *Supplier {
	for i := range c.Suppliers {
		if c.Suppliers[i].ID == id {
			return &c.Suppliers[i]
		}
	}
	return nil
}

// AddProduct appends a newly created product.
func (c *Catalog) AddProduct(p Product) {
	c.Products = append(c.Products, p)
}

// AddSupplier appends a newly created supplier.
func (c *Catalog) AddSupplier(s Supplier) {
	c.Suppliers = append(c.Suppliers, s)
}

// ProductOptions projects the product list for the searchable select,
// preserving catalog order.
func (c *Catalog) ProductOptions() []selectbox.Option {
	options := make([]selectbox.Option, 0, len(c.Products))
	for i := range c.Products {
		options = append(options, c.Products[i].Option())
	}
	return options
}

// SupplierOptions projects the supplier list for the searchable select.
func (c *Catalog) SupplierOptions() []selectbox.Option {
	options := make([]selectbox.Option, 0, len(c.Suppliers))
	for i := range c.Suppliers {
		options = append(options, c.Suppliers[i].Option())
	}
	return options
}
