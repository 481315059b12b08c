package m_storefront

// GraphQL documents for the Storefront API.
// The product selection is shared so list and detail views map through the
// same code path.
const productFields = `
fragment ProductFields on Product {
  id
  handle
  title
  description
  productType
  vendor
  priceRange { minVariantPrice { amount currencyCode } }
  images(first: 10) { edges { node { id url altText } } }
  variants(first: 100) {
    edges { node { id title availableForSale price { amount currencyCode } } }
  }
}
`

// ListProductsQuery pages through products for a search query and sort.
const ListProductsQuery = `
query ListProducts($first: Int!, $after: String, $sortKey: ProductSortKeys, $reverse: Boolean, $query: String) {
  products(first: $first, after: $after, sortKey: $sortKey, reverse: $reverse, query: $query) {
    pageInfo { hasNextPage endCursor }
    edges { node { ...ProductFields } }
  }
}
` + productFields

// ProductByHandleQuery fetches one product by its URL handle.
const ProductByHandleQuery = `
query ProductByHandle($handle: String!) {
  product(handle: $handle) { ...ProductFields }
}
` + productFields

// ProductTypesQuery lists the shop's distinct product types.
const ProductTypesQuery = `
query ProductTypes($first: Int!) {
  productTypes(first: $first) { edges { node } }
}
`

// ProductVendorsQuery pages through products selecting only the vendor; the
// Storefront API has no vendor connection of its own.
const ProductVendorsQuery = `
query ProductVendors($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo { hasNextPage endCursor }
    edges { node { vendor } }
  }
}
`

// Variable names.
const (
	VarFirst   = "first"
	VarAfter   = "after"
	VarSortKey = "sortKey"
	VarReverse = "reverse"
	VarQuery   = "query"
	VarHandle  = "handle"
)

// AccessTokenHeader carries the public storefront token.
const AccessTokenHeader = "X-Shopify-Storefront-Access-Token"
