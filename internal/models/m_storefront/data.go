package m_storefront

// Request is a GraphQL request body.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Response is a GraphQL response envelope.
type Response[T any] struct {
	Data   *T             `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// GraphQLError is one entry of the errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// MoneyV2 carries amounts as decimal strings.
type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// PageInfo of a connection.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// ImageNode is a product image.
type ImageNode struct {
	ID      string  `json:"id"`
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
}

// VariantNode is a product variant.
type VariantNode struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	AvailableForSale bool     `json:"availableForSale"`
	Price            *MoneyV2 `json:"price"`
}

// ProductNode is the ProductFields fragment.
type ProductNode struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProductType string `json:"productType"`
	Vendor      string `json:"vendor"`
	PriceRange  *struct {
		MinVariantPrice *MoneyV2 `json:"minVariantPrice"`
	} `json:"priceRange"`
	Images *struct {
		Edges []struct {
			Node ImageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants *struct {
		Edges []struct {
			Node VariantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

// ProductConnection is a page of products.
type ProductConnection struct {
	PageInfo PageInfo `json:"pageInfo"`
	Edges    []struct {
		Node ProductNode `json:"node"`
	} `json:"edges"`
}

// ProductsData is the data of ListProductsQuery.
type ProductsData struct {
	Products *ProductConnection `json:"products"`
}

// ProductData is the data of ProductByHandleQuery.
type ProductData struct {
	Product *ProductNode `json:"product"`
}

// ProductTypesData is the data of ProductTypesQuery.
type ProductTypesData struct {
	ProductTypes *struct {
		Edges []struct {
			Node string `json:"node"`
		} `json:"edges"`
	} `json:"productTypes"`
}

// VendorsData is the data of ProductVendorsQuery.
type VendorsData struct {
	Products *struct {
		PageInfo PageInfo `json:"pageInfo"`
		Edges    []struct {
			Node struct {
				Vendor string `json:"vendor"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}
