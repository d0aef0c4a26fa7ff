package services

import (
	"net/url"
	"strings"
	"unicode"
)

// ProductPath is the product page route
const ProductPath = "/product-page.html"

// FormatCategoryName turns a camel-case identifier into words:
// "HandKnitScarves" becomes "Hand Knit Scarves".
func FormatCategoryName(category string) string {
	var b strings.Builder
	b.Grow(len(category) + 4)
	for _, r := range category {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// PriceLabel returns "$<price> each", or "" when price is empty
func PriceLabel(price string) string {
	if price == "" {
		return ""
	}
	return "$" + price + " each"
}

// PageTitle returns the document title for a category page
func PageTitle(category, siteName string) string {
	return FormatCategoryName(category) + " - " + siteName
}

// ProductURL links to the product page of category. Empty price and image
// are omitted.
func ProductURL(category, price, image string) string {
	q := url.Values{}
	q.Set("category", category)
	if price != "" {
		q.Set("price", price)
	}
	if image != "" {
		q.Set("image", image)
	}
	return ProductPath + "?" + q.Encode()
}
