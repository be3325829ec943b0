// Package catalog loads the seed product list consumed at bootstrap.
package catalog

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"storefront/model"
)

// Products whose name mentions one of these, or whose category is one of the
// tech categories, are regrouped under the "Tech" category before insertion.
var techKeywords = []string{
	"laptop", "mouse", "keyboard", "monitor", "headset", "webcam", "speaker",
	"charger", "usb", "hdmi", "thermostat", "camera", "power bank",
}

var techCategories = map[string]bool{
	"gaming":      true,
	"office work": true,
	"appliances":  true,
	"lights":      true,
}

// Parse decodes a JSON array of product descriptors and applies category
// normalization.
func Parse(r io.Reader) ([]models.Product, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i] = normalize(products[i])
	}
	return products, nil
}

// LoadFile reads the product file at path. The caller decides whether a
// missing or malformed file is fatal; bootstrap treats it as an empty catalog.
func LoadFile(path string) ([]models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func normalize(p models.Product) models.Product {
	name := strings.ToLower(p.Name)
	for _, kw := range techKeywords {
		if strings.Contains(name, kw) {
			p.Category = "Tech"
			return p
		}
	}
	if techCategories[strings.ToLower(p.Category)] {
		p.Category = "Tech"
	}
	return p
}
