package application

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ProductService defines the interface for the default product example.
type ProductService interface {
	DefaultProduct() (json.RawMessage, error)
}

// productService reads the product file on every call.
type productService struct {
	path string
}

// NewProductService creates a new instance of productService.
func NewProductService(path string) ProductService {
	return &productService{path: path}
}

// DefaultProduct returns the product document as stored.
func (s *productService) DefaultProduct() (json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read default product %s: %w", s.path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("default product %s is not valid JSON", s.path)
	}
	return json.RawMessage(data), nil
}
