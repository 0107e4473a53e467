// Package seed carga los datos iniciales embebidos en el binario:
// catálogo, categorías y tabla de razas.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"

	"petshop/internal/domain/catalog"
	"petshop/internal/domain/categories"
	"petshop/internal/domain/pets"
)

//go:embed data/*.json
var files embed.FS

func Products() ([]catalog.Product, error) {
	var out []catalog.Product
	if err := load("data/products.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func Categories() ([]categories.Category, error) {
	var out []categories.Category
	if err := load("data/categories.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func Breeds() ([]pets.Breed, error) {
	var out []pets.Breed
	if err := load("data/breeds.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func load(name string, dst any) error {
	b, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("seed: decode %s: %w", name, err)
	}
	return nil
}
