// Package odata lee la nomenclatura publicada por 1C vía el interfaz OData estándar.
package odata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"petshop/internal/domain/catalog"
	"petshop/internal/platform/httpclient"
)

const (
	DefaultCatalogName = "Catalog_Номенклатура"
	DefaultTop         = 50

	importBrand         = "1С Import"
	importCategoryID    = "cat-food"
	importStockQuantity = 10
)

type Config struct {
	// BaseURL: http://<server>/<base>/odata/standard.odata
	BaseURL     string
	User        string
	Password    string
	CatalogName string
	Top         int // 0 => DefaultTop; <0 => sin límite
	Timeout     time.Duration
}

// Item es una fila de Catalog_Номенклатура (solo los campos que pedimos con $select).
type Item struct {
	RefKey      string `json:"Ref_Key"`
	Description string `json:"Description"`
	Code        string `json:"Code"`
	Article     string `json:"Article"`
}

type Client struct {
	http    *httpclient.Client
	catalog string
	top     int
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("odata: base url is required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("odata: %w", err)
	}
	if cfg.User != "" {
		hc.WithBasicAuth(cfg.User, cfg.Password)
	}

	name := strings.TrimSpace(cfg.CatalogName)
	if name == "" {
		name = DefaultCatalogName
	}
	top := cfg.Top
	if top == 0 {
		top = DefaultTop
	}
	return &Client{http: hc, catalog: name, top: top}, nil
}

// FetchCatalog trae la nomenclatura en JSON ($format=json).
func (c *Client) FetchCatalog(ctx context.Context) ([]Item, error) {
	q := url.Values{}
	q.Set("$format", "json")
	q.Set("$select", "Ref_Key,Description,Code,Article")
	if c.top > 0 {
		q.Set("$top", strconv.Itoa(c.top))
	}

	var out struct {
		Value []Item `json:"value"`
	}
	path := "/" + url.PathEscape(c.catalog) + "?" + q.Encode()
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("odata: fetch %s: %w", c.catalog, err)
	}
	return out.Value, nil
}

// ToRecords arma los registros de import. El precio queda en 0: 1C lo publica en otro registro.
func ToRecords(items []Item) []catalog.Record {
	out := make([]catalog.Record, 0, len(items))
	for _, it := range items {
		article := it.Article
		if article == "" {
			article = it.Code
		}
		out = append(out, catalog.Record{
			"id":            it.RefKey,
			"name":          it.Description,
			"description":   "Артикул: " + article,
			"price":         0.0,
			"brand":         importBrand,
			"categoryId":    importCategoryID,
			"inStock":       true,
			"stockQuantity": float64(importStockQuantity),
			"petType":       "all",
		})
	}
	return out
}
