package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vasupatel610/retailrank/internal/domain"
	"github.com/vasupatel610/retailrank/internal/domain/taxonomy"
)

// LoadCSV reads catalog items from a headered CSV export. Attribute fields are
// normalized (synonym canonicalization, size folding) and the search document
// is derived per item, so the returned slice is ready for snapshot building.
func LoadCSV(path string) ([]domain.Item, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var items []domain.Item
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		it := mapRecord(record, cols)
		if it.ID == "" {
			continue
		}
		it.SearchDoc = taxonomy.NormalizeText(BuildSearchDoc(&it))
		items = append(items, it)
	}
	return items, nil
}

func mapRecord(record []string, cols map[string]int) domain.Item {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	return domain.Item{
		ID:          get("product_id"),
		Name:        get("product_name"),
		Category:    domain.NewAttr(get("product_category")),
		Brand:       domain.NewAttr(get("brand")),
		Size:        domain.NewAttr(taxonomy.NormalizeSize(get("size"))),
		Color:       domain.NewAttr(taxonomy.NormalizeText(get("color"))),
		Material:    domain.NewAttr(taxonomy.NormalizeText(get("material"))),
		Occasion:    domain.NewAttr(taxonomy.NormalizeText(get("occasion"))),
		AgeGroup:    domain.NewAttr(taxonomy.NormalizeText(get("age_group"))),
		Description: taxonomy.NormalizeText(get("product_description")),
		ListedPrice: parsePrice(get("price_listed")),
		Price:       parsePrice(get("price_final")),
		InStock:     get("stock_status") == "1",
		ImageURL:    get("product_image_url"),
	}
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
