// Package csvutil loads FAQ and product catalog data from CSV files.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kart-io/shopbot/internal/model"
)

// LoadFAQ reads question/answer pairs from a CSV file with a
// "question,answer" header. Each entry gets a stable identifier derived
// from its row position.
func LoadFAQ(path string) ([]model.FAQEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open faq file: %w", err)
	}
	defer f.Close()

	return ReadFAQ(f)
}

// ReadFAQ parses FAQ entries from CSV data.
func ReadFAQ(r io.Reader) ([]model.FAQEntry, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("faq csv is empty")
	}

	header := records[0]
	qIdx, aIdx := indexOf(header, "question"), indexOf(header, "answer")
	if qIdx < 0 || aIdx < 0 {
		return nil, fmt.Errorf("faq csv must have question and answer columns, got %v", header)
	}

	entries := make([]model.FAQEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		entries = append(entries, model.FAQEntry{
			ID:       fmt.Sprintf("id_%d", i),
			Question: rec[qIdx],
			Answer:   rec[aIdx],
		})
	}
	return entries, nil
}

// LoadProducts reads catalog rows from a CSV file. The header must
// contain the product table columns.
func LoadProducts(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product file: %w", err)
	}
	defer f.Close()

	return ReadProducts(f)
}

// ReadProducts parses product rows from CSV data.
func ReadProducts(r io.Reader) ([]model.Product, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("product csv is empty")
	}

	header := records[0]
	col := map[string]int{}
	for _, name := range []string{"product_link", "title", "brand", "price", "discount", "avg_rating", "total_ratings"} {
		idx := indexOf(header, name)
		if idx < 0 {
			return nil, fmt.Errorf("product csv missing column %q", name)
		}
		col[name] = idx
	}

	products := make([]model.Product, 0, len(records)-1)
	for i, rec := range records[1:] {
		p := model.Product{
			ProductLink: rec[col["product_link"]],
			Title:       rec[col["title"]],
			Brand:       rec[col["brand"]],
		}
		if p.Price, err = atoiField(rec[col["price"]]); err != nil {
			return nil, fmt.Errorf("row %d: bad price: %w", i+2, err)
		}
		if p.Discount, err = atofField(rec[col["discount"]]); err != nil {
			return nil, fmt.Errorf("row %d: bad discount: %w", i+2, err)
		}
		if p.AvgRating, err = atofField(rec[col["avg_rating"]]); err != nil {
			return nil, fmt.Errorf("row %d: bad avg_rating: %w", i+2, err)
		}
		if p.TotalRatings, err = atoiField(rec[col["total_ratings"]]); err != nil {
			return nil, fmt.Errorf("row %d: bad total_ratings: %w", i+2, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func readAll(r io.Reader) ([][]string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return records, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func atoiField(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	// Catalog exports sometimes carry integer columns as "1104.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}
	return strconv.Atoi(s)
}

func atofField(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
