package csvutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFAQ(t *testing.T) {
	data := `question,answer
What is the return policy?,You can return items within 30 days.
Do you ship internationally?,"Yes, we ship to over 50 countries."
`
	entries, err := ReadFAQ(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "id_0", entries[0].ID)
	assert.Equal(t, "What is the return policy?", entries[0].Question)
	assert.Equal(t, "You can return items within 30 days.", entries[0].Answer)
	assert.Equal(t, "id_1", entries[1].ID)
	assert.Equal(t, "Yes, we ship to over 50 countries.", entries[1].Answer)
}

func TestReadFAQ_MissingColumns(t *testing.T) {
	data := `q,a
hello,world
`
	_, err := ReadFAQ(strings.NewReader(data))
	assert.Error(t, err)
}

func TestReadFAQ_Empty(t *testing.T) {
	_, err := ReadFAQ(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadProducts(t *testing.T) {
	data := `product_link,title,brand,price,discount,avg_rating,total_ratings
https://example.com/p/1,Campus Women Running Shoes,CAMPUS,1104,35.0,4.4,1200
https://example.com/p/2,Puma Men Sneakers,PUMA,2999.0,10,4.1,87
`
	products, err := ReadProducts(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Campus Women Running Shoes", products[0].Title)
	assert.Equal(t, 1104, products[0].Price)
	assert.Equal(t, 35.0, products[0].Discount)
	assert.Equal(t, 4.4, products[0].AvgRating)
	assert.Equal(t, 1200, products[0].TotalRatings)

	// Integer columns exported with a trailing ".0" still parse.
	assert.Equal(t, 2999, products[1].Price)
}

func TestReadProducts_MissingColumn(t *testing.T) {
	data := `product_link,title,brand,price
x,y,z,1
`
	_, err := ReadProducts(strings.NewReader(data))
	assert.Error(t, err)
}

func TestReadProducts_BadNumber(t *testing.T) {
	data := `product_link,title,brand,price,discount,avg_rating,total_ratings
x,y,z,abc,1,1,1
`
	_, err := ReadProducts(strings.NewReader(data))
	assert.Error(t, err)
}
