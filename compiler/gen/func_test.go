package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"AB", "ab"},
		{"ABC", "abc"},
		{"", ""},
		{"ProductCategory", "product_category"},
		{"ResultSuccess", "result_success"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, snake(tt.input))
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "UserInfo"},
		{"full_name", "FullName"},
		{"user_id", "UserID"},
		{"http_code", "HTTPCode"},
		{"full-admin", "FullAdmin"},
		{"already", "Already"},
		{"a", "A"},
		{"a_b", "AB"},
		{"xml_parser", "XMLParser"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, pascal(tt.input))
		})
	}
}

func TestReceiver(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "u"},
		{"UserQuery", "uq"},
		{"[]User", "u"},
		{"*User", "u"},
		{"HTTPClient", "hc"},
		{"A", "a"},
		{"ProductCategory", "pc"},
		// Local identifiers of generated bodies are skipped.
		{"Color", "co"},
		{"Value", "va"},
		{"Key", "ke"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, receiver(tt.input))
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "Users"},
		{"Category", "Categories"},
		{"ProductCategory", "ProductCategories"},
		{"Data", "DataItems"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, plural(tt.input))
		})
	}
}

func TestUnexport(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DisplayName", "displayName"},
		{"ID", "id"},
		{"URLPath", "urlPath"},
		{"X", "x"},
		{"already", "already"},
		{"ProductCategory", "productCategory"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, unexport(tt.input))
		})
	}
}

func TestExported(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"displayName", "DisplayName"},
		{"key", "Key"},
		{"id", "ID"},
		{"url", "URL"},
		{"full_name", "FullName"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, exported(tt.input))
		})
	}
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"displayName", "displayName"},
		{"value", "value"},
		{"ID", "id"},
		{"type", "_type"},
		{"err", "_err"},
		{"other", "_other"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, fieldName(tt.input))
		})
	}
}

func TestAddAcronym(t *testing.T) {
	AddAcronym("SKU")

	assert.Equal(t, "ProductSKU", pascal("product_sku"))
	assert.Equal(t, "SKU", exported("sku"))
}

func TestIsSeparator(t *testing.T) {
	assert.True(t, isSeparator('_'))
	assert.True(t, isSeparator('-'))
	assert.True(t, isSeparator(' '))
	assert.True(t, isSeparator('\t'))
	assert.False(t, isSeparator('a'))
	assert.False(t, isSeparator('1'))
}
