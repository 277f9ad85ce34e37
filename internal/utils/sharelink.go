package utils

import (
	"errors"
	"net/url"
	"strings"
)

// ShareFragmentPrefix is the client route of the read-only supplier view.
const ShareFragmentPrefix = "#/view?"

const shareSupplierParam = "supplier"

var (
	ErrShareSupplierRequired = errors.New("select a single supplier to share")
	ErrInvalidShareLink      = errors.New("invalid share link")
)

// EncodeSupplier percent-encodes a supplier name for use in a share link.
// Spaces become %20 rather than '+', matching browser encodeURIComponent.
func EncodeSupplier(supplier string) string {
	return strings.ReplaceAll(url.QueryEscape(supplier), "+", "%20")
}

// DecodeSupplier reverses EncodeSupplier.
func DecodeSupplier(encoded string) (string, error) {
	supplier, err := url.QueryUnescape(encoded)
	if err != nil {
		return "", ErrInvalidShareLink
	}
	return supplier, nil
}

// BuildShareLink returns the read-only view link for one supplier.
func BuildShareLink(baseURL, supplier string) (string, error) {
	if IsWildcard(strings.TrimSpace(supplier)) {
		return "", ErrShareSupplierRequired
	}
	base := baseURL
	if i := strings.Index(base, "#"); i >= 0 {
		base = base[:i]
	}
	return base + ShareFragmentPrefix + shareSupplierParam + "=" + EncodeSupplier(supplier), nil
}

// ParseShareLink extracts the supplier from a full share link or from its
// fragment alone.
func ParseShareLink(link string) (string, error) {
	fragment := link
	if i := strings.Index(link, "#"); i >= 0 {
		fragment = link[i:]
	}
	if !strings.HasPrefix(fragment, ShareFragmentPrefix) {
		return "", ErrInvalidShareLink
	}

	for _, pair := range strings.Split(strings.TrimPrefix(fragment, ShareFragmentPrefix), "&") {
		name, value, found := strings.Cut(pair, "=")
		if !found || name != shareSupplierParam {
			continue
		}
		supplier, err := DecodeSupplier(value)
		if err != nil {
			return "", err
		}
		if IsWildcard(strings.TrimSpace(supplier)) {
			return "", ErrShareSupplierRequired
		}
		return supplier, nil
	}
	return "", ErrInvalidShareLink
}
