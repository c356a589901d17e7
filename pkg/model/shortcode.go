package model

import (
	"fmt"
	"strconv"
	"strings"
)

const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// CodeFromID encodes a numeric media id as a shortcode. For compound ids of
// the form "<media>_<owner>" only the media part is encoded.
func CodeFromID(id string) (string, error) {
	head, _, _ := strings.Cut(id, "_")
	n, err := strconv.ParseUint(head, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid media id %q: %w", id, err)
	}
	return EncodeShortcode(n), nil
}

// IDFromCode decodes a shortcode into the numeric media id
func IDFromCode(code string) (string, error) {
	n, err := DecodeShortcode(code)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}

// EncodeShortcode renders n in base 64 over the shortcode alphabet, most
// significant digit first. Zero encodes as the empty string.
func EncodeShortcode(n uint64) string {
	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = shortcodeAlphabet[n%64]
		n /= 64
	}
	return string(buf[i:])
}

// DecodeShortcode folds code left to right as base 64 digits
func DecodeShortcode(code string) (uint64, error) {
	var n uint64
	for _, c := range code {
		idx := strings.IndexRune(shortcodeAlphabet, c)
		if idx < 0 {
			return 0, fmt.Errorf("invalid shortcode character %q in %q", c, code)
		}
		if n > (1<<64-1)/64 {
			return 0, fmt.Errorf("shortcode %q overflows a 64-bit id", code)
		}
		n = n*64 + uint64(idx)
	}
	return n, nil
}
