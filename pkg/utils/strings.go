package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	slugInvalid   = regexp.MustCompile("[^a-z0-9 -]+")
	slugHyphens   = regexp.MustCompile("-+")
	nameInvalid   = regexp.MustCompile("[^a-z0-9-]")
	anyWhitespace = regexp.MustCompile(`\s+`)
)

// GenerateSlug converts a string into a URL-friendly slug.
// e.g. "Men's Chrono Watch!" -> "mens-chrono-watch"
func GenerateSlug(input string) string {
	s := strings.ToLower(input)
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NameSlug is the looser slug used when matching a category slug against a
// product name: runs of whitespace become one hyphen, other punctuation is dropped.
func NameSlug(name string) string {
	s := anyWhitespace.ReplaceAllString(strings.ToLower(name), "-")
	return nameInvalid.ReplaceAllString(s, "")
}

// TagSlug lower-cases a tag and hyphenates its whitespace.
func TagSlug(tag string) string {
	return anyWhitespace.ReplaceAllString(strings.ToLower(tag), "-")
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseBool treats "1", "true" and "yes" as true.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
