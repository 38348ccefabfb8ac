package core

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ExtractHashtags returns every non-overlapping #word token in order.
func ExtractHashtags(description string) []string {
	return hashtagPattern.FindAllString(description, -1)
}

// ExtractNewTags returns the hashtags in description that are not yet known.
//
// A token is skipped when an existing tag or an earlier token of the same
// description matches it case-insensitively; the first casing seen wins.
func ExtractNewTags(description string, existing []Tag) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[strings.ToLower(t.Name)] = struct{}{}
	}
	var out []string
	for _, tok := range ExtractHashtags(description) {
		key := strings.ToLower(tok)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// NormalizeTagName trims the name and prefixes '#' when missing.
func NormalizeTagName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "#" {
		return ""
	}
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}
	return name
}

// HasTag reports whether the tag name occurs anywhere in the description,
// ignoring case. This is a substring test, so #car also matches #cartoon.
func HasTag(description, tagName string) bool {
	return strings.Contains(strings.ToLower(description), strings.ToLower(tagName))
}

// TagExists reports whether name matches an existing tag case-insensitively.
func TagExists(tags []Tag, name string) bool {
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}
