package domain

import "regexp"

// idPattern is the document store's canonical identifier encoding
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidID reports whether id is a 24-character hexadecimal string
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
