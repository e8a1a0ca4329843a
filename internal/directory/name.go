package directory

import "strings"

// DefaultNameSuffixes are tokens kept attached to the last name
var DefaultNameSuffixes = []string{"jr.", "iii", "sr."}

// SplitName splits fullName on single spaces. The final token is the last
// name unless it is a suffix, in which case the final two tokens are.
// A nil suffixes slice means DefaultNameSuffixes.
func SplitName(fullName string, suffixes []string) (first, last string) {
	if suffixes == nil {
		suffixes = DefaultNameSuffixes
	}

	tokens := strings.Split(fullName, " ")
	n := len(tokens)
	if n >= 2 && isSuffix(tokens[n-1], suffixes) {
		return strings.Join(tokens[:n-2], " "), tokens[n-2] + " " + tokens[n-1]
	}
	return strings.Join(tokens[:n-1], " "), tokens[n-1]
}

// JoinName is the inverse of SplitName
func JoinName(first, last string) string {
	if first == "" {
		return last
	}
	return first + " " + last
}

func isSuffix(token string, suffixes []string) bool {
	token = strings.ToLower(token)
	for _, s := range suffixes {
		if token == strings.ToLower(s) {
			return true
		}
	}
	return false
}
