package auth

import "strings"

// ProviderError is an identity-provider rejection carried back on the
// callback redirect. It is shown to the operator, not retried.
type ProviderError struct {
	Code        string
	Description string
}

// Title is the human-readable form of the machine error code.
func (e ProviderError) Title() string {
	return SentenceCase(e.Code)
}

// Detail is the description, reformatted when the provider sent a
// machine code instead of prose.
func (e ProviderError) Detail() string {
	if e.Description != "" && !strings.Contains(e.Description, " ") {
		return SentenceCase(e.Description)
	}
	return e.Description
}

func (e ProviderError) Error() string {
	return e.Code + ": " + e.Description
}

// SentenceCase reformats a snake-case machine code ("access_denied") into
// a readable title ("Access Denied").
func SentenceCase(val string) string {
	words := strings.Fields(strings.ReplaceAll(val, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
