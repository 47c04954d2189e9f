package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/casevalue/internal/model"
)

// FragmentKey is the URL fragment parameter that carries a token
const FragmentKey = "share"

// URL builds a shareable link of the form base#share=<token>
func URL(base string, token Token) string {
	base = strings.TrimSuffix(base, "#")
	if i := strings.Index(base, "#"); i >= 0 {
		base = base[:i]
	}
	return base + "#" + FragmentKey + "=" + string(token)
}

// ParseFragment extracts a token from a full URL, a "#share=..." fragment,
// a bare "share=..." pair or a bare token.
func ParseFragment(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "#"); i >= 0 {
		s = s[i+1:]
	} else if strings.Contains(s, "://") {
		return "", fmt.Errorf("url has no fragment: %w", model.ErrMalformed)
	}

	if !strings.Contains(s, "=") {
		if s == "" {
			return "", fmt.Errorf("empty fragment: %w", model.ErrMalformed)
		}
		return Token(s), nil
	}

	values, err := url.ParseQuery(s)
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", model.ErrMalformed)
	}
	token := values.Get(FragmentKey)
	if token == "" {
		return "", fmt.Errorf("fragment has no %s parameter: %w", FragmentKey, model.ErrMalformed)
	}
	return Token(token), nil
}
