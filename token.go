package themec

import "strings"

// TokenRule is one tokenColors entry with its scopes split out.
type TokenRule struct {
	Scopes     []string
	Foreground string
	FontStyle  string
	HasStyle   bool
}

// Bold reports whether the font style includes bold.
func (r TokenRule) Bold() bool {
	return strings.Contains(strings.ToLower(r.FontStyle), "bold")
}

// Italic reports whether the font style includes italic.
func (r TokenRule) Italic() bool {
	return strings.Contains(strings.ToLower(r.FontStyle), "italic")
}

// Underline reports whether the font style includes underline.
func (r TokenRule) Underline() bool {
	return strings.Contains(strings.ToLower(r.FontStyle), "underline")
}

// Matches reports whether any of the rule's scopes matches pattern.
func (r TokenRule) Matches(pattern string) bool {
	for _, s := range r.Scopes {
		if ScopeMatches(s, pattern) {
			return true
		}
	}
	return false
}

// ScopeMatches reports whether scope is pattern or a dotted child of it.
func ScopeMatches(scope, pattern string) bool {
	return scope == pattern || strings.HasPrefix(scope, pattern+".")
}

// TokenRules extracts the tokenColors entries of doc that have settings and
// at least one scope, in document order.
func TokenRules(doc *Table) []TokenRule {
	var rules []TokenRule
	for _, item := range doc.Array("tokenColors") {
		entry, ok := item.(*Table)
		if !ok {
			continue
		}
		settings := entry.Table("settings")
		if settings == nil {
			continue
		}
		v, _ := entry.Get("scope")
		scopes := SplitScopes(v)
		if len(scopes) == 0 {
			continue
		}
		rule := TokenRule{Scopes: scopes}
		rule.Foreground, _ = settings.String("foreground")
		rule.FontStyle, rule.HasStyle = settings.String("fontStyle")
		rules = append(rules, rule)
	}
	return rules
}

// SplitScopes normalizes a scope value. Strings are split on commas; arrays
// keep their string elements.
func SplitScopes(v any) []string {
	var scopes []string
	switch v := v.(type) {
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				scopes = append(scopes, s)
			}
		}
	case []any:
		for _, s := range v {
			if str, ok := s.(string); ok {
				scopes = append(scopes, str)
			}
		}
	}
	return scopes
}

// Style is a resolved text style.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

// Token is a run of text sharing one style.
type Token struct {
	Text  string
	Style Style
}

// SplitLines splits tokens at newline boundaries into per-line slices.
func SplitLines(tokens []Token) [][]Token {
	if len(tokens) == 0 {
		return [][]Token{}
	}

	var result [][]Token
	var line []Token
	for _, tok := range tokens {
		if !strings.Contains(tok.Text, "\n") {
			line = append(line, tok)
			continue
		}
		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			if part != "" {
				line = append(line, Token{Text: part, Style: tok.Style})
			}
			if i < len(parts)-1 {
				result = append(result, line)
				line = nil
			}
		}
	}
	if len(line) > 0 {
		result = append(result, line)
	}
	return result
}
