package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

// AddAcronym adds a new acronym to the naming rules of generated
// identifiers, e.g. AddAcronym("SKU") turns "product_sku" into "ProductSKU".
func AddAcronym(word string) {
	rules.AddAcronym(word)
	acronyms[word] = struct{}{}
}

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from golint and more.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HCL", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC",
		"MB", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO",
		"TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID",
		"VM", "XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// plural returns the plural form of a type name. Uncountable names get an
// "Items" suffix.
func plural(name string) string {
	p := rules.Pluralize(name)
	if p == name {
		p += "Items"
	}
	return p
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

func pascalWords(words []string) string {
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
		} else {
			words[i] = rules.Capitalize(w)
		}
	}
	return strings.Join(words, "")
}

// pascal converts the given name into a PascalCase.
//
//	user_info 	=> UserInfo
//	full_name 	=> FullName
//	user_id   	=> UserID
//	full-admin	=> FullAdmin
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	return pascalWords(words)
}

// snake converts the given struct or field name into a snake_case.
//
//	Username => username
//	FullName => full_name
//	HTTPCode => http_code
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter is uppercase,
		// and previous is lowercase (cases like: "UserInfo"), or next letter is also
		// a lowercase and previous letter is not "_".
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// unexport returns the unexported form of an identifier, lowering its
// leading word or acronym.
//
//	DisplayName => displayName
//	ID          => id
//	URLPath     => urlPath
func unexport(s string) string {
	rs := []rune(s)
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n > 1 && n < len(rs) && unicode.IsLower(rs[n]):
		// Keep the first letter of the next word.
		n--
	}
	for i := 0; i < n; i++ {
		rs[i] = unicode.ToLower(rs[i])
	}
	return string(rs)
}

// exported returns the exported Go name of a member name.
//
//	displayName => DisplayName
//	key         => Key
//	id          => ID
func exported(s string) string {
	if _, ok := acronyms[strings.ToUpper(s)]; ok {
		return strings.ToUpper(s)
	}
	if strings.ContainsFunc(s, isSeparator) {
		return pascal(s)
	}
	return rules.Capitalize(s)
}

// receiver returns the receiver name of the given type.
//
//	[]T       => t
//	[1]T      => t
//	User      => u
//	UserQuery => uq
func receiver(s string) (r string) {
	// Trim invalid tokens for identifier prefix.
	s = strings.Trim(s, "[]*&0123456789")
	parts := strings.Split(snake(s), "_")
	short := len(parts[0])
	for _, w := range parts[1:] {
		if len(w) < short {
			short = len(w)
		}
	}
	for i := 1; i < short; i++ {
		r := parts[0][:i]
		for _, w := range parts[1:] {
			r += w[:i]
		}
		if _, ok := reserved[r]; !ok {
			s = r
			break
		}
	}
	name := strings.ToLower(s)
	if _, ok := reserved[name]; ok || token.Lookup(name).IsKeyword() {
		name = "_" + name
	}
	return name
}

// fieldName returns the struct field holding a member. It never collides
// with Go keywords or with the identifiers used inside generated bodies.
func fieldName(member string) string {
	name := unexport(exported(member))
	if _, ok := reserved[name]; ok || token.Lookup(name).IsKeyword() {
		return "_" + name
	}
	return name
}

// reserved are the local identifiers of generated method bodies.
var reserved = names(
	"c",
	"cases",
	"err",
	"h",
	"item",
	"k",
	"ok",
	"other",
	"otherwise",
	"v",
	"values",
	"vogen",
	"x",
	"zero",
)

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}
