package intake

import (
	"net/url"
	"strings"
)

// The public website's forms do not all name their controls the same
// way, so each lead field is resolved through an ordered list of
// extraction strategies over the posted values. The first strategy that
// yields a non-empty value wins.
type Strategy func(values url.Values) string

// exactKey reads the canonically named control.
func exactKey(name string) Strategy {
	return func(values url.Values) string {
		return strings.TrimSpace(values.Get(name))
	}
}

// keyContaining matches any posted key that contains one of the hints,
// case-insensitively. Mirrors the placeholder-substring lookup sites
// used before the controls were named consistently.
func keyContaining(hints ...string) Strategy {
	return func(values url.Values) string {
		for key := range values {
			lower := strings.ToLower(key)
			for _, hint := range hints {
				if strings.Contains(lower, hint) {
					if v := strings.TrimSpace(values.Get(key)); v != "" {
						return v
					}
				}
			}
		}
		return ""
	}
}

// fallbackKey reads the generic key the intake script fills from an
// unnamed control of a given kind (the page's select or textarea).
func fallbackKey(name string) Strategy {
	return exactKey(name)
}

// ContactFields are the visitor-entered parts of a lead.
type ContactFields struct {
	ParentName      string
	Email           string
	Phone           string
	ChildName       string
	ProgramInterest string
	Message         string
}

type fieldRule struct {
	assign     func(*ContactFields, string)
	strategies []Strategy
}

var fieldRules = []fieldRule{
	{
		assign:     func(f *ContactFields, v string) { f.ParentName = v },
		strategies: []Strategy{exactKey("parent_name"), keyContaining("parent")},
	},
	{
		assign:     func(f *ContactFields, v string) { f.Email = v },
		strategies: []Strategy{exactKey("email"), keyContaining("mail")},
	},
	{
		assign:     func(f *ContactFields, v string) { f.Phone = v },
		strategies: []Strategy{exactKey("phone"), keyContaining("phone", "tel")},
	},
	{
		assign:     func(f *ContactFields, v string) { f.ChildName = v },
		strategies: []Strategy{exactKey("child_name"), keyContaining("child")},
	},
	{
		assign:     func(f *ContactFields, v string) { f.ProgramInterest = v },
		strategies: []Strategy{exactKey("program_interest"), keyContaining("program"), fallbackKey("_select")},
	},
	{
		assign:     func(f *ContactFields, v string) { f.Message = v },
		strategies: []Strategy{exactKey("message"), keyContaining("message", "comment"), fallbackKey("_textarea")},
	},
}

// Resolve maps an inbound submission's key/value set onto the lead
// contact fields.
func Resolve(values url.Values) ContactFields {
	var fields ContactFields
	for _, rule := range fieldRules {
		for _, strategy := range rule.strategies {
			if v := strategy(values); v != "" {
				rule.assign(&fields, v)
				break
			}
		}
	}
	return fields
}

// Empty reports whether no recognizable field was populated.
func (f ContactFields) Empty() bool {
	return f == ContactFields{}
}
