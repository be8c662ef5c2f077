package lexicon

import (
	"strings"
	"testing"
)

func TestDefault_ListsAreWellFormed(t *testing.T) {
	lex := Default()

	lists := map[string][]string{
		"keywords":    lex.Keywords,
		"brands":      lex.Brands,
		"query terms": lex.QueryTerms,
	}

	for name, list := range lists {
		t.Run(name, func(t *testing.T) {
			if len(list) == 0 {
				t.Fatalf("%s list is empty", name)
			}
			for _, entry := range list {
				if entry == "" {
					t.Fatalf("%s list contains an empty entry", name)
				}
				if entry != strings.ToLower(entry) {
					t.Errorf("%s entry %q is not lowercase", name, entry)
				}
				if strings.TrimSpace(entry) != entry {
					t.Errorf("%s entry %q has surrounding whitespace", name, entry)
				}
			}
		})
	}
}

func TestDefault_QueryTermsComeFromLexicons(t *testing.T) {
	lex := Default()

	known := make(map[string]struct{})
	for _, k := range lex.Keywords {
		known[k] = struct{}{}
	}
	for _, b := range lex.Brands {
		known[b] = struct{}{}
	}

	for _, term := range lex.QueryTerms {
		if _, ok := known[term]; !ok {
			t.Errorf("query term %q is neither a keyword nor a brand", term)
		}
	}
}
