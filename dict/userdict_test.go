package dict

import (
	"strings"
	"testing"
)

func testSchema() *Schema {
	s := &Schema{
		Fields:                []string{"pos", "reading"},
		DefaultLeftContextID:  7,
		DefaultRightContextID: 8,
		DefaultWordCost:       -100,
	}
	s.buildIndex()
	return s
}

func TestLoadUserSimpleFormat(t *testing.T) {
	csv := "東京スカイツリー,名詞,トウキョウスカイツリー\n"
	ud, err := LoadUser(strings.NewReader(csv), testSchema(), false)
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}

	matches := ud.CommonPrefixSearch([]byte("東京スカイツリーに"), 0)
	if len(matches) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(matches))
	}
	c := matches[0]
	if c.LeftID != 7 || c.RightID != 8 || c.WordCost != -100 {
		t.Errorf("simple-format entry did not receive schema defaults: %+v", c)
	}

	feats, err := ud.Features(c.WordID)
	if err != nil {
		t.Fatalf("Features: %v", err)
	}
	if feats[0] != "名詞" || feats[1] != "トウキョウスカイツリー" {
		t.Errorf("Features = %v, want [名詞 トウキョウスカイツリー]", feats)
	}
}

func TestLoadUserDetailedFormat(t *testing.T) {
	csv := "東京スカイツリー,100,200,-50,名詞,トウキョウスカイツリー\n"
	ud, err := LoadUser(strings.NewReader(csv), testSchema(), true)
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}

	matches := ud.CommonPrefixSearch([]byte("東京スカイツリー"), 0)
	if len(matches) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(matches))
	}
	c := matches[0]
	if c.LeftID != 100 || c.RightID != 200 || c.WordCost != -50 {
		t.Errorf("detailed-format entry mismatch: %+v", c)
	}
}

func TestLoadUserRejectsShortRow(t *testing.T) {
	csv := "foo,bar\n" // simple format needs 3 fields
	if _, err := LoadUser(strings.NewReader(csv), testSchema(), false); err == nil {
		t.Fatal("expected error for short simple-format row")
	}
}

func TestLoadUserRejectsEmptySurface(t *testing.T) {
	csv := ",名詞,トウキョウ\n"
	if _, err := LoadUser(strings.NewReader(csv), testSchema(), false); err == nil {
		t.Fatal("expected error for empty surface")
	}
}

func TestUserDictionaryNoSpuriousMatches(t *testing.T) {
	ud, err := LoadUser(strings.NewReader("猫,名詞,ねこ\n"), testSchema(), false)
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	if got := ud.CommonPrefixSearch([]byte("犬"), 0); len(got) != 0 {
		t.Fatalf("expected no matches for unrelated surface, got %+v", got)
	}
}
