package validate_test

import (
	"strings"
	"testing"

	"bookbound/internal/validate"
)

func TestBookID(t *testing.T) {
	if _, ok := validate.BookID("B-1001"); !ok {
		t.Fatal("plain book id rejected")
	}
	if _, ok := validate.BookID(" B-1001 "); !ok {
		t.Fatal("surrounding whitespace should be trimmed")
	}
	for _, bad := range []string{"", "with space", "semi;colon", "<script>", strings.Repeat("x", 33)} {
		if _, ok := validate.BookID(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestQtyRejectsInsteadOfClamping(t *testing.T) {
	if n, ok := validate.Qty("3"); !ok || n != 3 {
		t.Fatalf("Qty(3) = %d %v", n, ok)
	}
	for _, bad := range []string{"0", "-1", "1000", "abc", ""} {
		if _, ok := validate.Qty(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestQTruncatesWholeRunes(t *testing.T) {
	if q, ok := validate.Q("gormenghast"); !ok || q != "gormenghast" {
		t.Fatalf("Q = %q %v", q, ok)
	}
	// 17 CJK runes are 51 bytes; a byte-level cut would split the last rune
	// and make the query fail the character-class check.
	long := strings.Repeat("书", 17)
	if q, ok := validate.Q(long); !ok || q != long {
		t.Fatalf("Q(%q) = %q %v", long, q, ok)
	}
	over := strings.Repeat("书", 60)
	if q, ok := validate.Q(over); !ok || q != strings.Repeat("书", 50) {
		t.Fatalf("over-long query not truncated to 50 runes: %q %v", q, ok)
	}
	if _, ok := validate.Q("<script>"); ok {
		t.Fatal("markup accepted")
	}
}

func TestNoteBlocksMarkup(t *testing.T) {
	if _, ok := validate.Note("notify me when back in stock"); !ok {
		t.Fatal("plain note rejected")
	}
	if _, ok := validate.Note(""); !ok {
		t.Fatal("empty note is allowed")
	}
	if _, ok := validate.Note("<b>hi</b>"); ok {
		t.Fatal("markup accepted")
	}
	if _, ok := validate.Note(strings.Repeat("a", 201)); ok {
		t.Fatal("over-long note accepted")
	}
}

func TestAmount(t *testing.T) {
	if _, ok := validate.Amount("50.00"); !ok {
		t.Fatal("valid amount rejected")
	}
	for _, bad := range []string{"0", "-5", "", "NaN", "ten"} {
		if _, ok := validate.Amount(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}
