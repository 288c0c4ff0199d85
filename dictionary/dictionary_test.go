package dictionary

import (
	"strings"
	"testing"
)

func TestNewWordList_LowercasesInput(t *testing.T) {
	wl := NewWordList([]string{"CAT", "Dog"})
	var got []string
	wl.Words("*", func(w string) bool {
		got = append(got, w)
		return true
	})
	if len(got) != 2 || got[0] != "cat" || got[1] != "dog" {
		t.Fatalf("Words() = %v, want [cat dog]", got)
	}
}

func TestLoad_SkipsBlankLinesAndComments(t *testing.T) {
	wl, err := Load(strings.NewReader("cat\n\n# a comment\nDOG\n"))
	if err != nil {
		t.Fatal(err)
	}
	if wl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", wl.Len())
	}
}

func TestWords_StopsEarlyWhenVisitReturnsFalse(t *testing.T) {
	wl := NewWordList([]string{"cat", "dog", "emu"})
	var seen []string
	wl.Words("*", func(w string) bool {
		seen = append(seen, w)
		return len(seen) < 2
	})
	if len(seen) != 2 {
		t.Fatalf("Words() visited %v, want exactly 2 before stopping", seen)
	}
}
