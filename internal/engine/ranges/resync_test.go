package ranges

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/critic/internal/engine/tracking"
	"github.com/dshills/critic/internal/markup"
)

// replace applies one edit and returns the new text with its span.
func replace(text string, from, to int, ins string) (string, tracking.Span) {
	return text[:from] + ins + text[to:], tracking.Span{FromA: from, ToA: to, FromB: from, ToB: from + len(ins)}
}

// threadSig describes the thread links of every range by position.
func threadSig(c *Collection) []string {
	var out []string
	for _, r := range c.Ranges() {
		replies := make([]int, len(r.Replies))
		for i, rep := range r.Replies {
			replies[i] = rep.From
		}
		out = append(out, fmt.Sprintf("%d base=%d replies=%v", r.From, from(r.Base), replies))
	}
	return out
}

func assertMatchesBuild(t interface {
	Helper()
	Fatalf(string, ...any)
}, c *Collection, text string) {
	t.Helper()
	if err := c.Verify(text); err != nil {
		t.Fatalf("Verify(%q): %v", text, err)
	}
	full := New()
	full.Build(text)
	got, want := threadSig(c), threadSig(full)
	if strings.Join(got, ";") != strings.Join(want, ";") {
		t.Fatalf("threads of %q:\n got  %v\n want %v", text, got, want)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from, to int
		ins      string
		ranges   int
		errors   []int
	}{
		{"insert inside addition", "x{++y++}z", 4, 4, "Z", 1, nil},
		{"remove closing bracket", "x{++y++}z", 5, 8, "", 0, []int{1}},
		{"restore closing bracket", "x{++yz", 5, 5, "++}", 1, nil},
		{"form opener before text", "a++}b", 0, 0, "{++", 1, nil},
		{"form opener across edit", "{+X+a++}", 2, 3, "", 1, nil},
		{"swallow following range", "{++a {--b--} c", 14, 14, "++}", 1, nil},
		{"delete whole range", "x{++y++}z", 1, 8, "", 0, nil},
		{"insert before range", "{++y++}", 0, 0, "abc", 1, nil},
		{"insert after range", "{++y++}", 7, 7, "abc", 1, nil},
		{"break separator", "{~~a~>b~~}", 4, 5, "", 0, []int{0}},
		{"edit in metadata", `{++{"author":"a"}@@y++}`, 14, 15, "b", 1, nil},
		{"unrelated error stays", "{++ x {--a--}", 9, 9, "b", 1, []int{0}},
		{"close resolves earlier error", "{++ x {--a--} y", 15, 15, "++}", 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := build(t, tt.text)
			text, span := replace(tt.text, tt.from, tt.to, tt.ins)

			if err := c.Apply(text, []tracking.Span{span}); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			assertMatchesBuild(t, c, text)
			if c.Len() != tt.ranges {
				t.Errorf("got %d ranges, want %d", c.Len(), tt.ranges)
			}
			if !equalInts(c.Errors(), tt.errors) {
				t.Errorf("errors = %v, want %v", c.Errors(), tt.errors)
			}
		})
	}
}

func TestApplyKeepsIdentity(t *testing.T) {
	c := build(t, "{++a++} x {--b--}")
	first, second := c.At(0), c.At(1)

	text, span := replace("{++a++} x {--b--}", 8, 9, "yy")
	if err := c.Apply(text, []tracking.Span{span}); err != nil {
		t.Fatal(err)
	}
	if c.At(0) != first || c.At(1) != second {
		t.Error("ranges untouched by the edit should keep their identity")
	}
	if second.From != 11 || second.To != 18 {
		t.Errorf("shifted range = %s, want deletion[11:18)", second)
	}
}

func TestQueriesAfterApply(t *testing.T) {
	c := build(t, sample)
	text, span := replace(sample, 0, 0, "xx")
	if err := c.Apply(text, []tracking.Span{span}); err != nil {
		t.Fatal(err)
	}

	// A [3,11)  B [11,18)  C [19,29)
	if got := froms(c.Overlapping(5, 5)); !equalInts(got, []int{3}) {
		t.Errorf("Overlapping(5, 5) = %v", got)
	}
	if got := froms(c.RangesInInterval(11, 19)); !equalInts(got, []int{3, 11, 19}) {
		t.Errorf("RangesInInterval(11, 19) = %v", got)
	}
	if got := from(c.AtCursor(11, false, true)); got != 11 {
		t.Errorf("AtCursor(11) = %d", got)
	}
	for i, want := range []int{3, 11, 19} {
		r := c.At(i)
		if from(r) != want {
			t.Errorf("At(%d) = %d, want %d", i, from(r), want)
		}
		if got := c.IndexOf(r); got != i {
			t.Errorf("IndexOf(At(%d)) = %d", i, got)
		}
	}
	if got := from(c.AdjacentRange(c.At(0), false, false)); got != 11 {
		t.Errorf("AdjacentRange after A = %d", got)
	}
	if got := from(c.AdjacentRange(c.At(0), true, false)); got != -1 {
		t.Errorf("AdjacentRange before A = %d", got)
	}
	if from(c.Next(12)) != 19 || from(c.Prev(12)) != 11 {
		t.Errorf("Next/Prev(12) = %d/%d", from(c.Next(12)), from(c.Prev(12)))
	}
}

func BenchmarkQueryAfterEdit(b *testing.B) {
	text := strings.Repeat("xxxx {++added++} {--gone--} {~~old~>new~~}\n", 20000)
	c := New()
	c.Build(text)
	mid := len(text) / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var span tracking.Span
		text, span = replace(text, mid, mid, "k")
		if err := c.Apply(text, []tracking.Span{span}); err != nil {
			b.Fatal(err)
		}
		if c.IndexOf(c.Next(mid)) < 0 {
			b.Fatal("range after the edit not ranked")
		}
	}
}

func TestApplyMultipleSpans(t *testing.T) {
	text := "{++a++} x {--b--} y {==c==}"
	c := build(t, text)

	// Replace "a" with "AA" and "c" with "" in one batch.
	spans := []tracking.Span{
		{FromA: 3, ToA: 4, FromB: 3, ToB: 5},
		{FromA: 23, ToA: 24, FromB: 24, ToB: 24},
	}
	newText := "{++AA++} x {--b--} y {====}"
	if err := c.Apply(newText, spans); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	assertMatchesBuild(t, c, newText)
}

func TestApplyThreads(t *testing.T) {
	text := "{++a++}{>>c<<}"
	c := build(t, text)
	base, comment := c.At(0), c.At(1)
	if comment.Base != base {
		t.Fatalf("comment should reply to the addition")
	}

	text, span := replace(text, 7, 7, " ")
	if err := c.Apply(text, []tracking.Span{span}); err != nil {
		t.Fatal(err)
	}
	assertMatchesBuild(t, c, text)
	if comment.Base != nil || len(base.Replies) != 0 {
		t.Errorf("gap should break the thread: base %v replies %v", comment.Base, base.Replies)
	}

	text, span = replace(text, 7, 8, "")
	if err := c.Apply(text, []tracking.Span{span}); err != nil {
		t.Fatal(err)
	}
	assertMatchesBuild(t, c, text)
	if comment.Base != base {
		t.Error("removing the gap should restore the thread")
	}
}

func TestApplyMismatchedSpansRebuilds(t *testing.T) {
	c := build(t, "{++a++}")
	text := "x{++a++}"
	// Claims nothing changed although the text grew.
	if err := c.Apply(text, nil); err != nil {
		t.Fatal(err)
	}
	assertMatchesBuild(t, c, text)
}

var pieces = []string{
	"{++", "++}", "{--", "--}", "{~~", "~>", "~~}", "{==", "==}", "{>>", "<<}",
	`{"author":"a"}@@`, `{"time":1}@@`, "a", "b", " ", "{", "}", "+", "~", ">", "@@",
}

func genText(t *rapid.T, label string, maxPieces int) string {
	parts := rapid.SliceOfN(rapid.SampledFrom(pieces), 0, maxPieces).Draw(t, label)
	return strings.Join(parts, "")
}

func TestApplyMatchesFullParse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genText(t, "text", 30)
		c := New(WithVerify(true))
		c.Build(text)

		steps := rapid.IntRange(1, 5).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			from := rapid.IntRange(0, len(text)).Draw(t, "from")
			to := rapid.IntRange(from, min(len(text), from+8)).Draw(t, "to")
			ins := genText(t, "ins", 3)

			var span tracking.Span
			text, span = replace(text, from, to, ins)
			if err := c.Apply(text, []tracking.Span{span}); err != nil {
				t.Fatalf("Apply step %d: %v", i, err)
			}
			assertMatchesBuild(t, c, text)
		}
	})
}

func TestApplyDiffMatchesFullParse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		oldText := genText(t, "old", 25)
		newText := genText(t, "new", 25)
		c := New(WithVerify(true))
		c.Build(oldText)

		if err := c.Apply(newText, tracking.Diff(oldText, newText)); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		assertMatchesBuild(t, c, newText)
	})
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := genText(t, "text", 30)
		c := New()
		c.Build(text)
		rs := c.Ranges()

		plain := c.UnwrapInRange(text, 0, len(text)).Text
		stripped := markup.Resolve(text, rs, func(*markup.Range) markup.Decision { return markup.Strip })
		if plain != stripped {
			t.Fatalf("unwrap %q != strip %q", plain, stripped)
		}

		decisions := rapid.SliceOfN(rapid.Bool(), len(rs), len(rs)).Draw(t, "accept")
		i := 0
		resolved := markup.Resolve(text, rs, func(*markup.Range) markup.Decision {
			d := markup.Reject
			if decisions[i] {
				d = markup.Accept
			}
			i++
			return d
		})
		// Every span of the original is gone; what remains was plain text
		// or content.
		if len(resolved) > len(plain) {
			t.Fatalf("resolved %q longer than plain %q", resolved, plain)
		}
	})
}
