package engine

import (
	"strings"
	"testing"
)

func setupLargeSession(b *testing.B, lines int) *Session {
	b.Helper()
	var sb strings.Builder
	line := strings.Repeat("x", 40) + " {++added++} {--gone--} {~~old~>new~~}\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	return New(WithContent(sb.String()))
}

func BenchmarkSessionTyping(b *testing.B) {
	s := setupLargeSession(b, 5000)
	s.SetSelections(Caret(s.Len() / 2))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := s.Insert("k"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSessionBackspace(b *testing.B) {
	s := setupLargeSession(b, 5000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		s.SetSelections(Caret(s.Len() / 2))
		b.StartTimer()
		if err := s.Delete(true, false); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSessionMoveCursor(b *testing.B) {
	s := setupLargeSession(b, 5000)
	s.SetSelections(Caret(0))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.MoveCursor(false, i%2 == 0, false)
	}
}
