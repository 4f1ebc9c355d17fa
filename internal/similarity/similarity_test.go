// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package similarity

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

const epsilon = 1e-9

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, World! It's 2nd-season  ÉCHO")
	want := []string{"hello", "world", "it", "s", "2nd", "season", "cho"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
	if got := Tokenize("  ...  "); len(got) != 0 {
		t.Errorf("Tokenize(punctuation) = %v, want empty", got)
	}
}

func TestLexicalScores_IdenticalTextIsOne(t *testing.T) {
	for _, text := range []string{"a ninja village", "Spirited Away!", "x"} {
		scores := LexicalScores(text, []string{text})
		if math.Abs(scores[0]-1) > epsilon {
			t.Errorf("lexical(%q, itself) = %v, want 1", text, scores[0])
		}
	}
}

func TestLexicalScores_Properties(t *testing.T) {
	scores := LexicalScores("ninja village war", []string{
		"ninja village",
		"space pirates",
		"",
		"NINJA war, village!",
	})
	if scores[1] != 0 {
		t.Errorf("disjoint text score = %v, want 0", scores[1])
	}
	if scores[2] != 0 {
		t.Errorf("empty text score = %v, want 0", scores[2])
	}
	if math.Abs(scores[3]-1) > epsilon {
		t.Errorf("same bag of words = %v, want 1", scores[3])
	}
	want := 2 / (math.Sqrt(3) * math.Sqrt(2))
	if math.Abs(scores[0]-want) > epsilon {
		t.Errorf("partial overlap = %v, want %v", scores[0], want)
	}
}

func TestLexicalScores_EmptyBase(t *testing.T) {
	scores := LexicalScores("", []string{"anything"})
	if scores[0] != 0 {
		t.Errorf("empty base score = %v, want 0", scores[0])
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"length mismatch", []float64{1}, []float64{1, 2}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Cosine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeanPool(t *testing.T) {
	got := meanPool([][]float64{{1, 2}, {3, 4}})
	if !reflect.DeepEqual(got, []float64{2, 3}) {
		t.Errorf("meanPool = %v", got)
	}
	if meanPool([][]float64{{1}, {1, 2}}) != nil {
		t.Error("ragged input should yield nil")
	}
}

type stubScorer struct {
	name   string
	scores []float64
	err    error
	calls  int
}

func (s *stubScorer) Name() string { return s.name }

func (s *stubScorer) Score(context.Context, string, []string) ([]float64, error) {
	s.calls++
	return s.scores, s.err
}

func TestChain_FallsBack(t *testing.T) {
	remote := &stubScorer{name: "remote", err: unavailable("remote", nil)}
	short := &stubScorer{name: "short", scores: []float64{0.5}}
	chain := NewChain(remote, nil, short, NewLexical())

	scores, name, err := chain.Score(context.Background(), "a b", []string{"a", "c"})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if name != LexicalName {
		t.Errorf("provider = %q, want lexical", name)
	}
	if len(scores) != 2 {
		t.Errorf("scores = %v", scores)
	}
	if remote.calls != 1 || short.calls != 1 {
		t.Errorf("calls remote=%d short=%d", remote.calls, short.calls)
	}
	if want := []string{"remote", "short", LexicalName}; !reflect.DeepEqual(chain.Names(), want) {
		t.Errorf("Names = %v, want %v", chain.Names(), want)
	}
}

func TestChain_FirstSuccessWins(t *testing.T) {
	first := &stubScorer{name: "first", scores: []float64{0.9}}
	second := &stubScorer{name: "second", scores: []float64{0.1}}

	scores, name, err := NewChain(first, second).Score(context.Background(), "x", []string{"y"})
	if err != nil || name != "first" || scores[0] != 0.9 {
		t.Errorf("got %v %q %v", scores, name, err)
	}
	if second.calls != 0 {
		t.Error("second scorer should not be called")
	}
}

func TestChain_AllFail(t *testing.T) {
	_, _, err := NewChain(&stubScorer{name: "a", err: unavailable("a", nil)}).Score(context.Background(), "x", []string{"y"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	_, _, err = NewChain().Score(context.Background(), "x", nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("empty chain err = %v, want ErrUnavailable", err)
	}
}

func TestChain_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	second := &stubScorer{name: "second", scores: []float64{1}}
	_, _, err := NewChain(&stubScorer{name: "first", err: context.Canceled}, second).Score(ctx, "x", []string{"y"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if second.calls != 0 {
		t.Error("chain continued after cancellation")
	}
}
