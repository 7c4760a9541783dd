package risk

import (
	"testing"

	"rumorwatch/internal/models"
)

func kw(text string, weight int, category string) models.Keyword {
	return models.Keyword{Text: text, Weight: weight, Category: category}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  models.RiskLevel
	}{
		{0, models.RiskNone},
		{1, models.RiskLow},
		{9, models.RiskLow},
		{10, models.RiskMedium},
		{24, models.RiskMedium},
		{25, models.RiskHigh},
		{49, models.RiskHigh},
		{50, models.RiskCritical},
		{5000, models.RiskCritical},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestLevelForIsMonotonicStepFunction(t *testing.T) {
	rank := map[models.RiskLevel]int{}
	for i, l := range models.RiskLevels {
		rank[l] = i
	}
	prev := LevelFor(0)
	for s := 1; s <= 200; s++ {
		cur := LevelFor(s)
		if rank[cur] < rank[prev] {
			t.Errorf("level decreased at score %d: %s -> %s", s, prev, cur)
		}
		if rank[cur]-rank[prev] > 1 {
			t.Errorf("level skipped a band at score %d: %s -> %s", s, prev, cur)
		}
		prev = cur
	}
}

func TestScoreWorkedExample(t *testing.T) {
	keywords := []models.Keyword{
		kw("fire", 10, "disaster"),
		kw("explosion", 20, "disaster"),
	}

	got := Score("Fire near the explosion site, explosion confirmed", keywords)

	want := []models.MatchedKeyword{
		{Keyword: "explosion", Weight: 20, Count: 2, Category: "disaster"},
		{Keyword: "fire", Weight: 10, Count: 1, Category: "disaster"},
	}
	if len(got.Matches) != len(want) {
		t.Fatalf("got %d matches, want %d: %+v", len(got.Matches), len(want), got.Matches)
	}
	for i := range want {
		if got.Matches[i] != want[i] {
			t.Errorf("match %d = %+v, want %+v", i, got.Matches[i], want[i])
		}
	}
	if got.Score != 50 {
		t.Errorf("Score = %d, want 50", got.Score)
	}
	if got.Level != models.RiskCritical {
		t.Errorf("Level = %s, want CRITICAL", got.Level)
	}
	if got.Calculation != "Score: 50 - Level: CRITICAL" {
		t.Errorf("Calculation = %q", got.Calculation)
	}
}

func TestScoreWholeWordMatching(t *testing.T) {
	keywords := []models.Keyword{kw("virus", 5, "health")}

	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"inside another word", "install the antivirus now", 0},
		{"suffix of word", "viruses everywhere", 0},
		{"case insensitive", "the Virus spread", 1},
		{"repeated occurrences", "virus virus", 2},
		{"punctuation bounds", "virus,virus.(virus)", 3},
		{"underscore is a word character", "virus_x", 0},
		{"digit is a word character", "virus2", 0},
		{"accented letter is a word character", "vírusvirus", 0},
		{"whole text", "VIRUS", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.text, keywords)
			if tt.count == 0 {
				if len(got.Matches) != 0 || got.Score != 0 {
					t.Errorf("Score(%q) = %+v, want no matches", tt.text, got)
				}
				return
			}
			if len(got.Matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(got.Matches))
			}
			if got.Matches[0].Count != tt.count {
				t.Errorf("Count = %d, want %d", got.Matches[0].Count, tt.count)
			}
			if got.Score != 5*tt.count {
				t.Errorf("Score = %d, want %d", got.Score, 5*tt.count)
			}
		})
	}
}

func TestScoreKeywordIsMatchedLiterally(t *testing.T) {
	keywords := []models.Keyword{
		kw("a.b", 3, "x"),
		kw("c++", 4, "x"),
		kw("(alert)", 7, "x"),
		kw(".*", 100, "x"),
	}

	got := Score("axb then a.b then c++ and (alert)", keywords)

	want := []string{"(alert)", "c++", "a.b"}
	if len(got.Matches) != len(want) {
		t.Fatalf("got %d matches, want %d: %+v", len(got.Matches), len(want), got.Matches)
	}
	for i, w := range want {
		if got.Matches[i].Keyword != w {
			t.Errorf("match %d = %q, want %q", i, got.Matches[i].Keyword, w)
		}
	}
	if got.Score != 14 {
		t.Errorf("Score = %d, want 14", got.Score)
	}
}

func TestScoreMultiWordKeyword(t *testing.T) {
	got := Score("Shots fired near the school; shots fired again", []models.Keyword{kw("shots fired", 15, "violence")})
	if len(got.Matches) != 1 || got.Matches[0].Count != 2 {
		t.Fatalf("Matches = %+v, want one match counted twice", got.Matches)
	}
	if got.Level != models.RiskHigh {
		t.Errorf("Level = %s, want HIGH", got.Level)
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []models.Keyword
	}{
		{"empty text", "", []models.Keyword{kw("fire", 10, "d")}},
		{"no keywords", "fire everywhere", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.text, tt.keywords)
			if got.Score != 0 || got.Level != models.RiskNone {
				t.Errorf("Score() = %d %s, want 0 NONE", got.Score, got.Level)
			}
			if got.Matches == nil || len(got.Matches) != 0 {
				t.Errorf("Matches = %#v, want empty non-nil slice", got.Matches)
			}
		})
	}
}

func TestScoreTiesKeepStoreOrder(t *testing.T) {
	keywords := []models.Keyword{
		kw("zulu", 5, "a"),
		kw("alpha", 5, "a"),
		kw("heavy", 9, "a"),
	}

	got := Score("alpha zulu heavy", keywords)

	want := []string{"heavy", "zulu", "alpha"}
	if len(got.Matches) != len(want) {
		t.Fatalf("got %d matches, want %d", len(got.Matches), len(want))
	}
	for i, w := range want {
		if got.Matches[i].Keyword != w {
			t.Errorf("match %d = %q, want %q", i, got.Matches[i].Keyword, w)
		}
	}
}

func TestScoreSumMatchesScore(t *testing.T) {
	keywords := []models.Keyword{
		kw("flood", 8, "disaster"),
		kw("riot", 12, "violence"),
		kw("fake", 1, "misinformation"),
		kw("missing", 3, "people"),
	}
	texts := []string{
		"flood flood riot",
		"fake news about a missing child, fake!",
		"nothing to see here",
		"RIOT riot Riot flood missing fake",
	}
	for _, text := range texts {
		got := Score(text, keywords)
		sum := 0
		for _, m := range got.Matches {
			if m.Count < 1 {
				t.Errorf("%q: match %q has count %d", text, m.Keyword, m.Count)
			}
			sum += m.Weight * m.Count
		}
		if sum != got.Score {
			t.Errorf("%q: Score = %d, sum of matches = %d", text, got.Score, sum)
		}
		if (got.Score == 0) != (got.Level == models.RiskNone) {
			t.Errorf("%q: Score %d with level %s", text, got.Score, got.Level)
		}
	}
}

func TestNewScorerDoesNotMutateInput(t *testing.T) {
	keywords := []models.Keyword{kw(" Low ", 1, "a"), kw("high", 9, "a")}
	_ = NewScorer(keywords)
	if keywords[0].Text != " Low " || keywords[1].Text != "high" {
		t.Errorf("NewScorer modified its input: %+v", keywords)
	}
}
