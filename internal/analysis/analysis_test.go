package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentAveragesOpinionWords(t *testing.T) {
	s := New().Sentiment("This is GREAT and awesome!")
	assert.InDelta(t, 0.9, s.Polarity, 1e-9)
	assert.InDelta(t, 0.875, s.Subjectivity, 1e-9)
}

func TestSentimentNegationAndIntensifiers(t *testing.T) {
	a := New()
	neg := a.Sentiment("this is not good")
	assert.InDelta(t, -0.35, neg.Polarity, 1e-9)
	assert.InDelta(t, 0.6, neg.Subjectivity, 1e-9)

	boosted := a.Sentiment("very good")
	assert.InDelta(t, 0.91, boosted.Polarity, 1e-9)

	capped := a.Sentiment("extremely perfect")
	assert.InDelta(t, 1.0, capped.Polarity, 1e-9)
	assert.InDelta(t, 1.0, capped.Subjectivity, 1e-9)
}

func TestSentimentNeutralText(t *testing.T) {
	assert.Zero(t, New().Sentiment(""))
	assert.Zero(t, New().Sentiment("The quick brown fox jumps over the lazy dog"))
}

func TestKeywordsByFrequencyThenFirstSeen(t *testing.T) {
	text := "Machine learning is great. Machine learning models need data. Data pipelines feed machine learning."
	a := New()
	assert.Equal(t, []string{"machine learning"}, a.Keywords(text, 1))
	assert.Equal(t, []string{"machine learning", "great", "machine learning models"}, a.Keywords(text, 3))
}

func TestKeywordsSkipsShortWordsAndNumbers(t *testing.T) {
	got := New().Keywords("cat 2024 dog, 42 cat", 5)
	assert.Empty(t, got)
}

func TestKeywordsNonPositiveCount(t *testing.T) {
	assert.Empty(t, New().Keywords("anything goes here", 0))
	assert.NotNil(t, New().Keywords("", 3))
}
