package analysis

type score struct {
	polarity     float64
	subjectivity float64
}

var lexicon = map[string]score{
	"amazing":     {0.6, 0.9},
	"awesome":     {1.0, 1.0},
	"awful":       {-1.0, 1.0},
	"bad":         {-0.7, 0.67},
	"beautiful":   {0.85, 1.0},
	"best":        {1.0, 0.3},
	"better":      {0.5, 0.5},
	"boring":      {-1.0, 1.0},
	"brilliant":   {0.9, 1.0},
	"broken":      {-0.4, 0.4},
	"cool":        {0.35, 0.65},
	"dull":        {-0.3, 0.6},
	"easy":        {0.43, 0.83},
	"enjoy":       {0.4, 0.5},
	"enjoyed":     {0.4, 0.5},
	"excellent":   {1.0, 1.0},
	"fantastic":   {0.4, 0.9},
	"favorite":    {0.5, 1.0},
	"fun":         {0.3, 0.2},
	"funny":       {0.25, 0.75},
	"good":        {0.7, 0.6},
	"great":       {0.8, 0.75},
	"happy":       {0.8, 1.0},
	"hard":        {-0.29, 0.54},
	"hate":        {-0.8, 0.9},
	"helpful":     {0.5, 0.5},
	"horrible":    {-1.0, 1.0},
	"interesting": {0.5, 0.5},
	"like":        {0.1, 0.2},
	"love":        {0.5, 0.6},
	"loved":       {0.7, 0.8},
	"nice":        {0.6, 1.0},
	"perfect":     {1.0, 1.0},
	"poor":        {-0.4, 0.6},
	"sad":         {-0.5, 1.0},
	"stupid":      {-0.8, 1.0},
	"terrible":    {-1.0, 1.0},
	"ugly":        {-0.7, 1.0},
	"useful":      {0.3, 0.0},
	"useless":     {-0.5, 0.2},
	"weird":       {-0.5, 1.0},
	"wonderful":   {1.0, 1.0},
	"worse":       {-0.4, 0.6},
	"worst":       {-1.0, 1.0},
	"wrong":       {-0.5, 0.9},
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "isn't": true, "wasn't": true,
	"don't": true, "doesn't": true, "didn't": true, "can't": true, "won't": true,
}

var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"extremely":  1.5,
	"so":         1.2,
	"incredibly": 1.5,
	"super":      1.3,
}

var stopwords = map[string]bool{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "all", "also", "am", "an", "and", "any", "are", "as", "at",
		"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
		"can", "could", "did", "do", "does", "doing", "down", "during", "each", "even", "every",
		"few", "for", "from", "further", "get", "got", "had", "has", "have", "having", "he", "her", "here",
		"hers", "him", "his", "how", "i", "i'm", "if", "in", "into", "is", "it", "it's", "its", "just",
		"know", "let's", "like", "me", "more", "most", "my", "now", "of", "off", "oh", "ok", "okay", "on",
		"once", "one", "only", "or", "other", "our", "out", "over", "own", "really", "right", "same", "say",
		"see", "she", "should", "so", "some", "such", "than", "that", "that's", "the", "their", "them",
		"then", "there", "these", "they", "thing", "things", "think", "this", "those", "through", "to",
		"too", "um", "uh", "under", "until", "up", "very", "was", "we", "we're", "were", "what", "when",
		"where", "which", "while", "who", "why", "will", "with", "would", "yeah", "you", "you're", "your",
		"going", "gonna", "want", "well", "way", "go", "make", "lot", "something", "actually",
	} {
		stopwords[w] = true
	}
	for w := range negators {
		stopwords[w] = true
	}
}
