package analysis

// Config carries the tunables every analyzer reads. A value is passed
// explicitly into Analyze rather than living in package state so runs
// with different settings can coexist.
type Config struct {
	// StopWords are excluded from all word-frequency counts.
	StopWords []string
	// TopResults bounds every "top N" slice in the report.
	TopResults int
}

// DefaultStopWords covers the Japanese particles and auxiliaries that
// dominate raw title token counts without carrying meaning.
var DefaultStopWords = []string{
	"の", "に", "は", "を", "た", "が", "で", "て", "と", "し",
	"れ", "さ", "ある", "いる", "も", "する", "から", "な", "こと",
}

// DefaultConfig returns the standard analysis settings.
func DefaultConfig() Config {
	return Config{
		StopWords:  DefaultStopWords,
		TopResults: 5,
	}
}

func (c Config) withDefaults() Config {
	if c.TopResults <= 0 {
		c.TopResults = 5
	}
	if c.StopWords == nil {
		c.StopWords = DefaultStopWords
	}
	return c
}
