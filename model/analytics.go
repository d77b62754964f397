package model

import "time"

// CorrectionEvent represents a single correction query for analytics tracking
type CorrectionEvent struct {
	CorpusName     string        `json:"corpus_name"`
	Word           string        `json:"word"`
	Tier           Tier          `json:"tier"`
	ResponseTime   time.Duration `json:"response_time"`
	CandidateCount int           `json:"candidate_count"`
	Timestamp      time.Time     `json:"timestamp"`
}

// PopularWord represents aggregated data for a frequently queried word
type PopularWord struct {
	Word       string `json:"word"`
	QueryCount int    `json:"query_count"`
}

// CorpusUsage represents query statistics for a specific corpus
type CorpusUsage struct {
	CorpusName     string `json:"corpus_name"`
	VocabularySize int    `json:"vocabulary_size"`
	QueryCount     int    `json:"query_count"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To1ms      int     `json:"bucket_0_1ms"`
	Bucket1To10ms     int     `json:"bucket_1_10ms"`
	Bucket10To100ms   int     `json:"bucket_10_100ms"`
	Bucket100msPlus   int     `json:"bucket_100ms_plus"`
	Percentage0To1    float64 `json:"percentage_0_1"`
	Percentage1To10   float64 `json:"percentage_1_10"`
	Percentage10To100 float64 `json:"percentage_10_100"`
	Percentage100Plus float64 `json:"percentage_100_plus"`
}

// TierStats counts which stage of the cascade answered each query
type TierStats struct {
	Exact      int `json:"exact"`
	SingleEdit int `json:"single_edit"`
	DoubleEdit int `json:"double_edit"`
	None       int `json:"none"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalQueries          int   `json:"total_queries"`
	NoSuggestionQueries   int   `json:"no_suggestion_queries"`
	AvgResponseTimeMicros int64 `json:"avg_response_time_us"`
	ActiveCorpora         int   `json:"active_corpora"`

	Tiers                    TierStats                `json:"tiers"`
	TopUnknownWords          []PopularWord            `json:"top_unknown_words"`
	CorpusUsage              []CorpusUsage            `json:"corpus_usage"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
}
