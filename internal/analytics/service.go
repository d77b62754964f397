package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-autocorrect/model"
	"github.com/gcbaptista/go-autocorrect/services"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	topWordsLimit   = 10
)

// Service implements in-memory correction analytics.
// It implements the services.CorrectionTracker interface.
type Service struct {
	mutex         sync.RWMutex
	events        []model.CorrectionEvent
	corpusManager services.CorpusManager
}

// NewService creates a new analytics service
func NewService(corpusManager services.CorpusManager) *Service {
	return &Service{
		events:        make([]model.CorrectionEvent, 0),
		corpusManager: corpusManager,
	}
}

// TrackCorrectionEvent records a new correction event
func (s *Service) TrackCorrectionEvent(event model.CorrectionEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.Timestamp = time.Now()
	s.events = append(s.events, event)

	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	return nil
}

// GetDashboardData returns analytics over the retained events
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tiers := s.getTierStats(s.events)
	corpora := s.corpusManager.ListCorpora()

	return model.AnalyticsDashboard{
		TotalQueries:             len(s.events),
		NoSuggestionQueries:      tiers.None,
		AvgResponseTimeMicros:    s.calculateAvgResponseTime(s.events),
		ActiveCorpora:            len(corpora),
		Tiers:                    tiers,
		TopUnknownWords:          s.getTopUnknownWords(s.events),
		CorpusUsage:              s.getCorpusUsage(s.events, corpora),
		ResponseTimeDistribution: s.getResponseTimeDistribution(s.events),
	}, nil
}

// calculateAvgResponseTime calculates average response time for events in microseconds
func (s *Service) calculateAvgResponseTime(events []model.CorrectionEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Microseconds()
}

func (s *Service) getTierStats(events []model.CorrectionEvent) model.TierStats {
	stats := model.TierStats{}

	for _, event := range events {
		switch event.Tier {
		case model.TierExact:
			stats.Exact++
		case model.TierSingleEdit:
			stats.SingleEdit++
		case model.TierDoubleEdit:
			stats.DoubleEdit++
		default:
			stats.None++
		}
	}

	return stats
}

// getTopUnknownWords returns the most queried words that were not in the vocabulary
func (s *Service) getTopUnknownWords(events []model.CorrectionEvent) []model.PopularWord {
	wordCounts := make(map[string]int)

	for _, event := range events {
		if event.Tier != model.TierExact && event.Word != "" {
			wordCounts[event.Word]++
		}
	}

	words := make([]model.PopularWord, 0, len(wordCounts))
	for word, count := range wordCounts {
		words = append(words, model.PopularWord{Word: word, QueryCount: count})
	}

	sort.Slice(words, func(i, j int) bool {
		if words[i].QueryCount != words[j].QueryCount {
			return words[i].QueryCount > words[j].QueryCount
		}
		return words[i].Word < words[j].Word
	})

	if len(words) > topWordsLimit {
		words = words[:topWordsLimit]
	}
	return words
}

// getCorpusUsage returns query counts for every loaded corpus
func (s *Service) getCorpusUsage(events []model.CorrectionEvent, corpora []string) []model.CorpusUsage {
	queryCounts := make(map[string]int)
	for _, event := range events {
		queryCounts[event.CorpusName]++
	}

	usage := make([]model.CorpusUsage, 0, len(corpora))
	for _, name := range corpora {
		vocabularySize := 0
		if accessor, err := s.corpusManager.GetCorpus(name); err == nil {
			vocabularySize = accessor.Stats().VocabularySize
		}

		usage = append(usage, model.CorpusUsage{
			CorpusName:     name,
			VocabularySize: vocabularySize,
			QueryCount:     queryCounts[name],
		})
	}

	return usage
}

// getResponseTimeDistribution returns response time distribution
func (s *Service) getResponseTimeDistribution(events []model.CorrectionEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch {
		case event.ResponseTime <= time.Millisecond:
			dist.Bucket0To1ms++
		case event.ResponseTime <= 10*time.Millisecond:
			dist.Bucket1To10ms++
		case event.ResponseTime <= 100*time.Millisecond:
			dist.Bucket10To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	dist.Percentage0To1 = float64(dist.Bucket0To1ms) / float64(total) * 100
	dist.Percentage1To10 = float64(dist.Bucket1To10ms) / float64(total) * 100
	dist.Percentage10To100 = float64(dist.Bucket10To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100

	return dist
}
