package codes

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks build activity using lock-free atomic counters.
// All methods are safe for concurrent use.
type Metrics struct {
	buildsTotal atomic.Uint64
	buildsValid atomic.Uint64

	// Timing (stored as nanoseconds)
	buildTimeTotal atomic.Uint64
	buildTimeMin   atomic.Uint64
	buildTimeMax   atomic.Uint64

	// Setter rejections (ErrInvalidArgument, ErrNullReference)
	rejectedValues atomic.Uint64
	nullReferences atomic.Uint64

	// Issues found by Build
	errorsTotal   atomic.Uint64
	warningsTotal atomic.Uint64

	hashComputations atomic.Uint64

	vocabularies sync.Map // map[string]*vocabularyMetrics
}

type vocabularyMetrics struct {
	builds   atomic.Uint64
	failures atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.buildTimeMin.Store(^uint64(0))
	return m
}

// --- Recording Methods ---

// RecordBuild records a completed Build call for a vocabulary.
func (m *Metrics) RecordBuild(vocabulary string, duration time.Duration, valid bool) {
	m.buildsTotal.Add(1)
	if valid {
		m.buildsValid.Add(1)
	}

	vm := m.vocabulary(vocabulary)
	vm.builds.Add(1)
	if !valid {
		vm.failures.Add(1)
	}

	ns := uint64(duration.Nanoseconds()) //nolint:gosec // durations measured with time.Since are non-negative
	m.buildTimeTotal.Add(ns)

	for {
		old := m.buildTimeMin.Load()
		if ns >= old {
			break
		}
		if m.buildTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := m.buildTimeMax.Load()
		if ns <= old {
			break
		}
		if m.buildTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordRejectedValue records a setter that refused a wire string or member.
func (m *Metrics) RecordRejectedValue() {
	m.rejectedValues.Add(1)
}

// RecordNullReference records a setter that refused a nil argument.
func (m *Metrics) RecordNullReference() {
	m.nullReferences.Add(1)
}

// RecordIssues records the error and warning counts of one Build.
func (m *Metrics) RecordIssues(errors, warnings int) {
	m.errorsTotal.Add(uint64(errors))     //nolint:gosec // counts are non-negative
	m.warningsTotal.Add(uint64(warnings)) //nolint:gosec // counts are non-negative
}

// RecordHash records a hash computation (a memo miss).
func (m *Metrics) RecordHash() {
	m.hashComputations.Add(1)
}

func (m *Metrics) vocabulary(name string) *vocabularyMetrics {
	if v, ok := m.vocabularies.Load(name); ok {
		return v.(*vocabularyMetrics)
	}
	v, _ := m.vocabularies.LoadOrStore(name, &vocabularyMetrics{})
	return v.(*vocabularyMetrics)
}

// --- Query Methods ---

// BuildsTotal returns the number of Build calls.
func (m *Metrics) BuildsTotal() uint64 {
	return m.buildsTotal.Load()
}

// BuildsValid returns the number of successful Build calls.
func (m *Metrics) BuildsValid() uint64 {
	return m.buildsValid.Load()
}

// RejectedValues returns the number of refused wire strings and members.
func (m *Metrics) RejectedValues() uint64 {
	return m.rejectedValues.Load()
}

// NullReferences returns the number of refused nil arguments.
func (m *Metrics) NullReferences() uint64 {
	return m.nullReferences.Load()
}

// HashComputations returns the number of hashes computed.
func (m *Metrics) HashComputations() uint64 {
	return m.hashComputations.Load()
}

// AverageBuildTime returns the mean Build duration.
func (m *Metrics) AverageBuildTime() time.Duration {
	total := m.buildsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.buildTimeTotal.Load() / total) //nolint:gosec // bounded by measured durations
}

// VocabularyStats holds the counters of one vocabulary.
type VocabularyStats struct {
	Vocabulary string `json:"vocabulary"`
	Builds     uint64 `json:"builds"`
	Failures   uint64 `json:"failures"`
}

// AllVocabularyStats returns per-vocabulary counters sorted by name.
func (m *Metrics) AllVocabularyStats() []VocabularyStats {
	var stats []VocabularyStats
	m.vocabularies.Range(func(key, value any) bool {
		vm := value.(*vocabularyMetrics)
		stats = append(stats, VocabularyStats{
			Vocabulary: key.(string),
			Builds:     vm.builds.Load(),
			Failures:   vm.failures.Load(),
		})
		return true
	})
	sort.Slice(stats, func(i, j int) bool { return stats[i].Vocabulary < stats[j].Vocabulary })
	return stats
}

// Snapshot represents a point-in-time snapshot of all metrics.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	BuildsTotal uint64  `json:"builds_total"`
	BuildsValid uint64  `json:"builds_valid"`
	SuccessRate float64 `json:"success_rate"`

	AvgBuildTimeNs uint64 `json:"avg_build_time_ns"`
	MinBuildTimeNs uint64 `json:"min_build_time_ns"`
	MaxBuildTimeNs uint64 `json:"max_build_time_ns"`

	RejectedValues uint64 `json:"rejected_values"`
	NullReferences uint64 `json:"null_references"`

	ErrorsTotal   uint64 `json:"errors_total"`
	WarningsTotal uint64 `json:"warnings_total"`

	HashComputations uint64 `json:"hash_computations"`

	Vocabularies []VocabularyStats `json:"vocabularies,omitempty"`
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	total := m.buildsTotal.Load()

	var rate float64
	if total > 0 {
		rate = float64(m.buildsValid.Load()) / float64(total)
	}

	minTime := m.buildTimeMin.Load()
	if minTime == ^uint64(0) {
		minTime = 0
	}

	return Snapshot{
		Timestamp:        time.Now(),
		BuildsTotal:      total,
		BuildsValid:      m.buildsValid.Load(),
		SuccessRate:      rate,
		AvgBuildTimeNs:   uint64(m.AverageBuildTime()), //nolint:gosec // non-negative
		MinBuildTimeNs:   minTime,
		MaxBuildTimeNs:   m.buildTimeMax.Load(),
		RejectedValues:   m.rejectedValues.Load(),
		NullReferences:   m.nullReferences.Load(),
		ErrorsTotal:      m.errorsTotal.Load(),
		WarningsTotal:    m.warningsTotal.Load(),
		HashComputations: m.hashComputations.Load(),
		Vocabularies:     m.AllVocabularyStats(),
	}
}
