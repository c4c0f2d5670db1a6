package terminology

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gofhir/fhir/r4"

	"github.com/gofhir/codes"
	"github.com/gofhir/codes/cache"
	"github.com/gofhir/codes/pkg/logger"
	"github.com/gofhir/codes/pkg/vocabulary"
)

// LoadStats contains statistics about terminology loading.
type LoadStats struct {
	CodeSystemsLoaded  int64
	ValueSetsLoaded    int64
	VocabulariesLoaded int64
	Errors             int64
}

func (s *LoadStats) add(other *LoadStats) {
	if other == nil {
		return
	}
	atomic.AddInt64(&s.CodeSystemsLoaded, other.CodeSystemsLoaded)
	atomic.AddInt64(&s.ValueSetsLoaded, other.ValueSetsLoaded)
	atomic.AddInt64(&s.VocabulariesLoaded, other.VocabulariesLoaded)
	atomic.AddInt64(&s.Errors, other.Errors)
}

// Loader collects ValueSets, CodeSystems and YAML vocabularies and turns
// them into vocabularies on request. ValueSets are resolved lazily, so
// their code systems may be loaded in any order. It is safe for
// concurrent use.
type Loader struct {
	mu           sync.RWMutex
	valueSets    map[string]*r4.ValueSet
	codeSystems  map[string]*r4.CodeSystem
	vocabularies map[string]*vocabulary.Vocabulary[string]

	// built holds vocabularies derived from valueSets and codeSystems.
	built *cache.Cache[string, *vocabulary.Vocabulary[string]]
	log   *logger.Logger
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		valueSets:    make(map[string]*r4.ValueSet),
		codeSystems:  make(map[string]*r4.CodeSystem),
		vocabularies: make(map[string]*vocabulary.Vocabulary[string]),
		built:        cache.New[string, *vocabulary.Vocabulary[string]](cache.DefaultCapacity),
		log:          logger.Default().Named("terminology"),
	}
}

// AddValueSet stores an R4 ValueSet under its URL, replacing any earlier one.
func (l *Loader) AddValueSet(vs *r4.ValueSet) error {
	if vs == nil || vs.Url == nil {
		return fmt.Errorf("valueset is nil or has no URL")
	}
	l.mu.Lock()
	l.valueSets[*vs.Url] = vs
	l.mu.Unlock()
	l.built.Clear()
	return nil
}

// AddCodeSystem stores an R4 CodeSystem under its URL, replacing any earlier one.
func (l *Loader) AddCodeSystem(cs *r4.CodeSystem) error {
	if cs == nil || cs.Url == nil {
		return fmt.Errorf("codesystem is nil or has no URL")
	}
	l.mu.Lock()
	l.codeSystems[*cs.Url] = cs
	l.mu.Unlock()
	l.built.Clear()
	return nil
}

// AddVocabulary stores a ready-made vocabulary under its URL, or its name
// when it has no URL.
func (l *Loader) AddVocabulary(v *vocabulary.Vocabulary[string]) error {
	if v == nil {
		return fmt.Errorf("vocabulary is nil")
	}
	key := v.URL()
	if key == "" {
		key = v.Name()
	}
	l.mu.Lock()
	l.vocabularies[key] = v
	l.mu.Unlock()
	return nil
}

// LoadJSON loads a CodeSystem, a ValueSet or a Bundle of them.
// The resource type is detected from the JSON.
func (l *Loader) LoadJSON(data []byte) (*LoadStats, error) {
	stats := &LoadStats{}

	var probe struct {
		ResourceType string `json:"resourceType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch probe.ResourceType {
	case "Bundle":
		stats.CodeSystemsLoaded, stats.Errors = loadResourcesFromBundle(data, "CodeSystem", func(raw json.RawMessage) error {
			var cs r4.CodeSystem
			if err := json.Unmarshal(raw, &cs); err != nil {
				return err
			}
			return l.AddCodeSystem(&cs)
		})
		vsLoaded, vsErrors := loadResourcesFromBundle(data, "ValueSet", func(raw json.RawMessage) error {
			var vs r4.ValueSet
			if err := json.Unmarshal(raw, &vs); err != nil {
				return err
			}
			return l.AddValueSet(&vs)
		})
		stats.ValueSetsLoaded = vsLoaded
		stats.Errors += vsErrors

	case "CodeSystem":
		var cs r4.CodeSystem
		if err := json.Unmarshal(data, &cs); err != nil {
			return nil, fmt.Errorf("failed to parse CodeSystem: %w", err)
		}
		if err := l.AddCodeSystem(&cs); err != nil {
			stats.Errors++
			return stats, err
		}
		stats.CodeSystemsLoaded++

	case "ValueSet":
		var vs r4.ValueSet
		if err := json.Unmarshal(data, &vs); err != nil {
			return nil, fmt.Errorf("failed to parse ValueSet: %w", err)
		}
		if err := l.AddValueSet(&vs); err != nil {
			stats.Errors++
			return stats, err
		}
		stats.ValueSetsLoaded++

	default:
		return nil, fmt.Errorf("unsupported resourceType: %s", probe.ResourceType)
	}

	l.log.Debug("loaded %d CodeSystem(s), %d ValueSet(s), %d error(s)",
		stats.CodeSystemsLoaded, stats.ValueSetsLoaded, stats.Errors)
	return stats, nil
}

// LoadYAML loads vocabularies from YAML. See the package documentation
// for the format.
func (l *Loader) LoadYAML(data []byte, opts ...Option) (*LoadStats, error) {
	vocabs, err := LoadYAML(data, opts...)
	if err != nil {
		return nil, err
	}
	for _, v := range vocabs {
		if err := l.AddVocabulary(v); err != nil {
			return nil, err
		}
	}
	return &LoadStats{VocabulariesLoaded: int64(len(vocabs))}, nil
}

// LoadFile loads a .json, .yaml or .yml file.
func (l *Loader) LoadFile(path string) (*LoadStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var stats *LoadStats
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		stats, err = l.LoadJSON(data)
	case ".yaml", ".yml":
		stats, err = l.LoadYAML(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	return stats, nil
}

// LoadDirectory loads every CodeSystem-*.json, ValueSet-*.json, *.yaml
// and *.yml file of a directory, as found in FHIR packages. Files that
// fail to load are counted in Errors and skipped.
func (l *Loader) LoadDirectory(dirPath string) (*LoadStats, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dirPath)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	stats := &LoadStats{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasPrefix(name, "CodeSystem-") && strings.HasSuffix(name, ".json"),
			strings.HasPrefix(name, "ValueSet-") && strings.HasSuffix(name, ".json"),
			strings.HasSuffix(name, ".yaml"),
			strings.HasSuffix(name, ".yml"):
		default:
			continue
		}

		s, err := l.LoadFile(filepath.Join(dirPath, name))
		if err != nil {
			l.log.Warn("skipping %s: %v", name, err)
			stats.Errors++
			continue
		}
		stats.add(s)
	}

	l.log.Info("loaded %s: %d CodeSystem(s), %d ValueSet(s), %d vocabulary file(s), %d error(s)",
		dirPath, stats.CodeSystemsLoaded, stats.ValueSetsLoaded, stats.VocabulariesLoaded, stats.Errors)
	return stats, nil
}

// Vocabulary returns the vocabulary for a canonical URL or a YAML
// vocabulary name. A "|version" suffix is ignored. ValueSets are looked
// up before CodeSystems. Options apply only the first time a resource is
// turned into a vocabulary; the result is cached until the next Add.
func (l *Loader) Vocabulary(url string, opts ...Option) (*vocabulary.Vocabulary[string], error) {
	url = stripVersionFromURL(url)

	l.mu.RLock()
	v, isVocab := l.vocabularies[url]
	vs, isVS := l.valueSets[url]
	cs, isCS := l.codeSystems[url]
	l.mu.RUnlock()

	switch {
	case isVocab:
		return v, nil
	case isVS:
		return l.built.GetOrCompute(url, func() (*vocabulary.Vocabulary[string], error) {
			return FromValueSet(vs, append([]Option{WithCodeSystems(l.codeSystemList()...)}, opts...)...)
		})
	case isCS:
		return l.built.GetOrCompute(url, func() (*vocabulary.Vocabulary[string], error) {
			return FromCodeSystem(cs, opts...)
		})
	default:
		return nil, fmt.Errorf("vocabulary not found: %s", url)
	}
}

// URLs returns the keys of everything loaded, sorted.
func (l *Loader) URLs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.urlsLocked()
}

func (l *Loader) urlsLocked() []string {
	seen := make(map[string]struct{}, len(l.valueSets)+len(l.codeSystems)+len(l.vocabularies))
	for k := range l.valueSets {
		seen[k] = struct{}{}
	}
	for k := range l.codeSystems {
		seen[k] = struct{}{}
	}
	for k := range l.vocabularies {
		seen[k] = struct{}{}
	}
	urls := make([]string, 0, len(seen))
	for k := range seen {
		urls = append(urls, k)
	}
	sort.Strings(urls)
	return urls
}

// Register adds a codes.Table for every loaded ValueSet and YAML
// vocabulary to cat, then for every CodeSystem whose name is still free,
// since a catalog needs unique names. Resources that cannot be
// enumerated or hold malformed codes are logged and skipped.
func (l *Loader) Register(cat *codes.Catalog, opts ...codes.Option) error {
	var first, second []string
	l.mu.RLock()
	for _, url := range l.urlsLocked() {
		if _, isCS := l.codeSystems[url]; isCS {
			if _, isVS := l.valueSets[url]; !isVS {
				second = append(second, url)
				continue
			}
		}
		first = append(first, url)
	}
	l.mu.RUnlock()

	for i, urls := range [][]string{first, second} {
		for _, url := range urls {
			v, err := l.Vocabulary(url)
			if err != nil {
				l.log.Warn("skipping %s: %v", url, err)
				continue
			}
			if i == 1 {
				if _, taken := cat.Lookup(v.Name()); taken {
					continue
				}
			}
			table, err := codes.BuildTable(v, opts...)
			if err != nil {
				l.log.Warn("skipping %s: %v", url, err)
				continue
			}
			if err := cat.Register(table); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loader) codeSystemList() []*r4.CodeSystem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*r4.CodeSystem, 0, len(l.codeSystems))
	for _, cs := range l.codeSystems {
		out = append(out, cs)
	}
	return out
}

// bundleEntry represents an entry in a FHIR Bundle.
type bundleEntry struct {
	Resource json.RawMessage `json:"resource"`
}

// bundle represents a minimal FHIR Bundle structure.
type bundle struct {
	ResourceType string        `json:"resourceType"`
	Entry        []bundleEntry `json:"entry"`
}

// loadResourcesFromBundle loads every resource of targetType in a Bundle.
func loadResourcesFromBundle(data []byte, targetType string, load func(json.RawMessage) error) (loaded, errors int64) {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return 0, 1
	}

	for _, entry := range b.Entry {
		if entry.Resource == nil {
			continue
		}

		var probe struct {
			ResourceType string `json:"resourceType"`
		}
		if err := json.Unmarshal(entry.Resource, &probe); err != nil {
			continue
		}
		if probe.ResourceType != targetType {
			continue
		}

		if err := load(entry.Resource); err != nil {
			errors++
			continue
		}
		loaded++
	}
	return loaded, errors
}

// stripVersionFromURL removes the "|version" suffix of a canonical URL.
func stripVersionFromURL(url string) string {
	if i := strings.LastIndexByte(url, '|'); i >= 0 {
		return url[:i]
	}
	return url
}
