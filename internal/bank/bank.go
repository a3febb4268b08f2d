// Package bank holds the loaded question bank and hands out non-repeating
// random selections per domain/difficulty category.
package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"
	"sync"

	"assessment-service/internal/models"
)

// ErrNoQuestions is returned when a category has no questions or the
// domain/difficulty pair is unknown. Callers are expected to surface a
// domain-specific empty state rather than fail the assessment.
var ErrNoQuestions = errors.New("no questions available for category")

// QuestionBank is a read-only question store with per-category tracking of
// already-served indices. The used-index state is shared across all actors,
// matching the single process-wide bank the system has always run with. The
// bank is the one piece of the engine mutated concurrently by independent
// sessions, so it carries its own lock.
type QuestionBank struct {
	mu        sync.Mutex
	questions map[string][]models.Question
	used      map[string]map[int]struct{}
}

// bankFile is the on-disk layout: {"questions": {"<domain>_<difficulty>": [...]}}.
type bankFile struct {
	Questions map[string][]models.Question `json:"questions"`
}

// New builds a bank from category-keyed question lists, validating every
// record once so the rest of the engine can rely on the invariants.
func New(questions map[string][]models.Question) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, errors.New("question bank is empty")
	}

	validated := make(map[string][]models.Question, len(questions))
	for key, list := range questions {
		domain, difficulty, err := splitKey(key)
		if err != nil {
			return nil, err
		}
		stamped := make([]models.Question, len(list))
		for i, q := range list {
			if q.Domain == "" {
				q.Domain = domain
			}
			if q.Difficulty == "" {
				q.Difficulty = difficulty
			}
			if err := q.Validate(); err != nil {
				return nil, fmt.Errorf("category %s: %w", key, err)
			}
			stamped[i] = q
		}
		validated[key] = stamped
	}

	return &QuestionBank{
		questions: validated,
		used:      make(map[string]map[int]struct{}),
	}, nil
}

// Load reads the bank from a JSON file.
func Load(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions file: %w", err)
	}
	var file bankFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse questions file: %w", err)
	}
	return New(file.Questions)
}

// Select draws a uniformly random unused question for the category. Once
// every index in a category has been served, the used set is cleared and
// the full list becomes eligible again. The returned question is a deep
// copy; mutating it cannot corrupt the bank.
func (b *QuestionBank) Select(domain string, difficulty models.Difficulty) (*models.Question, error) {
	key := categoryKey(domain, difficulty)

	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.questions[key]
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, key)
	}

	used := b.used[key]
	if used == nil {
		used = make(map[int]struct{})
		b.used[key] = used
	}

	candidates := make([]int, 0, len(list))
	for i := range list {
		if _, ok := used[i]; !ok {
			candidates = append(candidates, i)
		}
	}

	// Exhausted: reset the category and start over.
	if len(candidates) == 0 {
		clear(used)
		for i := range list {
			candidates = append(candidates, i)
		}
	}

	idx := candidates[rand.IntN(len(candidates))]
	used[idx] = struct{}{}

	return list[idx].Clone(), nil
}

// DomainCounts breaks one domain's question count down by difficulty.
type DomainCounts struct {
	Total        int `json:"total"`
	Beginner     int `json:"beginner"`
	Intermediate int `json:"intermediate"`
	Advanced     int `json:"advanced"`
}

// Counts holds startup diagnostics about the loaded bank.
type Counts struct {
	Total        int                       `json:"total"`
	ByDomain     map[string]DomainCounts   `json:"by_domain"`
	ByDifficulty map[models.Difficulty]int `json:"by_difficulty"`
}

// Counts reports question totals grouped by domain and difficulty. Read-only.
func (b *QuestionBank) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts := Counts{
		ByDomain: make(map[string]DomainCounts),
		ByDifficulty: map[models.Difficulty]int{
			models.DifficultyBeginner:     0,
			models.DifficultyIntermediate: 0,
			models.DifficultyAdvanced:     0,
		},
	}

	for key, list := range b.questions {
		domain, difficulty, err := splitKey(key)
		if err != nil {
			continue
		}
		n := len(list)
		counts.Total += n
		counts.ByDifficulty[difficulty] += n

		dc := counts.ByDomain[domain]
		dc.Total += n
		switch difficulty {
		case models.DifficultyBeginner:
			dc.Beginner += n
		case models.DifficultyIntermediate:
			dc.Intermediate += n
		case models.DifficultyAdvanced:
			dc.Advanced += n
		}
		counts.ByDomain[domain] = dc
	}

	return counts
}

// Domains lists the domains present in the bank, sorted.
func (b *QuestionBank) Domains() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]struct{})
	for key := range b.questions {
		if domain, _, err := splitKey(key); err == nil {
			seen[domain] = struct{}{}
		}
	}
	domains := make([]string, 0, len(seen))
	for d := range seen {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// ResetUsed clears used-question tracking. With both arguments empty it
// resets everything; with only a domain it resets every difficulty of that
// domain; with both it resets a single category.
func (b *QuestionBank) ResetUsed(domain string, difficulty models.Difficulty) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case domain == "":
		b.used = make(map[string]map[int]struct{})
	case difficulty == "":
		for key := range b.used {
			if strings.HasPrefix(key, domain+"_") {
				delete(b.used, key)
			}
		}
	default:
		delete(b.used, categoryKey(domain, difficulty))
	}
}

func categoryKey(domain string, difficulty models.Difficulty) string {
	return domain + "_" + string(difficulty)
}

// splitKey parses "<domain>_<difficulty>". Domains may contain hyphens but
// never underscores; the difficulty is always the last segment.
func splitKey(key string) (string, models.Difficulty, error) {
	i := strings.LastIndex(key, "_")
	if i <= 0 || i == len(key)-1 {
		return "", "", fmt.Errorf("malformed category key %q", key)
	}
	domain, difficulty := key[:i], models.Difficulty(key[i+1:])
	if !difficulty.Valid() {
		return "", "", fmt.Errorf("category key %q: unknown difficulty %q", key, difficulty)
	}
	return domain, difficulty, nil
}
