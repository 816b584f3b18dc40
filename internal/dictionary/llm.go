package dictionary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/pronounceit/internal/phonetic"
)

const (
	llmTimeout      = 30 * time.Second
	llmNotFoundWord = "NONE"
)

// ErrInvalidReply is returned when a model answers with something that is
// not an ARPAbet pronunciation.
var ErrInvalidReply = errors.New("model reply is not an ARPAbet pronunciation")

const systemPrompt = "You are a pronunciation dictionary for American English. You answer with CMU Pronouncing Dictionary (ARPAbet) transcriptions only."

func lookupPrompt(word string) string {
	return fmt.Sprintf(`Give the CMU Pronouncing Dictionary pronunciation of the English word '%s'.
Use only ARPAbet symbols separated by single spaces, with stress digits 0, 1 or 2 on vowels.
Respond with the phonemes only, nothing else. If it is not an English word, respond with %s.

Example for 'hello': HH AH0 L OW1`, word, llmNotFoundWord)
}

// parseModelReply turns a model answer into at most one pronunciation. The
// answer NONE is a lookup miss.
func parseModelReply(reply string) ([]phonetic.Pronunciation, error) {
	reply = strings.Trim(strings.TrimSpace(reply), "`\"'")

	line := ""
	for _, l := range strings.Split(reply, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if line == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrInvalidReply)
	}
	if strings.EqualFold(strings.Trim(line, "."), llmNotFoundWord) {
		return nil, nil
	}

	fields := strings.Fields(line)
	pron := make(phonetic.Pronunciation, 0, len(fields))
	for _, field := range fields {
		symbol := strings.ToUpper(strings.Trim(field, ".,;"))
		if symbol == "" {
			continue
		}
		if !phonetic.IsKnownSymbol(symbol) {
			return nil, fmt.Errorf("%w: unknown symbol %q in %q", ErrInvalidReply, field, line)
		}
		pron = append(pron, symbol)
	}
	if len(pron) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReply, line)
	}

	return []phonetic.Pronunciation{pron}, nil
}

// newBreaker opens after three consecutive failures and probes again after
// thirty seconds.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}
