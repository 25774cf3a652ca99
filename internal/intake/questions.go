package intake

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/talentscout/internal/ai"
)

// minQuestionsLength is the shortest answer still treated as a question list.
const minQuestionsLength = 20

// ResolveQuestions returns the text to show the candidate for a generator
// answer. Answers that are too short or flagged as unavailable are replaced
// with ai.FallbackQuestions, and degraded is true.
func ResolveQuestions(answer string) (questions string, degraded bool) {
	answer = strings.TrimSpace(answer)
	if utf8.RuneCountInString(answer) < minQuestionsLength || ai.IsUnavailable(answer) {
		return ai.FallbackQuestions, true
	}
	return answer, false
}

func questionsReply(questions string) string {
	return questionsIntro + "\n\n" + questions + "\n\n" + questionsClosing
}
