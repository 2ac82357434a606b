package quiz

import (
	"slices"

	"quizgen/internal/question"
)

// UserAnswer records the answer submitted for one question. A zero Answer
// means the question was left unanswered.
type UserAnswer struct {
	QuestionID string          `json:"questionId"`
	Answer     question.Answer `json:"answer"`
}

// Result is the outcome of a completed session.
type Result struct {
	Score          float64             `json:"score"`
	CorrectAnswers int                 `json:"correctAnswers"`
	TotalQuestions int                 `json:"totalQuestions"`
	Answers        []UserAnswer        `json:"answers"`
	Questions      []question.Question `json:"questions"`
}

// Band classifies a score for display.
type Band string

const (
	BandExcellent Band = "excellent"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// ReviewItem pairs a question with the submitted answer and its grade.
type ReviewItem struct {
	Question question.Question
	Answer   question.Answer
	Answered bool
	Correct  bool
}

// Grade scores answers against questions. Answers are matched by question
// id; questions without an answer count as incorrect.
func Grade(questions []question.Question, answers []UserAnswer) Result {
	byID := make(map[string]question.Answer, len(answers))
	for _, answer := range answers {
		if _, exists := byID[answer.QuestionID]; !exists {
			byID[answer.QuestionID] = answer.Answer
		}
	}
	correct := 0
	for _, q := range questions {
		if IsCorrect(q, byID[q.ID]) {
			correct++
		}
	}
	result := Result{
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
		Answers:        cloneAnswers(answers),
		Questions:      question.CloneAll(questions),
	}
	if len(questions) > 0 {
		result.Score = 100 * float64(correct) / float64(len(questions))
	}
	return result
}

// Band returns the score band: 80 and above is excellent, 50 and above fair.
func (r Result) Band() Band {
	switch {
	case r.Score >= 80:
		return BandExcellent
	case r.Score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// IncorrectAnswers returns the number of questions not graded correct.
func (r Result) IncorrectAnswers() int {
	return r.TotalQuestions - r.CorrectAnswers
}

// Review lists every question in order with its submitted answer.
func (r Result) Review() []ReviewItem {
	items := make([]ReviewItem, 0, len(r.Questions))
	for _, q := range r.Questions {
		item := ReviewItem{Question: q.Clone()}
		index := slices.IndexFunc(r.Answers, func(answer UserAnswer) bool {
			return answer.QuestionID == q.ID
		})
		if index >= 0 {
			item.Answer = r.Answers[index].Answer.Clone()
			item.Answered = !item.Answer.IsZero()
		}
		item.Correct = IsCorrect(q, item.Answer)
		items = append(items, item)
	}
	return items
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	r.Answers = cloneAnswers(r.Answers)
	r.Questions = question.CloneAll(r.Questions)
	return r
}

func cloneAnswers(answers []UserAnswer) []UserAnswer {
	if answers == nil {
		return nil
	}
	out := make([]UserAnswer, len(answers))
	for i, answer := range answers {
		out[i] = UserAnswer{QuestionID: answer.QuestionID, Answer: answer.Answer.Clone()}
	}
	return out
}
