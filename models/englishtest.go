package models

// TestQuestion is a stored English placement question.
type TestQuestion struct {
	ID          string `json:"-" bson:"-"`
	Question    string `json:"question" bson:"question"`
	Correct     string `json:"correct" bson:"correct"`
	Distractor1 string `json:"distractor1,omitempty" bson:"distractor1,omitempty"`
	Distractor2 string `json:"distractor2,omitempty" bson:"distractor2,omitempty"`
	Distractor3 string `json:"distractor3,omitempty" bson:"distractor3,omitempty"`
	Quick3      string `json:"quick3,omitempty" bson:"quick3,omitempty"`
	Level6      string `json:"level6,omitempty" bson:"level6,omitempty"`
}

// Options returns the non-empty answer choices, correct answer first.
func (q TestQuestion) Options() []string {
	var out []string
	for _, o := range []string{q.Correct, q.Distractor1, q.Distractor2, q.Distractor3} {
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ClientQuestion is what the learner sees: no correct answer.
type ClientQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type Answer struct {
	QID      string `json:"qid" binding:"required"`
	Selected string `json:"selected"`
}

type GradeRequest struct {
	Answers []Answer `json:"answers"`
}

// GradeDetail is the per-question outcome of grading.
type GradeDetail struct {
	ID        string  `json:"id"`
	Question  string  `json:"question"`
	Selected  string  `json:"selected"`
	Correct   string  `json:"correct"`
	IsCorrect bool    `json:"isCorrect"`
	Quick3    *string `json:"quick3"`
	Level6    *string `json:"level6"`
}

type EstimatedLevel struct {
	Quick3 string `json:"quick3"`
	CEFR6  string `json:"cefr6"`
}

type GradeMeta struct {
	QuickSeen    map[string]int `json:"quick_seen"`
	QuickCorrect map[string]int `json:"quick_correct"`
	CEFRSeen     map[string]int `json:"cefr_seen"`
	CEFRCorrect  map[string]int `json:"cefr_correct"`
}

type GradeResult struct {
	Score          float64        `json:"score"`
	Correct        int            `json:"correct"`
	Total          int            `json:"total"`
	EstimatedLevel EstimatedLevel `json:"estimatedLevel"`
	Feedback       string         `json:"feedback"`
	Details        []GradeDetail  `json:"details"`
	Meta           GradeMeta      `json:"meta"`
}
