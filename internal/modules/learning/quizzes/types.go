package quizzes

type generateQuizDTO struct {
	MaterialID string `json:"material_id" binding:"required"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"question_count"`
}

type submitQuizDTO struct {
	Answers []submittedAnswer `json:"answers" binding:"required,min=1"`
}

type submittedAnswer struct {
	QuestionID string `json:"question_id" binding:"required"`
	Value      string `json:"value"`
}
