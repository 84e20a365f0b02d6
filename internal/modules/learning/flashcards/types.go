package flashcards

type generateFlashcardsDTO struct {
	MaterialID string `json:"material_id" binding:"required"`
	Count      int    `json:"count"`
}

type batchFlashcardsDTO struct {
	MaterialIDs []string `json:"material_ids" binding:"required,min=1"`
	Count       int      `json:"count"`
}

type reviewFlashcardDTO struct {
	Quality *int `json:"quality" binding:"required"`
}
