package services

import (
	"strings"
	"unicode/utf8"

	"sakubun/models"
)

const minTranslationLength = 3

// nonsense tokens that show up when learners mash the keyboard instead of
// answering.
var gibberishTokens = []string{"asdf", "qwert", "zxcv", "hjkl", "aaaa", "test test"}

var genericImprovements = []string{
	"主語と動詞の対応を確認しましょう。",
	"時制が日本語の文と合っているか見直しましょう。",
	"冠詞（a / an / the）の使い方に注意しましょう。",
}

var genericSimilarPhrases = []string{
	"Let me rephrase that.",
	"In other words...",
}

// FallbackEvaluate grades a translation without any network access. It is
// deterministic: identical inputs always produce identical output. Used
// whenever the Gemini gateway fails or returns an unusable result.
func FallbackEvaluate(japaneseSentence, userTranslation string, difficulty models.Difficulty) models.EvaluationResult {
	reference, known := LookupReference(japaneseSentence)
	correctTranslation := reference.Translation
	similarPhrases := reference.SimilarPhrases
	if !known {
		correctTranslation = "A natural English translation of: " + japaneseSentence
		similarPhrases = genericSimilarPhrases
	}

	trimmed := strings.TrimSpace(userTranslation)
	rating := 3
	feedback := "回答を受け付けました。模範訳と比較して表現の違いを確認しましょう。"
	explanation := "現在、詳細な自動評価が利用できないため、基本的な評価を表示しています。模範訳を参考に復習してください。"
	improvements := genericImprovements

	switch {
	case trimmed == "" || utf8.RuneCountInString(trimmed) < minTranslationLength:
		rating = 1
		feedback = "回答が入力されていないか、短すぎます。もう一度英文を入力してください。"
		improvements = []string{"文全体を英語で書いてみましょう。"}
	case looksLikeGibberish(trimmed):
		rating = 2
		feedback = "入力内容が英文として認識できませんでした。意味のある英文で回答してください。"
		improvements = []string{"ヒントの単語を使って文を組み立ててみましょう。"}
	}

	return models.EvaluationResult{
		CorrectTranslation: correctTranslation,
		Feedback:           feedback,
		Rating:             rating,
		Improvements:       improvements,
		Explanation:        explanation,
		SimilarPhrases:     similarPhrases,
	}
}

// looksLikeGibberish flags repeated-rune runs and known nonsense tokens.
func looksLikeGibberish(text string) bool {
	lower := strings.ToLower(text)
	for _, token := range gibberishTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}

	var prev rune
	run := 1
	for _, r := range lower {
		if r == prev && r != ' ' {
			run++
			if run >= 5 {
				return true
			}
		} else {
			run = 1
		}
		prev = r
	}
	return false
}
