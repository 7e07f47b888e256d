package main

import (
	"context"
	"flag"
	"fmt"

	"sakubun/config"
	"sakubun/services"
	"sakubun/utils"
)

// One-shot grading run against the live Gemini API, for smoke-testing a
// deployment's key and prompt without the whole server.
func main() {
	configPath := flag.String("config", "./config/config.yml", "path to config file")
	sentence := flag.String("sentence", "私は毎朝7時に起きます。", "Japanese sentence to grade against")
	translation := flag.String("translation", "I get up at seven every morning.", "English translation to grade")
	difficultyFlag := flag.String("difficulty", "middle-school", "difficulty level")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	difficulty, err := utils.NormalizeDifficulty(*difficultyFlag)
	if err != nil {
		panic("invalid difficulty: " + *difficultyFlag)
	}

	ctx := context.Background()
	gemini, err := services.NewGeminiClient(ctx, cfg.Gemini.ApiKey, cfg.Gemini.Model, cfg.Practice.MaxTokens, cfg.Practice.Temperature)
	if err != nil {
		panic("failed to initialize Gemini client: " + err.Error())
	}

	evaluator := services.NewEvaluator(gemini)
	result, err := evaluator.Evaluate(ctx, *sentence, *translation, difficulty)
	if err != nil {
		panic("evaluation failed: " + err.Error())
	}

	fmt.Println("Evaluation Result:")
	fmt.Printf("  Correct translation: %s\n", result.CorrectTranslation)
	fmt.Printf("  Rating: %d/5\n", result.Rating)
	fmt.Printf("  Feedback: %s\n", result.Feedback)
	fmt.Printf("  Explanation: %s\n", result.Explanation)
	for _, improvement := range result.Improvements {
		fmt.Printf("  Improvement: %s\n", improvement)
	}
	for _, phrase := range result.SimilarPhrases {
		fmt.Printf("  Similar: %s\n", phrase)
	}
	if evaluator.FallbackCount() > 0 {
		fmt.Println("Note: the result above came from the local fallback, not Gemini.")
	}
}
