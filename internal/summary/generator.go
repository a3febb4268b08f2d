// Package summary turns a Results record into human-readable prose via
// Gemini. It is outside the assessment core: every call degrades to a fixed
// template when no API key is configured or generation fails.
package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"assessment-service/internal/models"
)

const (
	defaultModel       = "gemini-2.0-flash-lite"
	maxRecommendations = 5
)

type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator builds a Gemini-backed generator. An empty API key yields a
// generator that only serves the template fallbacks.
func NewGenerator(ctx context.Context, apiKey string) (*Generator, error) {
	if apiKey == "" {
		log.Println("Gemini API key not configured, using template summaries")
		return &Generator{model: defaultModel}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &Generator{client: client, model: defaultModel}, nil
}

// Summary produces a short encouraging performance summary.
func (g *Generator) Summary(ctx context.Context, results *models.Results) string {
	if g.client == nil {
		return fallbackSummary(results)
	}

	text, err := g.generate(ctx, summaryPrompt(results), 500)
	if err != nil {
		log.Printf("AI summary generation failed, using fallback: %v", err)
		return fallbackSummary(results)
	}
	return text
}

// Recommendations produces up to five actionable learning recommendations.
func (g *Generator) Recommendations(ctx context.Context, results *models.Results) []string {
	if g.client == nil {
		return fallbackRecommendations(results)
	}

	text, err := g.generate(ctx, recommendationsPrompt(results), 400)
	if err != nil {
		log.Printf("AI recommendations generation failed, using fallback: %v", err)
		return fallbackRecommendations(results)
	}

	var recommendations []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•-*"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		recommendations = append(recommendations, line)
		if len(recommendations) == maxRecommendations {
			break
		}
	}
	if len(recommendations) == 0 {
		return fallbackRecommendations(results)
	}
	return recommendations
}

func (g *Generator) generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	temperature := float32(0.7)
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", g.model)
	}
	return text, nil
}

func summaryPrompt(results *models.Results) string {
	return fmt.Sprintf(`You are a cybersecurity education expert. Provide a brief, encouraging 2-3 sentence summary of this student's assessment performance.

Domain: %s
Score: %.1f%%
Correct Answers: %d/%d
Difficulty Level: %s

Keep the tone positive and constructive. Focus on strengths and areas for growth. Be specific about the domain.`,
		domainTitle(results.Domain), results.Score, results.Correct, results.TotalQuestions, results.Difficulty)
}

func recommendationsPrompt(results *models.Results) string {
	return fmt.Sprintf(`You are a cybersecurity education expert. Provide 4-5 specific, actionable learning recommendations for a student.

Domain: %s
Score: %.1f%%
Current Level: %s

Provide practical recommendations like specific courses, certifications, hands-on labs, or resources.
Return ONLY a bulleted list, one recommendation per line, without additional explanation.`,
		domainTitle(results.Domain), results.Score, results.Difficulty)
}

func fallbackSummary(results *models.Results) string {
	domain := domainTitle(results.Domain)
	switch {
	case results.Score >= 80:
		return fmt.Sprintf("Excellent performance in %s! You've demonstrated strong understanding of the core concepts. Keep up the great work and consider advancing to more challenging material.", domain)
	case results.Score >= 60:
		return fmt.Sprintf("Good job on the %s assessment! You've shown a solid grasp of the fundamentals. Focus on areas where you struggled to strengthen your knowledge further.", domain)
	default:
		return fmt.Sprintf("Thank you for completing the %s assessment. This is a learning opportunity! Review the explanations provided and consider additional study in the areas where you found questions challenging.", domain)
	}
}

func fallbackRecommendations(results *models.Results) []string {
	domain := domainTitle(results.Domain)
	recommendations := []string{
		"Review the question explanations to understand the correct answers",
		fmt.Sprintf("Practice with hands-on labs in %s", domain),
		"Study the learning points provided after each question",
	}

	switch {
	case results.Score < 60:
		recommendations = append(recommendations,
			fmt.Sprintf("Start with foundational %s courses", domain),
			"Join study groups or forums to discuss concepts")
	case results.Score < 80:
		recommendations = append(recommendations,
			fmt.Sprintf("Pursue intermediate %s certifications", domain),
			"Work on real-world projects to apply your knowledge")
	default:
		recommendations = append(recommendations,
			fmt.Sprintf("Consider advanced %s certifications", domain),
			"Contribute to open-source security projects")
	}

	return recommendations
}

// domainTitle renders "network-security" as "Network Security".
func domainTitle(domain string) string {
	if domain == "" {
		return "Cybersecurity"
	}
	words := strings.Split(strings.ReplaceAll(domain, "-", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
