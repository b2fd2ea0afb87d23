package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/trote/internal/plan"
)

// ErrMaxRetriesExceeded is returned when every generated plan failed validation.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded, generated plan still invalid")

const generatorSystemPrompt = `You are a running coach who writes structured training plans.
Respond ONLY with valid JSON (no markdown, no explanation) using this schema:
{
  "path": "string",
  "name": "string",
  "coach": "string",
  "nivel": "beginner" | "intermediate" | "advanced",
  "duration": <weeks>,
  "volume": "string, e.g. 30-40 km",
  "dailyWorkouts": [
    {
      "note": "optional string",
      "activities": [
        {
          "type": "recovery" | "easy" | "long" | "threshold" | "interval" | "repetition" | "marathon" | "race" | "walk" | "off",
          "distance": <number>,
          "units": "km" | "min",
          "workouts": [
            {"name": "string", "series": [{"sets": "6x", "work": "1000m", "rest": "2min"}]}
          ]
        }
      ]
    }
  ]
}

Rules:
- dailyWorkouts has exactly one entry per day, 7 per week, starting on a Monday.
- Rest days have a single activity with type "off".
- Simple activities use distance and units; interval sessions use workouts instead.
- Work and rest amounts use m, km, min or s, e.g. "400m", "3min", "90s".`

const generatorPromptTemplate = `Write a %d week plan.
Goal: %s
Level: %s
Training days per week: %d
%s
Use "%s" as the path.`

// GenerateRequest describes the plan a runner asks for.
type GenerateRequest struct {
	Path         string
	Goal         string
	Level        string
	Weeks        int
	RunDays      int
	BaseTime     string // optional recent race time, HH:MM:SS
	BaseDistance string
}

// PlanGenerator asks an LLM for a training plan and validates it, feeding
// validation errors back to the model until it produces a usable plan.
type PlanGenerator struct {
	client     Client
	maxRetries int
}

// NewPlanGenerator creates a generator that retries twice on invalid output.
func NewPlanGenerator(client Client) *PlanGenerator {
	return &PlanGenerator{client: client, maxRetries: 2}
}

// Generate returns a validated plan for req.
func (g *PlanGenerator) Generate(ctx context.Context, req GenerateRequest) (*plan.Plan, error) {
	if strings.TrimSpace(req.Path) == "" {
		return nil, plan.ErrEmptyPath
	}
	if req.Weeks <= 0 {
		return nil, errors.New("weeks must be positive")
	}
	if req.RunDays <= 0 || req.RunDays > plan.DaysPerWeek {
		return nil, errors.New("training days per week must be between 1 and 7")
	}

	messages := buildGenerateMessages(req)
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		var doc plan.Document
		if err := g.client.ChatJSON(ctx, messages, &doc); err != nil {
			return nil, fmt.Errorf("generating plan (attempt %d): %w", attempt+1, err)
		}
		doc.Path = req.Path

		p, problems := validateGenerated(doc, req)
		if len(problems) == 0 {
			return p, nil
		}

		if attempt < g.maxRetries {
			reply, _ := json.Marshal(doc)
			messages = append(messages,
				Message{Role: RoleAssistant, Content: string(reply)},
				Message{Role: RoleUser, Content: formatProblems(problems)},
			)
		}
	}
	return nil, ErrMaxRetriesExceeded
}

func buildGenerateMessages(req GenerateRequest) []Message {
	level := req.Level
	if level == "" {
		level = "intermediate"
	}
	var recent string
	if req.BaseTime != "" && req.BaseDistance != "" {
		recent = fmt.Sprintf("Recent race: %s in %s", req.BaseDistance, req.BaseTime)
	}
	return []Message{
		{Role: RoleSystem, Content: generatorSystemPrompt},
		{Role: RoleUser, Content: fmt.Sprintf(generatorPromptTemplate, req.Weeks, req.Goal, level, req.RunDays, recent, req.Path)},
	}
}

// validateGenerated decodes the document and checks it against the request.
func validateGenerated(doc plan.Document, req GenerateRequest) (*plan.Plan, []string) {
	p, err := doc.Plan()
	if err != nil {
		return nil, []string{err.Error()}
	}

	var problems []string
	if want := req.Weeks * plan.DaysPerWeek; len(p.Days) != want {
		problems = append(problems, fmt.Sprintf("dailyWorkouts has %d days, expected %d", len(p.Days), want))
	}
	for i := 0; i < p.Weeks(); i++ {
		end := min((i+1)*plan.DaysPerWeek, len(p.Days))
		training := 0
		for _, d := range p.Days[i*plan.DaysPerWeek : end] {
			if !d.IsRest() {
				training++
			}
		}
		if training > req.RunDays {
			problems = append(problems, fmt.Sprintf("week %d has %d training days, at most %d allowed", i+1, training, req.RunDays))
		}
	}
	p.Duration = req.Weeks
	return p, problems
}

func formatProblems(problems []string) string {
	var sb strings.Builder
	sb.WriteString("Your plan had these errors:\n")
	for _, p := range problems {
		fmt.Fprintf(&sb, "- %s\n", p)
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}
