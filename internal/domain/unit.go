package domain

import "math"

// DefaultLessonMin is used when the catalog carries no time estimate.
const DefaultLessonMin = 45

// Complexity describes how demanding a course is.
type Complexity struct {
	Level      CourseLevel
	Category   CourseCategory
	Multiplier float64
}

var levelMultipliers = map[CourseLevel]float64{
	LevelBeginner:     0.9,
	LevelIntermediate: 1.0,
	LevelAdvanced:     1.2,
}

var categoryBonuses = map[CourseCategory]float64{
	CategoryTechnical:   0.15,
	CategoryDataScience: 0.15,
	CategoryConceptual:  0.10,
	CategoryLeadership:  0.10,
	CategoryPractical:   0.12,
	CategoryCreativity:  0.12,
	CategoryTheoretical: 0.20,
}

// NewComplexity builds a Complexity, defaulting empty values to
// intermediate/practical.
func NewComplexity(level CourseLevel, category CourseCategory) Complexity {
	if level == "" {
		level = LevelIntermediate
	}
	if category == "" {
		category = CategoryPractical
	}
	lm, ok := levelMultipliers[level]
	if !ok {
		lm = 1.0
	}
	cb, ok := categoryBonuses[category]
	if !ok {
		cb = 0.10
	}
	m := math.Round(lm*(1.0+cb)*1000) / 1000
	return Complexity{Level: level, Category: category, Multiplier: m}
}

// SchedulableUnit is one lesson eligible for placement into a session.
type SchedulableUnit struct {
	LessonID     string
	LessonTitle  string
	CourseID     string
	CourseTitle  string
	ModuleID     string
	ModuleIndex  int
	LessonIndex  int
	EstimatedMin int
	Complexity   Complexity
}
