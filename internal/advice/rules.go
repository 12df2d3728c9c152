package advice

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/domain"
)

var conditionAdvice = map[domain.Condition]string{
	domain.Diabetes:             "Check HbA1c every 3 to 6 months and schedule a yearly eye and foot exam",
	domain.Hypertension:         "Monitor blood pressure weekly and keep sodium under 2,300 mg per day",
	domain.HeartDisease:         "Follow your cardiac care plan and review lipid levels at least yearly",
	domain.Asthma:               "Keep an up to date asthma action plan and review inhaler technique with your clinician",
	domain.Arthritis:            "Aim for 150 minutes of low-impact activity per week to protect joint mobility",
	domain.Cancer:               "Keep all oncology follow-up and survivorship screening appointments",
	domain.ChronicKidneyDisease: "Have kidney function (eGFR and urine albumin) checked at least yearly",
	domain.COPD:                 "Ask about pulmonary rehabilitation and keep influenza and pneumococcal vaccines current",
	domain.Depression:           "Schedule regular mental health check-ins and keep treatment consistent",
	domain.Obesity:              "Set a target of 5 to 10 percent weight loss with a dietitian-guided plan",
}

var familyAdvice = map[domain.Condition]string{
	domain.Diabetes:     "Screen fasting glucose or HbA1c every 3 years given family history of diabetes",
	domain.Hypertension: "Check blood pressure at least yearly given family history of hypertension",
	domain.HeartDisease: "Discuss cholesterol screening and cardiovascular risk scoring given family history of heart disease",
	domain.Cancer:       "Ask your doctor whether earlier cancer screening is appropriate given family history",
	domain.Obesity:      "Track weight and waist circumference yearly given family history of obesity",
}

// RuleBased derives deterministic advice from the profile
type RuleBased struct{}

func (RuleBased) Recommend(_ context.Context, profile domain.Profile, result *domain.PredictionResult) ([]string, error) {
	var recs []string

	for _, c := range profile.ChronicConditions.Conditions() {
		recs = append(recs, conditionAdvice[c])
	}
	for _, c := range profile.FamilyHistory.Conditions() {
		if profile.ChronicConditions.Has(c) {
			continue
		}
		if advice, ok := familyAdvice[c]; ok {
			recs = append(recs, advice)
		} else {
			recs = append(recs, fmt.Sprintf("Mention your family history of %s at your next check-up", c.Label()))
		}
	}

	switch {
	case profile.LifestyleScore <= 3:
		recs = append(recs, "Start with 20 minutes of walking on 3 days a week and add one portion of fruit or vegetables daily")
	case profile.LifestyleScore <= 6:
		recs = append(recs, "Work toward 5 exercise days a week, 5 portions of fruit and vegetables a day and 7 to 9 hours of sleep")
	case profile.LifestyleScore < domain.MaxLifestyleScore:
		recs = append(recs, "Keep up your healthy habits; small gains in sleep or activity lower expected costs further")
	}

	if !profile.HasInsurance {
		recs = append(recs, "Compare health insurance options; coverage lowers the expected annual cost in this model")
	}

	if profile.Age >= 50 {
		recs = append(recs, "Keep age-appropriate screenings current, including colorectal cancer screening")
	}

	if len(recs) == 0 {
		recs = append(recs, "Maintain yearly preventive check-ups")
	}
	return recs, nil
}
