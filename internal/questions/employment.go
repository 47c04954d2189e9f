package questions

import "github.com/ppiankov/casevalue/internal/model"

func wrongfulTermQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		// Roughly six months of back pay
		numeric("annual_salary", "What was your annual salary?", dollars("Annual salary", 0.5)),
		numeric("months_unemployed", "How many months have you been unemployed?",
			stepped(model.CategoryAggravating, "Months unemployed", model.UnitMonths,
				model.Step{Min: 3, Weight: 0.2},
				model.Step{Min: 6, Weight: 0.4},
				model.Step{Min: 12, Weight: 0.7},
			)),
		numeric("lost_benefits", "Value of lost benefits", dollars("Lost benefits", 1)),
		numeric("years_employed", "How many years were you employed there?",
			stepped(model.CategoryLiability, "Years employed", model.UnitYears,
				model.Step{Min: 5, Weight: 0.1},
				model.Step{Min: 10, Weight: 0.2},
			)),
		yesNo("discrimination", "Was the termination discriminatory?",
			model.CategoryPunitive, "Discriminatory termination", 0.5, 0),
		yesNo("positive_performance_reviews", "Did you have positive performance reviews?",
			model.CategoryLiability, "Positive performance reviews", 0.2, 0),
		yesNo("position_filled", "Was your position filled by someone else?",
			model.CategoryLiability, "Position filled after termination", 0.1, 0),
		emotionalDistress(),
	}
}

func wageQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		// Unpaid amounts plus equal liquidated damages
		numeric("unpaid_wages", "Total unpaid wages", dollars("Unpaid wages (with liquidated damages)", 2)),
		numeric("unpaid_overtime", "Total unpaid overtime", dollars("Unpaid overtime (with liquidated damages)", 2)),
		numeric("months_unpaid", "Over how many months were wages unpaid?",
			info("Months unpaid", model.UnitMonths)),
		numeric("num_employees_affected", "How many employees were affected?", &model.Contribution{
			Kind:     model.ContributionLog,
			Category: model.CategoryLiability,
			Label:    "Employees affected",
			Unit:     model.UnitCount,
			Scale:    0.05,
			Cap:      0.2,
		}),
		yesNo("time_records", "Do you have time records?",
			model.CategoryLiability, "Time records available", 0.2, 0),
		yesNo("misclassified", "Were you misclassified as exempt or a contractor?",
			model.CategoryLiability, "Misclassification", 0.2, 0),
	}
}

// Workers' compensation answers carry no weights here; benefits are computed
// from the jurisdiction's benefit schedule.
func workersCompQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		{ID: "average_weekly_wage", Prompt: "What was your average weekly wage?", Type: model.AnswerNumeric},
		{ID: "weeks_off_work", Prompt: "How many weeks have you been unable to work?", Type: model.AnswerNumeric},
		{ID: "wc_medical_treatment_cost", Prompt: "Total cost of medical treatment", Type: model.AnswerNumeric},
		{
			ID: "disability_type", Prompt: "What type of disability resulted?", Type: model.AnswerChoice,
			Options: []string{"temporary_total", "temporary_partial", "permanent_partial", "permanent_total"},
		},
		{
			ID: "body_part_injured", Prompt: "Which body part was injured?", Type: model.AnswerChoice,
			Options: []string{
				"head_brain", "eyes", "ears_hearing", "neck_cervical", "shoulder", "arm_elbow",
				"hand_wrist_fingers", "back_lumbar", "hip_pelvis", "leg_knee", "foot_ankle_toes",
				"internal_organs", "skin", "respiratory", "multiple_body_parts",
			},
		},
		{ID: "future_medical_needed", Prompt: "Will you need future medical treatment?", Type: model.AnswerBoolean},
		{ID: "vocational_rehab_needed", Prompt: "Do you need vocational rehabilitation?", Type: model.AnswerBoolean},
		{ID: "can_return_same_job", Prompt: "Can you return to the same job?", Type: model.AnswerBoolean},
		{ID: "employer_has_wc_insurance", Prompt: "Does your employer carry workers' compensation insurance?", Type: model.AnswerBoolean},
	}
}
