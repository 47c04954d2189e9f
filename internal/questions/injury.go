package questions

import "github.com/ppiankov/casevalue/internal/model"

func motorQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		injurySeverity(),
		medicalBills(),
		lostWages(),
		faultPercentage(),
		permanentInjury(),
		yesNo("police_report_filed", "Was a police report filed?",
			model.CategoryLiability, "Police report filed", 0.1, 0),
		yesNo("witnesses_available", "Are there witnesses?",
			model.CategoryLiability, "Witnesses available", 0.1, 0),
		insuranceCoverage(),
	}
}

func medicalQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		discoveryDate(),
		injurySeverity(),
		medicalBills(),
		lostWages(),
		permanentInjury(),
		yesNo("surgery_error", "Did the malpractice involve a surgical error?",
			model.CategoryAggravating, "Surgical error", 0.5, 25000),
		insuranceCoverage(),
	}
}

func premisesQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		choice("hazard_type", "What kind of hazard caused the injury?",
			[]string{"slip_fall", "trip_fall", "falling_object", "inadequate_security", "structural_failure", "other"},
			map[string]model.WeightEntry{
				"slip_fall":           {Category: model.CategoryLiability, Label: "Slip and fall", Weight: 0.05},
				"trip_fall":           {Category: model.CategoryLiability, Label: "Trip and fall", Weight: 0.05},
				"falling_object":      {Category: model.CategoryLiability, Label: "Falling object", Weight: 0.15},
				"inadequate_security": {Category: model.CategoryLiability, Label: "Inadequate security", Weight: 0.25},
				"structural_failure":  {Category: model.CategoryLiability, Label: "Structural failure", Weight: 0.2},
			}),
		injurySeverity(),
		medicalBills(),
		lostWages(),
		faultPercentage(),
		permanentInjury(),
		yesNo("commercial_property", "Did it happen on commercial property?",
			model.CategoryLiability, "Commercial property", 0.15, 0),
		yesNo("property_owner_warned", "Had the owner been warned about the hazard?",
			model.CategoryLiability, "Owner knew of the hazard", 0.2, 0),
		insuranceCoverage(),
	}
}

func productQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		discoveryDate(),
		{ID: "product_name", Prompt: "Which product caused the injury?", Type: model.AnswerText},
		injurySeverity(),
		medicalBills(),
		lostWages(),
		faultPercentage(),
		permanentInjury(),
		yesNo("product_recalled", "Has the product been recalled?",
			model.CategoryLiability, "Product recalled", 0.3, 0),
		insuranceCoverage(),
	}
}

func wrongfulDeathQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		// Projected lost support over a working life, discounted
		numeric("victim_annual_income", "What was the victim's annual income?",
			dollars("Victim annual income", 15)),
		numeric("num_dependents", "How many dependents did the victim support?",
			stepped(model.CategoryAggravating, "Dependents", model.UnitCount,
				model.Step{Min: 1, Weight: 0.2},
				model.Step{Min: 2, Weight: 0.4},
				model.Step{Min: 3, Weight: 0.6},
				model.Step{Min: 5, Weight: 0.8},
			)),
		{
			ID: "victim_age", Prompt: "How old was the victim?", Type: model.AnswerNumeric,
			Min: 0, Max: 125, Contribution: info("Victim age", model.UnitYears),
		},
		choice("relationship_to_victim", "What was your relationship to the victim?",
			[]string{"spouse", "child", "parent", "sibling", "other_family", "other"},
			map[string]model.WeightEntry{
				"spouse":       {Category: model.CategorySeverity, Label: "Loss of a spouse", Weight: 1.0, Amount: 150000},
				"child":        {Category: model.CategorySeverity, Label: "Loss of a parent (claimant is child)", Weight: 1.2, Amount: 150000},
				"parent":       {Category: model.CategorySeverity, Label: "Loss of a child (claimant is parent)", Weight: 0.8, Amount: 100000},
				"sibling":      {Category: model.CategorySeverity, Label: "Loss of a sibling", Weight: 0.5, Amount: 50000},
				"other_family": {Category: model.CategorySeverity, Label: "Loss of a family member", Weight: 0.3, Amount: 25000},
				"other":        {Category: model.CategorySeverity, Label: "Other relationship", Amount: 10000},
			}),
		yesNo("conscious_pain_suffering", "Did the victim experience conscious pain before death?",
			model.CategorySeverity, "Conscious pain and suffering", 1.0, 50000),
		medicalBills(),
		numeric("funeral_costs", "Funeral and burial costs", dollars("Funeral costs", 1)),
		insuranceCoverage(),
	}
}

func dogBiteQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		injurySeverity(),
		medicalBills(),
		permanentInjury(),
		yesNo("scarring", "Did the bite leave scarring?",
			model.CategorySeverity, "Scarring", 0.5, 15000),
		yesNo("child_victim", "Was the victim a child?",
			model.CategoryAggravating, "Child victim", 0.5, 0),
		yesNo("dog_prior_aggression", "Had the dog shown aggression before?",
			model.CategoryLiability, "Prior aggression known", 0.3, 0),
		yesNo("facial_injuries", "Were there facial injuries?",
			model.CategorySeverity, "Facial injuries", 0.5, 20000),
		insuranceCoverage(),
	}
}
