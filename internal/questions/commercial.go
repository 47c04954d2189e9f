package questions

import "github.com/ppiankov/casevalue/internal/model"

func classActionQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		choice("class_action_type", "What kind of class action is this?",
			[]string{"consumer_fraud", "data_breach", "defective_product", "securities", "employment", "other"},
			map[string]model.WeightEntry{
				"data_breach":       {Category: model.CategoryLiability, Label: "Data breach", Weight: 0.25},
				"securities":        {Category: model.CategoryLiability, Label: "Securities", Weight: 0.25},
				"defective_product": {Category: model.CategoryLiability, Label: "Defective product", Weight: 0.2},
				"consumer_fraud":    {Category: model.CategoryLiability, Label: "Consumer fraud", Weight: 0.15},
				"employment":        {Category: model.CategoryLiability, Label: "Employment", Weight: 0.1},
			}),
		numeric("individual_damages", "Your individual damages", dollars("Individual damages", 1)),
		numeric("num_class_members", "Approximate number of class members", &model.Contribution{
			Kind:     model.ContributionLog,
			Category: model.CategoryLiability,
			Label:    "Class members",
			Unit:     model.UnitCount,
			Scale:    0.05,
			Cap:      0.25,
		}),
		numeric("duration_of_harm", "How many months did the harm last?",
			info("Duration of harm", model.UnitMonths)),
		yesNo("documented_evidence", "Is the harm documented?",
			model.CategoryLiability, "Documented evidence", 0.2, 0),
		yesNo("pattern_of_conduct", "Was there a pattern of misconduct?",
			model.CategoryPunitive, "Pattern of misconduct", 0.3, 0),
		yesNo("regulatory_violations", "Were regulations violated?",
			model.CategoryLiability, "Regulatory violations", 0.15, 0),
	}
}

func insuranceQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		choice("insurance_type", "What type of insurance policy?",
			[]string{"auto", "health", "homeowners", "disability", "life", "other"},
			map[string]model.WeightEntry{
				"disability": {Category: model.CategoryLiability, Label: "Disability policy", Weight: 0.25},
				"health":     {Category: model.CategoryLiability, Label: "Health policy", Weight: 0.2},
				"life":       {Category: model.CategoryLiability, Label: "Life policy", Weight: 0.15},
				"auto":       {Category: model.CategoryLiability, Label: "Auto policy", Weight: 0.1},
				"homeowners": {Category: model.CategoryLiability, Label: "Homeowners policy", Weight: 0.1},
			}),
		numeric("claim_amount", "Amount of the claim", dollars("Claim amount", 1)),
		numeric("policy_limits", "Policy limits", info("Policy limits", model.UnitMoney)),
		numeric("months_delayed", "How many months has payment been delayed?",
			stepped(model.CategoryAggravating, "Months delayed", model.UnitMonths,
				model.Step{Min: 6, Weight: 0.2},
				model.Step{Min: 12, Weight: 0.4},
				model.Step{Min: 24, Weight: 0.6},
			)),
		yesNo("claim_denied", "Was the claim denied?",
			model.CategoryLiability, "Claim denied", 0.1, 0),
		yesNo("multiple_denials", "Was the claim denied more than once?",
			model.CategoryPunitive, "Repeated denials", 0.5, 0),
		yesNo("written_denials", "Do you have the denials in writing?",
			model.CategoryLiability, "Written denials", 0.1, 0),
		emotionalDistress(),
	}
}

func disabilityQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		choice("policy_type", "What type of disability coverage?",
			[]string{"employer_group", "individual", "social_security", "veterans", "other"},
			map[string]model.WeightEntry{
				"individual":      {Category: model.CategoryLiability, Label: "Individual policy", Weight: 0.15},
				"social_security": {Category: model.CategoryLiability, Label: "Social Security", Weight: 0.1},
				"veterans":        {Category: model.CategoryLiability, Label: "Veterans benefits", Weight: 0.1},
				"employer_group":  {Category: model.CategoryLiability, Label: "Employer group policy", Weight: 0.05},
			}),
		// Two years of benefits
		numeric("monthly_benefit", "Monthly benefit amount", dollars("Monthly benefit", 24)),
		numeric("months_denied", "How many months have benefits been denied?",
			info("Months denied", model.UnitMonths)),
		lostWages(),
		yesNo("permanent_disability", "Is the disability permanent?",
			model.CategorySeverity, "Permanent disability", 0.5, 50000),
		yesNo("appeal_denied", "Was an appeal denied?",
			model.CategoryLiability, "Appeal denied", 0.1, 0),
		yesNo("medical_evidence", "Do you have supporting medical evidence?",
			model.CategoryLiability, "Medical evidence", 0.2, 0),
		yesNo("unable_work", "Are you unable to work?",
			model.CategorySeverity, "Unable to work", 0.5, 25000),
	}
}

func professionalQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		discoveryDate(),
		choice("professional_type", "What kind of professional?",
			[]string{"attorney", "accountant", "architect", "engineer", "financial_advisor", "real_estate_agent", "other"},
			map[string]model.WeightEntry{
				"attorney":          {Category: model.CategoryLiability, Label: "Attorney", Weight: 0.2},
				"accountant":        {Category: model.CategoryLiability, Label: "Accountant", Weight: 0.15},
				"financial_advisor": {Category: model.CategoryLiability, Label: "Financial advisor", Weight: 0.15},
				"architect":         {Category: model.CategoryLiability, Label: "Architect", Weight: 0.1},
				"engineer":          {Category: model.CategoryLiability, Label: "Engineer", Weight: 0.1},
				"real_estate_agent": {Category: model.CategoryLiability, Label: "Real estate agent", Weight: 0.05},
			}),
		numeric("financial_loss", "Financial loss caused", dollars("Financial loss", 1)),
		numeric("professional_fees_paid", "Fees paid to the professional", dollars("Fees paid", 1)),
		numeric("business_revenue_lost", "Business revenue lost", dollars("Business revenue lost", 1)),
		numeric("years_relationship", "Years of the professional relationship",
			info("Years of relationship", model.UnitYears)),
		yesNo("written_agreement", "Was there a written agreement?",
			model.CategoryLiability, "Written agreement", 0.1, 0),
		yesNo("clear_negligence", "Was the negligence clear-cut?",
			model.CategoryLiability, "Clear negligence", 0.3, 0),
	}
}

func civilRightsQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		choice("violation_type", "What kind of violation?",
			[]string{"discrimination_employment", "discrimination_housing", "discrimination_public", "police_excessive_force", "false_arrest", "free_speech", "other"},
			map[string]model.WeightEntry{
				"police_excessive_force":    {Category: model.CategorySeverity, Label: "Excessive force", Weight: 1.5, Amount: 100000},
				"false_arrest":              {Category: model.CategorySeverity, Label: "False arrest", Weight: 1.2, Amount: 50000},
				"discrimination_housing":    {Category: model.CategorySeverity, Label: "Housing discrimination", Weight: 1.0, Amount: 40000},
				"discrimination_public":     {Category: model.CategorySeverity, Label: "Public accommodation discrimination", Weight: 1.0, Amount: 40000},
				"discrimination_employment": {Category: model.CategorySeverity, Label: "Employment discrimination", Weight: 0.8, Amount: 30000},
				"free_speech":               {Category: model.CategorySeverity, Label: "Free speech violation", Weight: 0.8, Amount: 30000},
				"other":                     {Category: model.CategorySeverity, Label: "Other violation", Weight: 0.3, Amount: 15000},
			}),
		numeric("economic_damages", "Economic damages", dollars("Economic damages", 1)),
		lostWages(),
		numeric("duration_of_violation", "How many months did the violation last?",
			stepped(model.CategoryAggravating, "Duration of violation", model.UnitMonths,
				model.Step{Min: 6, Weight: 0.2},
				model.Step{Min: 12, Weight: 0.4},
				model.Step{Min: 24, Weight: 0.6},
			)),
		yesNo("government_entity", "Was a government entity responsible?",
			model.CategoryLiability, "Government defendant (immunity defenses)", -0.1, 0),
		yesNo("video_evidence", "Is there video evidence?",
			model.CategoryLiability, "Video evidence", 0.3, 0),
		yesNo("physical_injury", "Was there physical injury?",
			model.CategorySeverity, "Physical injury", 1.0, 50000),
		yesNo("pattern_of_conduct", "Was there a pattern of misconduct?",
			model.CategoryPunitive, "Pattern of misconduct", 0.5, 0),
		emotionalDistress(),
	}
}

func ipQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		choice("ip_type", "What kind of intellectual property?",
			[]string{"patent", "trademark", "copyright", "trade_secret"},
			map[string]model.WeightEntry{
				"patent":       {Category: model.CategoryLiability, Label: "Patent", Weight: 0.25},
				"trade_secret": {Category: model.CategoryLiability, Label: "Trade secret", Weight: 0.2},
				"copyright":    {Category: model.CategoryLiability, Label: "Copyright", Weight: 0.15},
				"trademark":    {Category: model.CategoryLiability, Label: "Trademark", Weight: 0.1},
			}),
		numeric("revenue_lost", "Revenue you lost", dollars("Revenue lost", 1)),
		numeric("infringer_profits", "Profits the infringer made", dollars("Infringer profits", 1)),
		numeric("years_infringement", "How many years has the infringement lasted?",
			stepped(model.CategoryLiability, "Years of infringement", model.UnitYears,
				model.Step{Min: 3, Weight: 0.1},
				model.Step{Min: 5, Weight: 0.15},
			)),
		yesNo("registered_ip", "Is the IP registered?",
			model.CategoryLiability, "Registered IP", 0.2, 0),
		// Enhanced damages up to treble
		yesNo("willful_infringement", "Was the infringement willful?",
			model.CategoryPunitive, "Willful infringement (enhanced damages)", 2.0, 0),
		yesNo("ongoing_infringement", "Is the infringement ongoing?",
			model.CategoryLiability, "Ongoing infringement", 0.1, 0),
	}
}

func lemonLawQuestions() []model.Question {
	return []model.Question{
		incidentDate(),
		{
			ID: "vehicle_type", Prompt: "What kind of vehicle?", Type: model.AnswerChoice,
			Options: []string{"car", "truck", "motorcycle", "rv", "boat"},
		},
		numeric("purchase_price", "Purchase price", dollars("Purchase price", 1)),
		numeric("repair_attempts", "How many repair attempts?",
			stepped(model.CategoryLiability, "Repair attempts", model.UnitCount,
				model.Step{Min: 2, Weight: 0.1},
				model.Step{Min: 3, Weight: 0.2},
				model.Step{Min: 4, Weight: 0.3},
			)),
		choice("defect_severity", "How serious is the defect?",
			[]string{"safety_critical", "drivetrain", "electrical", "comfort_convenience", "cosmetic"},
			map[string]model.WeightEntry{
				"safety_critical":     {Category: model.CategoryLiability, Label: "Safety-critical defect", Weight: 0.3},
				"drivetrain":          {Category: model.CategoryLiability, Label: "Drivetrain defect", Weight: 0.2},
				"electrical":          {Category: model.CategoryLiability, Label: "Electrical defect", Weight: 0.1},
				"comfort_convenience": {Category: model.CategoryLiability, Label: "Comfort defect", Weight: 0.05},
			}),
		choice("manufacturer_response", "How did the manufacturer respond?",
			[]string{"no_response", "denied", "partial_fix", "acknowledged"},
			map[string]model.WeightEntry{
				"no_response": {Category: model.CategoryLiability, Label: "No manufacturer response", Weight: 0.2},
				"denied":      {Category: model.CategoryLiability, Label: "Manufacturer denied", Weight: 0.15},
				"partial_fix": {Category: model.CategoryLiability, Label: "Partial fix only", Weight: 0.1},
			}),
	}
}
