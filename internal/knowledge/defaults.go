package knowledge

// Tables is the serializable form of the whole knowledge base
type Tables struct {
	Symptoms     []SymptomEntry `yaml:"symptoms"`
	Emergency    []string       `yaml:"emergency"`
	Categories   []Category     `yaml:"categories"`
	Patterns     []Pattern      `yaml:"patterns"`
	Diseases     []Disease      `yaml:"diseases"`
	Interactions []Interaction  `yaml:"interactions"`
	Metrics      []MetricRange  `yaml:"metrics"`
}

// Default returns the built-in tables. A fresh copy is returned on every call.
func Default() Tables {
	return Tables{
		Symptoms:     defaultSymptoms(),
		Emergency:    defaultEmergency(),
		Categories:   defaultCategories(),
		Patterns:     defaultPatterns(),
		Diseases:     defaultDiseases(),
		Interactions: defaultInteractions(),
		Metrics:      defaultMetrics(),
	}
}

func defaultSymptoms() []SymptomEntry {
	return []SymptomEntry{
		{Symptom: "febbre", Conditions: []string{"Influenza", "COVID-19", "Infezione batterica"}, Severity: SeverityModerate, Urgency: UrgencyWithin24h},
		{Symptom: "mal di testa", Conditions: []string{"Emicrania", "Cefalea tensiva", "Influenza"}, Severity: SeverityLow, Urgency: UrgencyRoutine},
		{Symptom: "dolore al petto", Conditions: []string{"Angina pectoris", "Infarto miocardico", "Reflusso gastroesofageo"}, Severity: SeverityHigh, Urgency: UrgencyImmediate},
		{Symptom: "difficoltà respiratorie", Conditions: []string{"Asma", "Polmonite", "COVID-19"}, Severity: SeverityHigh, Urgency: UrgencyImmediate},
		{Symptom: "nausea", Conditions: []string{"Gastroenterite", "Intossicazione alimentare", "Emicrania"}, Severity: SeverityLow, Urgency: UrgencyRoutine},
		{Symptom: "vomito", Conditions: []string{"Gastroenterite", "Intossicazione alimentare"}, Severity: SeverityModerate, Urgency: UrgencyWithin24h},
		{Symptom: "diarrea", Conditions: []string{"Gastroenterite", "Intossicazione alimentare", "Sindrome del colon irritabile"}, Severity: SeverityModerate, Urgency: UrgencyWithinWeek},
		{Symptom: "dolore addominale", Conditions: []string{"Appendicite", "Gastroenterite", "Sindrome del colon irritabile"}, Severity: SeverityModerate, Urgency: UrgencyWithin24h},
		{Symptom: "vertigini", Conditions: []string{"Ipotensione", "Labirintite", "Anemia"}, Severity: SeverityModerate, Urgency: UrgencyWithinWeek},
		{Symptom: "stanchezza", Conditions: []string{"Anemia", "Ipotiroidismo", "Influenza"}, Severity: SeverityLow, Urgency: UrgencyRoutine},
		{Symptom: "mal di gola", Conditions: []string{"Faringite", "Influenza", "Raffreddore comune"}, Severity: SeverityLow, Urgency: UrgencyRoutine},
		{Symptom: "naso che cola", Conditions: []string{"Raffreddore comune", "Rinite allergica"}, Severity: SeverityLow, Urgency: UrgencyRoutine},
		{Symptom: "eruzione cutanea", Conditions: []string{"Dermatite", "Reazione allergica", "Morbillo"}, Severity: SeverityLow, Urgency: UrgencyWithinWeek},
		{Symptom: "dolore articolare", Conditions: []string{"Artrite", "Influenza"}, Severity: SeverityLow, Urgency: UrgencyRoutine},
		{Symptom: "palpitazioni", Conditions: []string{"Aritmia", "Ansia", "Ipertiroidismo"}, Severity: SeverityModerate, Urgency: UrgencyWithin24h},
		{Symptom: "confusione", Conditions: []string{"Ictus", "Disidratazione", "Ipoglicemia"}, Severity: SeverityHigh, Urgency: UrgencyImmediate},
		{Symptom: "perdita di peso", Conditions: []string{"Diabete mellito", "Ipertiroidismo"}, Severity: SeverityModerate, Urgency: UrgencyWithinWeek},
		{Symptom: "sete eccessiva", Conditions: []string{"Diabete mellito", "Disidratazione"}, Severity: SeverityModerate, Urgency: UrgencyWithinWeek},
		{Symptom: "minzione frequente", Conditions: []string{"Diabete mellito", "Infezione urinaria"}, Severity: SeverityLow, Urgency: UrgencyWithinWeek},
		{Symptom: "bruciore urinario", Conditions: []string{"Infezione urinaria"}, Severity: SeverityModerate, Urgency: UrgencyWithinWeek},
		{Symptom: "dolore lombare", Conditions: []string{"Lombalgia", "Calcoli renali"}, Severity: SeverityLow, Urgency: UrgencyRoutine},
	}
}

func defaultEmergency() []string {
	return []string{
		"dolore al petto intenso",
		"difficoltà respiratorie gravi",
		"perdita di coscienza",
		"svenimento",
		"convulsioni",
		"sanguinamento abbondante",
		"paralisi",
		"difficoltà a parlare",
		"reazione allergica grave",
		"pensieri suicidi",
	}
}

func defaultCategories() []Category {
	return []Category{
		{Name: "respiratorio", Symptoms: []string{"difficoltà respiratorie", "mal di gola", "naso che cola", "tosse"}},
		{Name: "cardiovascolare", Symptoms: []string{"dolore al petto", "palpitazioni", "vertigini"}},
		{Name: "gastrointestinale", Symptoms: []string{"nausea", "vomito", "diarrea", "dolore addominale"}},
		{Name: "neurologico", Symptoms: []string{"mal di testa", "vertigini", "confusione"}},
		{Name: "generale", Symptoms: []string{"febbre", "stanchezza", "perdita di peso", "sete eccessiva"}},
		{Name: "urinario", Symptoms: []string{"minzione frequente", "bruciore urinario"}},
		{Name: "muscoloscheletrico", Symptoms: []string{"dolore articolare", "dolore lombare"}},
		{Name: "dermatologico", Symptoms: []string{"eruzione cutanea"}},
	}
}

func defaultPatterns() []Pattern {
	return []Pattern{
		{Name: "sindrome influenzale", Symptoms: []string{"febbre", "mal di testa", "stanchezza", "dolore articolare", "mal di gola"}, Condition: "Influenza"},
		{Name: "gastroenterite acuta", Symptoms: []string{"nausea", "vomito", "diarrea", "dolore addominale"}, Condition: "Gastroenterite"},
		{Name: "quadro cardiaco", Symptoms: []string{"dolore al petto", "palpitazioni", "difficoltà respiratorie", "vertigini"}, Condition: "Sindrome coronarica"},
		{Name: "quadro metabolico", Symptoms: []string{"sete eccessiva", "minzione frequente", "perdita di peso", "stanchezza"}, Condition: "Diabete mellito"},
		{Name: "infezione delle vie urinarie", Symptoms: []string{"bruciore urinario", "minzione frequente", "dolore lombare", "febbre"}, Condition: "Infezione urinaria"},
	}
}

func defaultDiseases() []Disease {
	return []Disease{
		{
			Name:        "Influenza",
			Category:    "infettiva",
			Description: "Seasonal viral infection of the respiratory tract",
			Symptoms:    []string{"febbre", "mal di testa", "stanchezza", "dolore articolare", "mal di gola", "tosse"},
			Treatments: []Treatment{
				{Name: "rest", Type: TreatmentSupportive},
				{Name: "hydration", Type: TreatmentSupportive},
				{Name: "paracetamol", Type: TreatmentMedication},
			},
		},
		{
			Name:        "COVID-19",
			Category:    "infettiva",
			Description: "SARS-CoV-2 respiratory infection",
			Symptoms:    []string{"febbre", "tosse", "difficoltà respiratorie", "stanchezza", "perdita del gusto"},
			Treatments: []Treatment{
				{Name: "home isolation", Type: TreatmentLifestyle},
				{Name: "oxygen saturation monitoring", Type: TreatmentSupportive},
				{Name: "paracetamol", Type: TreatmentMedication},
			},
		},
		{
			Name:        "Raffreddore comune",
			Category:    "infettiva",
			Description: "Mild viral infection of the upper airways",
			Symptoms:    []string{"naso che cola", "mal di gola", "tosse", "starnuti"},
			Treatments: []Treatment{
				{Name: "rest", Type: TreatmentSupportive},
				{Name: "saline nasal spray", Type: TreatmentSupportive},
			},
		},
		{
			Name:        "Gastroenterite",
			Category:    "gastrointestinale",
			Description: "Inflammation of the stomach and intestine, usually infectious",
			Symptoms:    []string{"nausea", "vomito", "diarrea", "dolore addominale", "febbre"},
			Treatments: []Treatment{
				{Name: "oral rehydration", Type: TreatmentSupportive},
				{Name: "light diet", Type: TreatmentLifestyle},
			},
		},
		{
			Name:        "Emicrania",
			Category:    "neurologica",
			Description: "Recurrent moderate to severe headache",
			Symptoms:    []string{"mal di testa", "nausea", "sensibilità alla luce"},
			Treatments: []Treatment{
				{Name: "rest in a dark room", Type: TreatmentLifestyle},
				{Name: "NSAIDs", Type: TreatmentMedication},
				{Name: "triptans", Type: TreatmentMedication},
			},
		},
		{
			Name:        "Polmonite",
			Category:    "respiratoria",
			Description: "Infection that inflames the air sacs of the lungs",
			Symptoms:    []string{"febbre", "tosse", "difficoltà respiratorie", "dolore al petto"},
			Treatments: []Treatment{
				{Name: "antibiotics", Type: TreatmentMedication},
				{Name: "rest", Type: TreatmentSupportive},
				{Name: "hydration", Type: TreatmentSupportive},
			},
		},
		{
			Name:        "Angina pectoris",
			Category:    "cardiovascolare",
			Description: "Chest pain caused by reduced blood flow to the heart",
			Symptoms:    []string{"dolore al petto", "difficoltà respiratorie", "stanchezza"},
			Treatments: []Treatment{
				{Name: "nitrates", Type: TreatmentMedication},
				{Name: "cardiology follow-up", Type: TreatmentSupportive},
				{Name: "smoking cessation", Type: TreatmentLifestyle},
			},
		},
		{
			Name:        "Diabete mellito",
			Category:    "metabolica",
			Description: "Chronic high blood glucose",
			Symptoms:    []string{"sete eccessiva", "minzione frequente", "perdita di peso", "stanchezza"},
			Treatments: []Treatment{
				{Name: "metformin", Type: TreatmentMedication},
				{Name: "diet control", Type: TreatmentLifestyle},
				{Name: "regular exercise", Type: TreatmentLifestyle},
			},
		},
		{
			Name:        "Infezione urinaria",
			Category:    "urologica",
			Description: "Bacterial infection of the urinary tract",
			Symptoms:    []string{"bruciore urinario", "minzione frequente", "dolore addominale"},
			Treatments: []Treatment{
				{Name: "antibiotics", Type: TreatmentMedication},
				{Name: "increased fluid intake", Type: TreatmentSupportive},
			},
		},
		{
			Name:        "Ipertensione",
			Category:    "cardiovascolare",
			Description: "Persistently elevated arterial blood pressure",
			Symptoms:    []string{"mal di testa", "vertigini", "palpitazioni"},
			Treatments: []Treatment{
				{Name: "ACE inhibitors", Type: TreatmentMedication},
				{Name: "low-sodium diet", Type: TreatmentLifestyle},
				{Name: "regular exercise", Type: TreatmentLifestyle},
			},
		},
	}
}

// Interaction rows are entered in both directions because lookups are directional.
func defaultInteractions() []Interaction {
	pairs := []Interaction{
		{DrugA: "warfarin", DrugB: "aspirina", Severity: SeverityHigh, Description: "increased bleeding risk"},
		{DrugA: "warfarin", DrugB: "ibuprofene", Severity: SeverityHigh, Description: "increased bleeding risk and gastric damage"},
		{DrugA: "aspirina", DrugB: "ibuprofene", Severity: SeverityModerate, Description: "reduced antiplatelet effect of aspirin"},
		{DrugA: "lisinopril", DrugB: "ibuprofene", Severity: SeverityModerate, Description: "reduced antihypertensive effect and kidney strain"},
		{DrugA: "sertralina", DrugB: "tramadolo", Severity: SeverityHigh, Description: "risk of serotonin syndrome"},
		{DrugA: "simvastatina", DrugB: "claritromicina", Severity: SeverityHigh, Description: "raised statin levels and risk of myopathy"},
		{DrugA: "metformina", DrugB: "prednisone", Severity: SeverityModerate, Description: "corticosteroids raise blood glucose"},
		{DrugA: "warfarin", DrugB: "ginkgo", Severity: SeverityHigh, Description: "increased bleeding risk"},
		{DrugA: "aspirina", DrugB: "ginkgo", Severity: SeverityModerate, Description: "additive antiplatelet effect"},
		{DrugA: "sertralina", DrugB: "iperico", Severity: SeverityHigh, Description: "risk of serotonin syndrome"},
		{DrugA: "warfarin", DrugB: "iperico", Severity: SeverityModerate, Description: "reduced anticoagulant effect"},
	}

	out := make([]Interaction, 0, len(pairs)*2)
	for _, p := range pairs {
		out = append(out, p, Interaction{DrugA: p.DrugB, DrugB: p.DrugA, Severity: p.Severity, Description: p.Description})
	}
	return out
}

func defaultMetrics() []MetricRange {
	return []MetricRange{
		{Metric: "temperature", Unit: "°C", Ranges: map[string]Range{GroupAll: {Min: 36.1, Max: 37.2}}},
		{Metric: "heart_rate", Unit: "bpm", Ranges: map[string]Range{GroupAdult: {Min: 60, Max: 100}, GroupElderly: {Min: 60, Max: 100}}},
		{Metric: "systolic_pressure", Unit: "mmHg", Ranges: map[string]Range{GroupAdult: {Min: 90, Max: 120}, GroupElderly: {Min: 90, Max: 140}}},
		{Metric: "diastolic_pressure", Unit: "mmHg", Ranges: map[string]Range{GroupAdult: {Min: 60, Max: 80}, GroupElderly: {Min: 60, Max: 90}}},
		{Metric: "blood_glucose", Unit: "mg/dL", Ranges: map[string]Range{GroupAdult: {Min: 70, Max: 100}, GroupElderly: {Min: 70, Max: 110}}},
		{Metric: "oxygen_saturation", Unit: "%", Ranges: map[string]Range{GroupAdult: {Min: 95, Max: 100}, GroupElderly: {Min: 93, Max: 100}}},
		{Metric: "respiratory_rate", Unit: "breaths/min", Ranges: map[string]Range{GroupAdult: {Min: 12, Max: 20}, GroupElderly: {Min: 12, Max: 20}}},
		{Metric: "bmi", Unit: "kg/m²", Ranges: map[string]Range{GroupAdult: {Min: 18.5, Max: 24.9}, GroupElderly: {Min: 22, Max: 27}}},
	}
}
