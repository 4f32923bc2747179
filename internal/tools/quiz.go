package tools

const (
	SeverityLow    string = "low"
	SeverityMedium string = "medium"
	SeverityHigh   string = "high"
)

type QuizOption struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

type QuizQuestion struct {
	Id       int          `json:"id"`
	Question string       `json:"question"`
	Options  []QuizOption `json:"options"`
}

type QuizResult struct {
	TotalPoints     int      `json:"total_points"`
	Severity        string   `json:"severity"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// QuizQuestions is the seven-question debt self-assessment.
func QuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{
			Id:       1,
			Question: "Hvor mange forskellige gældsposter har du?",
			Options: []QuizOption{
				{Text: "Ingen eller 1-2 stk", Points: 0},
				{Text: "3-5 stk", Points: 2},
				{Text: "6-10 stk", Points: 4},
				{Text: "Mere end 10 stk", Points: 6},
			},
		},
		{
			Id:       2,
			Question: "Hvor stor del af din månedlige indkomst går til gældsafbetaling?",
			Options: []QuizOption{
				{Text: "Under 20%", Points: 0},
				{Text: "20-40%", Points: 2},
				{Text: "40-60%", Points: 4},
				{Text: "Over 60%", Points: 6},
			},
		},
		{
			Id:       3,
			Question: "Hvor ofte kan du kun betale minimum på dine kreditkort eller lån?",
			Options: []QuizOption{
				{Text: "Aldrig - jeg betaler altid hele saldoen", Points: 0},
				{Text: "Sjældent", Points: 1},
				{Text: "Nogle gange", Points: 3},
				{Text: "Altid eller næsten altid", Points: 5},
			},
		},
		{
			Id:       4,
			Question: "Har du overblik over din samlede gæld?",
			Options: []QuizOption{
				{Text: "Ja, jeg ved præcist hvad jeg skylder", Points: 0},
				{Text: "Jeg har nogenlunde overblik", Points: 1},
				{Text: "Jeg har kun delvist overblik", Points: 3},
				{Text: "Nej, jeg har ikke overblik", Points: 5},
			},
		},
		{
			Id:       5,
			Question: "Hvor ofte oplever du økonomisk stress?",
			Options: []QuizOption{
				{Text: "Aldrig eller meget sjældent", Points: 0},
				{Text: "En gang imellem", Points: 2},
				{Text: "Flere gange om måneden", Points: 4},
				{Text: "Dagligt eller næsten dagligt", Points: 6},
			},
		},
		{
			Id:       6,
			Question: "Har du en nødopsparing?",
			Options: []QuizOption{
				{Text: "Ja, 3+ måneder udgifter", Points: 0},
				{Text: "Ja, 1-2 måneders udgifter", Points: 1},
				{Text: "Mindre end en måneds udgifter", Points: 3},
				{Text: "Ingen nødopsparing", Points: 5},
			},
		},
		{
			Id:       7,
			Question: "Låner du penge til daglige udgifter?",
			Options: []QuizOption{
				{Text: "Aldrig", Points: 0},
				{Text: "Meget sjældent", Points: 1},
				{Text: "En gang imellem", Points: 3},
				{Text: "Ofte eller altid", Points: 6},
			},
		},
	}
}

// ScoreQuiz sums the answers and maps the total to a severity bracket:
// 0-8 low, 9-20 medium, 21+ high.
func ScoreQuiz(answers []int) QuizResult {
	total := 0
	for _, points := range answers {
		total += points
	}

	switch {
	case total <= 8:
		return QuizResult{
			TotalPoints: total,
			Severity:    SeverityLow,
			Title:       "God økonomisk kontrol",
			Description: "Du har god kontrol over din gæld og dine økonomiske forhold. Fortsæt med dine gode vaner!",
			Recommendations: []string{
				"Bevar dit overblik over gæld og udgifter",
				"Overvej at øge din opsparing hvis muligt",
				"Gennemgå dine lånerenter - kan de forhandles ned?",
				"Lav en langsigtet økonomisk plan",
			},
		}
	case total <= 20:
		return QuizResult{
			TotalPoints: total,
			Severity:    SeverityMedium,
			Title:       "Moderat gældsbelastning",
			Description: "Du har nogle udfordringer med din gæld, men det er håndterbart med de rette tiltag.",
			Recommendations: []string{
				"Lav et komplet overblik over al din gæld",
				"Prioriter gæld med højeste rente først",
				"Overvej gældskonsolidering hvis det giver mening",
				"Opret et budget og hold øje med dine udgifter",
				"Søg rådgivning hos din bank eller en økonom",
			},
		}
	default:
		return QuizResult{
			TotalPoints: total,
			Severity:    SeverityHigh,
			Title:       "Høj gældsbelastning",
			Description: "Din gældssituation kræver øjeblikkelig handling. Det er vigtigt at få professionel hjælp.",
			Recommendations: []string{
				"Kontakt din bank eller en gældsrådgiver med det samme",
				"Lav en detaljeret liste over al din gæld og indkomst",
				"Stop med at optage ny gæld",
				"Undersøg muligheder for gældssanering eller betalingsordninger",
				"Overvej at kontakte kommunens gældsrådgivning",
				"Søg støtte fra familie eller venner hvis muligt",
			},
		}
	}
}
