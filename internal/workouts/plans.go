// Package workouts holds the static workout plan content served by the
// read-only plan endpoints. Data, not logic; edits here never touch the
// analysis pipeline.
package workouts

type Exercise struct {
	Name string `json:"name"`
	Sets string `json:"sets"`
	Reps string `json:"reps"`
}

type Day struct {
	DayNumber int        `json:"dayNumber"`
	Title     string     `json:"title"`
	IsRest    bool       `json:"isRest"`
	Exercises []Exercise `json:"exercises"`
}

type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Goal        string   `json:"goal"`
	DaysPerWeek int      `json:"daysPerWeek"`
	RepRange    string   `json:"repRange"`
	Rest        string   `json:"rest"`
	Days        []Day    `json:"days"`
	Notes       []string `json:"notes,omitempty"`
}

// Plans returns every published plan in display order.
func Plans() []Plan {
	return allPlans
}

// Find returns the plan with the given id, or false.
func Find(id string) (Plan, bool) {
	for _, plan := range allPlans {
		if plan.ID == id {
			return plan, true
		}
	}
	return Plan{}, false
}

var allPlans = []Plan{
	{
		ID:          "5-day-muscle",
		Name:        "5-Day Muscle Building",
		Goal:        "Maximum muscle growth",
		DaysPerWeek: 5,
		RepRange:    "8-15 reps",
		Rest:        "60-90 seconds between sets",
		Days: []Day{
			{
				DayNumber: 1,
				Title:     "Upper Push",
				Exercises: []Exercise{
					{Name: "Flat Bench Press (DB/BB)", Sets: "3-4", Reps: "8-12"},
					{Name: "Incline DB Press", Sets: "3", Reps: "10-12"},
					{Name: "Overhead DB Press", Sets: "3", Reps: "10-12"},
					{Name: "Band Lateral Raises", Sets: "3", Reps: "12-15"},
					{Name: "Band Tricep Pushdowns", Sets: "3", Reps: "12-15"},
					{Name: "Band Chest Flyes", Sets: "2-3", Reps: "12-15"},
				},
			},
			{
				DayNumber: 2,
				Title:     "Lower Body",
				Exercises: []Exercise{
					{Name: "DB Romanian Deadlifts", Sets: "3-4", Reps: "10-12"},
					{Name: "DB Goblet Squats / Split Squats", Sets: "3-4", Reps: "10-12"},
					{Name: "Leg Curls", Sets: "3-4", Reps: "10-15"},
					{Name: "DB Walking Lunges", Sets: "3", Reps: "12 steps/leg"},
					{Name: "Standing Calf Raises", Sets: "4", Reps: "12-20"},
				},
			},
			{
				DayNumber: 3,
				Title:     "Upper Pull",
				Exercises: []Exercise{
					{Name: "DB Rows", Sets: "4", Reps: "8-12/arm"},
					{Name: "Band Face Pulls", Sets: "3", Reps: "15-20"},
					{Name: "DB Pullovers", Sets: "3", Reps: "10-12"},
					{Name: "Band Lat Pulldowns", Sets: "3", Reps: "12-15"},
					{Name: "DB Shrugs", Sets: "3", Reps: "12-15"},
					{Name: "DB Bicep Curls", Sets: "3", Reps: "10-12"},
				},
			},
			{DayNumber: 4, Title: "Rest", IsRest: true},
			{
				DayNumber: 5,
				Title:     "Lower Body (Volume)",
				Exercises: []Exercise{
					{Name: "Bulgarian Split Squats", Sets: "3", Reps: "10-12/leg"},
					{Name: "DB Sumo Squats", Sets: "3", Reps: "12-15"},
					{Name: "Band Good Mornings", Sets: "3", Reps: "12-15"},
					{Name: "Seated Calf Raises", Sets: "4", Reps: "15-20"},
				},
			},
			{
				DayNumber: 6,
				Title:     "Full Upper",
				Exercises: []Exercise{
					{Name: "DB Bench Press", Sets: "3", Reps: "8-12"},
					{Name: "DB Rows", Sets: "3", Reps: "8-12"},
					{Name: "Arnold Press", Sets: "3", Reps: "10-12"},
					{Name: "Band Curls + Pushdowns (superset)", Sets: "3", Reps: "12-15"},
				},
			},
			{DayNumber: 7, Title: "Rest", IsRest: true},
		},
		Notes: []string{
			"Add weight or reps every week (progressive overload).",
			"Protein at every meal; eat in a small surplus on training days.",
		},
	},
	{
		ID:          "3-day-full-body",
		Name:        "3-Day Full Body",
		Goal:        "Strength and recomposition on a tight schedule",
		DaysPerWeek: 3,
		RepRange:    "5-12 reps",
		Rest:        "90-120 seconds between sets",
		Days: []Day{
			{
				DayNumber: 1,
				Title:     "Full Body A",
				Exercises: []Exercise{
					{Name: "Goblet Squats", Sets: "4", Reps: "6-10"},
					{Name: "DB Bench Press", Sets: "4", Reps: "6-10"},
					{Name: "DB Rows", Sets: "4", Reps: "8-12"},
					{Name: "Plank", Sets: "3", Reps: "45-60s"},
				},
			},
			{DayNumber: 2, Title: "Rest", IsRest: true},
			{
				DayNumber: 3,
				Title:     "Full Body B",
				Exercises: []Exercise{
					{Name: "DB Romanian Deadlifts", Sets: "4", Reps: "8-10"},
					{Name: "Overhead DB Press", Sets: "4", Reps: "8-10"},
					{Name: "Band Lat Pulldowns", Sets: "3", Reps: "10-15"},
					{Name: "DB Walking Lunges", Sets: "3", Reps: "10 steps/leg"},
				},
			},
			{DayNumber: 4, Title: "Rest", IsRest: true},
			{
				DayNumber: 5,
				Title:     "Full Body C",
				Exercises: []Exercise{
					{Name: "DB Split Squats", Sets: "3", Reps: "8-12/leg"},
					{Name: "Incline DB Press", Sets: "3", Reps: "8-12"},
					{Name: "Band Face Pulls", Sets: "3", Reps: "15-20"},
					{Name: "Standing Calf Raises", Sets: "4", Reps: "12-20"},
				},
			},
			{DayNumber: 6, Title: "Rest", IsRest: true},
			{DayNumber: 7, Title: "Rest", IsRest: true},
		},
		Notes: []string{
			"Alternate A/B/C across the week with at least one rest day between sessions.",
		},
	},
	{
		ID:          "4-day-upper-lower",
		Name:        "4-Day Upper/Lower",
		Goal:        "Balanced hypertrophy and strength",
		DaysPerWeek: 4,
		RepRange:    "6-15 reps",
		Rest:        "60-120 seconds between sets",
		Days: []Day{
			{
				DayNumber: 1,
				Title:     "Upper (Strength)",
				Exercises: []Exercise{
					{Name: "DB Bench Press", Sets: "4", Reps: "6-8"},
					{Name: "DB Rows", Sets: "4", Reps: "6-8"},
					{Name: "Overhead DB Press", Sets: "3", Reps: "8-10"},
					{Name: "Band Curls", Sets: "3", Reps: "10-12"},
				},
			},
			{
				DayNumber: 2,
				Title:     "Lower (Strength)",
				Exercises: []Exercise{
					{Name: "Goblet Squats", Sets: "4", Reps: "6-8"},
					{Name: "DB Romanian Deadlifts", Sets: "4", Reps: "8-10"},
					{Name: "DB Step-Ups", Sets: "3", Reps: "10/leg"},
					{Name: "Standing Calf Raises", Sets: "4", Reps: "12-15"},
				},
			},
			{DayNumber: 3, Title: "Rest", IsRest: true},
			{
				DayNumber: 4,
				Title:     "Upper (Volume)",
				Exercises: []Exercise{
					{Name: "Incline DB Press", Sets: "3", Reps: "10-15"},
					{Name: "Band Lat Pulldowns", Sets: "3", Reps: "12-15"},
					{Name: "Band Lateral Raises", Sets: "3", Reps: "15-20"},
					{Name: "Band Tricep Pushdowns", Sets: "3", Reps: "12-15"},
				},
			},
			{
				DayNumber: 5,
				Title:     "Lower (Volume)",
				Exercises: []Exercise{
					{Name: "Bulgarian Split Squats", Sets: "3", Reps: "10-12/leg"},
					{Name: "Leg Curls", Sets: "3", Reps: "12-15"},
					{Name: "DB Sumo Squats", Sets: "3", Reps: "12-15"},
					{Name: "Seated Calf Raises", Sets: "4", Reps: "15-20"},
				},
			},
			{DayNumber: 6, Title: "Rest", IsRest: true},
			{DayNumber: 7, Title: "Rest", IsRest: true},
		},
	},
}
