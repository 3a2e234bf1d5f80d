package storage

import "time"

// Note is a single note/task row.
type Note struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Priority        int        `json:"priority"`
	Labels          []string   `json:"labels"`
	Deadline        *time.Time `json:"deadline"`
	ReminderMinutes int        `json:"reminder_minutes"`
	Done            bool       `json:"done"`
	StateID         *int64     `json:"state_id"`
	Order           int        `json:"order"`
	Section         string     `json:"section"`
}

// NewNote holds the fields for creating a note. Zero values are the defaults.
type NewNote struct {
	Title           string
	Content         string
	Priority        int
	Labels          []string
	Deadline        *time.Time
	ReminderMinutes int
	Done            bool
	StateID         *int64
	Order           int
}

// NotePatch is a partial note update. Nil fields are left untouched.
type NotePatch struct {
	Title           *string
	Content         *string
	Priority        *int
	Labels          *[]string
	Deadline        *time.Time
	ReminderMinutes *int
	Done            *bool
	StateID         *int64
	Order           *int
}

// State is a kanban column.
type State struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewState holds the fields for creating a state.
type NewState struct {
	Name     string
	Position int
	Color    *string
}

// StatePatch is a partial state update. Nil fields are left untouched.
type StatePatch struct {
	Name     *string
	Position *int
	Color    *string
}

// Names of the seeded states, also used by the state sweep.
const (
	StateToDo       = "To Do"
	StateInProgress = "In Progress"
	StateDone       = "Done"
)

// DefaultStates returns the columns seeded into a fresh store.
func DefaultStates() []NewState {
	color := func(c string) *string { return &c }
	return []NewState{
		{Name: StateToDo, Position: 0, Color: color("#75715E")},
		{Name: StateInProgress, Position: 1, Color: color("#66D9EF")},
		{Name: StateDone, Position: 2, Color: color("#A6E22E")},
	}
}

// BulkResult reports per-item outcomes of a batch mutation.
type BulkResult struct {
	Successful int
	Failed     int
	Errors     []string
}

// SearchStrategy names the path that answered a search.
type SearchStrategy string

const (
	SearchAll       SearchStrategy = "all"
	SearchFullText  SearchStrategy = "fulltext"
	SearchSubstring SearchStrategy = "substring"
	SearchFallback  SearchStrategy = "fallback"
)

// SearchQuery is a paginated free-text search.
type SearchQuery struct {
	Query  string
	Limit  int
	Offset int
}
