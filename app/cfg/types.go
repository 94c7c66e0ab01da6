package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Calendar feed configuration
	CalendarURL  string
	FetchTimeout int

	// Application configuration
	Port              string
	BaseUrl           string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
