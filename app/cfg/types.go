package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port              string
	BaseUrl           string
	TopicsFile        string
	WorkerCount       int
	SchedulerInterval int
	SessionTTL        int
	ScrollThreshold   float64
	SearchDebounceMs  int

	// Upstream headline API
	HeadlinesEndpoint string
	HeadlinesAPIKey   string
	HeadlinesLang     string

	// Auth
	JWTSecret    string
	TokenTTLMins int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
