package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Insight/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Insight"
	AppID             = "com.github.tartampluch.go-insight"
	AppCommand        = "go-insight"
	KeyringService    = "com.github.tartampluch.go-insight"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	StoreFileName     = "insight.json"
	StoreDBName       = "insight.db"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the JSON store, which hold personal data.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig    = "config"
	FlagDebug     = "debug"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagOutput    = "output"
	FlagLocale    = "locale"
	FlagBirthDate = "birth-date"
	FlagName      = "name"
	FlagDate      = "date"
	FlagRange     = "range"
	FlagFrom      = "from"
	FlagTo        = "to"
	FlagDays      = "days"
	FlagOut       = "out"
	FlagPort      = "port"
	FlagFile      = "file"
	FlagURL       = "url"
	FlagUser      = "user"
	FlagTop       = "top"
	FlagSave      = "save"
	FlagForce     = "force"
	FlagMood      = "mood"
	FlagTask      = "task"
	FlagAmount    = "amount"
	FlagType      = "type"
	FlagFrequency = "frequency"
	FlagStart     = "start"
	FlagEnd       = "end"
	FlagCategory  = "category"

	FlagDescConfig    = "config file (default: $HOME/.config/go-insight/config.yaml)"
	FlagDescDebug     = "Enable debug logging with source locations"
	FlagDescLogLevel  = "log level (debug, info, warn, error)"
	FlagDescLogFormat = "log format (json, console)"
	FlagDescOutput    = "output format (text, json, yaml)"
	FlagDescLocale    = "language for text output and calendar summaries"
	FlagDescBirthDate = "birth date (YYYY-MM-DD); defaults to the stored profile"
	FlagDescName      = "full birth name; defaults to the stored profile"
	FlagDescDate      = "target date (YYYY-MM-DD); defaults to today"
	FlagDescRange     = "number of days before and after the target date"
	FlagDescFrom      = "first year of the range"
	FlagDescTo        = "last year of the range"
	FlagDescDays      = "number of days covered by the calendar feed"
	FlagDescOut       = "write the calendar to this file instead of stdout"
	FlagDescPort      = "port of the local HTTP server"
	FlagDescFile      = "local file to read"
	FlagDescURL       = "CardDAV or WebDAV URL of a vCard collection"
	FlagDescUser      = "username for HTTP basic auth (password is read from the keyring)"
	FlagDescTop       = "number of entries in frequency rankings"
	FlagDescSave      = "persist the computed result to the store"
	FlagDescForce     = "ignore the hourly throttle"
	FlagDescMood      = "mood from 1 to 10"
	FlagDescTask      = "checked task (repeatable)"
	FlagDescAmount    = "positive amount, e.g. 12.50"
	FlagDescType      = "income or expense"
	FlagDescFrequency = "daily, weekly, biweekly, monthly, quarterly or yearly"
	FlagDescStart     = "first occurrence (YYYY-MM-DD)"
	FlagDescEnd       = "last possible occurrence (YYYY-MM-DD)"
	FlagDescCategory  = "category label"
	FlagDescFromDate  = "first day included (YYYY-MM-DD)"
	FlagDescToDate    = "last day included (YYYY-MM-DD)"
	FlagDescJournal   = "analyze a JSON array of entries instead of the stored journal"

	MsgVersionOutput = "%s version %s (%s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper) & Defaults
// -----------------------------------------------------------------------------

const (
	EnvPrefix      = "INSIGHT"
	ConfigDirName  = "go-insight"
	ConfigFileName = "config"
	ConfigFileType = "yaml"

	KeyStoreDriver    = "store.driver"
	KeyStorePath      = "store.path"
	KeyLocale         = "locale"
	KeyOutputFormat   = "output.format"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyLogFile        = "log.file"
	KeyServerPort     = "server.port"
	KeyRefreshMinutes = "server.refresh_minutes"
	KeyCalendarDays   = "calendar.days"
	KeyReminder       = "calendar.reminder"
	KeyImportURL      = "import.url"
	KeyImportUser     = "import.user"

	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"

	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	DefaultStoreDriver    = DriverFile
	DefaultLocale         = "en"
	DefaultOutputFormat   = FormatText
	DefaultLogLevel       = "info"
	DefaultLogFormat      = LogFormatJSON
	DefaultPort           = "18081"
	DefaultRefreshMinutes = 60
	DefaultCalendarDays   = 90
	DefaultBiorhythmRange = 15
	MaxCalendarDays       = 3660
	DefaultTopN           = 10
)

// SupportedLanguages defines the list of available catalogue languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Store Keys
// -----------------------------------------------------------------------------

// Keys mirror the namespaces of the browser local-storage blob the data was
// originally kept in, so exported stores stay recognizable.
const (
	StoreKeyBirthDate        = "lifestyle.birthDate"
	StoreKeyFullName         = "lifestyle.fullName"
	StoreKeyNumerology       = "lifestyle.numerology"
	StoreKeyEnneagram        = "lifestyle.enneagramResults"
	StoreKeyJournalEntries   = "meditationData.journalEntries"
	StoreKeyTransactions     = "finance.transactions"
	StoreKeyRecurring        = "finance.recurringTransactions"
	StoreKeyLastRecurringRun = "finance.lastRecurringRun"
	StoreKeyDailyPrefix      = "daily."
)

// -----------------------------------------------------------------------------
// Translation Keys (go-i18n)
// -----------------------------------------------------------------------------

const (
	// Calendar summaries
	TKeyEvtCritical    = "event_critical_day"     // Requires Name, Cycle
	TKeyEvtYear        = "event_personal_year"    // Requires Name, Number, Title
	TKeyEvtSignificant = "event_significant_year" // Requires Name, Title
	TKeyEvtMercury     = "event_mercury_retrograde"

	// Cycle names
	TKeyCyclePhysical     = "cycle_physical"
	TKeyCycleEmotional    = "cycle_emotional"
	TKeyCycleIntellectual = "cycle_intellectual"
	TKeyCycleIntuitive    = "cycle_intuitive"

	// Text output labels
	TKeyLblName         = "lbl_name"
	TKeyLblBirthDate    = "lbl_birth_date"
	TKeyLblDate         = "lbl_date"
	TKeyLblLifePath     = "lbl_life_path"
	TKeyLblBirthday     = "lbl_birthday"
	TKeyLblDestiny      = "lbl_destiny"
	TKeyLblSoulUrge     = "lbl_soul_urge"
	TKeyLblPersonality  = "lbl_personality"
	TKeyLblAverage      = "lbl_average"
	TKeyLblCritical     = "lbl_critical"
	TKeyLblEnergy       = "lbl_overall_energy"
	TKeyLblUniversalDay = "lbl_universal_day"
	TKeyLblPersonalDay  = "lbl_personal_day"
	TKeyLblPersonalYear = "lbl_personal_year"
	TKeyLblDayTheme     = "lbl_day_theme"
	TKeyLblNatalSign    = "lbl_natal_sign"
	TKeyLblTransitSign  = "lbl_transit_sign"
	TKeyLblMoonPhase    = "lbl_moon_phase"
	TKeyLblMercury      = "lbl_mercury_retrograde"
	TKeyLblOptimal      = "lbl_optimal_activities"
	TKeyLblCaution      = "lbl_caution_areas"
	TKeyLblAge          = "lbl_age"
	TKeyLblPeriod       = "lbl_current_period"
	TKeyLblPeriods      = "lbl_periods"
	TKeyLblSaturn       = "lbl_saturn_returns"
	TKeyLblSignificant  = "lbl_significant_years"
	TKeyLblYears        = "lbl_personal_years"
	TKeyLblEntries      = "lbl_entries"
	TKeyLblWords        = "lbl_top_words"
	TKeyLblPeople       = "lbl_people"
	TKeyLblMood         = "lbl_average_mood"
	TKeyLblIncome       = "lbl_income"
	TKeyLblExpense      = "lbl_expense"
	TKeyLblBalance      = "lbl_balance"
	TKeyLblGenerated    = "lbl_generated"
	TKeyLblThrottled    = "lbl_throttled"
	TKeyLblYes          = "lbl_yes"
	TKeyLblNo           = "lbl_no"
	TKeyProfilesCount   = "profiles_count" // Requires Count; plural
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Insight//Engine//EN"
	ICalCalName   = "Insight"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goinsight"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour

	EventKindCritical  = "critical-day"
	EventKindYear      = "personal-year"
	EventKindMercury   = "mercury-retrograde"
	EventKindSignified = "significant-year"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for birth and target dates.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// DefaultLeapYear hosts year-less dates so that --02-29 stays valid.
	DefaultLeapYear = 2000

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDSalt         = "go-insight-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s-%s@%s"

	// File Extensions
	ExtVCF = ".vcf"
	ExtICS = ".ics"

	// Import source modes
	SourceModeLocal = "local"
	SourceModeWeb   = "web"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	RouteRoot       = "/"
	RouteCalendar   = "/calendar.ics"
	RouteDaily      = "/api/daily"
	RouteBiorhythm  = "/api/biorhythm"
	RouteTimeline   = "/api/timeline"
	RouteNumerology = "/api/numerology"

	QueryDate  = "date"
	QueryRange = "range"
	QueryFrom  = "from"
	QueryTo    = "to"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAccept          = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeVCardAccept     = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrDriverUnsupport  = "configuration error: unsupported store driver"
	ErrFormatUnsupport  = "configuration error: unsupported output format"
	ErrLogLevel         = "configuration error: invalid log level"
	ErrLogFormat        = "configuration error: invalid log format"
	ErrConfigRead       = "failed to read config"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrCalendarDays     = "calendar window exceeds the maximum number of days"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrBirthDateMissing = "no birth date given and none stored; use --birth-date or 'profile set'"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app directory"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrEncodeResp       = "failed to encode response"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrStoreOpen        = "failed to open store"
	ErrStoreRead        = "failed to read from store"
	ErrStoreWrite       = "failed to write to store"
	ErrStoreDecode      = "failed to decode stored value"
	ErrStoreEncode      = "failed to encode value for store"
	ErrStoreMigrate     = "failed to migrate store schema"
	ErrStorePathEmpty   = "configuration error: store path is empty"
	ErrKeyringWrite     = "failed to write password to keyring"
	ErrPasswordRead     = "failed to read password"
	ErrCalendarBuild    = "failed to build calendar"
	ErrTimeline         = "failed to generate timeline"
	ErrAdvice           = "failed to compute daily advice"
	ErrRender           = "failed to render output"
	ErrJournalRead      = "failed to read journal file"
	ErrRequestBuild     = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrResponseTooLarge = "response exceeds the size limit"
	ErrMoodRange        = "mood must be between 1 and 10"
	ErrAmountParse      = "invalid amount"
	ErrUserMissing      = "no user given; use --user or set import.user"
	ErrSourceMissing    = "no contact source given; use --file or --url"
	ErrTextMissing      = "entry text is empty"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgNoProfile    = "No profile configured"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummaryCritical = "%s: %s critical day"
	FallbackSummaryYear     = "%s: Personal Year %d (%s)"
	FallbackSummaryMercury  = "Mercury retrograde"
	FallbackName            = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgSyncStarted    = "Calendar generation started"
	MsgSyncFailed     = "Calendar generation failed"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgAppStop        = "Application stopped gracefully"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedNoYear  = "Skipping birthday without year"
	MsgGenSuccess     = "Calendar generation successful"
	MsgImportSuccess  = "vCard import successful"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgPassStored     = "Password stored in keyring"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgStoreOpened    = "Store opened"
	MsgStoreMigrated  = "Store schema migrated"
	MsgProfileSaved   = "Profile saved"
	MsgSnapshotSaved  = "Numerology snapshot saved"
	MsgRecurringSkip  = "Recurring transactions processed recently, skipping"
	MsgRecurringDone  = "Recurring transactions processed"
	MsgRecurringCap   = "Recurring processing cap reached"
	MsgConfigNotFound = "No config file found, using defaults"
	MsgPromptPassword = "Password for %s: "
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchBody      = "vCards downloading"
	MsgCriticalToday  = "Critical biorhythm day today"
	MsgPassDeleted    = "Password removed from keyring"
	MsgJournalSaved   = "Journal entry saved"
	MsgDailySaved     = "Daily entry saved"
	MsgTemplateSaved  = "Recurring template saved"
	MsgCalendarSaved  = "Calendar written"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyDriver    = "driver"
	LogKeyPath      = "path"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "profiles_found"
	LogKeyEvents    = "events"
	LogKeyProfiles  = "profiles"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDate      = "date"
	LogKeyDuration  = "duration_ms"
	LogKeyVersion   = "version"
	LogKeyLastRun   = "last_run"
	LogKeyGenerated = "generated"
	LogKeyCycle     = "cycle"
	LogKeyContentLn = "content_length"
	LogKeyCommand   = "command"

	// Startup Info Keys
	LogKeyBuild = "build"
	LogKeyApp   = "app"
	LogKeyGoVer = "go_version"
	LogKeyEnv   = "env"
	LogKeyOS    = "os"
	LogKeyArch  = "arch"
	LogKeyPID   = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompCLI      = "cli"
	CompEngine   = "engine"
	CompImporter = "importer"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompStore    = "store"
	CompFinance  = "finance"
)
