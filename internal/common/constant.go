package common

// Record keys used in the local keyed-record store. The names match the keys
// the web client used in browser storage, so exported data stays recognizable.
const (
	StatsKey       = "surLinkStats"
	ThemeKey       = "surLinkTheme"
	BestQuizKey    = "surLinkBestQuiz"
	LegacyUserKey  = "surlinkUser"
	UserKeyPrefix  = "surlinkUser_"
	LoggedInKey    = "surlinkLoggedIn"
	LoggedUserKey  = "surlinkLoggedUser"
	SessionKeyKey  = "surlinkSessionKey"
	FeedbackPrefix = "surlinkFeedback_"
)

// UserKey returns the canonical record key of the account registered with email.
func UserKey(email string) string {
	return UserKeyPrefix + email
}
