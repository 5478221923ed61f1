package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleAgent  = "agent"
	ChatMessageRoleSystem = "system"

	// Provider-side role vocabulary. Gemini only distinguishes two
	// conversational roles, so agent and system both collapse to "model".
	ProviderRoleUser  = "user"
	ProviderRoleModel = "model"
)

// Sentinel titles a session carries until it is renamed, either by the
// user or by the title generator.
var SentinelTitles = []string{"New Chat", "Nueva conversación"}

const (
	// FallbackSessionTitle is returned by the title generator on any failure.
	FallbackSessionTitle = "Nueva conversación"

	// HistoryWindowSize bounds how many prior messages are sent to the
	// provider as conversational memory.
	HistoryWindowSize = 20

	// TitlePromptMessageLimit caps how many messages seed the title prompt.
	TitlePromptMessageLimit = 4

	// MaxSessionTitleLength is the hard cap applied to generated titles.
	MaxSessionTitleLength = 50
)

// IsSentinelTitle reports whether a session still carries a default title.
func IsSentinelTitle(title string) bool {
	for _, s := range SentinelTitles {
		if title == s {
			return true
		}
	}
	return false
}
