package chat

import "debthelp-backend/internal/database"

// Turn is one role-tagged entry of the prompt sent upstream.
type Turn struct {
	Role    string
	Content string
}

const roleSystem = "system"

// systemPrompt encodes the assistant persona and its communication rules.
// The content is product policy, treated here as an opaque string.
const systemPrompt = `Du er en hjælpsom, empatisk og rolig AI-assistent, der hjælper mennesker med gæld og inkasso på en enkel måde.

Regler:
- Venligt, støttende og respektfuldt sprog.
- Korte, enkle forklaringer uden jurasprog.
- Oversæt svære ord (fx "debitor", "inkassovarsel").
- Ingen moralprædikener - kun løsninger og ro.
- Små skridt er bedre end ingen skridt ("Selv 50 kr. er bedre end 0 kr.").
- Vær neutral mægler, men med brugerens forståelse i centrum.
- Ekstra ro hvis bruger virker bange eller stresset.
`

// assemblePrompt produces the fixed system instruction followed by the
// history window in chronological order, nothing else.
func assemblePrompt(history []database.ChatMessage) []Turn {
	turns := make([]Turn, 0, len(history)+1)
	turns = append(turns, Turn{Role: roleSystem, Content: systemPrompt})
	for _, msg := range history {
		turns = append(turns, Turn{Role: msg.Role, Content: msg.Content})
	}
	return turns
}
