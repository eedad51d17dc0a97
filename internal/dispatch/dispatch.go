package dispatch

import (
	"strings"
	"unicode"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/session"
)

// Kind tags the outcome of classifying one incoming text line.
type Kind int

const (
	// KindPayload means the text is not a recognized command and should be
	// composed into an AI request. Near-miss command text (a known token
	// followed by unexpected characters) lands here on purpose.
	KindPayload Kind = iota
	KindStart
	KindHelp
	KindModeSwitch
	KindModelSwitch
	KindModelList
)

// Result is the tagged classification variant consumed by a single switch
// in the bot loop. Mode is set for KindModeSwitch, Arg for KindModelSwitch.
type Result struct {
	Kind Kind
	Mode session.Mode
	Arg  string
}

type command struct {
	token string
	kind  Kind
	mode  session.Mode

	// takesArg commands match only when the token is followed by whitespace
	// and a non-empty remainder; the trimmed remainder is the argument.
	takesArg bool
	// prefixMatch tolerates trailing content after the token, so /start
	// keeps working with deep-link suffixes.
	prefixMatch bool
}

// Order matters: first match wins. /models sits above /model so the list
// command is not mistaken for a model switch.
var commands = []command{
	{token: "/start", kind: KindStart, prefixMatch: true},
	{token: "/help", kind: KindHelp},
	{token: "/prompt_mode", kind: KindModeSwitch, mode: session.ModePrompt},
	{token: "/commit_mode", kind: KindModeSwitch, mode: session.ModeCommit},
	{token: "/chat_mode", kind: KindModeSwitch, mode: session.ModeChat},
	{token: "/models", kind: KindModelList},
	{token: "/model", kind: KindModelSwitch, takesArg: true},
}

// IsStart reports whether text matches the tolerant start-command form.
// It is the only command an unauthorized sender gets a reply to.
func IsStart(text string) bool {
	return strings.HasPrefix(text, "/start")
}

// Classify maps raw message text to a Result. It is a pure function: all
// command effects are applied by the caller.
func Classify(text string) Result {
	for _, cmd := range commands {
		switch {
		case cmd.prefixMatch:
			if strings.HasPrefix(text, cmd.token) {
				return Result{Kind: cmd.kind, Mode: cmd.mode}
			}
		case cmd.takesArg:
			rest, ok := strings.CutPrefix(text, cmd.token)
			if !ok || rest == "" {
				continue
			}
			if !unicode.IsSpace(rune(rest[0])) {
				continue
			}
			arg := strings.TrimSpace(rest)
			if arg == "" {
				continue
			}
			return Result{Kind: cmd.kind, Arg: arg}
		default:
			if text == cmd.token {
				return Result{Kind: cmd.kind, Mode: cmd.mode}
			}
		}
	}
	return Result{Kind: KindPayload}
}
